package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestID(), s.accessLog())
	if s.metrics != nil {
		r.Use(s.metrics.Middleware())
		r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Wardrobe!")
	})

	r.POST("/upload/", s.uploadImage)

	r.GET("/users/", s.listUsers)
	r.DELETE("/users/:id/", s.deleteUser)

	r.GET("/outfits/", s.listOutfits)
	r.POST("/outfits/", s.createOutfit)
	r.GET("/outfits/:id/", s.getOutfit)
	r.POST("/outfits/:id/", s.updateOutfit)
	r.DELETE("/outfits/:id/", s.deleteOutfit)
	r.POST("/outfits/:id/tag/", s.assignTag)
	r.DELETE("/outfits/:id/tag/", s.removeTag)

	r.POST("/comment/:id/", s.addComment)
	r.DELETE("/comment/:id/", s.deleteComment)

	r.POST("/register/", s.register)
	r.POST("/login/", s.login)
	r.POST("/session/", s.renewSession)
	r.GET("/secret/", s.requireSession(), s.secret)

	return r
}
