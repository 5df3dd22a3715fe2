package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	userKey      = "user"
)

// requestID reuses the caller's X-Request-ID or generates one and echoes it
// back.
func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// bearerToken extracts the token from the Authorization header. On failure
// the returned string is the message to send back.
func bearerToken(c *gin.Context) (string, bool) {
	h, ok := c.Request.Header[common.AuthorizationHeaderName]
	if !ok || len(h) == 0 {
		return "Missing auth header", false
	}

	v := strings.TrimSpace(h[0])
	token := v
	switch {
	case strings.HasPrefix(v, common.BearerPrefix):
		token = strings.TrimSpace(v[len(common.BearerPrefix):])
	case v == strings.TrimSpace(common.BearerPrefix):
		// a bare "Bearer " arrives with its trailing space trimmed
		token = ""
	}
	if token == "" {
		return "Invalid auth header", false
	}
	return token, true
}

// requireSession resolves a bearer session token to its user and stores it
// in the gin context.
func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			authError(c, http.StatusUnauthorized, token)
			c.Abort()
			return
		}

		user, err := s.users.VerifySession(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, common.ErrInvalidToken) {
				s.logger.Error(c.Request.Context(), "verify session", "error", err)
				authError(c, http.StatusInternalServerError, common.ErrInternal.Error())
			} else {
				authError(c, http.StatusUnauthorized, "Invalid session token")
			}
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}
