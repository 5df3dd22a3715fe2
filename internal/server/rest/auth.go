package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/gin-gonic/gin"
)

// The auth routes answer with bare JSON objects: the token triple on
// success and {"error": msg} on failure.

func (s *Server) readCredentials(c *gin.Context) (email, password, username string, ok bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == nil || req.Password == nil {
		authError(c, http.StatusBadRequest, "Invalid email or password")
		return "", "", "", false
	}
	return *req.Email, *req.Password, req.Username, true
}

func (s *Server) register(c *gin.Context) {
	email, password, username, ok := s.readCredentials(c)
	if !ok {
		return
	}

	creds, err := s.users.Register(c.Request.Context(), email, password, username)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, newCredentialsResponse(creds))
	case errors.Is(err, common.ErrDuplicateEmail):
		authError(c, http.StatusConflict, "User already exists")
	case errors.Is(err, common.ErrInvalidInput):
		authError(c, http.StatusBadRequest, "Invalid email or password")
	default:
		s.authFailure(c, err)
	}
}

func (s *Server) login(c *gin.Context) {
	email, password, _, ok := s.readCredentials(c)
	if !ok {
		return
	}

	creds, err := s.users.Login(c.Request.Context(), email, password)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, newCredentialsResponse(creds))
	case errors.Is(err, common.ErrInvalidCredentials), errors.Is(err, common.ErrInvalidInput):
		authError(c, http.StatusUnauthorized, "Incorrect email or password")
	default:
		s.authFailure(c, err)
	}
}

func (s *Server) renewSession(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		authError(c, http.StatusUnauthorized, token)
		return
	}

	creds, err := s.users.RenewSession(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, newCredentialsResponse(creds))
	case errors.Is(err, common.ErrInvalidToken):
		authError(c, http.StatusUnauthorized, "Invalid update token")
	default:
		s.authFailure(c, err)
	}
}

func (s *Server) secret(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "You have successfully implemented sessions!"})
}

func (s *Server) authFailure(c *gin.Context, err error) {
	s.logger.Error(c.Request.Context(), "auth request failed", "path", c.FullPath(), "error", err)
	authError(c, http.StatusInternalServerError, common.ErrInternal.Error())
}
