package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/gin-gonic/gin"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// errorStatuses maps sentinel errors to HTTP statuses. Order matters only
// for errors wrapping more than one sentinel.
var errorStatuses = []struct {
	err    error
	status int
}{
	{common.ErrInvalidInput, http.StatusBadRequest},
	{common.ErrNotFound, http.StatusNotFound},
	{common.ErrUnsupportedFormat, http.StatusUnsupportedMediaType},
	{common.ErrDuplicateEmail, http.StatusConflict},
	{common.ErrAlreadyExists, http.StatusConflict},
	{common.ErrInvalidCredentials, http.StatusUnauthorized},
	{common.ErrInvalidToken, http.StatusUnauthorized},
	{common.ErrAssetCreationFailed, http.StatusBadGateway},
}

func classify(err error) (int, error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.err) {
			return e.status, e.err
		}
	}
	return http.StatusInternalServerError, common.ErrInternal
}

func statusFor(err error) int {
	status, _ := classify(err)
	return status
}

func success(c *gin.Context, status int, data any) {
	c.JSON(status, envelope{Success: true, Data: data})
}

func failure(c *gin.Context, status int, msg string) {
	c.JSON(status, envelope{Success: false, Error: msg})
}

// fail writes the enveloped error for err. resource names the entity in
// not-found messages, e.g. "Outfit" gives "Outfit not found".
func (s *Server) fail(c *gin.Context, err error, resource string) {
	status, sentinel := classify(err)

	switch status {
	case http.StatusInternalServerError, http.StatusBadGateway:
		s.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(),
			"error", err,
			"request_id", c.GetString(requestIDKey),
		)
	}

	msg := sentinel.Error()
	if status == http.StatusNotFound && resource != "" {
		msg = resource + " not found"
	}
	failure(c, status, msg)
}

// authError writes the bare error object used by the auth routes.
func authError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
