package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/gin-gonic/gin"
)

// pathID parses the :id route parameter. It writes a 400 response and
// returns false when the value is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		failure(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// bindBody decodes a JSON body into v. An empty body leaves v untouched.
func bindBody(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil && !errors.Is(err, io.EOF) {
		failure(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// ---- assets ----

func (s *Server) uploadImage(c *gin.Context) {
	var req uploadRequest
	if !bindBody(c, &req) {
		return
	}
	if req.ImageData == nil {
		failure(c, http.StatusBadRequest, "no base64 url to be found")
		return
	}

	asset, err := s.assets.StoreImage(c.Request.Context(), *req.ImageData)
	s.observeUpload(err)
	if err != nil {
		s.fail(c, err, "")
		return
	}

	success(c, http.StatusCreated, newAssetResponse(asset))
}

func (s *Server) observeUpload(err error) {
	if s.metrics == nil {
		return
	}
	switch {
	case err == nil:
		s.metrics.ObserveAssetUpload("ok")
	case errors.Is(err, common.ErrInvalidInput):
		s.metrics.ObserveAssetUpload("invalid_input")
	case errors.Is(err, common.ErrUnsupportedFormat):
		s.metrics.ObserveAssetUpload("unsupported_format")
	default:
		s.metrics.ObserveAssetUpload("failed")
	}
}

// ---- users ----

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.ListUsers(c.Request.Context())
	if err != nil {
		s.fail(c, err, "")
		return
	}

	out := make([]*userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, newUserResponse(u))
	}
	success(c, http.StatusOK, out)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	user, err := s.users.DeleteUser(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "User")
		return
	}

	success(c, http.StatusOK, newUserResponse(user))
}

// ---- outfits ----

func (s *Server) listOutfits(c *gin.Context) {
	outfits, err := s.outfits.ListOutfits(c.Request.Context())
	if err != nil {
		s.fail(c, err, "")
		return
	}
	success(c, http.StatusOK, newOutfitResponses(outfits))
}

func (s *Server) getOutfit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	outfit, err := s.outfits.GetOutfit(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Outfit")
		return
	}
	success(c, http.StatusOK, newOutfitResponse(outfit))
}

func (s *Server) createOutfit(c *gin.Context) {
	var req outfitRequest
	if !bindBody(c, &req) {
		return
	}

	outfit, err := s.outfits.CreateOutfit(c.Request.Context(), req.input())
	if err != nil {
		s.fail(c, err, "")
		return
	}
	success(c, http.StatusCreated, newOutfitResponse(outfit))
}

func (s *Server) updateOutfit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req outfitRequest
	if !bindBody(c, &req) {
		return
	}

	outfit, err := s.outfits.UpdateOutfit(c.Request.Context(), id, req.input())
	if err != nil {
		s.fail(c, err, "Outfit")
		return
	}
	success(c, http.StatusOK, newOutfitResponse(outfit))
}

func (s *Server) deleteOutfit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	outfit, err := s.outfits.DeleteOutfit(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Outfit")
		return
	}
	success(c, http.StatusOK, newOutfitResponse(outfit))
}

// ---- tags ----

func (s *Server) tagName(c *gin.Context) (string, bool) {
	var req tagRequest
	if !bindBody(c, &req) {
		return "", false
	}
	if req.TagName == nil {
		failure(c, http.StatusBadRequest, "No tag name")
		return "", false
	}
	return *req.TagName, true
}

func (s *Server) assignTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	name, ok := s.tagName(c)
	if !ok {
		return
	}

	outfit, err := s.outfits.AssignTag(c.Request.Context(), id, name)
	if err != nil {
		s.fail(c, err, "Outfit")
		return
	}
	success(c, http.StatusOK, newOutfitResponse(outfit))
}

func (s *Server) removeTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	name, ok := s.tagName(c)
	if !ok {
		return
	}

	outfit, err := s.outfits.RemoveTag(c.Request.Context(), id, name)
	if err != nil {
		s.fail(c, err, "Outfit")
		return
	}
	success(c, http.StatusOK, newOutfitResponse(outfit))
}

// ---- comments ----

func (s *Server) addComment(c *gin.Context) {
	outfitID, ok := pathID(c)
	if !ok {
		return
	}
	var req commentRequest
	if !bindBody(c, &req) {
		return
	}

	comment, err := s.outfits.AddComment(c.Request.Context(), outfitID, req.Text, req.UserID)
	if err != nil {
		s.fail(c, err, "Outfit")
		return
	}
	success(c, http.StatusCreated, newCommentResponse(comment))
}

func (s *Server) deleteComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	comment, err := s.outfits.DeleteComment(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err, "Comment")
		return
	}
	success(c, http.StatusOK, newCommentResponse(comment))
}
