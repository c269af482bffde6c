package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/conectahub/backend/internal/middleware"
	"github.com/conectahub/backend/pkg/response"
	"github.com/gin-gonic/gin"
)

// pathID parses a positive id route parameter, answering 400 when it is not one.
func pathID(c *gin.Context, name, what string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid "+what+" id")
		return 0, false
	}
	return uint(id), true
}

// callerID identifies who is asking: the bearer token first, then the
// usuario_id query parameter the web client sends. 0 means unknown.
func callerID(c *gin.Context) uint {
	if id := middleware.GetUserID(c); id != 0 {
		return id
	}
	if raw := c.Query("usuario_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			return uint(id)
		}
	}
	return 0
}

// optionalFile returns the uploaded file for field, or nil when none was sent.
func optionalFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	return fh, err
}

// formFiles returns every file uploaded under field.
func formFiles(c *gin.Context, field string) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	if files := form.File[field]; len(files) > 0 {
		return files
	}
	return form.File[field+"[]"]
}
