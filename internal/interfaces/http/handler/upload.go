package handler

import (
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	uploadapp "github.com/labelgen/backend/internal/application/upload"
	"github.com/labelgen/backend/internal/interfaces/http/dto"
)

// UploadHandler handles part image upload API endpoints
type UploadHandler struct {
	BaseHandler
	uploadService *uploadapp.Service
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploadService *uploadapp.Service) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
	}
}

// Upload handles POST /uploads. It accepts a multipart form with a single
// "file" field and returns the stored image reference.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file field in multipart form")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Failed to open uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, uploadapp.MaxImageBytes+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	result, err := h.uploadService.UploadImage(c.Request.Context(), uploadapp.UploadImageRequest{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// Get handles GET /uploads/:key and streams a stored image
func (h *UploadHandler) Get(c *gin.Context) {
	key := c.Param("key")
	if strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		h.BadRequest(c, "Invalid image key")
		return
	}

	reader, contentType, err := h.uploadService.GetImage(c.Request.Context(), key)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.InternalError(c, "Failed to serve image")
		return
	}
}

// Delete handles DELETE /uploads/:key
func (h *UploadHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	if strings.Contains(key, "..") || strings.ContainsAny(key, "/\\") {
		h.BadRequest(c, "Invalid image key")
		return
	}

	if err := h.uploadService.DeleteImage(c.Request.Context(), key); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, dto.MessageResponse{Message: "Image deleted successfully"})
}
