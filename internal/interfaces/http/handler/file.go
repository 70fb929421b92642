package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/orderflow/backend/internal/application/catalog"
)

// FileHandler mints signed download URLs for stored objects
type FileHandler struct {
	BaseHandler
	attachmentService *catalogapp.AttachmentService
}

// NewFileHandler creates a new FileHandler
func NewFileHandler(attachmentService *catalogapp.AttachmentService) *FileHandler {
	return &FileHandler{
		attachmentService: attachmentService,
	}
}

// SignedURLRequest carries the storage key to sign
type SignedURLRequest struct {
	StorageKey string `json:"storage_key" binding:"required"`
}

// UploadURL returns a presigned upload URL for a standalone document
func (h *FileHandler) UploadURL(c *gin.Context) {
	var req catalogapp.UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.attachmentService.GetUploadURL(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SignedURL returns a presigned download URL for the given storage key
func (h *FileHandler) SignedURL(c *gin.Context) {
	var req SignedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.attachmentService.GetSignedURL(c.Request.Context(), req.StorageKey)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
