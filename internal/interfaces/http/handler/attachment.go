package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/orderflow/backend/internal/application/catalog"
)

// AttachmentHandler handles product attachment endpoints
type AttachmentHandler struct {
	BaseHandler
	attachmentService *catalogapp.AttachmentService
}

// NewAttachmentHandler creates a new AttachmentHandler
func NewAttachmentHandler(attachmentService *catalogapp.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{
		attachmentService: attachmentService,
	}
}

// Register records a new attachment and returns a presigned upload URL.
// The client uploads the file body directly to object storage.
func (h *AttachmentHandler) Register(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.RegisterAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.attachmentService.Register(c.Request.Context(), productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, result)
}

// ListByProduct returns all attachments of a product
func (h *AttachmentHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	attachments, err := h.attachmentService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attachments)
}

// GetDownloadURL returns a presigned download URL for an attachment
func (h *AttachmentHandler) GetDownloadURL(c *gin.Context) {
	attachmentID, ok := parseIDParam(c, "attachmentId")
	if !ok {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	result, err := h.attachmentService.GetDownloadURL(c.Request.Context(), attachmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// SetPrimary marks an attachment as the product's primary image
func (h *AttachmentHandler) SetPrimary(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	attachmentID, ok := parseIDParam(c, "attachmentId")
	if !ok {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	attachment, err := h.attachmentService.SetPrimary(c.Request.Context(), productID, attachmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, attachment)
}

// Delete removes an attachment from a product
func (h *AttachmentHandler) Delete(c *gin.Context) {
	productID, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	attachmentID, ok := parseIDParam(c, "attachmentId")
	if !ok {
		h.BadRequest(c, "Invalid attachment ID")
		return
	}

	if err := h.attachmentService.Delete(c.Request.Context(), productID, attachmentID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
