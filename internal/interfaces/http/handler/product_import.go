package handler

import (
	"io"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/orderflow/backend/internal/application/catalog"
)

// ProductImportHandler handles bulk CSV product imports
type ProductImportHandler struct {
	BaseHandler
	importService *catalogapp.ProductImportService
}

// NewProductImportHandler creates a new ProductImportHandler
func NewProductImportHandler(importService *catalogapp.ProductImportService) *ProductImportHandler {
	return &ProductImportHandler{
		importService: importService,
	}
}

// Import ingests a CSV file uploaded as multipart form data under the
// "file" field and upserts products row by row.
func (h *ProductImportHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return
	}

	if fileHeader.Size > catalogapp.MaxImportFileSize {
		h.BadRequest(c, "Import file exceeds the 10 MiB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, catalogapp.MaxImportFileSize+1))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}
	if len(data) > catalogapp.MaxImportFileSize {
		h.BadRequest(c, "Import file exceeds the 10 MiB limit")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), data)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
