package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input for creating a product
type CreateProductRequest struct {
	Number      string          `json:"number" binding:"required,max=50"`
	Name        string          `json:"name" binding:"required,max=200"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	SortOrder   int             `json:"sort_order"`
}

// UpdateProductRequest is the input for updating a product
type UpdateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=200"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	SortOrder   *int             `json:"sort_order"`
	Status      string           `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProductListFilter holds query parameters for listing products
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}

// ProductResponse is the API representation of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	SortOrder   int             `json:"sort_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Number:      p.Number,
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Price:       p.Price,
		Status:      string(p.Status),
		SortOrder:   p.SortOrder,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// CreateRelationRequest is the input for linking two products
type CreateRelationRequest struct {
	RelatedProductID uuid.UUID `json:"related_product_id" binding:"required"`
	Kind             string    `json:"kind" binding:"required,oneof=accessory spare_part"`
}

// RelationResponse is the API representation of a product relation
type RelationResponse struct {
	ID               uuid.UUID        `json:"id"`
	ProductID        uuid.UUID        `json:"product_id"`
	RelatedProductID uuid.UUID        `json:"related_product_id"`
	Kind             string           `json:"kind"`
	RelatedProduct   *ProductResponse `json:"related_product,omitempty"`
}

// ToRelationResponse converts a relation to its API representation
func ToRelationResponse(r *catalog.ProductRelation) RelationResponse {
	return RelationResponse{
		ID:               r.ID,
		ProductID:        r.ProductID,
		RelatedProductID: r.RelatedProductID,
		Kind:             string(r.Kind),
	}
}

// RegisterAttachmentRequest is the input for registering a file on a product
type RegisterAttachmentRequest struct {
	Kind        string `json:"kind" binding:"required,oneof=image document"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
	FileSize    int64  `json:"file_size" binding:"min=0"`
	Primary     bool   `json:"primary"`
}

// RegisterAttachmentResponse returns the new attachment and its upload URL
type RegisterAttachmentResponse struct {
	Attachment AttachmentResponse `json:"attachment"`
	UploadURL  string             `json:"upload_url"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

// AttachmentResponse is the API representation of a product attachment
type AttachmentResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	Primary     bool      `json:"primary"`
	SortOrder   int       `json:"sort_order"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAttachmentResponse converts an attachment to its API representation
func ToAttachmentResponse(a *catalog.ProductAttachment) AttachmentResponse {
	return AttachmentResponse{
		ID:          a.ID,
		ProductID:   a.ProductID,
		Kind:        string(a.Kind),
		FileName:    a.FileName,
		ContentType: a.ContentType,
		FileSize:    a.FileSize,
		Primary:     a.Primary,
		SortOrder:   a.SortOrder,
		CreatedAt:   a.CreatedAt,
	}
}

// SignedURLResponse carries a presigned download URL
type SignedURLResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UploadURLRequest asks for a presigned upload URL for a standalone
// document, such as an order confirmation
type UploadURLRequest struct {
	Scope       string `json:"scope" binding:"required,oneof=orders"`
	FileName    string `json:"file_name" binding:"required,max=255"`
	ContentType string `json:"content_type" binding:"required"`
}

// UploadURLResponse carries the presigned upload URL and the storage key
// to register once the upload completes
type UploadURLResponse struct {
	StorageKey string    `json:"storage_key"`
	UploadURL  string    `json:"upload_url"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ImportRowError describes a rejected import row
type ImportRowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// ImportResult summarises a bulk product import
type ImportResult struct {
	TotalRows    int              `json:"total_rows"`
	Created      int              `json:"created"`
	Updated      int              `json:"updated"`
	Skipped      int              `json:"skipped"`
	Errors       []ImportRowError `json:"errors,omitempty"`
	ErrorsTotal  int              `json:"errors_total"`
	DurationMS   int64            `json:"duration_ms"`
	DedupedInMem int              `json:"deduplicated_rows"`
}
