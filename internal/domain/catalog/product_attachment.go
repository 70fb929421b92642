package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
)

// MaxAttachmentFileSize is the maximum allowed file size (50MB)
const MaxAttachmentFileSize = 50 * 1024 * 1024

// AttachmentKind represents the kind of product attachment
type AttachmentKind string

const (
	AttachmentKindImage    AttachmentKind = "image"
	AttachmentKindDocument AttachmentKind = "document"
)

// IsValid checks if the attachment kind is valid
func (k AttachmentKind) IsValid() bool {
	switch k {
	case AttachmentKindImage, AttachmentKindDocument:
		return true
	default:
		return false
	}
}

// ProductAttachment represents a file (image or document) stored for a product.
// The bytes live in object storage; this row carries the storage key.
type ProductAttachment struct {
	shared.BaseAggregateRoot
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index"`
	Kind        AttachmentKind `gorm:"type:varchar(20);not null"`
	FileName    string         `gorm:"type:varchar(255);not null"`
	ContentType string         `gorm:"type:varchar(100);not null"`
	StorageKey  string         `gorm:"type:varchar(512);not null;uniqueIndex"`
	FileSize    int64          `gorm:"not null;default:0"`
	Primary     bool           `gorm:"not null;default:false"`
	SortOrder   int            `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductAttachment) TableName() string {
	return "product_attachments"
}

// NewProductAttachment creates a new product attachment
func NewProductAttachment(
	productID uuid.UUID,
	kind AttachmentKind,
	fileName, contentType, storageKey string,
	fileSize int64,
) (*ProductAttachment, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Product ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Attachment kind must be image or document")
	}
	if err := validateFileName(fileName); err != nil {
		return nil, err
	}
	if err := validateContentType(contentType, kind); err != nil {
		return nil, err
	}
	if err := validateStorageKey(storageKey); err != nil {
		return nil, err
	}
	if fileSize < 0 || fileSize > MaxAttachmentFileSize {
		return nil, shared.NewDomainError("INVALID_FILE_SIZE", "File size must be between 0 and 50MB")
	}

	attachment := &ProductAttachment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		Kind:              kind,
		FileName:          fileName,
		ContentType:       contentType,
		StorageKey:        storageKey,
		FileSize:          fileSize,
	}

	attachment.AddDomainEvent(NewAttachmentAddedEvent(attachment))

	return attachment, nil
}

// MarkPrimary flags an image attachment as the product's primary image
func (a *ProductAttachment) MarkPrimary() error {
	if a.Kind != AttachmentKindImage {
		return shared.NewDomainError("INVALID_KIND", "Only images can be marked primary")
	}
	a.Primary = true
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// ClearPrimary removes the primary flag
func (a *ProductAttachment) ClearPrimary() {
	a.Primary = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

func validateFileName(fileName string) error {
	if fileName == "" {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot be empty")
	}
	if len(fileName) > 255 {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot exceed 255 characters")
	}
	if strings.Contains(fileName, "/") || strings.Contains(fileName, "\\") {
		return shared.NewDomainError("INVALID_FILE_NAME", "File name cannot contain path separators")
	}
	return nil
}

func validateContentType(contentType string, kind AttachmentKind) error {
	if contentType == "" {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Content type cannot be empty")
	}
	if kind == AttachmentKindImage && !strings.HasPrefix(contentType, "image/") {
		return shared.NewDomainError("INVALID_CONTENT_TYPE", "Image attachments must have an image content type")
	}
	return nil
}

func validateStorageKey(storageKey string) error {
	if storageKey == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if len(storageKey) > 512 {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot exceed 512 characters")
	}
	if strings.Contains(storageKey, "..") {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot contain path traversal")
	}
	return nil
}
