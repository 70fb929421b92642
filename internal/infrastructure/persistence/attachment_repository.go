package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductAttachmentRepository implements ProductAttachmentRepository using GORM
type GormProductAttachmentRepository struct {
	db *gorm.DB
}

// NewGormProductAttachmentRepository creates a new GormProductAttachmentRepository
func NewGormProductAttachmentRepository(db *gorm.DB) *GormProductAttachmentRepository {
	return &GormProductAttachmentRepository{db: db}
}

// FindByID finds an attachment by its ID
func (r *GormProductAttachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductAttachment, error) {
	var attachment catalog.ProductAttachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// FindByProduct finds all attachments for a product grouped by kind,
// primary images ahead of the rest within each group
func (r *GormProductAttachmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductAttachment, error) {
	var attachments []catalog.ProductAttachment
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("kind ASC, \"primary\" DESC, sort_order ASC, created_at ASC").
		Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// FindPrimaryImage finds the primary image for a product
func (r *GormProductAttachmentRepository) FindPrimaryImage(ctx context.Context, productID uuid.UUID) (*catalog.ProductAttachment, error) {
	var attachment catalog.ProductAttachment
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND kind = ? AND \"primary\" = ?", productID, catalog.AttachmentKindImage, true).
		First(&attachment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// Save creates or updates an attachment
func (r *GormProductAttachmentRepository) Save(ctx context.Context, attachment *catalog.ProductAttachment) error {
	return r.db.WithContext(ctx).Save(attachment).Error
}

// Delete deletes an attachment
func (r *GormProductAttachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductAttachment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearPrimaryForProduct clears the primary flag on all of a product's images
func (r *GormProductAttachmentRepository) ClearPrimaryForProduct(ctx context.Context, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&catalog.ProductAttachment{}).
		Where("product_id = ? AND kind = ?", productID, catalog.AttachmentKindImage).
		Update("primary", false).Error
}

// Ensure GormProductAttachmentRepository implements ProductAttachmentRepository
var _ catalog.ProductAttachmentRepository = (*GormProductAttachmentRepository)(nil)
