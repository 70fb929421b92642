package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRelationRepository implements ProductRelationRepository using GORM
type GormProductRelationRepository struct {
	db *gorm.DB
}

// NewGormProductRelationRepository creates a new GormProductRelationRepository
func NewGormProductRelationRepository(db *gorm.DB) *GormProductRelationRepository {
	return &GormProductRelationRepository{db: db}
}

// FindByID finds a relation by its ID
func (r *GormProductRelationRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductRelation, error) {
	var relation catalog.ProductRelation
	if err := r.db.WithContext(ctx).First(&relation, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &relation, nil
}

// FindByProduct finds all relations for a product
func (r *GormProductRelationRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductRelation, error) {
	var relations []catalog.ProductRelation
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("kind ASC, created_at ASC").
		Find(&relations).Error; err != nil {
		return nil, err
	}
	return relations, nil
}

// Exists checks if an identical relation already exists
func (r *GormProductRelationRepository) Exists(ctx context.Context, productID, relatedProductID uuid.UUID, kind catalog.RelationKind) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.ProductRelation{}).
		Where("product_id = ? AND related_product_id = ? AND kind = ?", productID, relatedProductID, kind).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a relation
func (r *GormProductRelationRepository) Save(ctx context.Context, relation *catalog.ProductRelation) error {
	return r.db.WithContext(ctx).Save(relation).Error
}

// Delete deletes a relation
func (r *GormProductRelationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.ProductRelation{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormProductRelationRepository implements ProductRelationRepository
var _ catalog.ProductRelationRepository = (*GormProductRelationRepository)(nil)
