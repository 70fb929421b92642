package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
)

// ProductRepository defines the persistence contract for products
type ProductRepository interface {
	shared.Repository[Product]
	FindByNumber(ctx context.Context, number string) (*Product, error)
	FindByNumbers(ctx context.Context, numbers []string) ([]Product, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	SaveBatch(ctx context.Context, products []*Product) error
}

// ProductAttachmentRepository defines the persistence contract for attachments
type ProductAttachmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductAttachment, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductAttachment, error)
	FindPrimaryImage(ctx context.Context, productID uuid.UUID) (*ProductAttachment, error)
	Save(ctx context.Context, attachment *ProductAttachment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearPrimaryForProduct(ctx context.Context, productID uuid.UUID) error
}

// ProductRelationRepository defines the persistence contract for product relations
type ProductRelationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductRelation, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductRelation, error)
	Exists(ctx context.Context, productID, relatedProductID uuid.UUID, kind RelationKind) (bool, error)
	Save(ctx context.Context, relation *ProductRelation) error
	Delete(ctx context.Context, id uuid.UUID) error
}
