package catalog

import (
	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
)

// RelationKind represents how two products relate to each other
type RelationKind string

const (
	RelationKindAccessory RelationKind = "accessory"
	RelationKindSparePart RelationKind = "spare_part"
)

// IsValid checks if the relation kind is valid
func (k RelationKind) IsValid() bool {
	switch k {
	case RelationKindAccessory, RelationKindSparePart:
		return true
	default:
		return false
	}
}

// ProductRelation links a product to an accessory or spare part
type ProductRelation struct {
	shared.BaseEntity
	ProductID        uuid.UUID    `gorm:"type:uuid;not null;index;uniqueIndex:idx_product_relation,priority:1"`
	RelatedProductID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_product_relation,priority:2"`
	Kind             RelationKind `gorm:"type:varchar(20);not null;uniqueIndex:idx_product_relation,priority:3"`
}

// TableName returns the table name for GORM
func (ProductRelation) TableName() string {
	return "product_relations"
}

// NewProductRelation creates a relation between two products
func NewProductRelation(productID, relatedProductID uuid.UUID, kind RelationKind) (*ProductRelation, error) {
	if productID == uuid.Nil || relatedProductID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT_ID", "Both product IDs are required")
	}
	if productID == relatedProductID {
		return nil, shared.NewDomainError("INVALID_RELATION", "A product cannot relate to itself")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_RELATION", "Relation kind must be accessory or spare_part")
	}

	return &ProductRelation{
		BaseEntity:       shared.NewBaseEntity(),
		ProductID:        productID,
		RelatedProductID: relatedProductID,
		Kind:             kind,
	}, nil
}
