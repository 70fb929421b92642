package catalog

import (
	"github.com/orderflow/backend/internal/domain/shared"
)

// Event types for the catalog domain
const (
	EventTypeProductCreated    = "catalog.product.created"
	EventTypeProductUpdated    = "catalog.product.updated"
	EventTypeProductImported   = "catalog.product.imported"
	EventTypeAttachmentAdded   = "catalog.attachment.added"
	EventTypeAttachmentRemoved = "catalog.attachment.removed"
)

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
	Name   string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		Number:          p.Number,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is emitted when a product is updated
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID),
		Number:          p.Number,
	}
}

// AttachmentAddedEvent is emitted when an attachment is registered on a product
type AttachmentAddedEvent struct {
	shared.BaseDomainEvent
	ProductID  string `json:"product_id"`
	Kind       string `json:"kind"`
	StorageKey string `json:"storage_key"`
}

// NewAttachmentAddedEvent creates a new AttachmentAddedEvent
func NewAttachmentAddedEvent(a *ProductAttachment) *AttachmentAddedEvent {
	return &AttachmentAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAttachmentAdded, "ProductAttachment", a.ID),
		ProductID:       a.ProductID.String(),
		Kind:            string(a.Kind),
		StorageKey:      a.StorageKey,
	}
}
