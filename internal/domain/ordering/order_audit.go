package ordering

import (
	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
)

// AuditAction identifies what happened to an order
type AuditAction string

const (
	AuditActionPlaced               = AuditAction("placed")
	AuditActionStatusChanged        = AuditAction("status_changed")
	AuditActionETAChanged           = AuditAction("eta_changed")
	AuditActionConfirmationAttached = AuditAction("confirmation_attached")
	AuditActionDeleted              = AuditAction("deleted")
)

// OrderAuditEntry records a change made to an order and by whom.
// Entries are append-only and never updated.
type OrderAuditEntry struct {
	shared.BaseEntity
	OrderID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	Action     AuditAction `gorm:"type:varchar(40);not null"`
	ActorEmail string      `gorm:"type:varchar(255);not null"`
	ActorRole  string      `gorm:"type:varchar(20);not null"`
	Detail     string      `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OrderAuditEntry) TableName() string {
	return "order_audit"
}

// NewOrderAuditEntry creates an audit entry for an order change
func NewOrderAuditEntry(orderID uuid.UUID, action AuditAction, actorEmail, actorRole, detail string) (*OrderAuditEntry, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	if actorEmail == "" {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Actor email cannot be empty")
	}

	return &OrderAuditEntry{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    orderID,
		Action:     action,
		ActorEmail: actorEmail,
		ActorRole:  actorRole,
		Detail:     detail,
	}, nil
}
