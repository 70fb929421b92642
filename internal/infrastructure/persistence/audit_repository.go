package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"gorm.io/gorm"
)

// GormOrderAuditRepository implements OrderAuditRepository using GORM
type GormOrderAuditRepository struct {
	db *gorm.DB
}

// NewGormOrderAuditRepository creates a new GormOrderAuditRepository
func NewGormOrderAuditRepository(db *gorm.DB) *GormOrderAuditRepository {
	return &GormOrderAuditRepository{db: db}
}

// FindByOrder finds all audit entries for an order, newest first
func (r *GormOrderAuditRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.OrderAuditEntry, error) {
	var entries []ordering.OrderAuditEntry
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save appends an audit entry
func (r *GormOrderAuditRepository) Save(ctx context.Context, entry *ordering.OrderAuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Ensure GormOrderAuditRepository implements OrderAuditRepository
var _ ordering.OrderAuditRepository = (*GormOrderAuditRepository)(nil)
