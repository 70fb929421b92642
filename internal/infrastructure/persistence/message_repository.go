package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/orderflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderMessageRepository implements OrderMessageRepository using GORM
type GormOrderMessageRepository struct {
	db *gorm.DB
}

// NewGormOrderMessageRepository creates a new GormOrderMessageRepository
func NewGormOrderMessageRepository(db *gorm.DB) *GormOrderMessageRepository {
	return &GormOrderMessageRepository{db: db}
}

// FindByID finds a message by its ID
func (r *GormOrderMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.OrderMessage, error) {
	var message ordering.OrderMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &message, nil
}

// FindByOrder finds all messages on an order in chronological order
func (r *GormOrderMessageRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]ordering.OrderMessage, error) {
	var messages []ordering.OrderMessage
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Save creates or updates a message
func (r *GormOrderMessageRepository) Save(ctx context.Context, message *ordering.OrderMessage) error {
	return r.db.WithContext(ctx).Save(message).Error
}

// Ensure GormOrderMessageRepository implements OrderMessageRepository
var _ ordering.OrderMessageRepository = (*GormOrderMessageRepository)(nil)
