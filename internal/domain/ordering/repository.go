package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
)

// OrderRepository defines the persistence contract for orders
type OrderRepository interface {
	shared.Repository[Order]
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByCustomer(ctx context.Context, email string, filter shared.Filter) (*shared.Paginated[Order], error)
	ExistsByOrderNumber(ctx context.Context, orderNumber string) (bool, error)
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// OrderMessageRepository defines the persistence contract for chat messages
type OrderMessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderMessage, error)
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderMessage, error)
	Save(ctx context.Context, message *OrderMessage) error
}

// OrderAuditRepository defines the persistence contract for audit entries
type OrderAuditRepository interface {
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]OrderAuditEntry, error)
	Save(ctx context.Context, entry *OrderAuditEntry) error
}
