package ordering

import (
	"github.com/orderflow/backend/internal/domain/shared"
)

// Event types for the ordering domain
const (
	EventTypeOrderPlaced        = "ordering.order.placed"
	EventTypeOrderStatusChanged = "ordering.order.status_changed"
	EventTypeMessagePosted      = "ordering.message.posted"
)

// OrderPlacedEvent is emitted when a customer places an order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderNumber   string `json:"order_number"`
	CustomerEmail string `json:"customer_email"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		CustomerEmail:   o.CustomerEmail,
	}
}

// OrderStatusChangedEvent is emitted when an order changes status
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	FromStatus  string `json:"from_status"`
	ToStatus    string `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from, to OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, "Order", o.ID),
		OrderNumber:     o.OrderNumber,
		FromStatus:      from.String(),
		ToStatus:        to.String(),
	}
}

// MessagePostedEvent is emitted when a chat message is posted on an order
type MessagePostedEvent struct {
	shared.BaseDomainEvent
	OrderID     string `json:"order_id"`
	AuthorEmail string `json:"author_email"`
}

// NewMessagePostedEvent creates a new MessagePostedEvent
func NewMessagePostedEvent(m *OrderMessage) *MessagePostedEvent {
	return &MessagePostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessagePosted, "OrderMessage", m.ID),
		OrderID:         m.OrderID.String(),
		AuthorEmail:     m.AuthorEmail,
	}
}
