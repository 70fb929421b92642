package ordering

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusOrdered   OrderStatus = "ordered"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew, OrderStatusConfirmed, OrderStatusOrdered,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for states that accept no further transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if target == OrderStatusCancelled {
		return !s.IsTerminal()
	}
	switch s {
	case OrderStatusNew:
		return target == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return target == OrderStatusOrdered
	case OrderStatusOrdered:
		return target == OrderStatusShipped
	case OrderStatusShipped:
		return target == OrderStatusDelivered
	}
	return false
}

// OrderItem represents a line item in an order.
// Product data is snapshotted so later catalog edits never alter placed orders.
type OrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductNumber string          `gorm:"type:varchar(50);not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order item from a product snapshot
func NewOrderItem(orderID, productID uuid.UUID, productNumber, productName string, quantity, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	return &OrderItem{
		ID:            uuid.New(),
		OrderID:       orderID,
		ProductID:     productID,
		ProductNumber: productNumber,
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		LineTotal:     quantity.Mul(unitPrice),
		CreatedAt:     time.Now(),
	}, nil
}

// Order represents a customer order aggregate root.
// It manages the order lifecycle from placement to delivery.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerEmail        string          `gorm:"type:varchar(255);not null;index"`
	CustomerName         string          `gorm:"type:varchar(200);not null"`
	Items                []OrderItem     `gorm:"foreignKey:OrderID"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status               OrderStatus     `gorm:"type:varchar(20);not null;default:'new'"`
	ETA                  *time.Time
	ConfirmationKey      string `gorm:"type:varchar(512)"`
	ConfirmationFileName string `gorm:"type:varchar(255)"`
	Note                 string `gorm:"type:text"`
	DeliveredAt          *time.Time
	CancelledAt          *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order for a customer
func NewOrder(orderNumber, customerEmail, customerName string) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerEmail == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer email cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerEmail:     customerEmail,
		CustomerName:      customerName,
		Items:             make([]OrderItem, 0),
		TotalAmount:       decimal.Zero,
		Status:            OrderStatusNew,
	}

	order.AddDomainEvent(NewOrderPlacedEvent(order))

	return order, nil
}

// AddItem adds a line item to the order. Only allowed before any status change.
func (o *Order) AddItem(productID uuid.UUID, productNumber, productName string, quantity, unitPrice decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusNew {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items once the order is being processed")
	}

	for i := range o.Items {
		if o.Items[i].ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := NewOrderItem(o.ID, productID, productNumber, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// ChangeStatus moves the order along the status machine
func (o *Order) ChangeStatus(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot change status from %s to %s", o.Status, target))
	}

	from := o.Status
	o.Status = target
	now := time.Now()
	switch target {
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// SetETA sets or clears the expected delivery date
func (o *Order) SetETA(eta *time.Time) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot set ETA on a closed order")
	}

	o.ETA = eta
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// AttachConfirmation registers an order confirmation document
func (o *Order) AttachConfirmation(storageKey, fileName string) error {
	if storageKey == "" {
		return shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Cannot attach documents to a closed order")
	}

	o.ConfirmationKey = storageKey
	o.ConfirmationFileName = fileName
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// HasConfirmation returns true if a confirmation document is attached
func (o *Order) HasConfirmation() bool {
	return o.ConfirmationKey != ""
}

// IsOwnedBy returns true if the order belongs to the given customer email
func (o *Order) IsOwnedBy(email string) bool {
	return o.CustomerEmail == email
}

// recalculateTotal recomputes the order total from its items
func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].LineTotal)
	}
	o.TotalAmount = total
}
