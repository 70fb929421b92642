package ordering

import (
	"strings"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/shared"
)

// MaxMessageLength is the maximum length of a chat message body
const MaxMessageLength = 4000

// OrderMessage is a chat message on an order thread
type OrderMessage struct {
	shared.BaseEntity
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorEmail string    `gorm:"type:varchar(255);not null"`
	AuthorName  string    `gorm:"type:varchar(200);not null"`
	AuthorRole  string    `gorm:"type:varchar(20);not null"`
	Body        string    `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (OrderMessage) TableName() string {
	return "order_messages"
}

// NewOrderMessage creates a chat message on an order
func NewOrderMessage(orderID uuid.UUID, authorEmail, authorName, authorRole, body string) (*OrderMessage, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_ID", "Order ID cannot be empty")
	}
	if authorEmail == "" {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author email cannot be empty")
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message body cannot be empty")
	}
	if len(body) > MaxMessageLength {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message body is too long")
	}

	return &OrderMessage{
		BaseEntity:  shared.NewBaseEntity(),
		OrderID:     orderID,
		AuthorEmail: authorEmail,
		AuthorName:  authorName,
		AuthorRole:  authorRole,
		Body:        body,
	}, nil
}
