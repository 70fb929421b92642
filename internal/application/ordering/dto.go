package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/shopspring/decimal"
)

// OrderLineRequest is one requested line in a new order
type OrderLineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// PlaceOrderRequest is the input for placing an order
type PlaceOrderRequest struct {
	Lines    []OrderLineRequest `json:"lines"`
	FromCart bool               `json:"from_cart"`
	Note     string             `json:"note" binding:"max=2000"`
}

// ChangeStatusRequest is the input for moving an order along its lifecycle
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetETARequest is the input for setting or clearing the expected delivery date
type SetETARequest struct {
	ETA *time.Time `json:"eta"`
}

// AttachConfirmationRequest registers an order confirmation document
type AttachConfirmationRequest struct {
	StorageKey string `json:"storage_key" binding:"required,max=512"`
	FileName   string `json:"file_name" binding:"required,max=255"`
}

// OrderListFilter holds query parameters for listing orders
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
}

// OrderItemResponse is the API representation of an order line
type OrderItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	ProductID     uuid.UUID       `json:"product_id"`
	ProductNumber string          `json:"product_number"`
	ProductName   string          `json:"product_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// OrderResponse is the API representation of an order
type OrderResponse struct {
	ID                   uuid.UUID           `json:"id"`
	OrderNumber          string              `json:"order_number"`
	CustomerEmail        string              `json:"customer_email"`
	CustomerName         string              `json:"customer_name"`
	Items                []OrderItemResponse `json:"items"`
	TotalAmount          decimal.Decimal     `json:"total_amount"`
	Status               string              `json:"status"`
	ETA                  *time.Time          `json:"eta,omitempty"`
	HasConfirmation      bool                `json:"has_confirmation"`
	ConfirmationFileName string              `json:"confirmation_file_name,omitempty"`
	Note                 string              `json:"note,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// ToOrderResponse converts an order to its API representation
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items[i] = OrderItemResponse{
			ID:            item.ID,
			ProductID:     item.ProductID,
			ProductNumber: item.ProductNumber,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			LineTotal:     item.LineTotal,
		}
	}

	return OrderResponse{
		ID:                   o.ID,
		OrderNumber:          o.OrderNumber,
		CustomerEmail:        o.CustomerEmail,
		CustomerName:         o.CustomerName,
		Items:                items,
		TotalAmount:          o.TotalAmount,
		Status:               string(o.Status),
		ETA:                  o.ETA,
		HasConfirmation:      o.HasConfirmation(),
		ConfirmationFileName: o.ConfirmationFileName,
		Note:                 o.Note,
		CreatedAt:            o.CreatedAt,
		UpdatedAt:            o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []ordering.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// AuditEntryResponse is the API representation of an audit entry
type AuditEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	OrderID    uuid.UUID `json:"order_id"`
	Action     string    `json:"action"`
	ActorEmail string    `json:"actor_email"`
	ActorRole  string    `json:"actor_role"`
	Detail     string    `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToAuditEntryResponses converts audit entries to their API representation
func ToAuditEntryResponses(entries []ordering.OrderAuditEntry) []AuditEntryResponse {
	responses := make([]AuditEntryResponse, len(entries))
	for i := range entries {
		e := &entries[i]
		responses[i] = AuditEntryResponse{
			ID:         e.ID,
			OrderID:    e.OrderID,
			Action:     string(e.Action),
			ActorEmail: e.ActorEmail,
			ActorRole:  e.ActorRole,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		}
	}
	return responses
}

// PostMessageRequest is the input for posting a chat message
type PostMessageRequest struct {
	Body string `json:"body" binding:"required,max=4000"`
}

// MessageResponse is the API representation of a chat message
type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	AuthorEmail string    `json:"author_email"`
	AuthorName  string    `json:"author_name"`
	AuthorRole  string    `json:"author_role"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMessageResponse converts a chat message to its API representation
func ToMessageResponse(m *ordering.OrderMessage) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		OrderID:     m.OrderID,
		AuthorEmail: m.AuthorEmail,
		AuthorName:  m.AuthorName,
		AuthorRole:  m.AuthorRole,
		Body:        m.Body,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMessageResponses converts a slice of chat messages
func ToMessageResponses(messages []ordering.OrderMessage) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses
}

// CartItemResponse is one line in a cart
type CartItemResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductNumber string          `json:"product_number"`
	ProductName   string          `json:"product_name"`
	Unit          string          `json:"unit"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      decimal.Decimal `json:"quantity"`
	LineTotal     decimal.Decimal `json:"line_total"`
}

// CartResponse is the API representation of a cart
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// CartItemRequest is the input for adding or updating a cart line
type CartItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}
