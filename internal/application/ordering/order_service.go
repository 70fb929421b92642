package ordering

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/identity"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/orderflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Actor identifies who is performing an order operation
type Actor struct {
	Email       string
	DisplayName string
	Role        identity.Role
}

// CanManageOrders reports whether the actor may process any order
func (a Actor) CanManageOrders() bool {
	return a.Role.CanManageOrders()
}

// OrderService handles order lifecycle operations
type OrderService struct {
	orderRepo   ordering.OrderRepository
	auditRepo   ordering.OrderAuditRepository
	productRepo catalog.ProductRepository
	cartStore   CartStore
	logger      *zap.Logger
}

// OrderServiceOption is a functional option for configuring OrderService
type OrderServiceOption func(*OrderService)

// WithOrderLogger sets the logger
func WithOrderLogger(logger *zap.Logger) OrderServiceOption {
	return func(s *OrderService) {
		s.logger = logger
	}
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo ordering.OrderRepository,
	auditRepo ordering.OrderAuditRepository,
	productRepo catalog.ProductRepository,
	cartStore CartStore,
	opts ...OrderServiceOption,
) *OrderService {
	service := &OrderService{
		orderRepo:   orderRepo,
		auditRepo:   auditRepo,
		productRepo: productRepo,
		cartStore:   cartStore,
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(service)
	}

	return service
}

// Place creates a new order from explicit lines or from the actor's cart
func (s *OrderService) Place(ctx context.Context, actor Actor, req PlaceOrderRequest) (*OrderResponse, error) {
	lines := req.Lines
	if req.FromCart {
		cartLines, err := s.linesFromCart(ctx, actor.Email)
		if err != nil {
			return nil, err
		}
		lines = cartLines
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_ORDER", "Order must contain at least one line")
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order number: %w", err)
	}

	order, err := ordering.NewOrder(orderNumber, actor.Email, actor.DisplayName)
	if err != nil {
		return nil, err
	}
	order.Note = req.Note

	for _, line := range lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
					fmt.Sprintf("Product %s not found", line.ProductID))
			}
			return nil, err
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE",
				fmt.Sprintf("Product %s is not orderable", product.Number))
		}

		if _, err := order.AddItem(product.ID, product.Number, product.Name, line.Quantity, product.Price); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.audit(ctx, order.ID, ordering.AuditActionPlaced, actor, fmt.Sprintf("order %s placed", order.OrderNumber))

	if req.FromCart && s.cartStore != nil {
		if err := s.cartStore.Clear(ctx, actor.Email); err != nil {
			s.logger.Warn("Failed to clear cart after placing order",
				zap.String("customer_email", actor.Email),
				zap.Error(err))
		}
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// Get retrieves a single order, enforcing ownership for customers
func (s *OrderService) Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.findVisible(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders. Customers see only their own; purchasers and
// admins see everything.
func (s *OrderService) List(ctx context.Context, actor Actor, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	if !actor.CanManageOrders() {
		page, err := s.orderRepo.FindByCustomer(ctx, actor.Email, domainFilter)
		if err != nil {
			return nil, 0, err
		}
		return ToOrderResponses(page.Items), page.Total, nil
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), count, nil
}

// ChangeStatus moves an order along its lifecycle. Purchaser or admin only.
func (s *OrderService) ChangeStatus(ctx context.Context, actor Actor, orderID uuid.UUID, req ChangeStatusRequest) (*OrderResponse, error) {
	if !actor.CanManageOrders() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.ChangeStatus(ordering.OrderStatus(req.Status)); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.audit(ctx, order.ID, ordering.AuditActionStatusChanged, actor,
		fmt.Sprintf("status changed from %s to %s", from, order.Status))

	response := ToOrderResponse(order)
	return &response, nil
}

// SetETA sets or clears the expected delivery date. Purchaser or admin only.
func (s *OrderService) SetETA(ctx context.Context, actor Actor, orderID uuid.UUID, req SetETARequest) (*OrderResponse, error) {
	if !actor.CanManageOrders() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.SetETA(req.ETA); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	detail := "eta cleared"
	if req.ETA != nil {
		detail = "eta set to " + req.ETA.Format("2006-01-02")
	}
	s.audit(ctx, order.ID, ordering.AuditActionETAChanged, actor, detail)

	response := ToOrderResponse(order)
	return &response, nil
}

// AttachConfirmation registers an order confirmation document. Purchaser or admin only.
func (s *OrderService) AttachConfirmation(ctx context.Context, actor Actor, orderID uuid.UUID, req AttachConfirmationRequest) (*OrderResponse, error) {
	if !actor.CanManageOrders() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.AttachConfirmation(req.StorageKey, req.FileName); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.audit(ctx, order.ID, ordering.AuditActionConfirmationAttached, actor, "confirmation document attached")

	response := ToOrderResponse(order)
	return &response, nil
}

// ConfirmationKey returns the confirmation document storage key for an order.
// Customers may only read their own orders.
func (s *OrderService) ConfirmationKey(ctx context.Context, actor Actor, orderID uuid.UUID) (string, error) {
	order, err := s.findVisible(ctx, actor, orderID)
	if err != nil {
		return "", err
	}
	if !order.HasConfirmation() {
		return "", shared.NewDomainError("NO_CONFIRMATION", "Order has no confirmation document")
	}
	return order.ConfirmationKey, nil
}

// Delete removes an order entirely. Admin only.
func (s *OrderService) Delete(ctx context.Context, actor Actor, orderID uuid.UUID) error {
	if actor.Role != identity.RoleAdmin {
		return shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return err
	}

	s.audit(ctx, orderID, ordering.AuditActionDeleted, actor,
		fmt.Sprintf("order %s deleted", order.OrderNumber))

	return nil
}

// AuditTrail returns the audit entries for an order. Purchaser or admin only.
func (s *OrderService) AuditTrail(ctx context.Context, actor Actor, orderID uuid.UUID) ([]AuditEntryResponse, error) {
	if !actor.CanManageOrders() {
		return nil, shared.ErrForbidden
	}

	if _, err := s.orderRepo.FindByID(ctx, orderID); err != nil {
		return nil, err
	}

	entries, err := s.auditRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToAuditEntryResponses(entries), nil
}

// findVisible loads an order and checks the actor may see it
func (s *OrderService) findVisible(ctx context.Context, actor Actor, orderID uuid.UUID) (*ordering.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageOrders() && !order.IsOwnedBy(actor.Email) {
		// Hide other customers' orders entirely
		return nil, shared.ErrNotFound
	}
	return order, nil
}

// linesFromCart converts the actor's cart into order lines
func (s *OrderService) linesFromCart(ctx context.Context, email string) ([]OrderLineRequest, error) {
	if s.cartStore == nil {
		return nil, shared.NewDomainError("CART_UNAVAILABLE", "Cart storage is not configured")
	}

	items, err := s.cartStore.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	lines := make([]OrderLineRequest, 0, len(items))
	for productID, quantity := range items {
		id, err := uuid.Parse(productID)
		if err != nil {
			continue
		}
		lines = append(lines, OrderLineRequest{ProductID: id, Quantity: quantity})
	}
	return lines, nil
}

// audit appends an audit entry; failures are logged, never surfaced
func (s *OrderService) audit(ctx context.Context, orderID uuid.UUID, action ordering.AuditAction, actor Actor, detail string) {
	entry, err := ordering.NewOrderAuditEntry(orderID, action, actor.Email, actor.Role.String(), detail)
	if err != nil {
		s.logger.Error("Failed to build audit entry", zap.Error(err))
		return
	}
	if err := s.auditRepo.Save(ctx, entry); err != nil {
		s.logger.Error("Failed to write audit entry",
			zap.String("order_id", orderID.String()),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}
