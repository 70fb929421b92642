package ordering

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/catalog"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CartStore keeps per-user carts. Implemented by the infrastructure layer (Redis).
type CartStore interface {
	Get(ctx context.Context, userEmail string) (map[string]decimal.Decimal, error)
	SetItem(ctx context.Context, userEmail, productID string, quantity decimal.Decimal) error
	RemoveItem(ctx context.Context, userEmail, productID string) error
	Clear(ctx context.Context, userEmail string) error
}

// CartService handles shopping cart operations
type CartService struct {
	cartStore   CartStore
	productRepo catalog.ProductRepository
}

// NewCartService creates a new CartService
func NewCartService(cartStore CartStore, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartStore:   cartStore,
		productRepo: productRepo,
	}
}

// Get returns the cart with current product data and a running total.
// Lines whose product no longer exists are dropped silently.
func (s *CartService) Get(ctx context.Context, userEmail string) (*CartResponse, error) {
	stored, err := s.cartStore.Get(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	response := &CartResponse{
		Items: make([]CartItemResponse, 0, len(stored)),
		Total: decimal.Zero,
	}

	for rawID, quantity := range stored {
		productID, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				_ = s.cartStore.RemoveItem(ctx, userEmail, rawID)
				continue
			}
			return nil, err
		}

		lineTotal := quantity.Mul(product.Price)
		response.Items = append(response.Items, CartItemResponse{
			ProductID:     product.ID,
			ProductNumber: product.Number,
			ProductName:   product.Name,
			Unit:          product.Unit,
			UnitPrice:     product.Price,
			Quantity:      quantity,
			LineTotal:     lineTotal,
		})
		response.Total = response.Total.Add(lineTotal)
	}

	return response, nil
}

// SetItem adds a product to the cart or updates its quantity
func (s *CartService) SetItem(ctx context.Context, userEmail string, req CartItemRequest) error {
	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return err
	}
	if !product.IsActive() {
		return shared.NewDomainError("PRODUCT_INACTIVE", "Product is not orderable")
	}

	return s.cartStore.SetItem(ctx, userEmail, req.ProductID.String(), req.Quantity)
}

// RemoveItem removes a product from the cart
func (s *CartService) RemoveItem(ctx context.Context, userEmail string, productID uuid.UUID) error {
	return s.cartStore.RemoveItem(ctx, userEmail, productID.String())
}

// Clear empties the cart
func (s *CartService) Clear(ctx context.Context, userEmail string) error {
	return s.cartStore.Clear(ctx, userEmail)
}
