package handler

import (
	"github.com/gin-gonic/gin"
	orderingapp "github.com/orderflow/backend/internal/application/ordering"
	"github.com/orderflow/backend/internal/interfaces/http/middleware"
)

// CartHandler handles the caller's shopping cart
type CartHandler struct {
	BaseHandler
	cartService *orderingapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *orderingapp.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// Get returns the caller's cart enriched with current product data
func (h *CartHandler) Get(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// SetItem adds a product to the cart or updates its quantity
func (h *CartHandler) SetItem(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	var req orderingapp.CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.cartService.SetItem(c.Request.Context(), email, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	cart, err := h.cartService.Get(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, cart)
}

// RemoveItem removes a product from the cart
func (h *CartHandler) RemoveItem(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	productID, ok := parseIDParam(c, "productId")
	if !ok {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.RemoveItem(c.Request.Context(), email, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(c *gin.Context) {
	email := middleware.GetJWTEmail(c)
	if email == "" {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), email); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
