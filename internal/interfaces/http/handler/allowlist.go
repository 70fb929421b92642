package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/orderflow/backend/internal/application/identity"
)

// AllowlistHandler handles admin management of the email allowlist
type AllowlistHandler struct {
	BaseHandler
	allowlistService *identityapp.AllowlistService
}

// NewAllowlistHandler creates a new AllowlistHandler
func NewAllowlistHandler(allowlistService *identityapp.AllowlistService) *AllowlistHandler {
	return &AllowlistHandler{
		allowlistService: allowlistService,
	}
}

// Create adds an email to the allowlist
func (h *AllowlistHandler) Create(c *gin.Context) {
	var req identityapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.allowlistService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, account)
}

// List returns allowlist entries with pagination
func (h *AllowlistHandler) List(c *gin.Context) {
	var filter identityapp.AccountListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	accounts, total, err := h.allowlistService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, accounts, total, filter.Page, filter.PageSize)
}

// GetByID returns a single allowlist entry
func (h *AllowlistHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	account, err := h.allowlistService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// Update changes role, display name or password of an allowlist entry
func (h *AllowlistHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	var req identityapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	account, err := h.allowlistService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, account)
}

// Delete removes an email from the allowlist.
// The account loses access at its next token refresh.
func (h *AllowlistHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		h.BadRequest(c, "Invalid account ID")
		return
	}

	if err := h.allowlistService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
