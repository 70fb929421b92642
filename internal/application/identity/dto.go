package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/identity"
)

// LoginRequest is the input for signing in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest is the input for refreshing an access token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the input for changing the caller's password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// AccountInfo describes the signed-in account
type AccountInfo struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	DisplayName string     `json:"display_name"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResult is the output of a successful login
type LoginResult struct {
	AccessToken           string      `json:"access_token"`
	RefreshToken          string      `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time   `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time   `json:"refresh_token_expires_at"`
	TokenType             string      `json:"token_type"`
	Account               AccountInfo `json:"account"`
}

// RefreshResult is the output of a token refresh
type RefreshResult struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// CreateAccountRequest is the input for adding an email to the allowlist
type CreateAccountRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Role        string `json:"role" binding:"required"`
	DisplayName string `json:"display_name" binding:"required,max=200"`
	Password    string `json:"password" binding:"required,min=8"`
}

// UpdateAccountRequest is the input for updating an allowlist entry.
// Nil fields are left unchanged.
type UpdateAccountRequest struct {
	Role        *string `json:"role"`
	DisplayName *string `json:"display_name" binding:"omitempty,max=200"`
	Password    *string `json:"password" binding:"omitempty,min=8"`
}

// AccountListFilter holds query parameters for listing allowlist entries
type AccountListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Role     string `form:"role"`
	Search   string `form:"search"`
}

// AccountResponse is the API representation of an allowlist entry
type AccountResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	DisplayName string     `json:"display_name"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToAccountResponse converts an allowlist entry to its API representation
func ToAccountResponse(a *identity.AllowedEmail) AccountResponse {
	return AccountResponse{
		ID:          a.ID,
		Email:       a.Email,
		Role:        string(a.Role),
		DisplayName: a.DisplayName,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ToAccountResponses converts a slice of allowlist entries
func ToAccountResponses(accounts []identity.AllowedEmail) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}
