package identity

import (
	"strings"
	"time"

	"github.com/orderflow/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the access level of an account
type Role string

const (
	RoleKunde     Role = "kunde"
	RoleInnkjoper Role = "innkjøper"
	RoleAdmin     Role = "admin"
)

// IsValid checks if the role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleKunde, RoleInnkjoper, RoleAdmin:
		return true
	default:
		return false
	}
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// CanManageOrders returns true for roles allowed to process any order
func (r Role) CanManageOrders() bool {
	return r == RoleInnkjoper || r == RoleAdmin
}

// AllowedEmail is an account on the access allowlist.
// Only emails present here can sign in; the role decides what they see.
type AllowedEmail struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'kunde'"`
	DisplayName  string `gorm:"type:varchar(200);not null"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (AllowedEmail) TableName() string {
	return "allowed_emails"
}

// NewAllowedEmail creates a new allowlist entry with a hashed password
func NewAllowedEmail(email string, role Role, displayName, password string) (*AllowedEmail, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be kunde, innkjøper or admin")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot be empty")
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	return &AllowedEmail{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Role:              role,
		DisplayName:       displayName,
		PasswordHash:      hash,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (a *AllowedEmail) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored password hash
func (a *AllowedEmail) ChangePassword(password string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	a.PasswordHash = hash
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// ChangeRole updates the account role
func (a *AllowedEmail) ChangeRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be kunde, innkjøper or admin")
	}
	a.Role = role
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// Rename updates the display name
func (a *AllowedEmail) Rename(displayName string) error {
	if displayName == "" {
		return shared.NewDomainError("INVALID_DISPLAY_NAME", "Display name cannot be empty")
	}
	a.DisplayName = displayName
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// RecordLogin stamps the last successful login time
func (a *AllowedEmail) RecordLogin() {
	now := time.Now()
	a.LastLoginAt = &now
}

// NormalizeEmail lower-cases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 255 characters")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	if len(password) < 8 {
		return "", shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}
	return string(hash), nil
}
