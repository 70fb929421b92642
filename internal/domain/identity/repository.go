package identity

import (
	"context"

	"github.com/orderflow/backend/internal/domain/shared"
)

// AllowedEmailRepository defines the persistence contract for the allowlist
type AllowedEmailRepository interface {
	shared.Repository[AllowedEmail]
	FindByEmail(ctx context.Context, email string) (*AllowedEmail, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
