package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/identity"
	"github.com/orderflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AllowlistService manages the email allowlist. Admin only; the HTTP
// layer enforces the role gate.
type AllowlistService struct {
	accountRepo identity.AllowedEmailRepository
	logger      *zap.Logger
}

// NewAllowlistService creates a new allowlist service
func NewAllowlistService(accountRepo identity.AllowedEmailRepository, logger *zap.Logger) *AllowlistService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AllowlistService{
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// Create adds an email to the allowlist
func (s *AllowlistService) Create(ctx context.Context, req CreateAccountRequest) (*AccountResponse, error) {
	email := identity.NormalizeEmail(req.Email)

	exists, err := s.accountRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_EXISTS", "Email is already on the allowlist")
	}

	account, err := identity.NewAllowedEmail(email, identity.Role(req.Role), req.DisplayName, req.Password)
	if err != nil {
		return nil, err
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Allowlist entry created",
		zap.String("email", account.Email),
		zap.String("role", string(account.Role)))

	response := ToAccountResponse(account)
	return &response, nil
}

// Get retrieves a single allowlist entry
func (s *AllowlistService) Get(ctx context.Context, id uuid.UUID) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToAccountResponse(account)
	return &response, nil
}

// List retrieves allowlist entries with pagination
func (s *AllowlistService) List(ctx context.Context, filter AccountListFilter) ([]AccountResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search
	if filter.Role != "" {
		domainFilter.Filters["role"] = filter.Role
	}

	accounts, err := s.accountRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.accountRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToAccountResponses(accounts), count, nil
}

// Update modifies an allowlist entry. Nil fields are left unchanged.
func (s *AllowlistService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (*AccountResponse, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if err := account.ChangeRole(identity.Role(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.DisplayName != nil {
		if err := account.Rename(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Password != nil {
		if err := account.ChangePassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Allowlist entry updated", zap.String("email", account.Email))

	response := ToAccountResponse(account)
	return &response, nil
}

// Delete removes an email from the allowlist. Existing access tokens
// keep working until they expire; refresh is denied afterwards.
func (s *AllowlistService) Delete(ctx context.Context, id uuid.UUID) error {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Allowlist entry removed", zap.String("email", account.Email))
	return nil
}
