package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/identity"
	"github.com/orderflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormAllowedEmailRepository implements AllowedEmailRepository using GORM
type GormAllowedEmailRepository struct {
	db *gorm.DB
}

// NewGormAllowedEmailRepository creates a new GormAllowedEmailRepository
func NewGormAllowedEmailRepository(db *gorm.DB) *GormAllowedEmailRepository {
	return &GormAllowedEmailRepository{db: db}
}

// FindByID finds an allowlist entry by its ID
func (r *GormAllowedEmailRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.AllowedEmail, error) {
	var entry identity.AllowedEmail
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByEmail finds an allowlist entry by email
func (r *GormAllowedEmailRepository) FindByEmail(ctx context.Context, email string) (*identity.AllowedEmail, error) {
	var entry identity.AllowedEmail
	if err := r.db.WithContext(ctx).
		Where("email = ?", identity.NormalizeEmail(email)).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindAll finds all allowlist entries matching the filter
func (r *GormAllowedEmailRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.AllowedEmail, error) {
	var entries []identity.AllowedEmail
	query := r.applyFilter(r.db.WithContext(ctx).Model(&identity.AllowedEmail{}), filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Save creates or updates an allowlist entry
func (r *GormAllowedEmailRepository) Save(ctx context.Context, entry *identity.AllowedEmail) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete deletes an allowlist entry
func (r *GormAllowedEmailRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&identity.AllowedEmail{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts allowlist entries matching the filter
func (r *GormAllowedEmailRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&identity.AllowedEmail{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByEmail checks if an email is on the allowlist
func (r *GormAllowedEmailRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.AllowedEmail{}).
		Where("email = ?", identity.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormAllowedEmailRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("email ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormAllowedEmailRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR display_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "role":
			query = query.Where("role = ?", value)
		}
	}

	return query
}

// Ensure GormAllowedEmailRepository implements AllowedEmailRepository
var _ identity.AllowedEmailRepository = (*GormAllowedEmailRepository)(nil)
