package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/identity"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIdentityTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&identity.AllowedEmail{}))
	return db
}

func mustCreateAccount(t *testing.T, repo *GormAllowedEmailRepository, email string, role identity.Role) *identity.AllowedEmail {
	t.Helper()
	account, err := identity.NewAllowedEmail(email, role, "Testbruker", "hemmelig-passord")
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), account))
	return account
}

func TestGormAllowedEmailRepository(t *testing.T) {
	db := setupIdentityTestDB(t)
	repo := NewGormAllowedEmailRepository(db)
	ctx := context.Background()

	kari := mustCreateAccount(t, repo, "kari@example.no", identity.RoleKunde)
	mustCreateAccount(t, repo, "per@example.no", identity.RoleInnkjoper)
	mustCreateAccount(t, repo, "admin@example.no", identity.RoleAdmin)

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, kari.ID)
		require.NoError(t, err)
		assert.Equal(t, "kari@example.no", found.Email)
	})

	t.Run("find by email normalizes the input", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "  KARI@Example.NO ")
		require.NoError(t, err)
		assert.Equal(t, kari.ID, found.ID)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := repo.ExistsByEmail(ctx, "KARI@example.no")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByEmail(ctx, "ukjent@example.no")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("lists sorted by email with role filter", func(t *testing.T) {
		unsorted := shared.DefaultFilter()
		unsorted.OrderBy = ""
		entries, err := repo.FindAll(ctx, unsorted)
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "admin@example.no", entries[0].Email)

		filter := shared.DefaultFilter()
		filter.Filters["role"] = "kunde"
		entries, err = repo.FindAll(ctx, filter)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "kari@example.no", entries[0].Email)

		count, err := repo.Count(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("save persists changes", func(t *testing.T) {
		require.NoError(t, kari.ChangeRole(identity.RoleInnkjoper))
		require.NoError(t, repo.Save(ctx, kari))

		found, err := repo.FindByID(ctx, kari.ID)
		require.NoError(t, err)
		assert.Equal(t, identity.RoleInnkjoper, found.Role)
	})

	t.Run("deletes", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, kari.ID))
		_, err := repo.FindByID(ctx, kari.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, kari.ID), shared.ErrNotFound)
	})

	t.Run("unknown ids map to the domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByEmail(ctx, "ukjent@example.no")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
