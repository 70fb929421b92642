package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderAuditRepository(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderAuditRepository(db)
	ctx := context.Background()

	orderID := uuid.New()

	placed, err := ordering.NewOrderAuditEntry(orderID, ordering.AuditActionPlaced, "kari@example.no", "kunde", "order placed")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, placed))

	confirmed, err := ordering.NewOrderAuditEntry(orderID, ordering.AuditActionStatusChanged, "per@example.no", "innkjøper", "status changed from new to confirmed")
	require.NoError(t, err)
	confirmed.CreatedAt = placed.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, confirmed))

	t.Run("lists entries newest first", func(t *testing.T) {
		entries, err := repo.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, ordering.AuditActionStatusChanged, entries[0].Action)
		assert.Equal(t, ordering.AuditActionPlaced, entries[1].Action)
	})

	t.Run("other orders have no entries", func(t *testing.T) {
		entries, err := repo.FindByOrder(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
