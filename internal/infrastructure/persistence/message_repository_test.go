package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormOrderMessageRepository(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderMessageRepository(db)
	ctx := context.Background()

	orderID := uuid.New()

	first, err := ordering.NewOrderMessage(orderID, "kari@example.no", "Kari", "kunde", "Når kommer varene?")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, first))

	second, err := ordering.NewOrderMessage(orderID, "per@example.no", "Per", "innkjøper", "I neste uke.")
	require.NoError(t, err)
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, repo.Save(ctx, second))

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Når kommer varene?", found.Body)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("lists a thread in chronological order", func(t *testing.T) {
		messages, err := repo.FindByOrder(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "kari@example.no", messages[0].AuthorEmail)
		assert.Equal(t, "per@example.no", messages[1].AuthorEmail)
	})

	t.Run("other orders have empty threads", func(t *testing.T) {
		messages, err := repo.FindByOrder(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, messages)
	})
}
