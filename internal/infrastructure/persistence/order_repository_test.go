package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/orderflow/backend/internal/domain/ordering"
	"github.com/orderflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderingTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&ordering.Order{},
		&ordering.OrderItem{},
		&ordering.OrderMessage{},
		&ordering.OrderAuditEntry{},
	))
	return db
}

func mustCreateOrder(t *testing.T, repo *GormOrderRepository, orderNumber, email string) *ordering.Order {
	t.Helper()
	order, err := ordering.NewOrder(orderNumber, email, "Kari Nordmann")
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "P-100", "Skruer", decimal.NewFromInt(2), decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), order))
	return order
}

func TestGormOrderRepositorySaveAndFind(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := mustCreateOrder(t, repo, "ORD-20260801-0001", "kari@example.no")

	t.Run("loads the order with its items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "ORD-20260801-0001", found.OrderNumber)
		require.Len(t, found.Items, 1)
		assert.Equal(t, "P-100", found.Items[0].ProductNumber)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(20)))
	})

	t.Run("finds by order number", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, "ORD-20260801-0001")
		require.NoError(t, err)
		assert.Equal(t, order.ID, found.ID)
	})

	t.Run("not found maps to the domain error", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = repo.FindByOrderNumber(ctx, "ORD-19990101-0000")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("persists status changes", func(t *testing.T) {
		loaded, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.NoError(t, loaded.ChangeStatus(ordering.OrderStatusConfirmed))
		require.NoError(t, repo.Save(ctx, loaded))

		found, err := repo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, ordering.OrderStatusConfirmed, found.Status)
	})
}

func TestGormOrderRepositoryGenerateOrderNumber(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()
	prefix := fmt.Sprintf("ORD-%s-", time.Now().Format("20060102"))

	t.Run("starts the day at 0001", func(t *testing.T) {
		number, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefix+"0001", number)
	})

	t.Run("numbers sequentially within the day", func(t *testing.T) {
		mustCreateOrder(t, repo, prefix+"0001", "kari@example.no")
		number, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefix+"0002", number)

		mustCreateOrder(t, repo, number, "kari@example.no")
		number, err = repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefix+"0003", number)
	})

	t.Run("ignores other days", func(t *testing.T) {
		mustCreateOrder(t, repo, "ORD-19990101-9999", "kari@example.no")
		number, err := repo.GenerateOrderNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, prefix+"0003", number)
	})

	t.Run("reports taken numbers", func(t *testing.T) {
		taken, err := repo.ExistsByOrderNumber(ctx, prefix+"0001")
		require.NoError(t, err)
		assert.True(t, taken)

		free, err := repo.ExistsByOrderNumber(ctx, prefix+"9999")
		require.NoError(t, err)
		assert.False(t, free)
	})
}

func TestGormOrderRepositoryFindByCustomer(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	mustCreateOrder(t, repo, "ORD-20260801-0001", "kari@example.no")
	mustCreateOrder(t, repo, "ORD-20260801-0002", "kari@example.no")
	mustCreateOrder(t, repo, "ORD-20260801-0003", "ola@example.no")

	t.Run("returns only the customer's orders", func(t *testing.T) {
		page, err := repo.FindByCustomer(ctx, "kari@example.no", shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Items, 2)
		for _, o := range page.Items {
			assert.Equal(t, "kari@example.no", o.CustomerEmail)
			assert.NotEmpty(t, o.Items)
		}
	})

	t.Run("paginates", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.PageSize = 1
		page, err := repo.FindByCustomer(ctx, "kari@example.no", filter)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Total)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, 2, page.TotalPages)
	})

	t.Run("filters by status", func(t *testing.T) {
		filter := shared.DefaultFilter()
		filter.Filters["status"] = "new"
		page, err := repo.FindByCustomer(ctx, "ola@example.no", filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})
}

func TestGormOrderRepositoryFindAllAndCount(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	first := mustCreateOrder(t, repo, "ORD-20260801-0001", "kari@example.no")
	mustCreateOrder(t, repo, "ORD-20260801-0002", "ola@example.no")

	require.NoError(t, first.ChangeStatus(ordering.OrderStatusConfirmed))
	require.NoError(t, repo.Save(ctx, first))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = "confirmed"

	orders, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-20260801-0001", orders[0].OrderNumber)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormOrderRepositoryDelete(t *testing.T) {
	db := setupOrderingTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := mustCreateOrder(t, repo, "ORD-20260801-0001", "kari@example.no")

	require.NoError(t, repo.Delete(ctx, order.ID))
	_, err := repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	// Items are removed together with the order
	var itemCount int64
	require.NoError(t, db.Model(&ordering.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	assert.ErrorIs(t, repo.Delete(ctx, order.ID), shared.ErrNotFound)
}
