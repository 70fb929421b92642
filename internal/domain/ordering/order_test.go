package ordering

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("ORD-20260801-0001", "kari@example.no", "Kari Nordmann")
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("creates order with valid inputs", func(t *testing.T) {
		order := newTestOrder(t)

		assert.Equal(t, "ORD-20260801-0001", order.OrderNumber)
		assert.Equal(t, "kari@example.no", order.CustomerEmail)
		assert.Equal(t, "Kari Nordmann", order.CustomerName)
		assert.Equal(t, OrderStatusNew, order.Status)
		assert.True(t, order.TotalAmount.IsZero())
		assert.Empty(t, order.Items)
		assert.NotEmpty(t, order.ID)
	})

	t.Run("publishes OrderPlaced event", func(t *testing.T) {
		order := newTestOrder(t)
		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderPlaced, events[0].EventType())
	})

	t.Run("fails with empty order number", func(t *testing.T) {
		_, err := NewOrder("", "kari@example.no", "Kari")
		require.Error(t, err)
	})

	t.Run("fails with empty customer email", func(t *testing.T) {
		_, err := NewOrder("ORD-20260801-0002", "", "Kari")
		require.Error(t, err)
	})
}

func TestOrderAddItem(t *testing.T) {
	productID := uuid.New()

	t.Run("adds item and recalculates total", func(t *testing.T) {
		order := newTestOrder(t)

		item, err := order.AddItem(productID, "P-100", "Skruer 4x40", decimal.NewFromInt(3), decimal.NewFromFloat(12.50))
		require.NoError(t, err)

		assert.True(t, item.LineTotal.Equal(decimal.NewFromFloat(37.50)))
		assert.Len(t, order.Items, 1)
		assert.True(t, order.TotalAmount.Equal(decimal.NewFromFloat(37.50)))
	})

	t.Run("sums totals across items", func(t *testing.T) {
		order := newTestOrder(t)

		_, err := order.AddItem(uuid.New(), "P-100", "Skruer", decimal.NewFromInt(2), decimal.NewFromInt(10))
		require.NoError(t, err)
		_, err = order.AddItem(uuid.New(), "P-200", "Muttere", decimal.NewFromInt(5), decimal.NewFromInt(4))
		require.NoError(t, err)

		assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(40)))
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		order := newTestOrder(t)

		_, err := order.AddItem(productID, "P-100", "Skruer", decimal.NewFromInt(1), decimal.NewFromInt(10))
		require.NoError(t, err)

		_, err = order.AddItem(productID, "P-100", "Skruer", decimal.NewFromInt(2), decimal.NewFromInt(10))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(productID, "P-100", "Skruer", decimal.Zero, decimal.NewFromInt(10))
		require.Error(t, err)
	})

	t.Run("rejects items after status change", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusConfirmed))

		_, err := order.AddItem(productID, "P-100", "Skruer", decimal.NewFromInt(1), decimal.NewFromInt(10))
		require.Error(t, err)
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	t.Run("follows the full lifecycle", func(t *testing.T) {
		order := newTestOrder(t)

		for _, target := range []OrderStatus{
			OrderStatusConfirmed, OrderStatusOrdered, OrderStatusShipped, OrderStatusDelivered,
		} {
			require.NoError(t, order.ChangeStatus(target))
			assert.Equal(t, target, order.Status)
		}

		require.NotNil(t, order.DeliveredAt)
	})

	t.Run("rejects skipping states", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.ChangeStatus(OrderStatusShipped)
		require.Error(t, err)
	})

	t.Run("rejects moving backwards", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusConfirmed))
		err := order.ChangeStatus(OrderStatusNew)
		require.Error(t, err)
	})

	t.Run("allows cancel from any open state", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusConfirmed))
		require.NoError(t, order.ChangeStatus(OrderStatusOrdered))

		require.NoError(t, order.ChangeStatus(OrderStatusCancelled))
		assert.Equal(t, OrderStatusCancelled, order.Status)
		require.NotNil(t, order.CancelledAt)
	})

	t.Run("rejects cancel after delivery", func(t *testing.T) {
		order := newTestOrder(t)
		for _, target := range []OrderStatus{
			OrderStatusConfirmed, OrderStatusOrdered, OrderStatusShipped, OrderStatusDelivered,
		} {
			require.NoError(t, order.ChangeStatus(target))
		}

		err := order.ChangeStatus(OrderStatusCancelled)
		require.Error(t, err)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.ChangeStatus(OrderStatus("bogus"))
		require.Error(t, err)
	})

	t.Run("publishes status changed event", func(t *testing.T) {
		order := newTestOrder(t)
		order.ClearDomainEvents()

		require.NoError(t, order.ChangeStatus(OrderStatusConfirmed))

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeOrderStatusChanged, events[0].EventType())
	})
}

func TestOrderSetETA(t *testing.T) {
	t.Run("sets and clears the ETA", func(t *testing.T) {
		order := newTestOrder(t)

		eta := time.Now().Add(72 * time.Hour)
		require.NoError(t, order.SetETA(&eta))
		require.NotNil(t, order.ETA)

		require.NoError(t, order.SetETA(nil))
		assert.Nil(t, order.ETA)
	})

	t.Run("rejects ETA on cancelled order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled))

		eta := time.Now()
		err := order.SetETA(&eta)
		require.Error(t, err)
	})
}

func TestOrderAttachConfirmation(t *testing.T) {
	t.Run("attaches a confirmation document", func(t *testing.T) {
		order := newTestOrder(t)
		require.False(t, order.HasConfirmation())

		require.NoError(t, order.AttachConfirmation("orders/abc/confirmation.pdf", "confirmation.pdf"))

		assert.True(t, order.HasConfirmation())
		assert.Equal(t, "confirmation.pdf", order.ConfirmationFileName)
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		order := newTestOrder(t)
		err := order.AttachConfirmation("", "confirmation.pdf")
		require.Error(t, err)
	})

	t.Run("rejects attaching on closed order", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.ChangeStatus(OrderStatusCancelled))

		err := order.AttachConfirmation("orders/abc/confirmation.pdf", "confirmation.pdf")
		require.Error(t, err)
	})
}

func TestOrderIsOwnedBy(t *testing.T) {
	order := newTestOrder(t)
	assert.True(t, order.IsOwnedBy("kari@example.no"))
	assert.False(t, order.IsOwnedBy("ola@example.no"))
}
