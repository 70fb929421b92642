package catalog

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("P-100", "Skruer 4x40", "eske")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "P-100", product.Number)
		assert.Equal(t, "Skruer 4x40", product.Name)
		assert.Equal(t, "eske", product.Unit)
		assert.True(t, product.Price.IsZero())
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("upper-cases the product number", func(t *testing.T) {
		product, err := NewProduct("p-100", "Skruer", "stk")
		require.NoError(t, err)
		assert.Equal(t, "P-100", product.Number)
	})

	t.Run("defaults unit to stk", func(t *testing.T) {
		product, err := NewProduct("P-101", "Muttere", "")
		require.NoError(t, err)
		assert.Equal(t, "stk", product.Unit)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("P-102", "Bolter", "stk")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())
	})

	t.Run("fails with empty number", func(t *testing.T) {
		_, err := NewProduct("", "Skruer", "stk")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with number too long", func(t *testing.T) {
		_, err := NewProduct(strings.Repeat("A", 51), "Skruer", "stk")
		require.Error(t, err)
	})

	t.Run("fails with invalid number characters", func(t *testing.T) {
		_, err := NewProduct("P 100", "Skruer", "stk")
		require.Error(t, err)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("P-100", "", "stk")
		require.Error(t, err)
	})

	t.Run("fails with name too long", func(t *testing.T) {
		_, err := NewProduct("P-100", strings.Repeat("a", 201), "stk")
		require.Error(t, err)
	})
}

func TestProductUpdate(t *testing.T) {
	t.Run("updates name and description", func(t *testing.T) {
		product, err := NewProduct("P-100", "Skruer", "stk")
		require.NoError(t, err)

		require.NoError(t, product.Update("Treskruer 4x40", "For innendørs bruk"))
		assert.Equal(t, "Treskruer 4x40", product.Name)
		assert.Equal(t, "For innendørs bruk", product.Description)
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		product, err := NewProduct("P-100", "Skruer", "stk")
		require.NoError(t, err)
		require.Error(t, product.Update("", ""))
	})
}

func TestProductSetPrice(t *testing.T) {
	product, err := NewProduct("P-100", "Skruer", "stk")
	require.NoError(t, err)

	require.NoError(t, product.SetPrice(decimal.NewFromFloat(12.50)))
	assert.True(t, product.Price.Equal(decimal.NewFromFloat(12.50)))

	err = product.SetPrice(decimal.NewFromInt(-1))
	require.Error(t, err)
}

func TestProductStatus(t *testing.T) {
	product, err := NewProduct("P-100", "Skruer", "stk")
	require.NoError(t, err)
	require.True(t, product.IsActive())

	t.Run("cannot activate an active product", func(t *testing.T) {
		require.Error(t, product.Activate())
	})

	t.Run("deactivate and reactivate", func(t *testing.T) {
		require.NoError(t, product.Deactivate())
		assert.False(t, product.IsActive())

		require.Error(t, product.Deactivate())

		require.NoError(t, product.Activate())
		assert.True(t, product.IsActive())
	})
}
