package migration

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add product tables")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14)
	assert.Equal(t, "Add product tables", mf.Name)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_product_tables.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_product_tables.down.sql"))

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "-- Migration: Add product tables")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "(rollback)")
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Add product tables", "add_product_tables"},
		{"add-order-status", "add_order_status"},
		{"  spaced  out  ", "spaced_out"},
		{"MiXeD123", "mixed123"},
		{"trailing_", "trailing"},
		{"æøå!?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing directory yields an empty list", func(t *testing.T) {
		migrations, err := ListMigrations(dir + "/does-not-exist")
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("lists only up migrations", func(t *testing.T) {
		first, err := CreateMigration(dir, "first")
		require.NoError(t, err)

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		require.Len(t, migrations, 1)
		assert.Equal(t, first.Version+"_first", migrations[0])
	})
}
