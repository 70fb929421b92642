package csvimport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFromBytes(t *testing.T) {
	t.Run("parses headers and rows", func(t *testing.T) {
		data := []byte("number,name,price\nP-100,Skruer,12.50\nP-200,Muttere,8\n")

		parser, err := ParseFromBytes(data)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.Equal(t, []string{"number", "name", "price"}, parser.Headers())
		assert.True(t, parser.HasHeader("price"))
		assert.False(t, parser.HasHeader("unit"))

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "P-100", rows[0].Get("number"))
		assert.Equal(t, "Muttere", rows[1].Get("name"))
		assert.Equal(t, 2, parser.TotalRows())
	})

	t.Run("strips the UTF-8 BOM", func(t *testing.T) {
		data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("number,name\nP-100,Skruer\n")...)

		parser, err := ParseFromBytes(data)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		assert.True(t, parser.HasHeader("number"))
	})

	t.Run("trims whitespace in headers and fields", func(t *testing.T) {
		data := []byte(" number , name \n P-100 ,\tSkruer \n")

		parser, err := ParseFromBytes(data)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "P-100", rows[0].Get("number"))
		assert.Equal(t, "Skruer", rows[0].Get("name"))
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseFromBytes([]byte{})
		assert.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := ParseFromBytes([]byte{0xFF, 0xFE, 0x00, 0x41})
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("multibyte rune straddling the validation window", func(t *testing.T) {
		header := []byte("number,name\nP-100,")
		padding := bytes.Repeat([]byte("a"), 4095-len(header))
		data := append(append(header, padding...), []byte("æøå\n")...)

		parser, err := ParseFromBytes(data)
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})

	t.Run("header only", func(t *testing.T) {
		parser, err := ParseFromBytes([]byte("number,name\n"))
		require.NoError(t, err)
		require.NoError(t, parser.ParseHeader())

		rows, err := parser.ReadAllRows()
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("missing header", func(t *testing.T) {
		parser, err := ParseFromBytes([]byte("\n"))
		require.NoError(t, err)
		assert.ErrorIs(t, parser.ParseHeader(), ErrMissingHeader)
	})
}

func TestParserWithSemicolonDelimiter(t *testing.T) {
	data := []byte("number;name;price\nP-100;Skruer;12,50\n")

	parser, err := ParseFromBytes(data, WithDelimiter(';'))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12,50", rows[0].Get("price"))
}

func TestValidateHeaders(t *testing.T) {
	parser, err := ParseFromBytes([]byte("number,price\nP-100,10\n"))
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	missing := parser.ValidateHeaders([]string{"number", "name", "price"})
	assert.Equal(t, []string{"name"}, missing)

	assert.Empty(t, parser.ValidateHeaders([]string{"number", "price"}))
}

func TestReadAllRowsSkipsEmptyRows(t *testing.T) {
	data := []byte("number,name\nP-100,Skruer\n,\n\nP-200,Muttere\n")

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P-200", rows[1].Get("number"))
}

func TestRowHelpers(t *testing.T) {
	row := &Row{
		LineNumber: 3,
		Data:       map[string]string{"number": "P-100", "unit": ""},
	}

	assert.Equal(t, "P-100", row.Get("number"))
	assert.Equal(t, "stk", row.GetOrDefault("unit", "stk"))
	assert.Equal(t, "P-100", row.GetOrDefault("number", "fallback"))
	assert.False(t, row.IsEmpty())
	assert.True(t, (&Row{Data: map[string]string{"a": ""}}).IsEmpty())
}

func TestRowsWithFewerFieldsThanHeaders(t *testing.T) {
	data := []byte("number,name,price\nP-100,Skruer\n")

	parser, err := ParseFromBytes(data)
	require.NoError(t, err)
	require.NoError(t, parser.ParseHeader())

	rows, err := parser.ReadAllRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Get("price"))
}
