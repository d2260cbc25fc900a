package parser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTotal(t *testing.T) {
	t.Run("primary footer form", func(t *testing.T) {
		v, ok := ExtractTotal("line items\nTotal (USD): $1,234.56\nthanks")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("1234.56")))
	})

	t.Run("case and spacing variations", func(t *testing.T) {
		v, ok := ExtractTotal("total(usd):49.99")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("49.99")))

		v, ok = ExtractTotal("TOTAL ( USD ) : $ 120")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.NewFromInt(120)))
	})

	t.Run("alternate footer form", func(t *testing.T) {
		v, ok := ExtractTotal("TOTAL AMOUNT $2,500.00")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("2500.00")))
	})

	t.Run("primary form preferred over alternate", func(t *testing.T) {
		v, ok := ExtractTotal("TOTAL AMOUNT $99.00\nTotal (USD): $1.00")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("1.00")))
	})

	t.Run("no footer", func(t *testing.T) {
		_, ok := ExtractTotal("just some text")
		assert.False(t, ok)

		_, ok = ExtractTotal("")
		assert.False(t, ok)
	})

	t.Run("alternate form ignores case", func(t *testing.T) {
		v, ok := ExtractTotal("total amount $5.00")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("5.00")))

		v, ok = ExtractTotal("Total Amount 2,500.00")
		require.True(t, ok)
		assert.True(t, v.Equal(decimal.RequireFromString("2500.00")))
	})
}
