package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDecimal(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		d := decimal.RequireFromString("49.99")
		assert.Equal(t, int64(4999), FromDecimal(d).Cents())
	})

	t.Run("handles sub-cent noise", func(t *testing.T) {
		d := decimal.RequireFromString("10.005")
		assert.Equal(t, int64(1001), FromDecimal(d).Cents())
	})

	t.Run("round trips through decimal", func(t *testing.T) {
		d := decimal.RequireFromString("1234.56")
		assert.True(t, FromDecimal(d).ToDecimal().Equal(d))
	})
}

func TestAmountArithmetic(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		sum := New(1050).Add(New(250))
		assert.Equal(t, int64(1300), sum.Cents())
	})

	t.Run("add treats nil as zero", func(t *testing.T) {
		var a *Amount
		sum := a.Add(New(500))
		require.NotNil(t, sum)
		assert.Equal(t, int64(500), sum.Cents())
	})

	t.Run("sub and abs", func(t *testing.T) {
		diff := New(100).Sub(New(350))
		assert.Equal(t, int64(-250), diff.Cents())
		assert.Equal(t, int64(250), diff.Abs().Cents())
	})

	t.Run("less than", func(t *testing.T) {
		assert.True(t, New(1).LessThan(New(2)))
		assert.False(t, New(2).LessThan(New(1)))
	})

	t.Run("nil amount is zero", func(t *testing.T) {
		var a *Amount
		assert.True(t, a.IsZero())
		assert.Equal(t, int64(0), a.Cents())
		assert.True(t, a.ToDecimal().IsZero())
	})
}

func TestCommaText(t *testing.T) {
	assert.Equal(t, "49,99", CommaText(decimal.RequireFromString("49.99")))
	assert.Equal(t, "1234,50", CommaText(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "7,00", New(700).CommaText())
}
