package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "canada", Clean(" (canada), "))
	assert.Equal(t, "49.99", Clean("[49.99]"))
	assert.Equal(t, "1234567890", Clean("1234567890:"))
	assert.Equal(t, "", Clean("  []  "))
	// Interior punctuation survives, only the framing goes.
	assert.Equal(t, "a(b)c", Clean("(a(b)c)"))
}

func TestRowStartAt(t *testing.T) {
	tokens := strings.Fields("noise 1234567890 4321 2024/1/15 widget")

	t.Run("detects triplet", func(t *testing.T) {
		assert.True(t, rowStartAt(tokens, 1))
	})

	t.Run("rejects offsets", func(t *testing.T) {
		assert.False(t, rowStartAt(tokens, 0))
		assert.False(t, rowStartAt(tokens, 2))
	})

	t.Run("rejects truncated tail", func(t *testing.T) {
		assert.False(t, rowStartAt(tokens[:3], 1))
	})

	t.Run("order ref with suffix", func(t *testing.T) {
		withSuffix := strings.Fields("1234567890_2 4321 2024/1/15")
		assert.True(t, rowStartAt(withSuffix, 0))
	})

	t.Run("short order ref is not a row", func(t *testing.T) {
		short := strings.Fields("123456789 4321 2024/1/15")
		assert.False(t, rowStartAt(short, 0))
	})
}

func TestCountryAt(t *testing.T) {
	t.Run("single token", func(t *testing.T) {
		tokens := []string{"shipped", "Canada,", "express"}
		end, ok := countryAt(tokens, 1)
		assert.True(t, ok)
		assert.Equal(t, 1, end)
	})

	t.Run("united states spans two tokens", func(t *testing.T) {
		tokens := []string{"United", "States", "express"}
		end, ok := countryAt(tokens, 0)
		assert.True(t, ok)
		assert.Equal(t, 1, end)
	})

	t.Run("united alone is not a country", func(t *testing.T) {
		tokens := []string{"United", "Airlines"}
		_, ok := countryAt(tokens, 0)
		assert.False(t, ok)
	})

	t.Run("substring is not a country", func(t *testing.T) {
		_, ok := countryAt([]string{"ukulele"}, 0)
		assert.False(t, ok)
		_, ok = countryAt([]string{"chinaware"}, 0)
		assert.False(t, ok)
	})
}

func TestLooksLikePrice(t *testing.T) {
	cases := []struct {
		tok  string
		want bool
	}{
		{"49.99", true},
		{"0.50", true},
		{"10", true},
		{"100000", true},
		{"(250.00)", true},
		{"9", false},         // small bare integer
		{"0.00", false},      // non-positive
		{"100000.01", false}, // above ceiling
		{"4321", false},      // transaction shaped
		{"1234567890", false},
		{"1234567890_2", false},
		{"49.999", false}, // three fraction digits
		{"12,50", false},
		{"abc", false},
		{"", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, looksLikePrice(c.tok), "token %q", c.tok)
	}
}

func TestBareQuantity(t *testing.T) {
	v, ok := bareQuantity("(3)")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = bareQuantity("0")
	assert.False(t, ok)

	_, ok = bareQuantity("1000")
	assert.False(t, ok)

	v, ok = bareQuantity("999")
	assert.True(t, ok)
	assert.Equal(t, 999, v)

	_, ok = bareQuantity("3.0")
	assert.False(t, ok)

	_, ok = bareQuantity("-3")
	assert.False(t, ok)
}
