// Package money provides currency-safe arithmetic for invoice amounts using
// integer cents and the Fowler Money pattern. Amounts are always USD; the
// invoices this service reads report in dollars.
package money

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a USD monetary value stored in minor units (cents).
// It wraps go-money for safe arithmetic and shopspring/decimal for precision.
type Amount struct {
	m *money.Money
}

// New creates an Amount from integer cents.
func New(cents int64) *Amount {
	return &Amount{m: money.New(cents, money.USD)}
}

// FromDecimal creates an Amount from a decimal dollar value, rounding to the
// nearest cent.
func FromDecimal(d decimal.Decimal) *Amount {
	return New(d.Shift(2).Round(0).IntPart())
}

// Zero returns a zero Amount.
func Zero() *Amount {
	return New(0)
}

// Cents returns the amount in minor units.
func (a *Amount) Cents() int64 {
	if a == nil || a.m == nil {
		return 0
	}
	return a.m.Amount()
}

// IsZero returns true if the amount is zero.
func (a *Amount) IsZero() bool {
	return a == nil || a.m == nil || a.m.IsZero()
}

// Add returns the sum of two amounts. A nil operand counts as zero.
func (a *Amount) Add(other *Amount) *Amount {
	if a == nil || a.m == nil {
		return other
	}
	if other == nil || other.m == nil {
		return a
	}
	sum, err := a.m.Add(other.m)
	if err != nil {
		// Both operands are USD by construction.
		panic(err)
	}
	return &Amount{m: sum}
}

// Sub returns a minus other. A nil operand counts as zero.
func (a *Amount) Sub(other *Amount) *Amount {
	if other == nil || other.m == nil {
		return a
	}
	if a == nil || a.m == nil {
		return &Amount{m: other.m.Negative()}
	}
	diff, err := a.m.Subtract(other.m)
	if err != nil {
		panic(err)
	}
	return &Amount{m: diff}
}

// Abs returns the absolute value.
func (a *Amount) Abs() *Amount {
	if a == nil || a.m == nil {
		return Zero()
	}
	return &Amount{m: a.m.Absolute()}
}

// LessThan returns true if a < other.
func (a *Amount) LessThan(other *Amount) bool {
	if other == nil || other.m == nil {
		return a != nil && a.m != nil && a.m.IsNegative()
	}
	if a == nil || a.m == nil {
		return other.m.IsPositive()
	}
	lt, _ := a.m.LessThan(other.m)
	return lt
}

// ToDecimal converts to a decimal dollar value.
func (a *Amount) ToDecimal() decimal.Decimal {
	return decimal.New(a.Cents(), -2)
}

// String returns the amount as a decimal string (e.g. "1234.56").
func (a *Amount) String() string {
	return a.ToDecimal().StringFixed(2)
}

// CommaText renders the amount with a comma decimal separator ("49,99"),
// the form downstream spreadsheets expect in the Cost_NL column.
func (a *Amount) CommaText() string {
	return CommaText(a.ToDecimal())
}

// CommaText renders a decimal with two fraction digits and a comma decimal
// separator, without thousands grouping.
func CommaText(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",")
}
