package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/parser"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func row(file, cost string) parser.Row {
	return parser.Row{FileName: file, Cost: dec(cost)}
}

func TestBuild(t *testing.T) {
	t.Run("matching file is OK", func(t *testing.T) {
		recs := Build(
			[]FileTotal{{FileName: "a.pdf", Extracted: decPtr("30.00")}},
			[]parser.Row{row("a.pdf", "10.00"), row("a.pdf", "20.00")},
			DefaultTolerance,
		)
		require.Len(t, recs, 1)
		assert.Equal(t, VerdictOK, recs[0].Verdict)
		assert.True(t, recs[0].CostSum.Equal(dec("30.00")))
		require.NotNil(t, recs[0].Diff)
		assert.True(t, recs[0].Diff.IsZero())
	})

	t.Run("difference at tolerance flags CHECK", func(t *testing.T) {
		recs := Build(
			[]FileTotal{{FileName: "a.pdf", Extracted: decPtr("30.01")}},
			[]parser.Row{row("a.pdf", "30.00")},
			DefaultTolerance,
		)
		require.Len(t, recs, 1)
		// The boundary is exclusive: |diff| must be strictly below tolerance.
		assert.Equal(t, VerdictCheck, recs[0].Verdict)
		require.NotNil(t, recs[0].Diff)
		assert.True(t, recs[0].Diff.Equal(dec("-0.01")))
	})

	t.Run("missing reported total is CHECK with nil diff", func(t *testing.T) {
		recs := Build(
			[]FileTotal{{FileName: "a.pdf"}},
			[]parser.Row{row("a.pdf", "30.00")},
			DefaultTolerance,
		)
		require.Len(t, recs, 1)
		assert.Equal(t, VerdictCheck, recs[0].Verdict)
		assert.Nil(t, recs[0].Diff)
		assert.True(t, recs[0].CostSum.Equal(dec("30.00")))
	})

	t.Run("file with no rows sums to zero", func(t *testing.T) {
		recs := Build(
			[]FileTotal{{FileName: "empty.pdf", Extracted: decPtr("5.00")}},
			nil,
			DefaultTolerance,
		)
		require.Len(t, recs, 1)
		assert.True(t, recs[0].CostSum.IsZero())
		assert.Equal(t, VerdictCheck, recs[0].Verdict)
	})

	t.Run("wider tolerance accepts larger differences", func(t *testing.T) {
		recs := Build(
			[]FileTotal{{FileName: "a.pdf", Extracted: decPtr("30.40")}},
			[]parser.Row{row("a.pdf", "30.00")},
			dec("0.50"),
		)
		require.Len(t, recs, 1)
		assert.Equal(t, VerdictOK, recs[0].Verdict)
	})

	t.Run("non-positive tolerance falls back to the default", func(t *testing.T) {
		recs := Build(
			[]FileTotal{{FileName: "a.pdf", Extracted: decPtr("30.00")}},
			[]parser.Row{row("a.pdf", "30.00")},
			decimal.Zero,
		)
		require.Len(t, recs, 1)
		assert.Equal(t, VerdictOK, recs[0].Verdict)
	})

	t.Run("preserves input order across files", func(t *testing.T) {
		recs := Build(
			[]FileTotal{
				{FileName: "b.pdf", Extracted: decPtr("20.00")},
				{FileName: "a.pdf", Extracted: decPtr("10.00")},
			},
			[]parser.Row{row("a.pdf", "10.00"), row("b.pdf", "20.00")},
			DefaultTolerance,
		)
		require.Len(t, recs, 2)
		assert.Equal(t, "b.pdf", recs[0].FileName)
		assert.Equal(t, "a.pdf", recs[1].FileName)
		assert.Equal(t, VerdictOK, recs[0].Verdict)
		assert.Equal(t, VerdictOK, recs[1].Verdict)
	})
}
