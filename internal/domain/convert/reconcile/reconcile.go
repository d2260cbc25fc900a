// Package reconcile compares summed line-item costs against the totals
// reported on the invoices themselves.
package reconcile

import (
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/parser"
	"github.com/FACorreiaa/invoice-reconciler/pkg/money"
)

// Verdicts attached to each reconciled file. CHECK means the file needs a
// human look: either the difference exceeded the tolerance or no reported
// total was found to compare against.
const (
	VerdictOK    = "OK"
	VerdictCheck = "CHECK"
)

// DefaultTolerance is the maximum absolute difference still considered a
// match when no explicit tolerance is configured.
var DefaultTolerance = decimal.RequireFromString("0.01")

// FileTotal is the reported total extracted from one document. Extracted is
// nil when the document carried no recognizable total line or failed to
// process at all.
type FileTotal struct {
	FileName  string
	Extracted *decimal.Decimal
}

// Record is the reconciliation outcome for one file. Diff is nil when there
// was no reported total to compare against.
type Record struct {
	FileName  string
	Extracted *decimal.Decimal
	CostSum   decimal.Decimal
	Diff      *decimal.Decimal
	Verdict   string
}

// Build produces one Record per input file, in input order. Row costs are
// summed per file in integer cents; files with no rows sum to zero rather
// than being omitted.
func Build(totals []FileTotal, rows []parser.Row, tolerance decimal.Decimal) []Record {
	if tolerance.Sign() <= 0 {
		tolerance = DefaultTolerance
	}

	sums := make(map[string]*money.Amount, len(totals))
	for _, r := range rows {
		sums[r.FileName] = sums[r.FileName].Add(money.FromDecimal(r.Cost))
	}

	records := make([]Record, 0, len(totals))
	for _, ft := range totals {
		rec := Record{
			FileName: ft.FileName,
			CostSum:  sums[ft.FileName].ToDecimal(),
			Verdict:  VerdictCheck,
		}
		if ft.Extracted != nil {
			ext := *ft.Extracted
			rec.Extracted = &ext
			diff := rec.CostSum.Sub(ext)
			rec.Diff = &diff
			if diff.Abs().LessThan(tolerance) {
				rec.Verdict = VerdictOK
			}
		}
		records = append(records, rec)
	}
	return records
}
