package service

// Table is one tabular sheet of the conversion output, serialized the way
// the downstream spreadsheet importer expects it.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Output is the full conversion response body with its three tables.
type Output struct {
	Status        string `json:"status"`
	COGS          Table  `json:"COGS"`
	InvoiceTotals Table  `json:"InvoiceTotals"`
	Log           Table  `json:"Log"`
}

// BuildOutput assembles the response tables from a batch result.
func BuildOutput(res *BatchResult) Output {
	return Output{
		Status:        "success",
		COGS:          res.COGSTable(),
		InvoiceTotals: res.TotalsTable(),
		Log:           res.LogTable(),
	}
}

// COGSTable lists every extracted line item. Qty is null when no quantity
// was resolved.
func (r *BatchResult) COGSTable() Table {
	t := Table{
		Columns: []string{"File Name", "DateSerial", "Order #", "Qty", "Cost", "Cost_NL"},
		Rows:    make([][]any, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		var qty any
		if row.Quantity != nil {
			qty = *row.Quantity
		}
		t.Rows = append(t.Rows, []any{
			row.FileName,
			row.DateSerial,
			row.OrderNumber,
			qty,
			row.Cost.InexactFloat64(),
			row.CostComma,
		})
	}
	return t
}

// TotalsTable lists the per-file reconciliation records. Extracted and Diff
// are null for files without a recognizable reported total.
func (r *BatchResult) TotalsTable() Table {
	t := Table{
		Columns: []string{"File Name", "Total_USD_Extracted", "COGS_Sum", "Diff", "Match"},
		Rows:    make([][]any, 0, len(r.Totals)),
	}
	for _, rec := range r.Totals {
		var extracted, diff any
		if rec.Extracted != nil {
			extracted = rec.Extracted.InexactFloat64()
		}
		if rec.Diff != nil {
			diff = rec.Diff.InexactFloat64()
		}
		t.Rows = append(t.Rows, []any{
			rec.FileName,
			extracted,
			rec.CostSum.InexactFloat64(),
			diff,
			rec.Verdict,
		})
	}
	return t
}

// LogTable lists per-file processing outcomes. Token and row counts render
// as empty strings for files that failed before parsing.
func (r *BatchResult) LogTable() Table {
	t := Table{
		Columns: []string{"File", "Tokens", "Rows", "Status", "Error"},
		Rows:    make([][]any, 0, len(r.Log)),
	}
	for _, lr := range r.Log {
		var tokens, rows any = "", ""
		if lr.Tokens != nil {
			tokens = *lr.Tokens
		}
		if lr.Rows != nil {
			rows = *lr.Rows
		}
		t.Rows = append(t.Rows, []any{lr.File, tokens, rows, lr.Status, lr.Error})
	}
	return t
}
