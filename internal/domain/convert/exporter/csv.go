package exporter

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/service"
)

// cogsCSVRow mirrors the COGS table columns.
type cogsCSVRow struct {
	FileName   string `csv:"File Name"`
	DateSerial int    `csv:"DateSerial"`
	OrderNum   int    `csv:"Order #"`
	Qty        *int   `csv:"Qty"`
	Cost       string `csv:"Cost"`
	CostNL     string `csv:"Cost_NL"`
}

// totalsCSVRow mirrors the InvoiceTotals table columns.
type totalsCSVRow struct {
	FileName  string `csv:"File Name"`
	Extracted string `csv:"Total_USD_Extracted"`
	CogsSum   string `csv:"COGS_Sum"`
	Diff      string `csv:"Diff"`
	Match     string `csv:"Match"`
}

// logCSVRow mirrors the Log table columns.
type logCSVRow struct {
	File   string `csv:"File"`
	Tokens *int   `csv:"Tokens"`
	Rows   *int   `csv:"Rows"`
	Status string `csv:"Status"`
	Error  string `csv:"Error"`
}

// WriteCOGSCSV writes the line-item table as CSV.
func WriteCOGSCSV(res *service.BatchResult, w io.Writer) error {
	rows := make([]cogsCSVRow, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, cogsCSVRow{
			FileName:   r.FileName,
			DateSerial: r.DateSerial,
			OrderNum:   r.OrderNumber,
			Qty:        r.Quantity,
			Cost:       r.Cost.StringFixed(2),
			CostNL:     r.CostComma,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing cogs csv: %w", err)
	}
	return nil
}

// WriteTotalsCSV writes the reconciliation table as CSV. Missing totals and
// diffs render as empty cells.
func WriteTotalsCSV(res *service.BatchResult, w io.Writer) error {
	rows := make([]totalsCSVRow, 0, len(res.Totals))
	for _, rec := range res.Totals {
		row := totalsCSVRow{
			FileName: rec.FileName,
			CogsSum:  rec.CostSum.StringFixed(2),
			Match:    rec.Verdict,
		}
		if rec.Extracted != nil {
			row.Extracted = rec.Extracted.StringFixed(2)
		}
		if rec.Diff != nil {
			row.Diff = rec.Diff.StringFixed(2)
		}
		rows = append(rows, row)
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing totals csv: %w", err)
	}
	return nil
}

// WriteLogCSV writes the processing log as CSV.
func WriteLogCSV(res *service.BatchResult, w io.Writer) error {
	rows := make([]logCSVRow, 0, len(res.Log))
	for _, lr := range res.Log {
		rows = append(rows, logCSVRow{
			File:   lr.File,
			Tokens: lr.Tokens,
			Rows:   lr.Rows,
			Status: lr.Status,
			Error:  lr.Error,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return fmt.Errorf("writing log csv: %w", err)
	}
	return nil
}
