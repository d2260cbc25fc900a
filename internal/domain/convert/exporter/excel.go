// Package exporter renders batch results as spreadsheet workbooks and CSV
// files for users who do not go through the Sheets importer.
package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/invoice-reconciler/internal/domain/convert/service"
)

// Builtin number formats: 1 is integer, 4 is "#,##0.00", 49 is text.
const (
	numFmtInt   = 1
	numFmtMoney = 4
	numFmtText  = 49
)

const maxColWidth = 60

// WriteWorkbook renders the three output tables as one workbook with a sheet
// per table. Close the returned file when done.
func WriteWorkbook(res *service.BatchResult) (*excelize.File, error) {
	out := service.BuildOutput(res)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "COGS")
	if _, err := f.NewSheet("InvoiceTotals"); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	if _, err := f.NewSheet("Log"); err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}

	sheets := []struct {
		name  string
		table service.Table
		// styles maps column index to a builtin number format, text
		// columns omitted.
		styles map[int]int
	}{
		{"COGS", out.COGS, map[int]int{
			1: numFmtInt, 2: numFmtInt, 3: numFmtInt, 4: numFmtMoney,
		}},
		{"InvoiceTotals", out.InvoiceTotals, map[int]int{
			1: numFmtMoney, 2: numFmtMoney, 3: numFmtMoney,
		}},
		{"Log", out.Log, map[int]int{
			1: numFmtInt, 2: numFmtInt,
		}},
	}

	for _, sheet := range sheets {
		if err := writeSheet(f, sheet.name, sheet.table, sheet.styles); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing sheet %s: %w", sheet.name, err)
		}
	}
	return f, nil
}

// SaveWorkbook renders the workbook and writes it to path.
func SaveWorkbook(res *service.BatchResult, path string) error {
	f, err := WriteWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, table service.Table, styles map[int]int) error {
	header := make([]any, len(table.Columns))
	for i, c := range table.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return err
		}
	}

	if len(table.Rows) > 0 {
		for col, fmtID := range styles {
			if err := styleColumn(f, name, col, fmtID, len(table.Rows)); err != nil {
				return err
			}
		}
	}
	return autosizeColumns(f, name, table)
}

func styleColumn(f *excelize.File, sheet string, col, fmtID, nRows int) error {
	style, err := f.NewStyle(&excelize.Style{NumFmt: fmtID})
	if err != nil {
		return err
	}
	colName, err := excelize.ColumnNumberToName(col + 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet,
		fmt.Sprintf("%s2", colName),
		fmt.Sprintf("%s%d", colName, nRows+1),
		style)
}

func autosizeColumns(f *excelize.File, sheet string, table service.Table) error {
	for i, col := range table.Columns {
		width := len(col)
		for _, row := range table.Rows {
			if i < len(row) {
				if w := len(fmt.Sprint(row[i])); w > width {
					width = w
				}
			}
		}
		if width+2 < maxColWidth {
			width += 2
		} else {
			width = maxColWidth
		}

		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, float64(width)); err != nil {
			return err
		}
	}
	return nil
}
