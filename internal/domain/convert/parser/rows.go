package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/invoice-reconciler/pkg/money"
)

// rowWindowCap bounds how far a row's token window may extend past its start
// when no next row start is found earlier.
const rowWindowCap = 320

// totalMarkerPrefix marks the beginning of the summary/footer region. Rows
// never appear past it, so extraction stops there.
const totalMarkerPrefix = "total(usd"

// serialEpoch is the spreadsheet date epoch. Day serials are counted from it,
// so 1900-01-01 is serial 2 (the epoch deliberately absorbs the historical
// leap-year bug of the 1900 date system).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Row is one extracted invoice line item.
type Row struct {
	FileName    string
	DateSerial  int
	OrderNumber int
	OrderRef    string
	// Quantity is nil when no plausible quantity token precedes the
	// country anchor inside the row window.
	Quantity *int
	Cost     decimal.Decimal
	// CostComma is Cost rendered with a decimal comma for locales that
	// expect it in the exported workbook.
	CostComma string
}

// ExtractRows walks the token stream and emits one Row per recognized line
// item. A row begins at an order-ref/transaction/date triplet; its window
// extends to the next row start or rowWindowCap tokens, whichever comes
// first. Within the window the first country token anchors the search: the
// quantity is the nearest plausible count scanning backward from the anchor,
// and the cost is the last plausible price scanning forward from it. Rows
// without a cost are dropped. The cursor always advances to the window end,
// so nothing inside a consumed window is revisited.
func ExtractRows(tokens []string, fileName string) []Row {
	tokens = truncateAtTotalMarker(tokens)

	var rows []Row
	i := 0
	for i < len(tokens) {
		if !rowStartAt(tokens, i) {
			i++
			continue
		}

		orderRef := Clean(tokens[i])
		orderNum, _ := strconv.Atoi(Clean(tokens[i+1]))
		serial, dateOK := dateSerial(Clean(tokens[i+2]))

		rowEnd := len(tokens)
		if i+rowWindowCap < rowEnd {
			rowEnd = i + rowWindowCap
		}
		for j := i + 3; j < rowEnd; j++ {
			if rowStartAt(tokens, j) {
				rowEnd = j
				break
			}
		}

		if countryPos, countryEnd, ok := firstCountry(tokens, i+3, rowEnd); ok && dateOK {
			qty := quantityBefore(tokens, i, countryPos)
			if cost := lastPriceAfter(tokens, countryEnd+1, rowEnd); cost != nil {
				rows = append(rows, Row{
					FileName:    fileName,
					DateSerial:  serial,
					OrderNumber: orderNum,
					OrderRef:    orderRef,
					Quantity:    qty,
					Cost:        *cost,
					CostComma:   money.CommaText(*cost),
				})
			}
		}

		i = rowEnd
	}
	return rows
}

// truncateAtTotalMarker cuts the token stream at the first token whose
// cleaned lowercase form starts the summary marker.
func truncateAtTotalMarker(tokens []string) []string {
	for i, tok := range tokens {
		if strings.HasPrefix(strings.ToLower(Clean(tok)), totalMarkerPrefix) {
			return tokens[:i]
		}
	}
	return tokens
}

// firstCountry returns the position and end index of the first country
// anchor starting in [from, to). A two-token anchor may end exactly at the
// window edge, which leaves the forward price scan empty.
func firstCountry(tokens []string, from, to int) (int, int, bool) {
	for j := from; j < to; j++ {
		if end, ok := countryAt(tokens, j); ok {
			return j, end, true
		}
	}
	return 0, 0, false
}

// quantityBefore scans backward from just before the country anchor toward
// the row start (exclusive) and returns the nearest plausible quantity, or
// nil if none is found.
func quantityBefore(tokens []string, rowStart, countryPos int) *int {
	for j := countryPos - 1; j > rowStart; j-- {
		if v, ok := bareQuantity(tokens[j]); ok {
			return &v
		}
	}
	return nil
}

// lastPriceAfter scans [from, to) and returns the last token that looks like
// a price, or nil if none does. The last match wins because per-unit prices
// precede the extended line cost in reading order.
func lastPriceAfter(tokens []string, from, to int) *decimal.Decimal {
	var found *decimal.Decimal
	for j := from; j < to; j++ {
		t := Clean(tokens[j])
		if !looksLikePrice(t) {
			continue
		}
		if v, err := decimal.NewFromString(t); err == nil {
			found = &v
		}
	}
	return found
}

// dateSerial parses a yyyy/m/d date and converts it to a day serial counted
// from serialEpoch.
func dateSerial(s string) (int, bool) {
	t, err := time.Parse("2006/1/2", s)
	if err != nil {
		return 0, false
	}
	return int(t.Sub(serialEpoch).Hours() / 24), true
}
