package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Invoice totals appear in one of two footer formats. The primary form is
// "Total (USD): $1,234.56"; some documents use a "TOTAL AMOUNT $1,234.56"
// line instead.
var (
	totalUSDRE    = regexp.MustCompile(`(?i)Total\s*\(\s*USD\s*\)\s*:\s*([$]?\s*[\d,]+(?:\.\d+)?)`)
	totalAmountRE = regexp.MustCompile(`(?i)TOTAL\s+AMOUNT\s*[$]?\s*([\d,]+(?:\.\d+)?)`)
)

var totalCleaner = strings.NewReplacer("$", "", " ", "", ",", "")

// ExtractTotal finds the reported invoice total in the document's full text.
// The primary footer form is tried first, then the alternate form. Returns
// false when no total line is present or the captured amount fails to parse.
func ExtractTotal(fullText string) (decimal.Decimal, bool) {
	if fullText == "" {
		return decimal.Decimal{}, false
	}

	m := totalUSDRE.FindStringSubmatch(fullText)
	if m == nil {
		m = totalAmountRE.FindStringSubmatch(fullText)
	}
	if m == nil {
		return decimal.Decimal{}, false
	}

	v, err := decimal.NewFromString(totalCleaner.Replace(m[1]))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}
