package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"
)

// cleanCutset is the bracket/punctuation framing PDF text extraction tends to
// leave around tokens.
const cleanCutset = "[]{}(),;:"

var (
	dateRE      = regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`)
	txnRE       = regexp.MustCompile(`^\d{4}$`)
	orderLongRE = regexp.MustCompile(`^\d{10,}(?:_\d+)?$`)
	numRE       = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)
)

var (
	priceFloor = decimal.NewFromInt(10)
	priceCeil  = decimal.NewFromInt(100000)
)

// singleCountries is the closed-world set of single-token country names used
// as row anchors. "united states" is the one multi-word country recognized
// (special-cased in countryAt); other multi-word countries are a known gap.
var singleCountries = []string{
	"canada", "australia", "mexico", "china", "france", "germany",
	"italy", "spain", "japan", "singapore", "uae", "pakistan", "uk",
}

// countryMatcher matches the country dictionary in a single pass. Matcher
// hits are substring matches, so callers must check that a hit spans the
// whole token.
var countryMatcher = ahocorasick.NewStringMatcher(singleCountries)

// Clean strips surrounding whitespace and bracket/punctuation framing from a
// token. All classifier matching runs on cleaned tokens.
func Clean(tok string) string {
	return strings.Trim(strings.TrimSpace(tok), cleanCutset)
}

// rowStartAt reports whether the order/transaction/date triplet marking a
// line-item row starts at index i.
func rowStartAt(tokens []string, i int) bool {
	if i+2 >= len(tokens) {
		return false
	}
	return orderLongRE.MatchString(Clean(tokens[i])) &&
		txnRE.MatchString(Clean(tokens[i+1])) &&
		dateRE.MatchString(Clean(tokens[i+2]))
}

// countryAt reports whether a country anchor starts at index i and returns
// the end index of the match. "united states" spans two tokens and reports
// the position of "states" as the end.
func countryAt(tokens []string, i int) (int, bool) {
	t := strings.ToLower(Clean(tokens[i]))
	if t == "united" && i+1 < len(tokens) &&
		strings.ToLower(Clean(tokens[i+1])) == "states" {
		return i + 1, true
	}
	if isCountry(t) {
		return i, true
	}
	return 0, false
}

func isCountry(cleaned string) bool {
	for _, hit := range countryMatcher.Match([]byte(cleaned)) {
		// Contained and equal in length means equal.
		if len(singleCountries[hit]) == len(cleaned) {
			return true
		}
	}
	return false
}

// looksLikePrice reports whether a token is a plausible price: numeric with
// at most two fraction digits, not transaction- or order-id-shaped, and
// either fractional or an integer >= 10, within (0, 100000]. Small bare
// integers are excluded so quantities and counts are never misread as prices.
func looksLikePrice(tok string) bool {
	t := Clean(tok)
	if txnRE.MatchString(t) {
		return false
	}
	if !numRE.MatchString(t) {
		return false
	}
	if orderLongRE.MatchString(t) {
		return false
	}
	v, err := decimal.NewFromString(t)
	if err != nil {
		return false
	}
	if !strings.Contains(t, ".") && v.LessThan(priceFloor) {
		return false
	}
	if v.Sign() <= 0 || v.GreaterThan(priceCeil) {
		return false
	}
	return true
}

// bareQuantity reports whether a token is a plausible quantity: pure digits
// with value in [1, 999].
func bareQuantity(tok string) (int, bool) {
	t := Clean(tok)
	if t == "" || !isDigits(t) {
		return 0, false
	}
	v, err := strconv.Atoi(t)
	if err != nil || v < 1 || v > 999 {
		return 0, false
	}
	return v, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
