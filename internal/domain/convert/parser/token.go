// Package parser implements the token-stream extraction core: it locates
// line-item rows inside the noisy, whitespace-delimited text read out of
// invoice PDFs and resolves each row's quantity and cost with positional
// heuristics. There is no reliable column structure in the input; everything
// here works off token shapes and relative positions.
package parser

import "strings"

// Tokenize splits the ordered per-page texts of one document into a single
// token sequence (runs of whitespace collapse to one delimiter, empty tokens
// removed) and a newline-joined full-text blob used for regex-based total
// extraction. Token order follows the reading order of the text extraction:
// top to bottom, left to right, pages in document order.
func Tokenize(pages []string) ([]string, string) {
	var tokens []string
	parts := make([]string, 0, len(pages))
	for _, page := range pages {
		if page == "" {
			continue
		}
		parts = append(parts, page)
		tokens = append(tokens, strings.Fields(page)...)
	}
	return tokens, strings.Join(parts, "\n")
}
