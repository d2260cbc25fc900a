// Package pdftext reads per-page plain text out of PDF documents.
package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor pulls text from PDFs row by row, preserving reading order. It is
// stateless and safe for concurrent use.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Pages returns the text of each page in document order. Words within a
// visual row are joined with single spaces and rows with newlines, so the
// result tokenizes cleanly. A page that fails to decode fails the whole
// document; partial documents would silently reconcile wrong.
func (e *Extractor) Pages(r io.ReaderAt, size int64) ([]string, error) {
	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opening pdf: %w", err)
	}

	pages := make([]string, 0, doc.NumPage())
	for i := 1; i <= doc.NumPage(); i++ {
		page := doc.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		rows, err := page.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", i, err)
		}

		var sb strings.Builder
		for _, row := range rows {
			words := make([]string, 0, len(row.Content))
			for _, text := range row.Content {
				if s := strings.TrimSpace(text.S); s != "" {
					words = append(words, s)
				}
			}
			if len(words) == 0 {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(strings.Join(words, " "))
		}
		pages = append(pages, sb.String())
	}
	return pages, nil
}

// PagesFromBytes is Pages over an in-memory document.
func (e *Extractor) PagesFromBytes(data []byte) ([]string, error) {
	return e.Pages(bytes.NewReader(data), int64(len(data)))
}
