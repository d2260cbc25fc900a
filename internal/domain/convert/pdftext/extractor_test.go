package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPagesFromBytes(t *testing.T) {
	t.Run("rejects non-pdf input", func(t *testing.T) {
		_, err := New().PagesFromBytes([]byte("definitely not a pdf"))
		assert.Error(t, err)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := New().PagesFromBytes(nil)
		assert.Error(t, err)
	})
}
