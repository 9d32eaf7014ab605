// Package pdftext reads the native text layer of PDF documents.
package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"umlage/internal/domain"
	"umlage/internal/port"
)

type extractor struct{}

// NewExtractor returns a TextExtractor backed by ledongthuc/pdf. Pages
// without a text layer contribute nothing; no OCR is attempted.
func NewExtractor() port.TextExtractor {
	return &extractor{}
}

// ExtractText concatenates the plain text of all pages in page order.
func (e *extractor) ExtractText(ctx context.Context, data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrMalformedDocument)
	}

	// The reader panics on some truncated xref tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("%w: %v", domain.ErrMalformedDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", domain.ErrMalformedDocument, i, err)
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}
