package pdftext_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlage/internal/domain"
	"umlage/internal/pdftext"
)

func TestExtractText_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"plain text", []byte("Rechnung Nr. 1 - kein PDF")},
		{"truncated header", []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<")},
	}
	ext := pdftext.NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ext.ExtractText(context.Background(), tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedDocument)
			assert.Empty(t, text)
		})
	}
}

// buildPDF assembles a minimal PDF with one Helvetica text line per page.
// An empty string yields a page whose content stream draws nothing.
func buildPDF(pages ...string) []byte {
	var objs []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	)
	for i, text := range pages {
		content := ""
		if text != "" {
			content = fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		}
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, obj := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestExtractText_TextLayer(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"single page", []string{"Hausstrom"}, "Hausstrom"},
		{"pages in order", []string{"Seite1", "Seite2"}, "Seite1Seite2"},
		{"blank page in between", []string{"Eins", "", "Drei"}, "EinsDrei"},
		{"only blank page", []string{""}, ""},
	}
	ext := pdftext.NewExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ext.ExtractText(context.Background(), buildPDF(tt.pages...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestExtractText_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pdftext.NewExtractor().ExtractText(ctx, buildPDF("Seite1"))

	assert.ErrorIs(t, err, context.Canceled)
}
