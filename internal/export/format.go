package export

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"umlage/internal/domain"
)

// Format selects the export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a user-supplied format name. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatJSON:
		return "application/json"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Write encodes the batch in the tabular format f. JSON is not tabular and
// is rejected here.
func Write(out io.Writer, f Format, batch *domain.BatchResult) error {
	switch f {
	case FormatCSV:
		return WriteCSV(out, batch)
	case FormatXLSX:
		return WriteXLSX(out, batch)
	default:
		return fmt.Errorf("format %q is not a tabular export", f)
	}
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for the Content-Disposition header.
// Format: invoices_{batch}_{YYYY-MM-DD}.{ext}
func BuildFilename(batchID string, f Format, now time.Time) string {
	name := "invoices"
	if s := SanitizeFilename(batchID); s != "" {
		name += "_" + s
	}
	return fmt.Sprintf("%s_%s.%s", name, now.Format("2006-01-02"), f)
}
