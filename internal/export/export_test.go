package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"umlage/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleBatch() *domain.BatchResult {
	return &domain.BatchResult{
		BatchID: "b-1",
		Invoices: []domain.FileResult{
			{
				File:          "grundsteuer.pdf",
				Status:        domain.FileStatusProcessed,
				Validated:     domain.BoolPtr(true),
				Reason:        "Alle Pflichtangaben vorhanden.",
				ScopeCheck:    &domain.ScopeCheckResult{IsWholeBuilding: true, Confidence: domain.ConfidenceHigh},
				Building:      &domain.Building{ID: 1, Address: "Musterstraße 1, 12345 Berlin"},
				Year:          2026,
				DraftAction:   domain.DraftActionAppended,
				CostCategory:  domain.CategoryPropertyTax,
				AllocationKey: domain.KeyLivingArea,
				InvoiceFields: &domain.InvoiceFields{
					InvoiceDate: strPtr("15.01.2026"),
					GrossAmount: decimal.NewNullDecimal(decimal.RequireFromString("1190.5")),
					NetAmount:   decimal.NewNullDecimal(decimal.RequireFromString("1000.42")),
					Address:     strPtr("Musterstraße 1, 12345 Berlin"),
				},
			},
			{
				File:                "kaputt.pdf",
				Status:              domain.FileStatusMalformed,
				Error:               domain.ErrorLabelMalformed,
				Detail:              "malformed document: no pages",
				FlagForManualReview: true,
			},
		},
	}
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	row, err := csv.NewReader(&buf).Read()
	require.NoError(t, err)

	assert.Len(t, row, len(columns))
	assert.Equal(t, "File", row[0])
	assert.Equal(t, "Status", row[1])
	assert.Equal(t, "Archive Key", row[len(row)-1])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBatch()))

	require.True(t, bytes.HasPrefix(buf.Bytes(), BOM))

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	processed := rows[1]
	assert.Equal(t, "grundsteuer.pdf", processed[0])
	assert.Equal(t, "processed", processed[1])
	assert.Equal(t, "Yes", processed[2])
	assert.Equal(t, "No", processed[7])
	assert.Equal(t, "Yes", processed[8])
	assert.Equal(t, "high", processed[9])
	assert.Equal(t, "1", processed[10])
	assert.Equal(t, "2026", processed[13])
	assert.Equal(t, "Grundsteuer", processed[14])
	assert.Equal(t, domain.KeyLivingArea, processed[15])
	assert.Equal(t, "15.01.2026", processed[16])
	assert.Equal(t, "1190.50", processed[19])
	assert.Equal(t, "1000.42", processed[20])
	assert.Equal(t, "", processed[21])

	malformed := rows[2]
	assert.Equal(t, "malformed_document", malformed[1])
	assert.Equal(t, "", malformed[2])
	assert.Equal(t, domain.ErrorLabelMalformed, malformed[5])
	assert.Equal(t, "Yes", malformed[7])
	assert.Equal(t, "", malformed[10])
	assert.Equal(t, "", malformed[19])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleBatch()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "grundsteuer.pdf", rows[1][0])
	assert.Equal(t, "1190.50", rows[1][19])
	assert.Equal(t, "kaputt.pdf", rows[2][0])
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatCSV, false},
		{"csv", FormatCSV, false},
		{" XLSX ", FormatXLSX, false},
		{"json", FormatJSON, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestWrite_RejectsJSON(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, FormatJSON, sampleBatch()))
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with spaces", "with_spaces"},
		{"Straße/Nr. 1", "Stra_e_Nr_1"},
		{"__leading__trailing__", "leading_trailing"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, SanitizeFilename(tt.input), tt.input)
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "invoices_b-1_2026-03-04.csv", BuildFilename("b-1", FormatCSV, now))
	assert.Equal(t, "invoices_2026-03-04.xlsx", BuildFilename("", FormatXLSX, now))
}
