package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amounts go over the wire as JSON numbers. Decimal still renders the exact
// value, so no float rounding is introduced.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Building is an entry of the read-only building directory.
type Building struct {
	ID      int    `db:"id" json:"id"`
	Address string `db:"address" json:"address"`
}

// InvoiceFields holds the billing fields extracted from invoice text.
// A nil or invalid field means the oracle could not find it.
type InvoiceFields struct {
	InvoiceDate *string             `json:"invoice_date"`
	PeriodStart *string             `json:"period_start"`
	PeriodEnd   *string             `json:"period_end"`
	GrossAmount decimal.NullDecimal `json:"gross_amount"`
	NetAmount   decimal.NullDecimal `json:"net_amount"`
	VATAmount   decimal.NullDecimal `json:"vat_amount"`
	Address     *string             `json:"address"`
	Recipient   *string             `json:"recipient"`
}

// AddressValue returns the trimmed address or "" when absent.
func (f *InvoiceFields) AddressValue() string {
	if f == nil || f.Address == nil {
		return ""
	}
	return strings.TrimSpace(*f.Address)
}

// ScopeCheckResult is the building-vs-apartment judgment for an invoice.
type ScopeCheckResult struct {
	IsWholeBuilding bool       `json:"is_whole_building"`
	Confidence      Confidence `json:"confidence"`
	IndicatorsFound []string   `json:"indicators_found"`
	Reason          string     `json:"reason"`
}

// NegativeScope builds the low-confidence apartment verdict used whenever
// the scope cannot be established.
func NegativeScope(reason string) ScopeCheckResult {
	return ScopeCheckResult{
		IsWholeBuilding: false,
		Confidence:      ConfidenceLow,
		IndicatorsFound: []string{},
		Reason:          reason,
	}
}

// ValidationResult combines the legal verdict with the scope check it was based on.
type ValidationResult struct {
	Validated  bool             `json:"validated"`
	Reason     string           `json:"reason"`
	ScopeCheck ScopeCheckResult `json:"scope_check"`
}

// FileInput is one uploaded file of a batch.
type FileInput struct {
	Name string
	Data []byte
}

// FileResult is the per-file outcome. Which fields are set depends on
// Status; every result carries File and Status.
type FileResult struct {
	File                string            `json:"file"`
	Status              FileStatus        `json:"status"`
	Validated           *bool             `json:"validated,omitempty"`
	Error               string            `json:"error,omitempty"`
	Detail              string            `json:"detail,omitempty"`
	Reason              string            `json:"reason,omitempty"`
	ScopeCheck          *ScopeCheckResult `json:"scope_check,omitempty"`
	FlagForManualReview bool              `json:"flag_for_manual_review,omitempty"`
	ResolvedAddress     string            `json:"resolved_address,omitempty"`
	Building            *Building         `json:"building,omitempty"`
	Year                int               `json:"year,omitempty"`
	DraftAction         string            `json:"draft_action,omitempty"`
	CostCategory        CostCategory      `json:"cost_category,omitempty"`
	AllocationKey       string            `json:"allocation_key,omitempty"`
	*InvoiceFields
	ValidationReason string `json:"validation_reason,omitempty"`
	ArchiveKey       string `json:"archive_key,omitempty"`
}

// BatchResult is the ordered list of per-file results of one request.
type BatchResult struct {
	BatchID  string       `json:"batch_id,omitempty"`
	Invoices []FileResult `json:"invoices"`
}

// Flagged returns the indexes of results that need manual review.
func (b *BatchResult) Flagged() []int {
	var idx []int
	for i := range b.Invoices {
		if b.Invoices[i].FlagForManualReview {
			idx = append(idx, i)
		}
	}
	return idx
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}
