package export

import (
	"strconv"

	"github.com/shopspring/decimal"

	"umlage/internal/domain"
)

// columns defines the header row shared by the CSV and XLSX exports.
var columns = []string{
	"File",
	"Status",
	"Validated",
	"Reason",
	"Validation Reason",
	"Error",
	"Detail",
	"Manual Review",
	"Whole Building",
	"Scope Confidence",
	"Building ID",
	"Building Address",
	"Resolved Address",
	"Year",
	"Cost Category",
	"Allocation Key",
	"Invoice Date",
	"Period Start",
	"Period End",
	"Gross Amount",
	"Net Amount",
	"VAT Amount",
	"Address",
	"Recipient",
	"Draft Action",
	"Archive Key",
}

// Columns returns a copy of the export header row.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// resultToRow converts a single file result to a row of len(columns) cells.
// Columns that do not apply to the result's status are left empty.
func resultToRow(r *domain.FileResult) []string {
	row := make([]string, len(columns))

	row[0] = r.File
	row[1] = string(r.Status)
	if r.Validated != nil {
		row[2] = formatBool(*r.Validated)
	}
	row[3] = r.Reason
	row[4] = r.ValidationReason
	row[5] = r.Error
	row[6] = r.Detail
	row[7] = formatBool(r.FlagForManualReview)
	if r.ScopeCheck != nil {
		row[8] = formatBool(r.ScopeCheck.IsWholeBuilding)
		row[9] = string(r.ScopeCheck.Confidence)
	}
	if r.Building != nil {
		row[10] = strconv.Itoa(r.Building.ID)
		row[11] = r.Building.Address
	}
	row[12] = r.ResolvedAddress
	if r.Year != 0 {
		row[13] = strconv.Itoa(r.Year)
	}
	row[14] = string(r.CostCategory)
	row[15] = r.AllocationKey
	if f := r.InvoiceFields; f != nil {
		row[16] = deref(f.InvoiceDate)
		row[17] = deref(f.PeriodStart)
		row[18] = deref(f.PeriodEnd)
		row[19] = formatMoney(f.GrossAmount)
		row[20] = formatMoney(f.NetAmount)
		row[21] = formatMoney(f.VATAmount)
		row[22] = deref(f.Address)
		row[23] = deref(f.Recipient)
	}
	row[24] = r.DraftAction
	row[25] = r.ArchiveKey

	return row
}

func formatMoney(v decimal.NullDecimal) string {
	if !v.Valid {
		return ""
	}
	return v.Decimal.StringFixed(2)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
