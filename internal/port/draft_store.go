package port

import (
	"context"

	"github.com/shopspring/decimal"

	"umlage/internal/domain"
)

// DraftEntry is one classified invoice handed to the cost-allocation draft.
type DraftEntry struct {
	BatchID       string
	File          string
	BuildingID    int
	Year          int
	Category      domain.CostCategory
	AllocationKey string
	GrossAmount   decimal.NullDecimal
}

// DraftStore appends classified invoices to the yearly allocation draft of a
// building and returns the action taken.
type DraftStore interface {
	Append(ctx context.Context, entry DraftEntry) (string, error)
}
