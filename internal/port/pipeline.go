package port

import (
	"context"

	"umlage/internal/domain"
)

// FieldExtractor maps invoice text to structured billing fields.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (*domain.InvoiceFields, error)
}

// InvoiceValidator runs the scope check followed by the legal check.
// Failures degrade to a negative result; it never returns an error.
type InvoiceValidator interface {
	Validate(ctx context.Context, text string) domain.ValidationResult
}

// BuildingMatcher resolves a free-text address to a directory entry. A nil
// building means no match.
type BuildingMatcher interface {
	Match(address string) (*domain.Building, int)
}

// CostClassifier picks the cost category of an invoice. On oracle failure it
// returns domain.CategoryOther together with the error.
type CostClassifier interface {
	Classify(ctx context.Context, text string) (domain.CostCategory, error)
}
