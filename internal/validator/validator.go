// Package validator decides whether an invoice may be allocated to a
// building: first the building-vs-apartment scope check, then the legal
// completeness check.
package validator

import (
	"context"

	"umlage/internal/domain"
	"umlage/internal/port"
)

// Default values for keys missing from an oracle reply.
const (
	defaultReason     = "No reason provided."
	defaultConfidence = string(domain.ConfidenceLow)
)

const singleApartmentPrefix = "invoice is for a single apartment, not the whole building: "

// Validator chains a ScopeValidator and a LegalValidator. It implements
// port.InvoiceValidator.
type Validator struct {
	scope *ScopeValidator
	legal *LegalValidator
}

// New creates a Validator from its two stages.
func New(scope *ScopeValidator, legal *LegalValidator) *Validator {
	return &Validator{scope: scope, legal: legal}
}

var _ port.InvoiceValidator = (*Validator)(nil)

// Validate runs the scope check once and hands its result to the legal check.
func (v *Validator) Validate(ctx context.Context, text string) domain.ValidationResult {
	scope := v.scope.Check(ctx, text)
	return v.legal.Check(ctx, text, scope)
}
