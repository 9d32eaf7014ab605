package validator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"umlage/internal/domain"
	"umlage/internal/oracle"
	"umlage/internal/port"
)

// ScopeValidator asks the oracle whether an invoice bills the whole building
// or a single apartment.
type ScopeValidator struct {
	oracle port.Oracle
	log    zerolog.Logger
}

// NewScopeValidator creates a ScopeValidator.
func NewScopeValidator(o port.Oracle, log zerolog.Logger) *ScopeValidator {
	return &ScopeValidator{oracle: o, log: log}
}

// Check never fails. A transport error or an unreadable reply yields a
// low-confidence apartment verdict whose reason carries the failure.
func (s *ScopeValidator) Check(ctx context.Context, text string) domain.ScopeCheckResult {
	raw, err := s.oracle.JudgeScope(ctx, text)
	if err != nil {
		s.log.Warn().Err(err).Msg("scope check call failed")
		return domain.NegativeScope(fmt.Sprintf("API call failed: %v", err))
	}

	reply, cleaned, err := oracle.DecodeReply(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("scope check reply unreadable")
		return domain.NegativeScope(fmt.Sprintf("LLM response parse failed: %v - RAW: %s", err, cleaned))
	}

	return domain.ScopeCheckResult{
		IsWholeBuilding: reply.Bool("is_whole_building", false),
		Confidence:      domain.ParseConfidence(reply.String("confidence", defaultConfidence)),
		IndicatorsFound: reply.Strings("indicators_found", []string{}),
		Reason:          reply.String("reason", defaultReason),
	}
}
