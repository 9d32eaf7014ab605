package validator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"umlage/internal/domain"
	"umlage/internal/oracle"
	"umlage/internal/port"
)

// LegalValidator checks statutory completeness and allocability of a
// building-wide invoice.
type LegalValidator struct {
	oracle port.Oracle
	log    zerolog.Logger
}

// NewLegalValidator creates a LegalValidator.
func NewLegalValidator(o port.Oracle, log zerolog.Logger) *LegalValidator {
	return &LegalValidator{oracle: o, log: log}
}

// Check returns validated=false without calling the oracle when scope is not
// building-wide. Oracle failures degrade to validated=false.
func (l *LegalValidator) Check(ctx context.Context, text string, scope domain.ScopeCheckResult) domain.ValidationResult {
	if !scope.IsWholeBuilding {
		return domain.ValidationResult{
			Validated:  false,
			Reason:     singleApartmentPrefix + scope.Reason,
			ScopeCheck: scope,
		}
	}

	raw, err := l.oracle.JudgeLegality(ctx, text)
	if err != nil {
		l.log.Warn().Err(err).Msg("legal check call failed")
		return domain.ValidationResult{
			Reason:     fmt.Sprintf("API call failed: %v", err),
			ScopeCheck: scope,
		}
	}

	reply, cleaned, err := oracle.DecodeReply(raw)
	if err != nil {
		l.log.Warn().Err(err).Msg("legal check reply unreadable")
		return domain.ValidationResult{
			Reason:     fmt.Sprintf("LLM response parse failed: %v - RAW: %s", err, cleaned),
			ScopeCheck: scope,
		}
	}

	return domain.ValidationResult{
		Validated:  reply.Bool("is_valid", false),
		Reason:     reply.String("reason", defaultReason),
		ScopeCheck: scope,
	}
}
