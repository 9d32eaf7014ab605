// Package extract turns invoice text into structured billing fields.
package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"umlage/internal/domain"
	"umlage/internal/oracle"
	"umlage/internal/port"
)

type extractor struct {
	oracle port.Oracle
	log    zerolog.Logger
}

// NewExtractor returns a FieldExtractor using the oracle's schema-constrained call.
func NewExtractor(o port.Oracle, log zerolog.Logger) port.FieldExtractor {
	return &extractor{oracle: o, log: log}
}

// Extract issues one extraction call. Any transport, schema or decode failure
// is reported as domain.ErrExtractionFailed.
func (e *extractor) Extract(ctx context.Context, text string) (*domain.InvoiceFields, error) {
	raw, err := e.oracle.ExtractFields(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	args := []byte(oracle.StripFences(raw))
	if err := oracle.ValidateInvoiceArguments(args); err != nil {
		e.log.Debug().Str("arguments", raw).Msg("extraction arguments rejected")
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	var fields domain.InvoiceFields
	if err := json.Unmarshal(args, &fields); err != nil {
		return nil, fmt.Errorf("%w: decode arguments: %v", domain.ErrExtractionFailed, err)
	}
	return &fields, nil
}
