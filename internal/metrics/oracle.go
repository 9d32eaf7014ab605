package metrics

import (
	"context"
	"time"

	"umlage/internal/port"
)

type instrumentedOracle struct {
	next port.Oracle
	m    *Metrics
}

// InstrumentOracle wraps o so that every call is timed by call shape.
// With a nil m it returns o unchanged.
func InstrumentOracle(o port.Oracle, m *Metrics) port.Oracle {
	if m == nil {
		return o
	}
	return &instrumentedOracle{next: o, m: m}
}

func (i *instrumentedOracle) ExtractFields(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := i.next.ExtractFields(ctx, text)
	i.m.OracleCall("extract_fields", time.Since(start), err)
	return out, err
}

func (i *instrumentedOracle) ClassifyCategory(ctx context.Context, text string, categories []string) (string, error) {
	start := time.Now()
	out, err := i.next.ClassifyCategory(ctx, text, categories)
	i.m.OracleCall("classify_category", time.Since(start), err)
	return out, err
}

func (i *instrumentedOracle) JudgeScope(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := i.next.JudgeScope(ctx, text)
	i.m.OracleCall("judge_scope", time.Since(start), err)
	return out, err
}

func (i *instrumentedOracle) JudgeLegality(ctx context.Context, text string) (string, error) {
	start := time.Now()
	out, err := i.next.JudgeLegality(ctx, text)
	i.m.OracleCall("judge_legality", time.Since(start), err)
	return out, err
}
