package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"umlage/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed (healthy)
}

func (c *circuitState) isOpenWithReset(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) open(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// Fallback tries oracles in order, skipping those with open circuits.
// It implements port.Oracle.
type Fallback struct {
	oracles  []port.Oracle
	circuits []*circuitState
	names    []string
	log      zerolog.Logger
	now      func() time.Time
}

// NewFallback creates a Fallback from an ordered list of oracles and their names.
func NewFallback(oracles []port.Oracle, names []string, log zerolog.Logger) *Fallback {
	circuits := make([]*circuitState, len(oracles))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &Fallback{
		oracles:  oracles,
		circuits: circuits,
		names:    names,
		log:      log,
		now:      time.Now,
	}
}

func (f *Fallback) ExtractFields(ctx context.Context, text string) (string, error) {
	return f.call("extract_fields", func(o port.Oracle) (string, error) {
		return o.ExtractFields(ctx, text)
	})
}

func (f *Fallback) ClassifyCategory(ctx context.Context, text string, categories []string) (string, error) {
	return f.call("classify_category", func(o port.Oracle) (string, error) {
		return o.ClassifyCategory(ctx, text, categories)
	})
}

func (f *Fallback) JudgeScope(ctx context.Context, text string) (string, error) {
	return f.call("judge_scope", func(o port.Oracle) (string, error) {
		return o.JudgeScope(ctx, text)
	})
}

func (f *Fallback) JudgeLegality(ctx context.Context, text string) (string, error) {
	return f.call("judge_legality", func(o port.Oracle) (string, error) {
		return o.JudgeLegality(ctx, text)
	})
}

func (f *Fallback) call(op string, fn func(port.Oracle) (string, error)) (string, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	for i, o := range f.oracles {
		if resetAt, open := f.circuits[i].isOpenWithReset(now); open {
			f.log.Debug().Str("oracle", f.names[i]).Str("op", op).
				Time("reset_at", resetAt).Msg("skipping oracle, circuit open")
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
			continue
		}

		out, err := fn(o)
		if err == nil {
			return out, nil
		}

		f.log.Warn().Err(err).Str("oracle", f.names[i]).Str("op", op).Msg("oracle call failed")
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].open(resetAt)
			if earliestReset.IsZero() || resetAt.Before(earliestReset) {
				earliestReset = resetAt
			}
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(now)
		if retryAfter < time.Second {
			retryAfter = time.Second
		}
		return "", NewRateLimitError("all", fmt.Errorf("all oracles rate limited"), retryAfter)
	}

	return "", fmt.Errorf("all oracles failed: %w", lastErr)
}
