// Package building matches free-text invoice addresses against the building
// directory.
package building

import (
	"context"
	"fmt"
	"strings"

	"umlage/internal/domain"
	"umlage/internal/port"
)

// MinScore is the exclusive lower bound a partial ratio must exceed to count
// as a match.
const MinScore = 50

// Matcher fuzzy-matches addresses against an immutable directory snapshot.
// It is safe for concurrent use.
type Matcher struct {
	buildings []domain.Building
}

// NewMatcher snapshots buildings. Directory order decides ties.
func NewMatcher(buildings []domain.Building) *Matcher {
	snapshot := make([]domain.Building, len(buildings))
	copy(snapshot, buildings)
	return &Matcher{buildings: snapshot}
}

// LoadMatcher reads the directory from src once and builds a Matcher from it.
func LoadMatcher(ctx context.Context, src port.BuildingSource) (*Matcher, error) {
	buildings, err := src.ListBuildings(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading building directory: %w", err)
	}
	if len(buildings) == 0 {
		return nil, domain.ErrDirectoryEmpty
	}
	return NewMatcher(buildings), nil
}

// Match returns the best-scoring building for address and its score. The
// building is nil when the best score does not exceed MinScore.
func (m *Matcher) Match(address string) (*domain.Building, int) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, 0
	}

	bestIdx, bestScore := -1, 0
	for i := range m.buildings {
		if s := PartialRatio(address, m.buildings[i].Address); s > bestScore {
			bestIdx, bestScore = i, s
		}
	}
	if bestIdx < 0 || bestScore <= MinScore {
		return nil, bestScore
	}
	b := m.buildings[bestIdx]
	return &b, bestScore
}

// Buildings returns a copy of the directory snapshot.
func (m *Matcher) Buildings() []domain.Building {
	out := make([]domain.Building, len(m.buildings))
	copy(out, m.buildings)
	return out
}
