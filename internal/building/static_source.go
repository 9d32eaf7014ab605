package building

import (
	"context"

	"umlage/internal/domain"
)

// DefaultBuildings is the built-in directory used when no database is configured.
var DefaultBuildings = []domain.Building{
	{ID: 1, Address: "Musterstraße 1, 12345 Berlin"},
	{ID: 2, Address: "Beispielweg 3, 54321 München"},
	{ID: 3, Address: "Schmelzhüttenstr. 39, 07545 Gera"},
}

// StaticSource serves a fixed in-memory directory.
type StaticSource struct {
	buildings []domain.Building
}

// NewStaticSource returns a source over buildings, or over DefaultBuildings
// when none are given.
func NewStaticSource(buildings ...domain.Building) *StaticSource {
	if len(buildings) == 0 {
		buildings = DefaultBuildings
	}
	out := make([]domain.Building, len(buildings))
	copy(out, buildings)
	return &StaticSource{buildings: out}
}

func (s *StaticSource) ListBuildings(_ context.Context) ([]domain.Building, error) {
	out := make([]domain.Building, len(s.buildings))
	copy(out, s.buildings)
	return out, nil
}
