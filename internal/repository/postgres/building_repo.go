package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"umlage/internal/domain"
)

// BuildingRepo reads the building directory from PostgreSQL. It implements
// port.BuildingSource and port.HealthChecker.
type BuildingRepo struct {
	db *sqlx.DB
}

// NewBuildingRepo creates a new PostgreSQL-backed building directory.
func NewBuildingRepo(db *sqlx.DB) *BuildingRepo {
	return &BuildingRepo{db: db}
}

// ListBuildings returns the directory ordered by id, which fixes the tie-break
// order of address matching.
func (r *BuildingRepo) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	var buildings []domain.Building
	err := r.db.SelectContext(ctx, &buildings,
		`SELECT id, address
		 FROM buildings
		 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing buildings: %w", err)
	}
	return buildings, nil
}

func (r *BuildingRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
