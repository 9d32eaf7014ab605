package port

import (
	"context"

	"umlage/internal/domain"
)

// BuildingSource provides the building directory snapshot, in stable order.
type BuildingSource interface {
	ListBuildings(ctx context.Context) ([]domain.Building, error)
}

// HealthChecker is implemented by collaborators that can report readiness.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
