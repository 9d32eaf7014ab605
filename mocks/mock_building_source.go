package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"umlage/internal/domain"
)

// MockBuildingSource is a mock implementation of port.BuildingSource.
type MockBuildingSource struct {
	mock.Mock
}

func (m *MockBuildingSource) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Building), args.Error(1)
}

func (m *MockBuildingSource) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
