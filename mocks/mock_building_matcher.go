package mocks

import (
	"github.com/stretchr/testify/mock"

	"umlage/internal/domain"
)

// MockBuildingMatcher is a mock implementation of port.BuildingMatcher.
type MockBuildingMatcher struct {
	mock.Mock
}

func (m *MockBuildingMatcher) Match(address string) (*domain.Building, int) {
	args := m.Called(address)
	if args.Get(0) == nil {
		return nil, args.Int(1)
	}
	return args.Get(0).(*domain.Building), args.Int(1)
}
