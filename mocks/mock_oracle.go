package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockOracle is a mock implementation of port.Oracle.
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) ExtractFields(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockOracle) ClassifyCategory(ctx context.Context, text string, categories []string) (string, error) {
	args := m.Called(ctx, text, categories)
	return args.String(0), args.Error(1)
}

func (m *MockOracle) JudgeScope(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockOracle) JudgeLegality(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}
