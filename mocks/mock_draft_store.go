package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"umlage/internal/port"
)

// MockDraftStore is a mock implementation of port.DraftStore.
type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Append(ctx context.Context, entry port.DraftEntry) (string, error) {
	args := m.Called(ctx, entry)
	return args.String(0), args.Error(1)
}
