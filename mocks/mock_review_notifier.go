package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"umlage/internal/port"
)

// MockReviewNotifier is a mock implementation of port.ReviewNotifier.
type MockReviewNotifier struct {
	mock.Mock
}

func (m *MockReviewNotifier) NotifyReview(ctx context.Context, notice port.ReviewNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
