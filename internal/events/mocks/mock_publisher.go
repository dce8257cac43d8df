package mocks

import (
	"context"

	"finance-ledger/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockPublisher является моком для events.Publisher интерфейса
type MockPublisher struct {
	mock.Mock
}

// Publish мок для Publish
func (m *MockPublisher) Publish(ctx context.Context, event *models.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Close мок для Close
func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
