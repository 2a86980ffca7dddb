package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"activitymagic/internal/domain"
)

// MockExtractionAuditRepo is a mock implementation of port.ExtractionAuditRepository.
type MockExtractionAuditRepo struct {
	mock.Mock
}

func (m *MockExtractionAuditRepo) Create(ctx context.Context, entry *domain.ExtractionAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockExtractionAuditRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ExtractionAuditEntry, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExtractionAuditEntry), args.Int(1), args.Error(2)
}
