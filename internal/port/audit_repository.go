package port

import (
	"context"

	"github.com/google/uuid"

	"activitymagic/internal/domain"
)

// ExtractionAuditRepository defines the contract for extraction audit
// log persistence.
type ExtractionAuditRepository interface {
	Create(ctx context.Context, entry *domain.ExtractionAuditEntry) error
	ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ExtractionAuditEntry, int, error)
}
