package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"activitymagic/internal/domain"
	"activitymagic/internal/port"
)

type extractionAuditRepo struct {
	db *sqlx.DB
}

// NewExtractionAuditRepo creates a new PostgreSQL-backed ExtractionAuditRepository.
func NewExtractionAuditRepo(db *sqlx.DB) port.ExtractionAuditRepository {
	return &extractionAuditRepo{db: db}
}

func (r *extractionAuditRepo) Create(ctx context.Context, entry *domain.ExtractionAuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO extraction_audit_log (id, user_id, task_kind, raw_input, source, model, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.UserID, entry.TaskKind, entry.RawInput, entry.Source, entry.Model, entry.Detail, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("extractionAuditRepo.Create: %w", err)
	}
	return nil
}

func (r *extractionAuditRepo) ListByUser(ctx context.Context, userID uuid.UUID, offset, limit int) ([]domain.ExtractionAuditEntry, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM extraction_audit_log WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionAuditRepo.ListByUser count: %w", err)
	}

	var entries []domain.ExtractionAuditEntry
	err = r.db.SelectContext(ctx, &entries,
		`SELECT * FROM extraction_audit_log
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("extractionAuditRepo.ListByUser: %w", err)
	}
	return entries, total, nil
}
