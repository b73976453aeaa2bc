package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/tender-guard/internal/domain/audit"
)

type AuditRepository struct{ db *sql.DB }

func NewAuditRepository(db *sql.DB) *AuditRepository { return &AuditRepository{db: db} }

// Save appends a failure entry
func (r *AuditRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO analysis_errors
  (tenant_id, analysis_id, analysis_type, phase, message, details_json, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);`
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	details := e.DetailsJSON
	if details == "" {
		details = "{}"
	}
	_, err := r.db.ExecContext(ctx, q,
		stringOrDash(e.TenantID), e.AnalysisID, e.AnalysisType, e.Phase, e.Message, details, created,
	)
	return err
}

// ListByAnalysis returns failure entries for one analysis id, newest first
func (r *AuditRepository) ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, analysis_id, analysis_type, phase, message, details_json, created_at
FROM analysis_errors
WHERE tenant_id=$1 AND analysis_id=$2 ORDER BY created_at DESC LIMIT $3;`
	rows, err := r.db.QueryContext(ctx, q, tenant, analysisID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.AnalysisID, &e.AnalysisType, &e.Phase, &e.Message, &e.DetailsJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
