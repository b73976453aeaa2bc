package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/tender-guard/internal/domain/analyst"
)

type BriefRepository struct{ db *sql.DB }

func NewBriefRepository(db *sql.DB) *BriefRepository { return &BriefRepository{db: db} }

// Save inserts a brief record
func (r *BriefRepository) Save(ctx context.Context, b *domain.Brief) error {
	const q = `
INSERT INTO analysis_briefs
  (id, tenant_id, analysis_id, narrative_json, created_at)
VALUES ($1,$2,$3,$4,$5)
ON CONFLICT (id) DO UPDATE SET
  tenant_id = EXCLUDED.tenant_id,
  analysis_id = EXCLUDED.analysis_id,
  narrative_json = EXCLUDED.narrative_json;`

	tenant := stringOrDash(b.TenantID)
	narrative := b.Narrative
	if strings.TrimSpace(narrative) == "" {
		narrative = "{}"
	}
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, q, b.ID, tenant, b.AnalysisID, narrative, createdAt)
	return err
}

// Paginate returns a page of briefs ordered by created_at desc
func (r *BriefRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*domain.Brief, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	const q = `
SELECT id, tenant_id, analysis_id, narrative_json, created_at
FROM analysis_briefs
WHERE tenant_id=$1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Brief
	for rows.Next() {
		var b domain.Brief
		if err := rows.Scan(&b.ID, &b.TenantID, &b.AnalysisID, &b.Narrative, &b.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &b)
	}
	return out, rows.Err()
}

// LatestByAnalysis returns the newest brief for one analysis
func (r *BriefRepository) LatestByAnalysis(ctx context.Context, tenant string, analysisID string) (*domain.Brief, error) {
	const q = `
SELECT id, tenant_id, analysis_id, narrative_json, created_at
FROM analysis_briefs
WHERE tenant_id=$1 AND analysis_id=$2 ORDER BY created_at DESC LIMIT 1;`
	var b domain.Brief
	if err := r.db.QueryRowContext(ctx, q, tenant, analysisID).Scan(
		&b.ID, &b.TenantID, &b.AnalysisID, &b.Narrative, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
