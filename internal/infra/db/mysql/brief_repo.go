package mysql

import (
	"context"
	"database/sql"
	"strings"
	"time"

	domain "github.com/bryanwahyu/tender-guard/internal/domain/analyst"
)

type BriefRepository struct {
	db *sql.DB
}

func NewBriefRepository(db *sql.DB) *BriefRepository {
	return &BriefRepository{db: db}
}

// Save inserts a brief record
func (r *BriefRepository) Save(ctx context.Context, b *domain.Brief) error {
	const q = `
INSERT INTO analysis_briefs
  (id, tenant_id, analysis_id, narrative_json, created_at)
VALUES (?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  tenant_id=VALUES(tenant_id), analysis_id=VALUES(analysis_id), narrative_json=VALUES(narrative_json);
`
	tenant := stringOrDash(b.TenantID)
	narrative := b.Narrative
	if strings.TrimSpace(narrative) == "" {
		// narrative_json column requires valid JSON; use empty object
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
WHERE tenant_id=? ORDER BY created_at DESC LIMIT ? OFFSET ?;
`
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
WHERE tenant_id=? AND analysis_id=? ORDER BY created_at DESC LIMIT 1;
`
	var b domain.Brief
	if err := r.db.QueryRowContext(ctx, q, tenant, analysisID).Scan(
		&b.ID, &b.TenantID, &b.AnalysisID, &b.Narrative, &b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
