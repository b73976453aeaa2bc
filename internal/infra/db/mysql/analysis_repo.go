package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"time"

	domain "github.com/bryanwahyu/tender-guard/internal/domain/analysis"
)

type AnalysisRepository struct {
	db *sql.DB
}

func NewAnalysisRepository(db *sql.DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save appends one analysis row. Rows are append-only; the ON DUPLICATE
// clause only protects against an accidental replay of the same invocation id.
func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	const q = `
INSERT INTO fraud_analyses
(id, tenant_id, entity_id, entity_type, analysis_type, risk_score, result_json, artifact_url, created_at)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE id=id;
`
	tenant := stringOrDash(a.TenantID)
	entity := stringOrDash(a.EntityID)
	created := a.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	payload := "{}"
	if a.Result != nil {
		b, err := json.Marshal(a.Result)
		if err != nil {
			return err
		}
		payload = string(b)
	}

	_, err := r.db.ExecContext(ctx, q,
		a.ID, tenant, entity, a.EntityType, a.Kind,
		a.RiskScore, payload, a.ArtifactURL, created,
	)
	return err
}

// Get by ID + Tenant
func (r *AnalysisRepository) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Analysis, error) {
	const q = `
SELECT id, tenant_id, entity_id, entity_type, analysis_type, risk_score, result_json, artifact_url, created_at
FROM fraud_analyses
WHERE tenant_id=? AND id=? LIMIT 1;
`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, tenant, id))
}

// Latest analyses per tenant
func (r *AnalysisRepository) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Analysis, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, tenant_id, entity_id, entity_type, analysis_type, risk_score, result_json, artifact_url, created_at
FROM fraud_analyses
WHERE tenant_id=? ORDER BY created_at DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnalyses(rows)
}

// Summary counts analyses per risk band since N days.
// Bands follow the engine's severity vocabulary: high >= 70, medium >= 40.
func (r *AnalysisRepository) Summary(ctx context.Context, tenant string, sinceDays int) (int, int, int, int, error) {
	if sinceDays <= 0 {
		sinceDays = 7
	}
	const q = `
SELECT COUNT(*),
       COALESCE(SUM(risk_score >= 70), 0),
       COALESCE(SUM(risk_score >= 40 AND risk_score < 70), 0),
       COALESCE(SUM(risk_score < 40), 0)
FROM fraud_analyses
WHERE tenant_id=? AND created_at >= DATE_SUB(NOW(), INTERVAL ? DAY);
`
	var total, high, medium, low int
	if err := r.db.QueryRowContext(ctx, q, tenant, sinceDays).Scan(&total, &high, &medium, &low); err != nil {
		return 0, 0, 0, 0, err
	}
	return total, high, medium, low, nil
}

// Paginate returns a page of analyses ordered by created_at desc
func (r *AnalysisRepository) Paginate(ctx context.Context, tenant string, page, pageSize int) (*domain.PaginatedResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM fraud_analyses WHERE tenant_id=?;`, tenant,
	).Scan(&total); err != nil {
		return nil, err
	}

	const q = `
SELECT id, tenant_id, entity_id, entity_type, analysis_type, risk_score, result_json, artifact_url, created_at
FROM fraud_analyses
WHERE tenant_id=? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data, err := collectAnalyses(rows)
	if err != nil {
		return nil, err
	}
	return &domain.PaginatedResult{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

// Cursor pagination keyed by (created_at, id)
func (r *AnalysisRepository) Cursor(ctx context.Context, tenant string, cursorTime time.Time, cursorID string, pageSize int) ([]*domain.Analysis, error) {
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	const q = `
SELECT id, tenant_id, entity_id, entity_type, analysis_type, risk_score, result_json, artifact_url, created_at
FROM fraud_analyses
WHERE tenant_id=? AND (created_at < ? OR (created_at = ? AND id < ?))
ORDER BY created_at DESC, id DESC LIMIT ?;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, cursorTime, cursorTime, cursorID, pageSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAnalyses(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(row rowScanner) (*domain.Analysis, error) {
	var a domain.Analysis
	var payload string
	if err := row.Scan(
		&a.ID, &a.TenantID, &a.EntityID, &a.EntityType, &a.Kind,
		&a.RiskScore, &payload, &a.ArtifactURL, &a.CreatedAt,
	); err != nil {
		return nil, err
	}
	if payload != "" && payload != "{}" {
		var res domain.Result
		if err := json.Unmarshal([]byte(payload), &res); err == nil {
			a.Result = &res
		}
	}
	return &a, nil
}

func collectAnalyses(rows *sql.Rows) ([]*domain.Analysis, error) {
	var out []*domain.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
