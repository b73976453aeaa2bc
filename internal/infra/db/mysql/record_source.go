package mysql

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/bryanwahyu/tender-guard/internal/domain/records"
)

// RecordSource reads the platform-owned bid/tender/profile tables. This
// service never writes them; ownership stays with the procurement platform.
type RecordSource struct {
	db *sql.DB
}

func NewRecordSource(db *sql.DB) *RecordSource {
	return &RecordSource{db: db}
}

// TenderBids returns bids for a tender, restricted to the given suppliers
// when the slice is non-empty.
func (r *RecordSource) TenderBids(ctx context.Context, tenant string, tenderID domain.TenderID, supplierIDs []domain.SupplierID) ([]domain.Bid, error) {
	q := `
SELECT id, supplier_id, tender_id, amount, submitted_at, status
FROM bids
WHERE tenant_id=? AND tender_id=?`
	args := []any{tenant, tenderID}
	if len(supplierIDs) > 0 {
		q += ` AND supplier_id IN (` + placeholders(len(supplierIDs)) + `)`
		for _, sid := range supplierIDs {
			args = append(args, sid)
		}
	}
	q += ` ORDER BY submitted_at ASC;`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBids(rows)
}

// Tender returns nil when the tender does not exist for the tenant.
func (r *RecordSource) Tender(ctx context.Context, tenant string, id domain.TenderID) (*domain.Tender, error) {
	const q = `
SELECT id, COALESCE(budget, 0)
FROM tenders
WHERE tenant_id=? AND id=? LIMIT 1;
`
	var t domain.Tender
	err := r.db.QueryRowContext(ctx, q, tenant, id).Scan(&t.ID, &t.Budget)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SupplierBids returns a supplier's full history, oldest first.
func (r *RecordSource) SupplierBids(ctx context.Context, tenant string, id domain.SupplierID) ([]domain.Bid, error) {
	const q = `
SELECT id, supplier_id, tender_id, amount, submitted_at, status
FROM bids
WHERE tenant_id=? AND supplier_id=?
ORDER BY submitted_at ASC;
`
	rows, err := r.db.QueryContext(ctx, q, tenant, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBids(rows)
}

// SupplierProfile returns nil when the platform holds no profile row.
func (r *RecordSource) SupplierProfile(ctx context.Context, tenant string, id domain.SupplierID) (*domain.SupplierProfile, error) {
	const q = `
SELECT id, verification_status, risk_score
FROM supplier_profiles
WHERE tenant_id=? AND id=? LIMIT 1;
`
	var p domain.SupplierProfile
	var score sql.NullInt64
	err := r.db.QueryRowContext(ctx, q, tenant, id).Scan(&p.ID, &p.Verification, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		p.RiskScore = &v
	}
	return &p, nil
}

// TenderBudgets resolves disclosed budgets; undisclosed tenders are absent.
func (r *RecordSource) TenderBudgets(ctx context.Context, tenant string, ids []domain.TenderID) (map[domain.TenderID]float64, error) {
	out := make(map[domain.TenderID]float64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	q := `
SELECT id, budget
FROM tenders
WHERE tenant_id=? AND budget > 0 AND id IN (` + placeholders(len(ids)) + `);`
	args := []any{tenant}
	for _, id := range ids {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id domain.TenderID
		var budget float64
		if err := rows.Scan(&id, &budget); err != nil {
			return nil, err
		}
		out[id] = budget
	}
	return out, rows.Err()
}

func collectBids(rows *sql.Rows) ([]domain.Bid, error) {
	var out []domain.Bid
	for rows.Next() {
		var b domain.Bid
		if err := rows.Scan(&b.ID, &b.SupplierID, &b.TenderID, &b.Amount, &b.SubmittedAt, &b.Status); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
