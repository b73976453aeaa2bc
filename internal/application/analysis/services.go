package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/tender-guard/internal/domain/audit"
	domain "github.com/bryanwahyu/tender-guard/internal/domain/analysis"
	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

// Service implements use-cases untuk Analysis.
// Service is designed to be used concurrently and is thread-safe: the engine
// is pure and every port implementation owns its own synchronization.
type Service struct {
	Repo      domain.Repository
	Records   records.Source
	Artifacts domain.ArtifactStore
	Audit     audit.Repository
	Clock     Clock
}

// Clock abstraction supaya gampang ditest
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

//
// ==== USE CASES ====
//

// Command untuk run analysis
type RunAnalysisCommand struct {
	TenantID     string
	AnalysisType string
	TenderID     string
	SupplierIDs  []string
	SupplierID   string
}

// Validate checks the request contract: bid_patterns needs a tender and at
// least one supplier, company_background needs a supplier.
func (c RunAnalysisCommand) Validate() error {
	if c.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", domain.ErrInvalidArgument)
	}
	switch domain.Kind(c.AnalysisType) {
	case domain.KindBidPatterns:
		if c.TenderID == "" {
			return fmt.Errorf("%w: tenderId is required for bid_patterns", domain.ErrInvalidArgument)
		}
		if len(c.SupplierIDs) == 0 {
			return fmt.Errorf("%w: supplierIds must be non-empty for bid_patterns", domain.ErrInvalidArgument)
		}
	case domain.KindCompanyBackground:
		if c.SupplierID == "" {
			return fmt.Errorf("%w: supplierId is required for company_background", domain.ErrInvalidArgument)
		}
	default:
		return fmt.Errorf("%w: unsupported analysisType %q", domain.ErrInvalidArgument, c.AnalysisType)
	}
	return nil
}

// Run validates the request, fetches the records through the read-only
// source, runs the engine, uploads the payload and appends one analysis row.
// Any failure is audited and returned; a failed run never persists a score.
func (s *Service) Run(ctx context.Context, cmd RunAnalysisCommand) (*domain.Analysis, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := s.Clock.Now()
	id := fmt.Sprintf("%s-%s", uuid.New().String(), cmd.AnalysisType)

	var res *domain.Result
	var err error
	switch domain.Kind(cmd.AnalysisType) {
	case domain.KindBidPatterns:
		res, err = s.runBidPatterns(ctx, cmd)
	case domain.KindCompanyBackground:
		res, err = s.runCompanyBackground(ctx, cmd)
	}
	if err != nil {
		s.recordFailure(cmd, id, "analyze", err)
		return nil, err
	}

	a := &domain.Analysis{
		ID:         domain.AnalysisID(id),
		TenantID:   cmd.TenantID,
		EntityID:   res.EntityID,
		EntityType: res.EntityType,
		Kind:       res.Kind,
		RiskScore:  res.RiskScore,
		Result:     res,
		CreatedAt:  now,
	}

	payload, err := json.Marshal(res)
	if err != nil {
		s.recordFailure(cmd, id, "artifact", err)
		return nil, err
	}
	key := fmt.Sprintf("%s/%s/%s.json", cmd.TenantID, cmd.AnalysisType, id)
	url, err := s.Artifacts.UploadJSON(ctx, key, payload)
	if err != nil {
		s.recordFailure(cmd, id, "artifact", err)
		return nil, err
	}
	a.ArtifactURL = url

	if err := s.Repo.Save(ctx, a); err != nil {
		s.recordFailure(cmd, id, "persist", err)
		return nil, err
	}

	return a, nil
}

func (s *Service) runBidPatterns(ctx context.Context, cmd RunAnalysisCommand) (*domain.Result, error) {
	tender, err := s.Records.Tender(ctx, cmd.TenantID, records.TenderID(cmd.TenderID))
	if err != nil {
		return nil, err
	}
	if tender == nil {
		return nil, fmt.Errorf("%w: tender %s", domain.ErrNotFound, cmd.TenderID)
	}

	suppliers := make([]records.SupplierID, 0, len(cmd.SupplierIDs))
	for _, sid := range cmd.SupplierIDs {
		suppliers = append(suppliers, records.SupplierID(sid))
	}
	bids, err := s.Records.TenderBids(ctx, cmd.TenantID, tender.ID, suppliers)
	if err != nil {
		return nil, err
	}

	return domain.AnalyzeBidPatterns(ctx, bids, tender)
}

func (s *Service) runCompanyBackground(ctx context.Context, cmd RunAnalysisCommand) (*domain.Result, error) {
	supplierID := records.SupplierID(cmd.SupplierID)

	bids, err := s.Records.SupplierBids(ctx, cmd.TenantID, supplierID)
	if err != nil {
		return nil, err
	}
	profile, err := s.Records.SupplierProfile(ctx, cmd.TenantID, supplierID)
	if err != nil {
		return nil, err
	}

	var budgets map[records.TenderID]float64
	if len(bids) > 0 {
		seen := make(map[records.TenderID]bool, len(bids))
		var ids []records.TenderID
		for _, b := range bids {
			if !seen[b.TenderID] {
				seen[b.TenderID] = true
				ids = append(ids, b.TenderID)
			}
		}
		budgets, err = s.Records.TenderBudgets(ctx, cmd.TenantID, ids)
		if err != nil {
			return nil, err
		}
	}

	return domain.AnalyzeCompanyBackground(ctx, supplierID, bids, budgets, profile)
}

func (s *Service) recordFailure(cmd RunAnalysisCommand, id, phase string, cause error) {
	if s.Audit == nil {
		return
	}
	details, _ := json.Marshal(map[string]any{
		"tender_id":    cmd.TenderID,
		"supplier_id":  cmd.SupplierID,
		"supplier_ids": cmd.SupplierIDs,
	})
	_ = s.Audit.Save(context.Background(), &audit.Entry{
		TenantID:     cmd.TenantID,
		AnalysisID:   id,
		AnalysisType: cmd.AnalysisType,
		Phase:        phase,
		Message:      cause.Error(),
		DetailsJSON:  string(details),
		CreatedAt:    s.Clock.Now(),
	})
}

// Latest ambil N analysis terakhir
func (s *Service) Latest(ctx context.Context, tenant string, limit int) ([]*domain.Analysis, error) {
	return s.Repo.Latest(ctx, tenant, limit)
}

// Get ambil 1 analysis by id
func (s *Service) Get(ctx context.Context, tenant string, id domain.AnalysisID) (*domain.Analysis, error) {
	return s.Repo.Get(ctx, tenant, id)
}

// Paginate halaman daftar analysis
func (s *Service) Paginate(ctx context.Context, tenant string, page, pageSize int) (*domain.PaginatedResult, error) {
	return s.Repo.Paginate(ctx, tenant, page, pageSize)
}

// CursorList ambil halaman berikutnya pakai keyset cursor
func (s *Service) CursorList(ctx context.Context, tenant string, cursorTime time.Time, cursorID string, pageSize int) ([]*domain.Analysis, error) {
	return s.Repo.Cursor(ctx, tenant, cursorTime, cursorID, pageSize)
}

// Errors lists the audited failure entries for one analysis id.
func (s *Service) Errors(ctx context.Context, tenant string, analysisID string, limit int) ([]*audit.Entry, error) {
	return s.Audit.ListByAnalysis(ctx, tenant, analysisID, limit)
}

// Summary rekap risiko N hari terakhir
func (s *Service) Summary(ctx context.Context, tenant string, sinceDays int) (map[string]any, error) {
	total, high, medium, low, err := s.Repo.Summary(ctx, tenant, sinceDays)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"total_analyses": total,
		"high_risk":      high,
		"medium_risk":    medium,
		"low_risk":       low,
	}, nil
}
