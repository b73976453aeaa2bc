package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/tender-guard/internal/domain/ai"
	"github.com/bryanwahyu/tender-guard/internal/domain/analyst"
)

// Service generates and stores analyst briefs for persisted analyses.
type Service struct {
	client ai.Client
	briefs analyst.Repository
}

func NewService(client ai.Client, briefs analyst.Repository) *Service {
	return &Service{client: client, briefs: briefs}
}

// Summarize runs the analyst client over a raw analysis payload.
func (s *Service) Summarize(ctx context.Context, analysisJSON string) (string, error) {
	return s.client.Summarize(ctx, analysisJSON)
}

// SummarizeAndStore generates a brief for the given analysis payload and
// persists it.
func (s *Service) SummarizeAndStore(ctx context.Context, tenant, analysisID, analysisJSON string) (*analyst.Brief, error) {
	if analysisJSON == "" {
		return nil, fmt.Errorf("analysis payload is empty")
	}
	narrative, err := s.client.Summarize(ctx, analysisJSON)
	if err != nil {
		return nil, err
	}
	b := &analyst.Brief{
		ID:         analyst.BriefID(uuid.New().String()),
		TenantID:   tenant,
		AnalysisID: analysisID,
		Narrative:  narrative,
		CreatedAt:  time.Now(),
	}
	if err := s.briefs.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// LatestBrief returns the newest stored brief for one analysis, or nil.
func (s *Service) LatestBrief(ctx context.Context, tenant, analysisID string) (*analyst.Brief, error) {
	return s.briefs.LatestByAnalysis(ctx, tenant, analysisID)
}

// ListBriefs returns a page of stored briefs, newest first.
func (s *Service) ListBriefs(ctx context.Context, tenant string, page, pageSize int) ([]*analyst.Brief, error) {
	return s.briefs.Paginate(ctx, tenant, page, pageSize)
}
