package audit

import (
	"context"
)

// Repository defines persistence for analysis failures
type Repository interface {
	Save(ctx context.Context, e *Entry) error
	ListByAnalysis(ctx context.Context, tenant string, analysisID string, limit int) ([]*Entry, error)
}
