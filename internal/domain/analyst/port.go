package analyst

import "context"

// Repository port for persisting and querying briefs
type Repository interface {
	Save(ctx context.Context, b *Brief) error
	Paginate(ctx context.Context, tenant string, page, pageSize int) ([]*Brief, error)
	LatestByAnalysis(ctx context.Context, tenant string, analysisID string) (*Brief, error)
}
