package analysis

import "context"
import "time"

// Repository port (interface untuk persistence). Rows are append-only: one
// per invocation, never updated.
type Repository interface {
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, tenant string, id AnalysisID) (*Analysis, error)
	Latest(ctx context.Context, tenant string, limit int) ([]*Analysis, error)
	Summary(ctx context.Context, tenant string, sinceDays int) (total, high, medium, low int, err error)

	// tambahan paginate
	Paginate(ctx context.Context, tenant string, page, pageSize int) (*PaginatedResult, error)
	Cursor(ctx context.Context, tenant string, cursorTime time.Time, cursorID string, pageSize int) ([]*Analysis, error)
}

// ArtifactStore port (interface untuk penyimpanan payload hasil analisa)
type ArtifactStore interface {
	UploadJSON(ctx context.Context, key string, payload []byte) (string, error)
}
