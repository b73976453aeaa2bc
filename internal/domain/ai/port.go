package ai

import "context"

// Client turns a stored analysis payload into a narrative brief.
type Client interface {
	Summarize(ctx context.Context, analysisJSON string) (string, error)
}
