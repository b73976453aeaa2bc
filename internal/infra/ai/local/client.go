package local

import (
	"context"

	"github.com/bryanwahyu/tender-guard/internal/infra/ai/prompt"
)

// Client is the no-provider fallback: briefs are built mechanically from the
// stored payload so the endpoint still works without an API key.
type Client struct{}

func (Client) Summarize(_ context.Context, analysisJSON string) (string, error) {
	return prompt.BuildLocalBrief(analysisJSON), nil
}
