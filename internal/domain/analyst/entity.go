package analyst

import "time"

// BriefID identifier type
type BriefID string

// Brief is the human-readable narrative generated for a stored analysis,
// kept for auditing and retrieval. Scoring is finished before a brief is
// ever produced; the narrative feeds nothing back into a score.
type Brief struct {
	ID         BriefID   `json:"id"`
	TenantID   string    `json:"tenant_id"`
	AnalysisID string    `json:"analysis_id,omitempty"`
	Narrative  string    `json:"narrative"` // JSON string from the analyst client
	CreatedAt  time.Time `json:"created_at"`
}
