package audit

import "time"

// Entry records a failed analysis attempt. A failed run must stay
// distinguishable from "analyzed, no risk found", so failures land here
// instead of producing a zero-score row.
type Entry struct {
	ID           int64     `json:"id"`
	TenantID     string    `json:"tenant_id"`
	AnalysisID   string    `json:"analysis_id"`
	AnalysisType string    `json:"analysis_type,omitempty"`
	Phase        string    `json:"phase,omitempty"` // fetch | analyze | persist | artifact
	Message      string    `json:"message"`
	DetailsJSON  string    `json:"details_json,omitempty"` // raw JSON string
	CreatedAt    time.Time `json:"created_at"`
}
