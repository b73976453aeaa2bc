package analysis

import (
	"time"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

// ID tipe untuk Analysis
type AnalysisID string

// Kind enum: supported analysis flows
type Kind string

const (
	KindBidPatterns       Kind = "bid_patterns"
	KindCompanyBackground Kind = "company_background"
)

// EntityType enum: what the analysis targets
type EntityType string

const (
	EntityTender EntityType = "tender"
	EntityUser   EntityType = "user"
)

// Severity enum
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// PatternType is a closed enumeration of every signal the engine can emit.
type PatternType string

const (
	PatternPricingSuspicion       PatternType = "pricing_suspicion"
	PatternLowBidSuspicion        PatternType = "low_bid_suspicion"
	PatternBidClustering          PatternType = "bid_clustering"
	PatternSuspiciousTiming       PatternType = "suspicious_timing"
	PatternSupplierRelation       PatternType = "supplier_relation"
	PatternHighWinRate            PatternType = "high_win_rate"
	PatternConsistentBids         PatternType = "consistent_bid_pattern"
	PatternIdentityIssues         PatternType = "identity_verification_issues"
	PatternIncompleteVerification PatternType = "incomplete_verification"
	PatternElevatedRisk           PatternType = "elevated_risk_score"
)

// Pattern is one detected anomaly. Score is the raw contribution before the
// aggregator clamps the total.
type Pattern struct {
	Type        PatternType     `json:"type"`
	Description string          `json:"description"`
	Severity    Severity        `json:"severity"`
	Score       int             `json:"score"`
	Bids        []records.BidID `json:"bids,omitempty"`
}

// Graph node kinds / edge kinds
const (
	NodeTender = "tender"
	NodeBid    = "bid"

	EdgeSubmitted          = "submitted"
	EdgeSuspiciousRelation = "suspicious_relation"
)

type GraphNode struct {
	ID    string `json:"id"`
	Kind  string `json:"kind"`
	Label string `json:"label,omitempty"`
}

type GraphEdge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Kind   string `json:"kind"`
	Weight int    `json:"weight,omitempty"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// Result is the output of a single engine invocation. RiskScore is always in
// [0, 100] even when the raw pattern scores sum above it.
type Result struct {
	EntityID   string            `json:"entity_id"`
	EntityType EntityType        `json:"entity_type"`
	Kind       Kind              `json:"analysis_type"`
	RiskScore  int               `json:"risk_score"`
	Patterns   []Pattern         `json:"patterns"`
	Graph      *Graph            `json:"graph,omitempty"`
	Warnings   []records.Warning `json:"warnings,omitempty"`
}

// Aggregate Root: Analysis, one persisted row per invocation (append-only).
type Analysis struct {
	ID          AnalysisID `json:"id"`
	TenantID    string     `json:"tenant_id"`
	EntityID    string     `json:"entity_id"`
	EntityType  EntityType `json:"entity_type"`
	Kind        Kind       `json:"analysis_type"`
	RiskScore   int        `json:"risk_score"`
	Result      *Result    `json:"result,omitempty"`
	ArtifactURL string     `json:"artifact_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
