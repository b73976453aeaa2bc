package records

import (
	"time"
)

// ID tipe untuk Bid
type BidID string

// TenderID identifier
type TenderID string

// SupplierID identifier
type SupplierID string

// BidStatus enum
type BidStatus string

const (
	BidSubmitted       BidStatus = "submitted"
	BidAccepted        BidStatus = "accepted"
	BidRejected        BidStatus = "rejected"
	BidUnderEvaluation BidStatus = "under_evaluation"
)

// VerificationStatus enum
type VerificationStatus string

const (
	VerificationVerified VerificationStatus = "verified"
	VerificationFlagged  VerificationStatus = "flagged"
	VerificationPending  VerificationStatus = "pending"
	VerificationNone     VerificationStatus = "none"
)

// Bid is a single submission against a tender. Owned by the platform,
// read-only inside this service.
type Bid struct {
	ID          BidID      `json:"id"`
	SupplierID  SupplierID `json:"supplier_id"`
	TenderID    TenderID   `json:"tender_id"`
	Amount      float64    `json:"amount"`
	SubmittedAt time.Time  `json:"submitted_at"`
	Status      BidStatus  `json:"status"`
}

// Tender carries only what the analyzers need. Budget may be zero when the
// tender discloses none.
type Tender struct {
	ID     TenderID `json:"id"`
	Budget float64  `json:"budget"`
}

// SupplierProfile value object. RiskScore is the externally stored 0-100
// score, nil when the platform has never scored the supplier.
type SupplierProfile struct {
	ID           SupplierID         `json:"id"`
	Verification VerificationStatus `json:"verification_status"`
	RiskScore    *int               `json:"risk_score,omitempty"`
}

// Warning reports data that normalization kept or skipped with caveats.
// Nothing is ever dropped silently.
type Warning struct {
	BidID   BidID  `json:"bid_id,omitempty"`
	Message string `json:"message"`
}
