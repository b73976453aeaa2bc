package records

import (
	"fmt"
	"strings"
)

var knownStatuses = map[BidStatus]bool{
	BidSubmitted:       true,
	BidAccepted:        true,
	BidRejected:        true,
	BidUnderEvaluation: true,
}

// NormalizeBids validates a raw bid list before any analyzer touches it.
// Required fields (id, supplier, tender, non-negative amount, timestamp) fail
// hard with ErrInvalidRecord; recoverable oddities are kept and reported as
// warnings so nothing is dropped silently.
func NormalizeBids(bids []Bid) ([]Bid, []Warning, error) {
	out := make([]Bid, 0, len(bids))
	var warnings []Warning
	for i, b := range bids {
		if strings.TrimSpace(string(b.ID)) == "" {
			return nil, nil, fmt.Errorf("%w: bid at index %d has empty id", ErrInvalidRecord, i)
		}
		if strings.TrimSpace(string(b.SupplierID)) == "" {
			return nil, nil, fmt.Errorf("%w: bid %s has empty supplier id", ErrInvalidRecord, b.ID)
		}
		if strings.TrimSpace(string(b.TenderID)) == "" {
			return nil, nil, fmt.Errorf("%w: bid %s has empty tender id", ErrInvalidRecord, b.ID)
		}
		if b.Amount < 0 {
			return nil, nil, fmt.Errorf("%w: bid %s has negative amount %.2f", ErrInvalidRecord, b.ID, b.Amount)
		}
		if b.SubmittedAt.IsZero() {
			return nil, nil, fmt.Errorf("%w: bid %s has no submission timestamp", ErrInvalidRecord, b.ID)
		}
		if !knownStatuses[b.Status] {
			// keep the bid, status stays verbatim; win-rate counting ignores it
			warnings = append(warnings, Warning{
				BidID:   b.ID,
				Message: fmt.Sprintf("unknown bid status %q", b.Status),
			})
		}
		out = append(out, b)
	}
	return out, warnings, nil
}

// NormalizeTender validates the tender when one is supplied. A nil tender is
// fine: budget checks are simply skipped downstream.
func NormalizeTender(t *Tender) (*Tender, error) {
	if t == nil {
		return nil, nil
	}
	if strings.TrimSpace(string(t.ID)) == "" {
		return nil, fmt.Errorf("%w: tender has empty id", ErrInvalidRecord)
	}
	if t.Budget < 0 {
		return nil, fmt.Errorf("%w: tender %s has negative budget %.2f", ErrInvalidRecord, t.ID, t.Budget)
	}
	return t, nil
}

// NormalizeProfile validates the supplier profile. Nil behaves as an
// unverified supplier with no stored score.
func NormalizeProfile(p *SupplierProfile) (*SupplierProfile, []Warning, error) {
	if p == nil {
		return nil, nil, nil
	}
	if strings.TrimSpace(string(p.ID)) == "" {
		return nil, nil, fmt.Errorf("%w: supplier profile has empty id", ErrInvalidRecord)
	}
	var warnings []Warning
	if p.RiskScore != nil && (*p.RiskScore < 0 || *p.RiskScore > 100) {
		// out-of-range stored score is ignored, not trusted
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("supplier %s stored risk score %d out of range, ignored", p.ID, *p.RiskScore),
		})
		cp := *p
		cp.RiskScore = nil
		return &cp, warnings, nil
	}
	return p, warnings, nil
}
