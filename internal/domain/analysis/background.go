package analysis

import (
	"fmt"
	"math"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

const (
	winRateMinBids     = 6 // history must exceed 5 bids
	winRateThreshold   = 0.7
	consistencyMinN    = 3
	consistencyStdDev  = 0.05
	elevatedRiskStored = 30
)

// BackgroundPatterns evaluates one supplier's bidding history and profile.
// budgets maps the supplier's tenders to their disclosed budgets; tenders
// without one are simply absent.
func BackgroundPatterns(bids []records.Bid, budgets map[records.TenderID]float64, profile *records.SupplierProfile) []Pattern {
	var patterns []Pattern

	// win-rate anomaly
	if len(bids) >= winRateMinBids {
		accepted := 0
		for _, b := range bids {
			if b.Status == records.BidAccepted {
				accepted++
			}
		}
		rate := float64(accepted) / float64(len(bids))
		if rate > winRateThreshold {
			patterns = append(patterns, Pattern{
				Type:        PatternHighWinRate,
				Description: fmt.Sprintf("supplier wins %.0f%% of %d bids", rate*100, len(bids)),
				Severity:    SeverityMedium,
				Score:       30,
			})
		}
	}

	// bid-to-budget consistency: suspiciously low variance of amount/budget
	// across tenders suggests prior knowledge of the budgets
	var ratios []float64
	for _, b := range bids {
		if budget, ok := budgets[b.TenderID]; ok && budget > 0 {
			ratios = append(ratios, b.Amount/budget)
		}
	}
	if len(ratios) >= consistencyMinN {
		if sd := stdDev(ratios); sd < consistencyStdDev {
			patterns = append(patterns, Pattern{
				Type:        PatternConsistentBids,
				Description: fmt.Sprintf("bid-to-budget ratio variance abnormally low across %d tenders (stddev %.3f)", len(ratios), sd),
				Severity:    SeverityHigh,
				Score:       40,
			})
		}
	}

	// verification state: flagged takes precedence over pending/none
	status := records.VerificationNone
	if profile != nil {
		status = profile.Verification
	}
	switch status {
	case records.VerificationFlagged:
		patterns = append(patterns, Pattern{
			Type:        PatternIdentityIssues,
			Description: "supplier identity is flagged by verification",
			Severity:    SeverityHigh,
			Score:       50,
		})
	case records.VerificationPending, records.VerificationNone:
		patterns = append(patterns, Pattern{
			Type:        PatternIncompleteVerification,
			Description: "supplier has not completed identity verification",
			Severity:    SeverityMedium,
			Score:       25,
		})
	}

	// externally stored risk score feeding back in; kept opaque on purpose
	if profile != nil && profile.RiskScore != nil && *profile.RiskScore > elevatedRiskStored {
		patterns = append(patterns, Pattern{
			Type:        PatternElevatedRisk,
			Description: fmt.Sprintf("supplier carries an elevated stored risk score (%d)", *profile.RiskScore),
			Severity:    SeverityMedium,
			Score:       20,
		})
	}

	return patterns
}

// population standard deviation
func stdDev(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(xs)))
}
