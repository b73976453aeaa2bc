package analysis

import (
	"fmt"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

const (
	relationAmountRatio = 1.02
	relationTimeWindow  = 15 // minutes
	relationThreshold   = 40
	relationPartScore   = 30
)

// RelationPatterns scores every unordered bid pair on price similarity and
// submission-time proximity. Pairs above the threshold become graph edges; the
// first qualifying pair also emits a single summary pattern for the whole run
// so the aggregate is not double-counted per pair.
func RelationPatterns(bids []records.Bid) ([]Pattern, []GraphEdge) {
	var patterns []Pattern
	var edges []GraphEdge

	for i := 0; i < len(bids); i++ {
		for j := i + 1; j < len(bids); j++ {
			score := relationScore(bids[i], bids[j])
			if score <= relationThreshold {
				continue
			}
			edges = append(edges, GraphEdge{
				From:   bidNodeID(bids[i].ID),
				To:     bidNodeID(bids[j].ID),
				Kind:   EdgeSuspiciousRelation,
				Weight: score,
			})
			if len(patterns) == 0 {
				patterns = append(patterns, Pattern{
					Type:        PatternSupplierRelation,
					Description: fmt.Sprintf("bids %s and %s look coordinated (price/time proximity)", bids[i].ID, bids[j].ID),
					Severity:    SeverityHigh,
					Score:       40,
					Bids:        []records.BidID{bids[i].ID, bids[j].ID},
				})
			}
		}
	}

	return patterns, edges
}

func relationScore(a, b records.Bid) int {
	score := 0

	// price similarity within ~2%; a zero amount never matches (no div by zero)
	lo, hi := a.Amount, b.Amount
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo > 0 && hi/lo < relationAmountRatio {
		score += relationPartScore
	}

	delta := a.SubmittedAt.Sub(b.SubmittedAt)
	if delta < 0 {
		delta = -delta
	}
	if delta.Minutes() < relationTimeWindow {
		score += relationPartScore
	}

	return score
}
