package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

const (
	budgetProximityLow  = 0.95
	budgetProximityHigh = 1.0
	lowBidRatio         = 0.7
	clusterMinGroup     = 3 // group size must exceed 2
	clusterMinBids      = 6 // total bid count must exceed 5
)

// PricingPatterns runs the price heuristics: budget proximity, abnormally low
// bids, and 5%-band clustering. Needs at least two bids to say anything.
func PricingPatterns(bids []records.Bid, tender *records.Tender) []Pattern {
	if len(bids) < 2 {
		return nil
	}

	var sum float64
	for _, b := range bids {
		sum += b.Amount
	}
	average := sum / float64(len(bids))

	var patterns []Pattern

	// budget proximity: strictly between 95% and 100% of budget
	if tender != nil && tender.Budget > 0 {
		var close []records.BidID
		for _, b := range bids {
			ratio := b.Amount / tender.Budget
			if ratio > budgetProximityLow && ratio < budgetProximityHigh {
				close = append(close, b.ID)
			}
		}
		if len(close) > 0 {
			patterns = append(patterns, Pattern{
				Type:        PatternPricingSuspicion,
				Description: fmt.Sprintf("%d bid(s) priced just under the tender budget (95-100%%)", len(close)),
				Severity:    SeverityMedium,
				Score:       25,
				Bids:        close,
			})
		}
	}

	// abnormally low bids relative to the set average
	if average > 0 {
		var low []records.BidID
		for _, b := range bids {
			if b.Amount/average < lowBidRatio {
				low = append(low, b.ID)
			}
		}
		if len(low) > 0 {
			patterns = append(patterns, Pattern{
				Type:        PatternLowBidSuspicion,
				Description: fmt.Sprintf("%d bid(s) more than 30%% below the average bid", len(low)),
				Severity:    SeverityMedium,
				Score:       20,
				Bids:        low,
			})
		}
	}

	// clustering: bucket each bid by its ratio to the average, rounded to the
	// nearest 5% step. Only meaningful with more than 5 bids total.
	if average > 0 && len(bids) >= clusterMinBids {
		buckets := make(map[int][]records.BidID)
		for _, b := range bids {
			step := int(math.Round(b.Amount / average * 20))
			buckets[step] = append(buckets[step], b.ID)
		}
		steps := make([]int, 0, len(buckets))
		for step := range buckets {
			steps = append(steps, step)
		}
		sort.Ints(steps)
		for _, step := range steps {
			group := buckets[step]
			if len(group) >= clusterMinGroup {
				patterns = append(patterns, Pattern{
					Type:        PatternBidClustering,
					Description: fmt.Sprintf("%d bids clustered in the same 5%% price band (%.0f%% of average)", len(group), float64(step)*5),
					Severity:    SeverityHigh,
					Score:       30,
					Bids:        group,
				})
			}
		}
	}

	return patterns
}
