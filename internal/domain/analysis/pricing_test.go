package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

func bid(id string, amount float64, at time.Time) records.Bid {
	return records.Bid{
		ID:          records.BidID(id),
		SupplierID:  records.SupplierID("sup-" + id),
		TenderID:    "tender-1",
		Amount:      amount,
		SubmittedAt: at,
		Status:      records.BidSubmitted,
	}
}

func patternsByType(patterns []Pattern) map[PatternType][]Pattern {
	out := make(map[PatternType][]Pattern)
	for _, p := range patterns {
		out[p.Type] = append(out[p.Type], p)
	}
	return out
}

func TestPricingPatternsNeedsTwoBids(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	got := PricingPatterns([]records.Bid{bid("a", 100, base)}, &records.Tender{ID: "tender-1", Budget: 100})
	require.Empty(t, got)
}

func TestBudgetProximityBounds(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tender := &records.Tender{ID: "tender-1", Budget: 1000}

	cases := []struct {
		name   string
		amount float64
		close  bool
	}{
		{"ratio 0.951 included", 951, true},
		{"ratio exactly 0.95 excluded", 950, false},
		{"ratio exactly 1.0 excluded", 1000, false},
		{"over budget excluded", 1100, false},
		{"ratio 0.999 included", 999, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			bids := []records.Bid{bid("a", tc.amount, base), bid("b", 500, base.Add(time.Hour))}
			byType := patternsByType(PricingPatterns(bids, tender))
			got, ok := byType[PatternPricingSuspicion]
			if !tc.close {
				require.False(t, ok, "pricing_suspicion should not fire for amount %v", tc.amount)
				return
			}
			require.Len(t, got, 1)
			require.Equal(t, SeverityMedium, got[0].Severity)
			require.Equal(t, 25, got[0].Score)
			require.Equal(t, []records.BidID{"a"}, got[0].Bids)
		})
	}
}

func TestBudgetProximitySkippedWithoutBudget(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{bid("a", 960, base), bid("b", 970, base.Add(time.Hour))}

	require.Empty(t, patternsByType(PricingPatterns(bids, nil))[PatternPricingSuspicion])
	require.Empty(t, patternsByType(PricingPatterns(bids, &records.Tender{ID: "tender-1"}))[PatternPricingSuspicion])
}

func TestLowBidDetection(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// average = 100; 60/100 = 0.6 < 0.7 is low, 140 is not
	bids := []records.Bid{bid("low", 60, base), bid("hi", 140, base.Add(time.Hour))}

	byType := patternsByType(PricingPatterns(bids, nil))
	got := byType[PatternLowBidSuspicion]
	require.Len(t, got, 1)
	require.Equal(t, 20, got[0].Score)
	require.Equal(t, []records.BidID{"low"}, got[0].Bids)
}

func TestClusteringRequiresMoreThanFiveBids(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// three bids in the 100% bucket, but only 5 bids total
	amounts := []float64{100, 100, 100, 50, 150}
	var bids []records.Bid
	for i, a := range amounts {
		bids = append(bids, bid(string(rune('a'+i)), a, base.Add(time.Duration(i)*time.Hour)))
	}
	require.Empty(t, patternsByType(PricingPatterns(bids, nil))[PatternBidClustering])

	// a sixth bid in the same bucket keeps the average at 100 and trips the
	// total-count threshold
	bids = append(bids, bid("f", 100, base.Add(6*time.Hour)))
	got := patternsByType(PricingPatterns(bids, nil))[PatternBidClustering]
	require.Len(t, got, 1)
	require.Equal(t, SeverityHigh, got[0].Severity)
	require.Equal(t, 30, got[0].Score)
	require.ElementsMatch(t, []records.BidID{"a", "b", "c", "f"}, got[0].Bids)
}

func TestClusteringOnePatternPerGroup(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// two groups of three around 80 and 120; average stays 100
	amounts := []float64{80, 80, 80, 120, 120, 120}
	var bids []records.Bid
	for i, a := range amounts {
		bids = append(bids, bid(string(rune('a'+i)), a, base.Add(time.Duration(i)*time.Hour)))
	}
	got := patternsByType(PricingPatterns(bids, nil))[PatternBidClustering]
	require.Len(t, got, 2)
}
