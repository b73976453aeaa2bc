package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

func historyBid(id string, tenderID string, amount float64, status records.BidStatus, at time.Time) records.Bid {
	return records.Bid{
		ID:          records.BidID(id),
		SupplierID:  "sup-1",
		TenderID:    records.TenderID(tenderID),
		Amount:      amount,
		SubmittedAt: at,
		Status:      status,
	}
}

func verifiedProfile() *records.SupplierProfile {
	return &records.SupplierProfile{ID: "sup-1", Verification: records.VerificationVerified}
}

func TestHighWinRate(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	history := func(accepted int) []records.Bid {
		var bids []records.Bid
		for i := 0; i < 6; i++ {
			status := records.BidRejected
			if i < accepted {
				status = records.BidAccepted
			}
			bids = append(bids, historyBid(string(rune('a'+i)), "t1", 100, status, base.Add(time.Duration(i)*24*time.Hour)))
		}
		return bids
	}

	// 5/6 = 0.83 > 0.7
	byType := patternsByType(BackgroundPatterns(history(5), nil, verifiedProfile()))
	require.Len(t, byType[PatternHighWinRate], 1)
	require.Equal(t, 30, byType[PatternHighWinRate][0].Score)

	// 4/6 = 0.67, under the threshold
	byType = patternsByType(BackgroundPatterns(history(4), nil, verifiedProfile()))
	require.Empty(t, byType[PatternHighWinRate])
}

func TestWinRateNeedsMoreThanFiveBids(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var bids []records.Bid
	for i := 0; i < 5; i++ {
		bids = append(bids, historyBid(string(rune('a'+i)), "t1", 100, records.BidAccepted, base.Add(time.Duration(i)*24*time.Hour)))
	}
	byType := patternsByType(BackgroundPatterns(bids, nil, verifiedProfile()))
	require.Empty(t, byType[PatternHighWinRate], "5 bids with a perfect win rate is not enough history")
}

func TestConsistentBidPattern(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	budgets := map[records.TenderID]float64{"t1": 1000, "t2": 2000, "t3": 5000}

	// ratios 0.95, 0.95, 0.96: stddev well under 0.05
	tight := []records.Bid{
		historyBid("a", "t1", 950, records.BidSubmitted, base),
		historyBid("b", "t2", 1900, records.BidSubmitted, base.Add(24*time.Hour)),
		historyBid("c", "t3", 4800, records.BidSubmitted, base.Add(48*time.Hour)),
	}
	byType := patternsByType(BackgroundPatterns(tight, budgets, verifiedProfile()))
	require.Len(t, byType[PatternConsistentBids], 1)
	require.Equal(t, SeverityHigh, byType[PatternConsistentBids][0].Severity)
	require.Equal(t, 40, byType[PatternConsistentBids][0].Score)

	// spread ratios: 0.5, 0.9, 1.0
	spread := []records.Bid{
		historyBid("a", "t1", 500, records.BidSubmitted, base),
		historyBid("b", "t2", 1800, records.BidSubmitted, base.Add(24*time.Hour)),
		historyBid("c", "t3", 5000, records.BidSubmitted, base.Add(48*time.Hour)),
	}
	byType = patternsByType(BackgroundPatterns(spread, budgets, verifiedProfile()))
	require.Empty(t, byType[PatternConsistentBids])
}

func TestConsistencyNeedsThreeRatios(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// only two bids have a tender with a disclosed budget
	budgets := map[records.TenderID]float64{"t1": 1000, "t2": 2000}
	bids := []records.Bid{
		historyBid("a", "t1", 950, records.BidSubmitted, base),
		historyBid("b", "t2", 1900, records.BidSubmitted, base.Add(24*time.Hour)),
		historyBid("c", "t9", 4800, records.BidSubmitted, base.Add(48*time.Hour)),
	}
	byType := patternsByType(BackgroundPatterns(bids, budgets, verifiedProfile()))
	require.Empty(t, byType[PatternConsistentBids])
}

func TestVerificationPrecedence(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{historyBid("a", "t1", 100, records.BidSubmitted, base)}

	cases := []struct {
		status     records.VerificationStatus
		identity   bool
		incomplete bool
	}{
		{records.VerificationFlagged, true, false},
		{records.VerificationPending, false, true},
		{records.VerificationNone, false, true},
		{records.VerificationVerified, false, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.status), func(t *testing.T) {
			profile := &records.SupplierProfile{ID: "sup-1", Verification: tc.status}
			byType := patternsByType(BackgroundPatterns(bids, nil, profile))
			require.Equal(t, tc.identity, len(byType[PatternIdentityIssues]) == 1)
			require.Equal(t, tc.incomplete, len(byType[PatternIncompleteVerification]) == 1)
		})
	}
}

func TestNilProfileBehavesAsUnverified(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{historyBid("a", "t1", 100, records.BidSubmitted, base)}
	byType := patternsByType(BackgroundPatterns(bids, nil, nil))
	require.Len(t, byType[PatternIncompleteVerification], 1)
	require.Empty(t, byType[PatternElevatedRisk])
}

func TestElevatedStoredRisk(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{historyBid("a", "t1", 100, records.BidSubmitted, base)}

	score := 31
	profile := &records.SupplierProfile{ID: "sup-1", Verification: records.VerificationVerified, RiskScore: &score}
	byType := patternsByType(BackgroundPatterns(bids, nil, profile))
	require.Len(t, byType[PatternElevatedRisk], 1)
	require.Equal(t, 20, byType[PatternElevatedRisk][0].Score)

	// exactly 30 does not trip
	score = 30
	byType = patternsByType(BackgroundPatterns(bids, nil, profile))
	require.Empty(t, byType[PatternElevatedRisk])
}
