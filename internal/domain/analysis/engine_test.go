package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

// The reference scenario: one bid parked just under the budget, the other
// five clustered in a narrow band, everything spaced out in time and price so
// neither timing nor relation signals fire.
func TestAnalyzeBidPatternsEndToEnd(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	tender := &records.Tender{ID: "tender-1", Budget: 1_000_000}

	amounts := []float64{960_000, 620_000, 610_000, 615_000, 605_000, 600_000}
	var bids []records.Bid
	for i, a := range amounts {
		bids = append(bids, bid(string(rune('a'+i)), a, base.Add(time.Duration(i)*30*time.Minute)))
	}

	res, err := AnalyzeBidPatterns(context.Background(), bids, tender)
	require.NoError(t, err)

	require.Equal(t, 55, res.RiskScore)
	require.Equal(t, EntityTender, res.EntityType)
	require.Equal(t, KindBidPatterns, res.Kind)
	require.Equal(t, "tender-1", res.EntityID)

	byType := patternsByType(res.Patterns)
	require.Len(t, byType[PatternPricingSuspicion], 1)
	require.Equal(t, []records.BidID{"a"}, byType[PatternPricingSuspicion][0].Bids, "960000 sits at ratio 0.96")
	require.Len(t, byType[PatternBidClustering], 1)
	require.Empty(t, byType[PatternLowBidSuspicion], "no bid falls below 0.7x the average")
	require.Empty(t, byType[PatternSuspiciousTiming], "bids 30 minutes apart never group")
	require.Empty(t, byType[PatternSupplierRelation], "amounts differ by more than 2%")

	require.NotNil(t, res.Graph)
	require.Len(t, res.Graph.Nodes, 7, "tender node plus six bid nodes")
	require.Len(t, res.Graph.Edges, 6, "one submitted edge per bid, no suspicious edges")
}

func TestAnalyzeBidPatternsCleanRun(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	bids := []records.Bid{
		bid("a", 400, base),
		bid("b", 550, base.Add(2*time.Hour)),
	}

	res, err := AnalyzeBidPatterns(context.Background(), bids, &records.Tender{ID: "tender-1", Budget: 1000})
	require.NoError(t, err, "a live caller context must survive the fan-out")
	require.Equal(t, 0, res.RiskScore)
	require.NotNil(t, res.Patterns, "no findings serializes as an empty list, not null")
	require.Empty(t, res.Patterns)
}

func TestRiskScoreClampedAtHundred(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	// flagged identity (50) + high win rate (30) + consistent ratios (40) +
	// elevated stored score (20) = 140 raw
	budgets := make(map[records.TenderID]float64)
	var bids []records.Bid
	for i := 0; i < 6; i++ {
		tid := records.TenderID(string(rune('A' + i)))
		budgets[tid] = 1000
		bids = append(bids, records.Bid{
			ID:          records.BidID(string(rune('a' + i))),
			SupplierID:  "sup-1",
			TenderID:    tid,
			Amount:      950,
			SubmittedAt: base.Add(time.Duration(i) * 24 * time.Hour),
			Status:      records.BidAccepted,
		})
	}
	stored := 90
	profile := &records.SupplierProfile{ID: "sup-1", Verification: records.VerificationFlagged, RiskScore: &stored}

	res, err := AnalyzeCompanyBackground(context.Background(), "sup-1", bids, budgets, profile)
	require.NoError(t, err)
	require.Equal(t, 100, res.RiskScore)
	require.Len(t, res.Patterns, 4)

	raw := 0
	for _, p := range res.Patterns {
		raw += p.Score
	}
	require.Equal(t, 140, raw, "raw contributions stay unclamped on the patterns themselves")
}

func TestEmptyHistoryReturnsZeroResult(t *testing.T) {
	res, err := AnalyzeCompanyBackground(context.Background(), "sup-unknown", nil, nil, nil)
	require.NoError(t, err)
	require.Equal(t, 0, res.RiskScore)
	require.NotNil(t, res.Patterns)
	require.Empty(t, res.Patterns)
	require.Equal(t, EntityUser, res.EntityType)
	require.Equal(t, "sup-unknown", res.EntityID)
}

func TestCancelledContextReturnsError(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	bids := []records.Bid{bid("a", 100, base), bid("b", 200, base.Add(time.Hour))}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := AnalyzeBidPatterns(ctx, bids, &records.Tender{ID: "tender-1", Budget: 1000})
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, res, "no partial result on cancellation")

	res, err = AnalyzeCompanyBackground(ctx, "sup-1", bids, nil, nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, res)
}

func TestAnalyzeBidPatternsRejectsInvalidRecord(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	bids := []records.Bid{bid("a", 100, base), bid("b", -5, base.Add(time.Hour))}

	_, err := AnalyzeBidPatterns(context.Background(), bids, &records.Tender{ID: "tender-1"})
	require.ErrorIs(t, err, records.ErrInvalidRecord)
}

func TestAggregateClampFloor(t *testing.T) {
	score, patterns := Aggregate([]Pattern{{Type: PatternElevatedRisk, Score: -10}})
	require.Equal(t, 0, score, "clamp floor holds even for a hostile negative contribution")
	require.Len(t, patterns, 1)
}
