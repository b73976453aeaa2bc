package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

func TestTimingExactTenMinutesNotGrouped(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{
		bid("a", 100, base),
		bid("b", 200, base.Add(10*time.Minute)), // delta == 600s exactly
	}
	require.Empty(t, TimingPatterns(bids))
}

func TestTimingJustUnderTenMinutesGrouped(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{
		bid("a", 100, base),
		bid("b", 200, base.Add(9*time.Minute+59*time.Second)),
	}
	got := TimingPatterns(bids)
	require.Len(t, got, 1)
	require.Equal(t, PatternSuspiciousTiming, got[0].Type)
	require.Equal(t, SeverityHigh, got[0].Severity)
	require.Equal(t, 35, got[0].Score)
	require.ElementsMatch(t, []records.BidID{"a", "b"}, got[0].Bids)
}

func TestTimingWalksUnsortedInput(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// deliberately out of order; deltas after sorting: 5m, 5m
	bids := []records.Bid{
		bid("c", 300, base.Add(10*time.Minute)),
		bid("a", 100, base),
		bid("b", 200, base.Add(5*time.Minute)),
	}
	got := TimingPatterns(bids)
	require.Len(t, got, 1)
	require.Equal(t, []records.BidID{"a", "b", "c"}, got[0].Bids)
}

func TestTimingMultipleGroups(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{
		bid("a", 100, base),
		bid("b", 200, base.Add(2*time.Minute)),
		bid("c", 300, base.Add(time.Hour)), // alone, never emitted
		bid("d", 400, base.Add(2*time.Hour)),
		bid("e", 500, base.Add(2*time.Hour+9*time.Minute)),
	}
	got := TimingPatterns(bids)
	require.Len(t, got, 2)
	require.Equal(t, []records.BidID{"a", "b"}, got[0].Bids)
	require.Equal(t, []records.BidID{"d", "e"}, got[1].Bids)
}

func TestTimingTrailingGroupClosed(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	bids := []records.Bid{
		bid("a", 100, base),
		bid("b", 200, base.Add(time.Hour)),
		bid("c", 300, base.Add(time.Hour+time.Minute)),
	}
	got := TimingPatterns(bids)
	require.Len(t, got, 1)
	require.Equal(t, []records.BidID{"b", "c"}, got[0].Bids)
}
