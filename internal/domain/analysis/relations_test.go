package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

func TestRelationPatternEmittedOncePerRun(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// a, b, c: identical amounts and near-identical times, three qualifying
	// pairs; d stands apart on both axes
	bids := []records.Bid{
		bid("a", 1000, base),
		bid("b", 1000, base.Add(time.Minute)),
		bid("c", 1000, base.Add(2*time.Minute)),
		bid("d", 5000, base.Add(3*time.Hour)),
	}

	patterns, edges := RelationPatterns(bids)
	require.Len(t, patterns, 1, "summary pattern is deduped per run")
	require.Equal(t, PatternSupplierRelation, patterns[0].Type)
	require.Equal(t, 40, patterns[0].Score)
	require.Equal(t, []records.BidID{"a", "b"}, patterns[0].Bids, "first qualifying pair wins")

	require.Len(t, edges, 3, "every qualifying pair still becomes an edge")
	for _, e := range edges {
		require.Equal(t, EdgeSuspiciousRelation, e.Kind)
		require.Equal(t, 60, e.Weight)
	}
}

func TestRelationScoreNeedsBothSignalsAboveThreshold(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// amounts within 2% but submitted hours apart: score 30, below threshold
	patterns, edges := RelationPatterns([]records.Bid{
		bid("a", 1000, base),
		bid("b", 1010, base.Add(5*time.Hour)),
	})
	require.Empty(t, patterns)
	require.Empty(t, edges)

	// close in time but far apart in price: score 30, below threshold
	patterns, edges = RelationPatterns([]records.Bid{
		bid("a", 1000, base),
		bid("b", 9000, base.Add(time.Minute)),
	})
	require.Empty(t, patterns)
	require.Empty(t, edges)
}

func TestRelationBoundaries(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// ratio exactly 1.02 fails the strict bound; delta of exactly 15 minutes
	// fails the strict bound: total 0
	patterns, edges := RelationPatterns([]records.Bid{
		bid("a", 1000, base),
		bid("b", 1020, base.Add(15*time.Minute)),
	})
	require.Empty(t, patterns)
	require.Empty(t, edges)

	// just inside both bounds: 30 + 30 = 60 > 40
	patterns, edges = RelationPatterns([]records.Bid{
		bid("a", 1000, base),
		bid("b", 1019, base.Add(14*time.Minute)),
	})
	require.Len(t, patterns, 1)
	require.Len(t, edges, 1)
}

func TestRelationZeroAmountGuard(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	// zero amounts must not divide by zero and must not count as similar
	patterns, edges := RelationPatterns([]records.Bid{
		bid("a", 0, base),
		bid("b", 0, base.Add(time.Minute)),
	})
	require.Empty(t, patterns, "time proximity alone is 30, below the threshold")
	require.Empty(t, edges)
}
