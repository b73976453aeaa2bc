package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/bryanwahyu/tender-guard/internal/domain/records"
)

// timingWindow: consecutive bids closer than this are grouped. The bound is
// strict: exactly 10 minutes apart does not group.
const timingWindow = 10 * time.Minute

// TimingPatterns groups bids submitted in rapid succession. Needs at least
// two bids.
func TimingPatterns(bids []records.Bid) []Pattern {
	if len(bids) < 2 {
		return nil
	}

	sorted := make([]records.Bid, len(bids))
	copy(sorted, bids)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SubmittedAt.Before(sorted[j].SubmittedAt)
	})

	var patterns []Pattern
	emit := func(group []records.BidID) {
		if len(group) > 1 {
			patterns = append(patterns, Pattern{
				Type:        PatternSuspiciousTiming,
				Description: fmt.Sprintf("%d bids submitted within 10 minutes of each other", len(group)),
				Severity:    SeverityHigh,
				Score:       35,
				Bids:        group,
			})
		}
	}

	group := []records.BidID{sorted[0].ID}
	for i := 1; i < len(sorted); i++ {
		delta := sorted[i].SubmittedAt.Sub(sorted[i-1].SubmittedAt)
		if delta < timingWindow {
			group = append(group, sorted[i].ID)
			continue
		}
		emit(group)
		group = []records.BidID{sorted[i].ID}
	}
	emit(group)

	return patterns
}
