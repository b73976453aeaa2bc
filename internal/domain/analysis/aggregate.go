package analysis

// Aggregate merges pattern lists in the given order and returns the clamped
// total score. Individual pattern scores are unbounded; the total is not.
func Aggregate(lists ...[]Pattern) (int, []Pattern) {
	var merged []Pattern
	total := 0
	for _, list := range lists {
		for _, p := range list {
			merged = append(merged, p)
			total += p.Score
		}
	}
	return clampScore(total), merged
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
