package storage

// RankedEntry is a history entry with its display position.
type RankedEntry struct {
	Entry
	Rank int  // 1-based position in the ranking
	Best bool // Holds the highest recorded score
}

// Rank numbers entries already in ranking order and marks every entry that
// ties the highest score. A history of only zero scores has no best entry.
func Rank(entries []Entry) []RankedEntry {
	if len(entries) == 0 {
		return nil
	}

	best := entries[0].Score
	for _, e := range entries[1:] {
		best = max(best, e.Score)
	}

	ranked := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranked[i] = RankedEntry{
			Entry: e,
			Rank:  i + 1,
			Best:  best > 0 && e.Score == best,
		}
	}
	return ranked
}
