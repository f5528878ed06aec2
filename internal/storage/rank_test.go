package storage

import "testing"

func TestRank(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		best   []bool
	}{
		{"empty", nil, nil},
		{"single", []int{4}, []bool{true}},
		{"tie at top", []int{9, 9, 3}, []bool{true, true, false}},
		{"all zero", []int{0, 0}, []bool{false, false}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var entries []Entry
			for _, s := range tc.scores {
				entries = append(entries, Entry{Score: s})
			}

			ranked := Rank(entries)
			if len(ranked) != len(tc.scores) {
				t.Fatalf("len = %d, expected %d", len(ranked), len(tc.scores))
			}
			for i, r := range ranked {
				if r.Rank != i+1 {
					t.Errorf("entry %d rank = %d", i, r.Rank)
				}
				if r.Best != tc.best[i] {
					t.Errorf("entry %d best = %v, expected %v", i, r.Best, tc.best[i])
				}
			}
		})
	}
}
