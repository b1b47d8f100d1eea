package nearmatch

import (
	"cmp"
	"slices"
)

// candidate is a scored window before overlap resolution.
type candidate struct {
	start, end, dist int
}

// rank orders candidates by distance, then length, then start offset.
func rank(a, b candidate) int {
	if c := cmp.Compare(a.dist, b.dist); c != 0 {
		return c
	}
	if c := cmp.Compare(a.end-a.start, b.end-b.start); c != 0 {
		return c
	}
	return cmp.Compare(a.start, b.start)
}

// resolve keeps the best ranked candidates such that no two kept candidates
// overlap, and returns them as matches ordered by start offset.
func resolve(candidates []candidate, subject []rune) MatchSet {
	slices.SortFunc(candidates, rank)

	taken := make([]bool, len(subject))
	kept := make([]candidate, 0)
	for _, c := range candidates {
		if slices.Contains(taken[c.start:c.end], true) {
			continue
		}
		for i := c.start; i < c.end; i++ {
			taken[i] = true
		}
		kept = append(kept, c)
	}

	slices.SortFunc(kept, func(a, b candidate) int {
		return cmp.Compare(a.start, b.start)
	})

	out := make(MatchSet, 0, len(kept))
	for _, c := range kept {
		out = append(out, Match{
			Start:    c.start,
			End:      c.end,
			Matched:  string(subject[c.start:c.end]),
			Distance: c.dist,
		})
	}
	return out
}
