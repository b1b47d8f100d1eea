package nearmatch

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the pattern is empty or the maximum
// distance is negative.
var ErrInvalidInput = errors.New("invalid input")

// Match is a single approximate occurrence of a pattern in a subject.
type Match struct {
	// Start is the rune offset of the first matched character
	Start int `json:"start"`

	// End is the rune offset one past the last matched character
	End int `json:"end"`

	// Matched is the subject text between Start and End
	Matched string `json:"matched"`

	// Distance is the Levenshtein distance between the pattern and Matched
	Distance int `json:"distance"`
}

// Len returns the number of runes covered by the match.
func (m Match) Len() int {
	return m.End - m.Start
}

// Overlaps reports whether the two matches share at least one rune.
func (m Match) Overlaps(o Match) bool {
	return m.Start < o.End && o.Start < m.End
}

// String returns a short human-readable form of the match
func (m Match) String() string {
	return fmt.Sprintf("[%d:%d] %q (distance %d)", m.Start, m.End, m.Matched, m.Distance)
}

// MatchSet holds the matches of one pattern in one subject, ordered by
// start offset. Members never overlap.
type MatchSet []Match

// Distances returns the distance of every match, in order.
func (s MatchSet) Distances() []int {
	out := make([]int, len(s))
	for i, m := range s {
		out[i] = m.Distance
	}
	return out
}

// FindNearMatches returns every approximate occurrence of pattern in subject
// whose edit distance is at most maxDist. See the package documentation for
// how overlapping candidates are resolved.
//
// An empty subject yields an empty set. ErrInvalidInput is returned, before
// any scanning, when pattern is empty or maxDist is negative.
func FindNearMatches(pattern, subject string, maxDist int) (MatchSet, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: pattern must not be empty", ErrInvalidInput)
	}
	if maxDist < 0 {
		return nil, fmt.Errorf("%w: max distance must not be negative, got %d", ErrInvalidInput, maxDist)
	}

	p := []rune(pattern)
	s := []rune(subject)
	if len(s) == 0 {
		return MatchSet{}, nil
	}
	// No alignment of a substring of s costs more than max(len(p), len(s)),
	// so a larger limit admits nothing new and only risks overflow.
	maxDist = min(maxDist, max(len(p), len(s)))

	starts := candidateStarts(p, s, maxDist)
	candidates := scoreStarts(p, s, starts, maxDist)
	return resolve(candidates, s), nil
}

// scoreStarts sweeps each candidate start and collects every (start, end)
// pair whose distance to the pattern is within maxDist.
func scoreStarts(pattern, subject []rune, starts []int, maxDist int) []candidate {
	var candidates []candidate
	window := len(pattern) + maxDist

	for _, start := range starts {
		end := min(len(subject), start+window)
		sweep(subject[start:end], pattern, maxDist, func(n, dist int) {
			if n == 0 {
				return
			}
			candidates = append(candidates, candidate{start: start, end: start + n, dist: dist})
		})
	}

	return candidates
}
