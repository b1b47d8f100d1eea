package nearmatch

import (
	"unicode/utf8"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

// piece is a contiguous slice of the pattern used as an exact seed.
type piece struct {
	text   string
	offset int // rune offset of the piece within the pattern
}

// splitPattern cuts pattern into n contiguous pieces whose lengths differ by
// at most one. It returns nil when the pattern is shorter than n, since some
// piece would then be empty and could not anchor anything.
func splitPattern(pattern []rune, n int) []piece {
	if n <= 0 || len(pattern) < n {
		return nil
	}

	size, extra := len(pattern)/n, len(pattern)%n
	pieces := make([]piece, 0, n)
	offset := 0
	for i := 0; i < n; i++ {
		l := size
		if i < extra {
			l++
		}
		pieces = append(pieces, piece{
			text:   string(pattern[offset : offset+l]),
			offset: offset,
		})
		offset += l
	}
	return pieces
}

// candidateStarts returns, in ascending order, every subject offset at which
// a match of pattern with at most maxDist edits may begin.
func candidateStarts(pattern, subject []rune, maxDist int) []int {
	n := len(subject)
	pieces := splitPattern(pattern, maxDist+1)
	if pieces == nil {
		// Too many edits allowed for pigeonhole seeding; every offset is a
		// candidate.
		starts := make([]int, n)
		for i := range starts {
			starts[i] = i
		}
		return starts
	}

	// Identical pieces share one automaton pattern.
	var texts []string
	offsets := make(map[string][]int, len(pieces))
	for _, p := range pieces {
		if _, ok := offsets[p.text]; !ok {
			texts = append(texts, p.text)
		}
		offsets[p.text] = append(offsets[p.text], p.offset)
	}

	// The subject is re-encoded from runes so that byte offsets reported by
	// the automaton line up with rune offsets even for invalid UTF-8 input.
	haystack := []byte(string(subject))
	runeAt := make([]int, len(haystack)+1)
	b := 0
	for i, r := range subject {
		runeAt[b] = i
		b += utf8.RuneLen(r)
	}
	runeAt[len(haystack)] = n

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	automaton := builder.Build(texts)

	// diff is a difference array over start offsets; a positive prefix sum
	// marks a candidate.
	diff := make([]int, n+1)
	iter := automaton.IterOverlappingByte(haystack)
	for next := iter.Next(); next != nil; next = iter.Next() {
		hit := *next
		q := runeAt[hit.Start()]
		for _, off := range offsets[texts[hit.Pattern()]] {
			lo := max(0, q-off-maxDist)
			hi := min(n-1, q-off+maxDist)
			if lo > hi {
				continue
			}
			diff[lo]++
			diff[hi+1]--
		}
	}

	var starts []int
	active := 0
	for i := 0; i < n; i++ {
		active += diff[i]
		if active > 0 {
			starts = append(starts, i)
		}
	}
	return starts
}
