// Package nearmatch finds approximate occurrences of a pattern inside a
// subject text.
//
// A match is any substring of the subject whose Levenshtein distance to the
// pattern is at most a caller supplied limit. Offsets are counted in runes,
// not bytes, so the package is safe for arbitrary Unicode input.
//
// # Algorithm
//
// The search runs in four stages:
//
//  1. Seeding. The pattern is cut into maxDist+1 contiguous pieces. An
//     alignment with at most maxDist edits leaves at least one piece
//     untouched, so every real match contains an exact copy of some piece.
//     All pieces are located in one pass with an Aho-Corasick automaton and
//     each hit nominates the match starts within maxDist of its implied
//     alignment.
//  2. Scoring. Every nominated start is swept once with a banded edit
//     distance table that yields the distance of every admissible end
//     offset. Cells further than maxDist from the diagonal are never
//     evaluated and the sweep stops once the whole band exceeds maxDist.
//  3. Refinement. Because starts are nominated in a ±maxDist neighbourhood
//     and every end is scored, each region carries its exact best
//     (start, end) pairs.
//  4. Resolution. Candidates are ranked by distance, then length, then start
//     offset, and accepted greedily unless they overlap an already accepted
//     match.
//
// The result therefore never contains overlapping matches, and a candidate
// is only dropped in favour of an overlapping match of equal or better rank.
// With maxDist == 0 the search reduces to leftmost, non-overlapping exact
// substring search.
//
// Worst case time per call is O(len(subject) * len(pattern) * maxDist).
// FindNearMatches keeps no state between calls and may be used from many
// goroutines at once.
package nearmatch
