package nearmatch

import "github.com/agnivade/levenshtein"

// Distance returns the Levenshtein distance between a and b, counted in
// runes.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// BoundedDistance returns the Levenshtein distance between a and b if it is
// at most limit. Only cells within limit of the diagonal are evaluated, so
// the cost is O(len(a) * limit). The boolean is false when the distance
// exceeds limit, in which case the returned value is limit+1.
func BoundedDistance(a, b string, limit int) (int, bool) {
	if limit < 0 {
		return 0, false
	}
	ra, rb := []rune(a), []rune(b)
	limit = min(limit, max(len(ra), len(rb)))
	if abs(len(ra)-len(rb)) > limit {
		return limit + 1, false
	}

	dist := limit + 1
	sweep(ra, rb, limit, func(n, d int) {
		if n == len(ra) {
			dist = d
		}
	})
	return dist, dist <= limit
}

// Similarity returns a normalized similarity score between a and b, from 0.0
// (completely different) to 1.0 (identical):
// 1 - distance / max(len(a), len(b)).
func Similarity(a, b string) float64 {
	maxLen := max(len([]rune(a)), len([]rune(b)))
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(maxLen)
}

// FindBestMatch returns the candidate most similar to target, its similarity
// and whether that similarity reaches threshold.
func FindBestMatch(target string, candidates []string, threshold float64) (string, float64, bool) {
	var bestMatch string
	var bestSimilarity float64

	for _, candidate := range candidates {
		sim := Similarity(target, candidate)
		if sim > bestSimilarity {
			bestSimilarity = sim
			bestMatch = candidate
		}
	}

	if bestSimilarity >= threshold {
		return bestMatch, bestSimilarity, true
	}

	return "", 0, false
}

// sweep runs a banded edit distance table with one row per rune of a and one
// column per rune of b. For every row n whose last cell (the distance between
// a[:n] and all of b) is within limit, fn is called with n and that distance.
// Rows are visited in increasing order and the sweep stops as soon as every
// cell in a row exceeds limit, since later rows can only grow.
func sweep(a, b []rune, limit int, fn func(n, dist int)) {
	m := len(b)
	if m == 0 {
		for n := 0; n <= min(len(a), limit); n++ {
			fn(n, n)
		}
		return
	}

	inf := limit + 1
	prev := make([]int, m+1)
	cur := make([]int, m+1)
	for j := range prev {
		prev[j] = inf
		cur[j] = inf
		if j <= limit {
			prev[j] = j
		}
	}
	if m <= limit {
		fn(0, m)
	}

	for i := 1; i <= len(a); i++ {
		cur[0] = inf
		if i <= limit {
			cur[0] = i
		}
		rowMin := cur[0]

		lo := max(1, i-limit)
		hi := min(m, i+limit)
		if lo > m {
			return
		}
		if lo > 1 {
			cur[lo-1] = inf
		}

		ai := a[i-1]
		for j := lo; j <= hi; j++ {
			v := prev[j-1]
			if ai != b[j-1] {
				v++
			}
			if d := prev[j] + 1; d < v {
				v = d
			}
			if d := cur[j-1] + 1; d < v {
				v = d
			}
			if v > inf {
				v = inf
			}
			cur[j] = v
			if v < rowMin {
				rowMin = v
			}
		}
		if hi < m {
			cur[hi+1] = inf
		}

		if rowMin > limit {
			return
		}
		if hi == m && cur[m] <= limit {
			fn(i, cur[m])
		}

		prev, cur = cur, prev
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
