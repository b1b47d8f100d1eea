package validator

import (
	"slices"
	"strings"

	"github.com/jokarl/banlist/internal/types"
)

// MergeSpans sorts spans by start and merges those that overlap. The merged
// span keeps the reason of the first span it absorbed.
func MergeSpans(spans []types.ErrorSpan) []types.ErrorSpan {
	if len(spans) == 0 {
		return nil
	}

	sorted := slices.Clone(spans)
	slices.SortStableFunc(sorted, func(a, b types.ErrorSpan) int {
		return a.Start - b.Start
	})

	merged := []types.ErrorSpan{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start < last.End {
			last.End = max(last.End, s.End)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// ApplyFix replaces every span of value with replacement. Spans are rune
// offsets; overlapping spans are merged first so each character is removed
// at most once.
func ApplyFix(value string, spans []types.ErrorSpan, replacement string) string {
	runes := []rune(value)

	var builder strings.Builder
	last := 0
	for _, s := range MergeSpans(spans) {
		start := min(max(s.Start, last), len(runes))
		end := min(max(s.End, start), len(runes))
		if end == start {
			continue
		}
		builder.WriteString(string(runes[last:start]))
		builder.WriteString(replacement)
		last = end
	}

	if last < len(runes) {
		builder.WriteString(string(runes[last:]))
	}

	return builder.String()
}
