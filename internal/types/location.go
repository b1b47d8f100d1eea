package types

import "github.com/rivo/uniseg"

// FileRange represents a location in a source file. Lines and columns are
// 1-based; columns count grapheme clusters, and EndColumn points just past
// the last character of the range.
type FileRange struct {
	Filename  string `json:"filename"`
	Line      int    `json:"line"`
	Column    int    `json:"column,omitempty"`
	EndLine   int    `json:"end_line,omitempty"`
	EndColumn int    `json:"end_column,omitempty"`
}

// RangeForSpan converts the rune offsets [start, end) of text into a line
// and column range. An offset inside a grapheme cluster resolves to the
// cluster that contains it.
func RangeForSpan(filename, text string, start, end int) *FileRange {
	r := &FileRange{Filename: filename}
	if end < start {
		end = start
	}

	line, col, offset := 1, 1, 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		runes := len([]rune(cluster))

		if r.Line == 0 && start < offset+runes {
			r.Line, r.Column = line, col
		}
		if r.EndLine == 0 && end > start && end-1 < offset+runes {
			r.EndLine, r.EndColumn = line, col+1
		}
		if r.EndLine != 0 {
			break
		}

		offset += runes
		if cluster == "\n" || cluster == "\r\n" {
			line++
			col = 1
		} else {
			col++
		}
	}

	if r.Line == 0 {
		r.Line, r.Column = line, col
	}
	if r.EndLine == 0 {
		if end > start {
			r.EndLine, r.EndColumn = line, col
		} else {
			r.EndLine, r.EndColumn = r.Line, r.Column
		}
	}
	return r
}
