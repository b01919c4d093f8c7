package idlc

import (
	"fmt"
	"sort"
	"unicode/utf8"
)

// Span is a half-open offset range [Start, End) into a single source file;
// the lexer records rune offsets. It exists for diagnostics.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a Span from a start/end byte offset pair.
func NewSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

func (s Span) String() string {
	if s.Start == s.End {
		return fmt.Sprintf("%d", s.Start)
	}
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Location is a human-facing position: 1-based line, 1-based rune column,
// and the byte cursor it was derived from.
type Location struct {
	Line   int
	Column int
	Cursor int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// LineIndex converts byte cursors into Locations by binary-searching
// precomputed line-start offsets. Construction is O(n) over the source
// text; lookups are O(log lines). Diagnostic.Error does not use a
// LineIndex; it prints a Span's raw offsets.
type LineIndex struct {
	input     []byte
	lineStart []int
}

func NewLineIndex(input []byte) *LineIndex {
	lineStart := make([]int, 1, 64)
	lineStart[0] = 0
	for i, b := range input {
		if b == '\n' {
			lineStart = append(lineStart, i+1)
		}
	}
	return &LineIndex{input: input, lineStart: lineStart}
}

func (li *LineIndex) LocationAt(cursor int) Location {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(li.input) {
		cursor = len(li.input)
	}

	lineIdx := sort.Search(len(li.lineStart), func(i int) bool {
		return li.lineStart[i] > cursor
	}) - 1
	if lineIdx < 0 {
		lineIdx = 0
	}

	lineStart := li.lineStart[lineIdx]
	col := utf8.RuneCount(li.input[lineStart:cursor]) + 1

	return Location{Line: lineIdx + 1, Column: col, Cursor: cursor}
}

// FormatSpan renders a Span as "line:col" or "line:col..line:col" using
// this index. Callers that don't have a LineIndex handy (e.g. before a
// file is read) fall back to Span.String's raw byte offsets.
func (li *LineIndex) FormatSpan(s Span) string {
	start := li.LocationAt(s.Start)
	end := li.LocationAt(s.End)
	if start == end {
		return start.String()
	}
	if start.Line == end.Line {
		return fmt.Sprintf("%d:%d..%d", start.Line, start.Column, end.Column)
	}
	return fmt.Sprintf("%s..%s", start, end)
}
