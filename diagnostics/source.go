package diagnostics

import (
	"strings"
	"unicode/utf8"
)

type Source struct {
	Name string
	Text string
}

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int
	Column int
}

// Position converts a byte offset to a line and column.
func (s Source) Position(offset int) Position {
	offset = max(0, min(offset, len(s.Text)))
	before := s.Text[:offset]
	line := strings.Count(before, "\n") + 1
	lineStart := strings.LastIndexByte(before, '\n') + 1
	return Position{
		Line:   line,
		Column: utf8.RuneCountInString(before[lineStart:]) + 1,
	}
}

// Line returns the text of a 1-based line number and the byte offset it starts at.
func (s Source) Line(n int) (string, int) {
	start := 0
	for i := 1; i < n; i++ {
		idx := strings.IndexByte(s.Text[start:], '\n')
		if idx < 0 {
			return "", len(s.Text)
		}
		start += idx + 1
	}
	end := strings.IndexByte(s.Text[start:], '\n')
	if end < 0 {
		return strings.TrimSuffix(s.Text[start:], "\r"), start
	}
	return strings.TrimSuffix(s.Text[start:start+end], "\r"), start
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}

const tabWidth = 4

// displayWidth is the number of columns text takes once tabs are expanded.
func displayWidth(text string) int {
	n := 0
	for _, r := range text {
		if r == '\t' {
			n += tabWidth
			continue
		}
		n += runeWidth(r)
	}
	return n
}

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

// pad writes the indentation that lines up with text.
func pad(sb *strings.Builder, text string) {
	sb.WriteString(strings.Repeat(" ", displayWidth(text)))
}

func underline(sb *strings.Builder, text string) {
	sb.WriteString(strings.Repeat("^", max(1, displayWidth(text))))
}
