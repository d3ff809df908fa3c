package program

import "fmt"

// Span is a byte range of the source text.
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	start := min(s.Offset, other.Offset)
	end := max(s.End(), other.End())
	return Span{
		Offset: start,
		Length: end - start,
	}
}

func (s Span) String() string {
	return fmt.Sprintf("%d+%d", s.Offset, s.Length)
}
