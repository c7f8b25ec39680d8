// Package span addresses byte ranges of a logical source that may have been
// delivered in several chunks. Offsets are cumulative over all chunks.
package span

import "strconv"

// Span is a half-open byte range [Start, End).
type Span struct {
	Start int
	End   int
}

// New returns the span [start, end).
func New(start, end int) Span {
	if end < start {
		panic("span: end before start")
	}
	return Span{Start: start, End: end}
}

// ByLen returns the span of n bytes starting at start.
func ByLen(start, n int) Span {
	return New(start, start+n)
}

// EmptyAt returns an empty span positioned at pos.
func EmptyAt(pos int) Span {
	return Span{Start: pos, End: pos}
}

// Len returns the number of bytes covered.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool { return s.Start == s.End }

// Extend grows the span by n bytes at its end.
func (s Span) Extend(n int) Span {
	return Span{Start: s.Start, End: s.End + n}
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

// Of returns the text the span addresses in src, where src is the logical
// source starting at offset zero.
func (s Span) Of(src string) string {
	return src[s.Start:s.End]
}

func (s Span) String() string {
	return strconv.Itoa(s.Start) + ":" + strconv.Itoa(s.End)
}
