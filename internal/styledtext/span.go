package styledtext

import "strings"

// TextSpan is a contiguous string fragment plus the attributes it is
// rendered with. Empty-string spans are legal (they carry a style change
// with no visible text, e.g. immediately before a following span).
type TextSpan struct {
	Text       string
	Attributes TextAttributes
}

// StyledText is an ordered sequence of spans.
type StyledText struct {
	Spans []TextSpan
}

// New builds a StyledText from the given spans.
func New(spans ...TextSpan) StyledText {
	return StyledText{Spans: spans}
}

// PlainText returns the concatenation of every span's text. Width
// operations over a StyledText treat this concatenation as one Unicode
// text stream.
func (s StyledText) PlainText() string {
	var b strings.Builder
	for _, sp := range s.Spans {
		b.WriteString(sp.Text)
	}
	return b.String()
}
