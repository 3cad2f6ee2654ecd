package ansitok

import "github.com/rune-tui/rune/internal/styledtext"

// EncodeSpans renders spans as an ANSI byte stream using MinimalDiff between
// consecutive spans' attributes, so that identical consecutive attributes
// never produce a redundant SGR token. If the live state is non-default at
// the end of the stream, a single trailing reset ("\x1b[0m") is appended.
func EncodeSpans(spans []styledtext.TextSpan) []byte {
	var toks []Token
	state := Attributes{}
	for _, sp := range spans {
		if diff := MinimalDiff(state, sp.Attributes); diff != nil {
			toks = append(toks, SGRToken(diff))
		}
		if sp.Text != "" {
			toks = append(toks, TextToken(sp.Text))
		}
		state = sp.Attributes
	}
	if !state.IsDefault() {
		toks = append(toks, SGRToken([]int{0}))
	}
	return Encode(toks)
}
