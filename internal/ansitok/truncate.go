package ansitok

import "github.com/rune-tui/rune/internal/styledtext"

// spansFromANSI reduces a token stream to the styled spans it carries,
// applying SGR tokens to a running attribute state. Non-text, non-SGR
// tokens (cursor moves, erases, OSC, bare control) carry no display width
// and are dropped; truncateVisibleColumns operates on single rendered
// lines, which don't carry those.
func spansFromANSI(s string) []styledtext.TextSpan {
	var spans []styledtext.TextSpan
	state := Attributes{}
	for _, tok := range Tokenize([]byte(s)) {
		switch tok.Kind {
		case SGR:
			ApplySGR(&state, tok.Params)
		case Text:
			if tok.Text != "" {
				spans = append(spans, styledtext.TextSpan{Text: tok.Text, Attributes: state})
			}
		}
	}
	return spans
}

// TruncateVisibleColumns truncates an ANSI-styled string to to display
// columns (one more when a width-2 cluster straddles the boundary, as
// described below), preserving embedded SGR sequences for the retained
// portion. Unlike WrapByDisplayWidth, the split point has no "next line" to
// carry an overflow column to, so a wide cluster straddling the boundary is
// kept whole rather than pushed out entirely (SplitByDisplayWidth's
// lastColumnGuard=false behavior). A trailing reset is appended only when
// truncation actually removed content and the retained text ends in a
// non-default style, so untouched strings round-trip byte-for-byte.
func TruncateVisibleColumns(ansiString string, to int) string {
	styled := styledtext.New(spansFromANSI(ansiString)...)
	left, right := styledtext.SplitByDisplayWidth(styled, to, false)
	if len(right.Spans) == 0 {
		return ansiString
	}

	var toks []Token
	state := Attributes{}
	for _, sp := range left.Spans {
		if diff := MinimalDiff(state, sp.Attributes); diff != nil {
			toks = append(toks, SGRToken(diff))
		}
		if sp.Text != "" {
			toks = append(toks, TextToken(sp.Text))
		}
		state = sp.Attributes
	}
	if len(right.Spans) > 0 && !state.IsDefault() {
		toks = append(toks, SGRToken([]int{0}))
	}
	return string(Encode(toks))
}
