package ansitok

import (
	"reflect"
	"testing"
)

func TestTokenizeRoundTrip(t *testing.T) {
	cases := []string{
		"hello world",
		"\x1b[31mred\x1b[0m",
		"\x1b[1;38;5;200mpalette\x1b[0m",
		"\x1b[2;1H",
		"\x1b[2J",
		"\x1b[2K",
		"\x1b[A",
		"\x1b[1A",
		"\x1b[0A",
		"\x1b[J",
		"\x1b[0J",
		"\x1b]0;title\x07",
		"\x1b]8;;http://example.com\x1b\\link\x1b]8;;\x1b\\",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			toks := Tokenize([]byte(s))
			got := string(Encode(toks))
			if got != s {
				t.Errorf("round trip mismatch: got %q, want %q (tokens=%+v)", got, s, toks)
			}
		})
	}
}

func TestTokenizeUnterminatedOSCIsText(t *testing.T) {
	s := "\x1b]0;no terminator here"
	toks := Tokenize([]byte(s))
	for _, tok := range toks {
		if tok.Kind == OSC || tok.Kind == OSCExt {
			t.Fatalf("unterminated OSC must not produce an OSC token, got %+v", tok)
		}
	}
	if string(Encode(toks)) != s {
		t.Fatalf("unterminated OSC must round-trip as text: got %q", string(Encode(toks)))
	}
}

func TestTokenizeCursorDefaults(t *testing.T) {
	toks := Tokenize([]byte("\x1b[A"))
	if len(toks) != 1 || toks[0].Kind != Cursor || toks[0].CursorN != 1 || toks[0].CursorFinal != 'A' {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestTokenizeEraseDefaults(t *testing.T) {
	toks := Tokenize([]byte("\x1b[K"))
	if len(toks) != 1 || toks[0].Kind != Erase || toks[0].EraseMode != 0 || toks[0].EraseKind != 'K' {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
}

func TestTokenizeSGRParams(t *testing.T) {
	toks := Tokenize([]byte("\x1b[1;38;5;200m"))
	if len(toks) != 1 || toks[0].Kind != SGR {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	want := []int{1, 38, 5, 200}
	if !reflect.DeepEqual(toks[0].Params, want) {
		t.Fatalf("got params %v, want %v", toks[0].Params, want)
	}
}
