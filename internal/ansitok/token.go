// Package ansitok implements the ANSI escape-sequence tokenizer, its
// byte-exact encoder, and the SGR (Select Graphic Rendition) state machine
// that computes minimal-diff attribute transitions between styled spans.
package ansitok

import "github.com/rune-tui/rune/internal/styledtext"

// TokenKind discriminates the ANSIToken tagged union.
type TokenKind int

const (
	Text TokenKind = iota
	SGR
	Cursor
	Erase
	OSC
	OSCExt
	Control
)

// Terminator distinguishes how an OSC sequence was closed.
type Terminator int

const (
	TerminatorNone Terminator = iota
	TerminatorBEL
	TerminatorST
)

// Token is the tagged union produced by tokenizing an ANSI-styled byte
// stream: plain text runs, SGR style changes, cursor/erase control
// sequences, and OSC sequences.
type Token struct {
	Kind TokenKind

	// Text holds the literal text for Kind == Text.
	Text string

	// Params holds SGR parameter groups for Kind == SGR.
	Params []int

	// CursorN/CursorFinal describe Kind == Cursor: ESC[<n><final> with
	// final in {A,B,C,D,E,F,G}, default n=1 when the parameter was omitted
	// on input. CursorParamExplicit records whether a parameter byte was
	// actually present in the source, so Encode can reproduce an explicit
	// "0" or "1" rather than collapsing it to the omitted-parameter form.
	CursorN             int
	CursorParamExplicit bool
	CursorFinal         byte

	// EraseMode/EraseKind describe Kind == Erase: ESC[<mode><kind> with
	// kind in {J,K}, default mode=0 when the parameter was omitted on
	// input. EraseParamExplicit records whether a parameter byte was
	// actually present, for the same reason as CursorParamExplicit.
	EraseMode          int
	EraseParamExplicit bool
	EraseKind          byte

	// OSCCmd/OSCData/OSCTerminator describe Kind == OSC and Kind == OSCExt.
	OSCCmd        string
	OSCData       string
	OSCTerminator Terminator

	// ControlRaw holds the raw escape bytes (including ESC) for Kind ==
	// Control, i.e. anything that isn't SGR/Cursor/Erase/OSC.
	ControlRaw string
}

// TextToken builds a Kind == Text token.
func TextToken(s string) Token { return Token{Kind: Text, Text: s} }

// SGRToken builds a Kind == SGR token from parameter groups.
func SGRToken(params []int) Token { return Token{Kind: SGR, Params: params} }

// Attributes is re-exported for callers that only need the styled-text
// attribute type alongside tokens; ansitok's SGR machine mutates this type.
type Attributes = styledtext.TextAttributes

// Color is re-exported for the same reason.
type Color = styledtext.Color
