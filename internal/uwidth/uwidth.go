// Package uwidth computes terminal display width for runes, grapheme
// clusters, and strings, respecting East Asian Width, emoji presentation
// (including ZWJ sequences), combining marks, and regional-indicator pairs.
package uwidth

import (
	"unicode"

	"github.com/clipperhouse/displaywidth"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const (
	zwj              = 0x200D
	variationSelLo   = 0xFE00
	variationSelHi   = 0xFE0F
	emojiModifierLo  = 0x1F3FB
	emojiModifierHi  = 0x1F3FF
	regionalIndicLo  = 0x1F1E6
	regionalIndicHi  = 0x1F1FF
)

// unicodeVersion is the Unicode Character Database version the East Asian
// Width and emoji tables in this package (and in clipperhouse/displaywidth,
// which backs the fast path below) were generated against.
const unicodeVersion = "15.1.0"

// UnicodeVersion returns the version of the Unicode Character Database the
// width tables in this package were generated against. Lookups elsewhere in
// this package are O(1) amortized (displaywidth's tiered tables, or a single
// grapheme-cluster pass for the rare complex case).
func UnicodeVersion() string {
	return unicodeVersion
}

// Rune returns the display width of a single Unicode scalar: 0 for
// combining marks, zero-width formatting controls, variation selectors and
// ZWJ, and C0/C1 controls other than TAB (which is 1); 2 for East Asian
// Wide/Fullwidth scalars and emoji-presentation scalars; 1 otherwise.
func Rune(r rune) int {
	switch {
	case r == '\t':
		return 1
	case r < 0x20 || (r >= 0x7F && r < 0xA0):
		return 0
	case r == zwj:
		return 0
	case r >= variationSelLo && r <= variationSelHi:
		return 0
	case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r), unicode.Is(unicode.Mc, r):
		return 0
	}
	return runewidth.RuneWidth(r)
}

// Cluster returns the display width of a single extended grapheme cluster.
// A cluster containing any Extended_Pictographic scalar, or a
// regional-indicator pair, is width 2. Otherwise the cluster's width is the
// width of its first non-zero-width scalar (subsequent combining scalars
// contribute 0). A cluster made only of zero-width scalars has width 0.
func Cluster(cluster string) int {
	if cluster == "" {
		return 0
	}
	runes := []rune(cluster)
	if isRegionalIndicatorPair(runes) {
		return 2
	}
	for _, r := range runes {
		if isExtendedPictographic(r) {
			return 2
		}
	}
	for _, r := range runes {
		w := Rune(r)
		if w != 0 {
			return w
		}
	}
	return 0
}

func isRegionalIndicatorPair(runes []rune) bool {
	if len(runes) != 2 {
		return false
	}
	for _, r := range runes {
		if r < regionalIndicLo || r > regionalIndicHi {
			return false
		}
	}
	return true
}

func isExtendedPictographic(r rune) bool {
	if r >= emojiModifierLo && r <= emojiModifierHi {
		return true
	}
	return unicode.Is(extendedPictographic, r)
}

// String returns the display width of s, summing grapheme-cluster widths.
//
// Most real terminal content is plain ASCII or CJK text, which
// clipperhouse/displaywidth classifies in O(1) per rune without needing
// grapheme segmentation. Only when s contains a scalar that can participate
// in a non-trivial cluster (ZWJ, variation selector, emoji modifier,
// regional indicator, or a combining mark) do we fall back to segmenting s into extended grapheme
// clusters with uniseg and summing Cluster widths, which is the only path
// guaranteed to match the per-cluster width rule exactly.
func String(s string) int {
	if s == "" {
		return 0
	}
	if !hasComplexScalar(s) {
		return displaywidth.String(s)
	}
	total := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		total += Cluster(gr.Str())
	}
	return total
}

func hasComplexScalar(s string) bool {
	for _, r := range s {
		switch {
		case r == zwj:
			return true
		case r >= variationSelLo && r <= variationSelHi:
			return true
		case r >= emojiModifierLo && r <= emojiModifierHi:
			return true
		case r >= regionalIndicLo && r <= regionalIndicHi:
			return true
		case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r), unicode.Is(unicode.Mc, r):
			return true
		}
	}
	return false
}

// Clusters splits s into extended grapheme clusters, in order.
func Clusters(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}
