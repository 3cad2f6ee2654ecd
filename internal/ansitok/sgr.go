package ansitok

import "github.com/rune-tui/rune/internal/styledtext"

// ApplySGR mutates attrs in place according to one SGR token's parameter
// groups. Incomplete extended sequences (38/48 without a valid following
// group) ignore just that group and continue with the remaining
// parameters.
func ApplySGR(attrs *Attributes, params []int) {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			*attrs = Attributes{}
		case p == 1:
			attrs.Bold = true
		case p == 2:
			attrs.Dim = true
		case p == 22:
			attrs.Bold = false
			attrs.Dim = false
		case p == 3:
			attrs.Italic = true
		case p == 23:
			attrs.Italic = false
		case p == 4:
			attrs.Underline = true
		case p == 24:
			attrs.Underline = false
		case p == 7:
			attrs.Inverse = true
		case p == 27:
			attrs.Inverse = false
		case p == 9:
			attrs.Strikethrough = true
		case p == 29:
			attrs.Strikethrough = false
		case p >= 30 && p <= 37:
			c := styledtext.Basic16(uint8(p - 30))
			attrs.Foreground = &c
		case p == 39:
			attrs.Foreground = nil
		case p >= 40 && p <= 47:
			c := styledtext.Basic16(uint8(p - 40))
			attrs.Background = &c
		case p == 49:
			attrs.Background = nil
		case p >= 90 && p <= 97:
			c := styledtext.Basic16(uint8(p-90) + 8)
			attrs.Foreground = &c
		case p >= 100 && p <= 107:
			c := styledtext.Basic16(uint8(p-100) + 8)
			attrs.Background = &c
		case p == 38 || p == 48:
			consumed, col, ok := parseExtendedColor(params[i:])
			if ok {
				if p == 38 {
					attrs.Foreground = col
				} else {
					attrs.Background = col
				}
			}
			i += consumed - 1
		}
	}
}

// parseExtendedColor parses the "5;n" (palette256) or "2;r;g;b" (rgb) group
// following a 38/48 introducer. Returns how many parameter slots (including
// the introducer) were consumed, the resolved color (nil if invalid), and
// whether the group was well-formed enough to resolve a color at all.
func parseExtendedColor(params []int) (consumed int, col *Color, ok bool) {
	if len(params) < 2 {
		return len(params), nil, false
	}
	switch params[1] {
	case 5:
		if len(params) < 3 {
			return len(params), nil, false
		}
		n := params[2]
		if !in256(n) {
			return 3, nil, false
		}
		c := styledtext.Palette256(uint8(n))
		return 3, &c, true
	case 2:
		if len(params) < 5 {
			return len(params), nil, false
		}
		r, g, b := params[2], params[3], params[4]
		if !in256(r) || !in256(g) || !in256(b) {
			return 5, nil, false
		}
		c := styledtext.RGB(uint8(r), uint8(g), uint8(b))
		return 5, &c, true
	default:
		return 2, nil, false
	}
}

func in256(v int) bool { return v >= 0 && v <= 255 }
