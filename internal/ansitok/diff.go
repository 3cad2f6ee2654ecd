package ansitok

import "github.com/rune-tui/rune/internal/styledtext"

// MinimalDiff computes the shortest SGR parameter sequence that transforms
// live state prev into next. It returns nil when nothing needs to be
// emitted (prev and next are both default, or are otherwise textually
// identical in effect).
func MinimalDiff(prev, next Attributes) []int {
	if next.IsDefault() {
		if prev.IsDefault() {
			return nil
		}
		return []int{0}
	}

	var disable, colorReset, enable, colorParams []int

	boldDimOff := (prev.Bold && !next.Bold) || (prev.Dim && !next.Dim)
	if boldDimOff {
		disable = append(disable, 22)
	}
	if next.Bold && (!prev.Bold || boldDimOff) {
		enable = append(enable, 1)
	}
	if next.Dim && (!prev.Dim || boldDimOff) {
		enable = append(enable, 2)
	}

	if prev.Italic && !next.Italic {
		disable = append(disable, 23)
	}
	if next.Italic && !prev.Italic {
		enable = append(enable, 3)
	}

	if prev.Underline && !next.Underline {
		disable = append(disable, 24)
	}
	if next.Underline && !prev.Underline {
		enable = append(enable, 4)
	}

	if prev.Inverse && !next.Inverse {
		disable = append(disable, 27)
	}
	if next.Inverse && !prev.Inverse {
		enable = append(enable, 7)
	}

	if prev.Strikethrough && !next.Strikethrough {
		disable = append(disable, 29)
	}
	if next.Strikethrough && !prev.Strikethrough {
		enable = append(enable, 9)
	}

	fgChanged := !colorPtrEqual(prev.Foreground, next.Foreground)
	if fgChanged {
		if next.Foreground == nil {
			colorReset = append(colorReset, 39)
		} else {
			colorParams = append(colorParams, fgParams(*next.Foreground)...)
		}
	}

	bgChanged := !colorPtrEqual(prev.Background, next.Background)
	if bgChanged {
		if next.Background == nil {
			colorReset = append(colorReset, 49)
		} else {
			colorParams = append(colorParams, bgParams(*next.Background)...)
		}
	}

	var out []int
	out = append(out, disable...)
	out = append(out, colorReset...)
	out = append(out, enable...)
	out = append(out, colorParams...)
	return out
}

func colorPtrEqual(a, b *Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func fgParams(c Color) []int {
	switch c.Kind {
	case styledtext.ColorBasic16:
		if c.Index < 8 {
			return []int{30 + int(c.Index)}
		}
		return []int{90 + int(c.Index) - 8}
	case styledtext.ColorPalette256:
		return []int{38, 5, int(c.Index)}
	case styledtext.ColorRGB:
		return []int{38, 2, int(c.R), int(c.G), int(c.B)}
	}
	return nil
}

func bgParams(c Color) []int {
	switch c.Kind {
	case styledtext.ColorBasic16:
		if c.Index < 8 {
			return []int{40 + int(c.Index)}
		}
		return []int{100 + int(c.Index) - 8}
	case styledtext.ColorPalette256:
		return []int{48, 5, int(c.Index)}
	case styledtext.ColorRGB:
		return []int{48, 2, int(c.R), int(c.G), int(c.B)}
	}
	return nil
}
