// Package termprofile resolves the active terminal color profile from an
// explicit override, environment variables, and heuristics, and downmaps
// styled-text colors to whatever that profile can render.
package termprofile

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/muesli/termenv"
	"github.com/rune-tui/rune/internal/styledtext"
)

// Profile is the resolved color capability of the active terminal.
type Profile int

const (
	TrueColor Profile = iota
	ANSI256
	ANSI16
	NoColor
)

// Resolve picks the active color profile in order of precedence: an
// explicit override wins outright; otherwise RUNE_TERMINAL_PROFILE is
// consulted; otherwise COLORTERM/TERM/NO_COLOR heuristics decide. output
// is the stream the session will render to; it is only consulted (via
// colorprofile.Detect) when COLORTERM/TERM give no signal at all, and may
// be nil, in which case os.Stdout is used.
func Resolve(override *Profile, output io.Writer) Profile {
	if override != nil {
		return *override
	}
	if p, ok := fromEnvVar(os.Getenv("RUNE_TERMINAL_PROFILE")); ok {
		return p
	}
	if output == nil {
		output = os.Stdout
	}
	return fromHeuristics(os.Getenv("COLORTERM"), os.Getenv("TERM"), os.Getenv("NO_COLOR"), output)
}

func fromEnvVar(v string) (Profile, bool) {
	switch strings.ToLower(v) {
	case "truecolor", "24bit":
		return TrueColor, true
	case "256", "xterm256":
		return ANSI256, true
	case "16", "basic16":
		return ANSI16, true
	case "none", "no_color", "nocolor":
		return NoColor, true
	default:
		return 0, false
	}
}

// fromHeuristics applies the literal COLORTERM/TERM/NO_COLOR precedence.
// When neither variable gives any signal at all (both empty), it falls
// back to colorprofile.Detect's TTY-aware probe rather than arbitrarily
// assuming a bare ANSI16 terminal.
func fromHeuristics(colorterm, term, noColor string, output io.Writer) Profile {
	if noColor != "" {
		return NoColor
	}
	lc := strings.ToLower(colorterm)
	if strings.Contains(lc, "truecolor") || strings.Contains(lc, "24bit") {
		return TrueColor
	}
	if strings.Contains(term, "256color") {
		return ANSI256
	}
	if colorterm != "" || term != "" {
		return ANSI16
	}
	return fromColorprofile(colorprofile.Detect(output, os.Environ()))
}

func fromColorprofile(p colorprofile.Profile) Profile {
	switch p {
	case colorprofile.TrueColor:
		return TrueColor
	case colorprofile.ANSI256:
		return ANSI256
	case colorprofile.ANSI:
		return ANSI16
	default:
		return NoColor
	}
}

func (p Profile) termenvProfile() termenv.Profile {
	switch p {
	case TrueColor:
		return termenv.TrueColor
	case ANSI256:
		return termenv.ANSI256
	case ANSI16:
		return termenv.ANSI
	default:
		return termenv.Ascii
	}
}

// Downmap converts c to whatever the profile p can represent: trueColor
// preserves it unchanged; ANSI256 and ANSI16 go through termenv's nearest-
// color conversion; NoColor strips the color entirely while leaving the
// caller free to preserve other SGR effect attributes.
func Downmap(c styledtext.Color, p Profile) (styledtext.Color, bool) {
	if p == NoColor {
		return styledtext.Color{}, false
	}
	if p == TrueColor {
		return c, true
	}

	var src termenv.Color
	switch c.Kind {
	case styledtext.ColorRGB:
		src = termenv.RGBColor(hexOf(c))
	case styledtext.ColorPalette256:
		src = termenv.ANSI256Color(int(c.Index))
	case styledtext.ColorBasic16:
		src = termenv.ANSIColor(int(c.Index))
	default:
		return c, false
	}

	converted := p.termenvProfile().Convert(src)
	switch v := converted.(type) {
	case termenv.ANSIColor:
		return styledtext.Basic16(uint8(v)), true
	case termenv.ANSI256Color:
		return styledtext.Palette256(uint8(v)), true
	default:
		return c, false
	}
}

func hexOf(c styledtext.Color) string {
	const hexDigits = "0123456789abcdef"
	buf := [7]byte{'#'}
	put := func(i int, v uint8) {
		buf[i] = hexDigits[v>>4]
		buf[i+1] = hexDigits[v&0xf]
	}
	put(1, c.R)
	put(3, c.G)
	put(5, c.B)
	return string(buf[:])
}
