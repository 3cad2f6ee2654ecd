package termprofile

import (
	"testing"

	"github.com/rune-tui/rune/internal/styledtext"
)

func TestResolveExplicitOverrideWins(t *testing.T) {
	t.Setenv("RUNE_TERMINAL_PROFILE", "truecolor")
	t.Setenv("NO_COLOR", "1")
	override := ANSI16
	if got := Resolve(&override, nil); got != ANSI16 {
		t.Fatalf("got %v, want ANSI16", got)
	}
}

func TestResolveEnvVarOverridesHeuristics(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm")
	t.Setenv("RUNE_TERMINAL_PROFILE", "256")
	if got := Resolve(nil, nil); got != ANSI256 {
		t.Fatalf("got %v, want ANSI256", got)
	}
}

func TestResolveHeuristicsNoColor(t *testing.T) {
	t.Setenv("RUNE_TERMINAL_PROFILE", "")
	t.Setenv("NO_COLOR", "1")
	if got := Resolve(nil, nil); got != NoColor {
		t.Fatalf("got %v, want NoColor", got)
	}
}

func TestResolveHeuristicsTrueColorFromColorterm(t *testing.T) {
	t.Setenv("RUNE_TERMINAL_PROFILE", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLORTERM", "truecolor")
	if got := Resolve(nil, nil); got != TrueColor {
		t.Fatalf("got %v, want TrueColor", got)
	}
}

func TestResolveHeuristicsDefaultsToBasic16(t *testing.T) {
	t.Setenv("RUNE_TERMINAL_PROFILE", "")
	t.Setenv("NO_COLOR", "")
	t.Setenv("COLORTERM", "")
	t.Setenv("TERM", "xterm")
	if got := Resolve(nil, nil); got != ANSI16 {
		t.Fatalf("got %v, want ANSI16", got)
	}
}

func TestDownmapNoColorStripsColor(t *testing.T) {
	c := styledtext.RGB(10, 20, 30)
	_, ok := Downmap(c, NoColor)
	if ok {
		t.Fatalf("expected NoColor downmap to report no color retained")
	}
}

func TestDownmapTrueColorPassesThrough(t *testing.T) {
	c := styledtext.RGB(10, 20, 30)
	got, ok := Downmap(c, TrueColor)
	if !ok || !got.Equal(c) {
		t.Fatalf("got %+v, want unchanged %+v", got, c)
	}
}
