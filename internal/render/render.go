// Package render turns a grid (and an optional previous grid) into the ANSI
// byte stream that transforms one terminal screen into the other, via full
// redraw or line-diff delta.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/rune-tui/rune/internal/ansitok"
	"github.com/rune-tui/rune/internal/grid"
	"github.com/rune-tui/rune/internal/styledtext"
)

// Strategy selects how a frame is rendered.
type Strategy int

const (
	Full Strategy = iota
	Delta
	// ScrollOptimized is reserved; Render falls back to Delta for it.
	ScrollOptimized
)

const (
	hideCursor     = "\x1b[?25l"
	showCursor     = "\x1b[?25h"
	eraseDisplay   = "\x1b[2J"
	eraseLine      = "\x1b[2K"
	cursorHome     = "\x1b[H"
	enterAltScreen = "\x1b[?1049h"
	exitAltScreen  = "\x1b[?1049l"
)

func cursorPosition(row, col int) string {
	return fmt.Sprintf("\x1b[%d;%dH", row, col)
}

// Stats reports what a Render call actually did.
type Stats struct {
	BytesWritten int
	ChangedLines int
	TotalLines   int
	Strategy     Strategy
	Duration     time.Duration
}

// Render emits the ANSI bytes needed to transform prev (nil if there is no
// previous frame) into next under the given strategy, returning the bytes
// and stats describing the work done.
func Render(next grid.TerminalGrid, prev *grid.TerminalGrid, strategy Strategy, useAlternateScreen bool) ([]byte, Stats) {
	start := time.Now()
	if strategy == ScrollOptimized {
		strategy = Delta
	}

	var out []byte
	var changed int
	switch {
	case strategy == Full || prev == nil:
		out, changed = renderFull(next, prev == nil && useAlternateScreen)
	default:
		out, changed = renderDelta(next, *prev)
	}

	return out, Stats{
		BytesWritten: len(out),
		ChangedLines: changed,
		TotalLines:   next.Height,
		Strategy:     strategy,
		Duration:     time.Since(start),
	}
}

func renderFull(g grid.TerminalGrid, prependAltScreen bool) ([]byte, int) {
	var b strings.Builder
	if prependAltScreen {
		b.WriteString(enterAltScreen)
	}
	b.WriteString(hideCursor)
	b.WriteString(eraseDisplay)
	b.WriteString(cursorHome)

	state := styledtext.TextAttributes{}
	for i := 0; i < g.Height; i++ {
		writeRow(&b, g.Rows[i], &state)
		if i != g.Height-1 {
			b.WriteString("\r\n")
		}
	}
	if !state.IsDefault() {
		b.WriteString("\x1b[0m")
		state = styledtext.TextAttributes{}
	}
	b.WriteString(showCursor)
	return []byte(b.String()), g.Height
}

func renderDelta(next, prev grid.TerminalGrid) ([]byte, int) {
	changedRows := prev.ChangedLines(next)
	var b strings.Builder
	var state styledtext.TextAttributes
	for _, row := range changedRows {
		b.WriteString(cursorPosition(row+1, 1))
		b.WriteString(eraseLine)
		state = styledtext.TextAttributes{}
		writeRow(&b, next.Rows[row], &state)
	}
	if !state.IsDefault() {
		b.WriteString("\x1b[0m")
	}
	return []byte(b.String()), len(changedRows)
}

func writeRow(b *strings.Builder, row []grid.Cell, state *styledtext.TextAttributes) {
	for _, cell := range row {
		if cell.Continuation {
			continue
		}
		if diff := ansitok.MinimalDiff(*state, cell.Attributes); diff != nil {
			b.WriteString(string(ansitok.Encode([]ansitok.Token{ansitok.SGRToken(diff)})))
		}
		b.WriteString(cell.Cluster)
		*state = cell.Attributes
	}
}

// Teardown emits the sequence to leave an active session cleanly: exits the
// alternate screen if it was entered, and always ensures the cursor is
// shown.
func Teardown(wasAlternateScreen bool) []byte {
	var b strings.Builder
	if wasAlternateScreen {
		b.WriteString(exitAltScreen)
	}
	b.WriteString(showCursor)
	return []byte(b.String())
}
