// Package grid implements the cell-addressable terminal grid model: turning
// a rendered Frame (ANSI-styled lines) into a TerminalGrid of per-cell
// clusters and attributes, and diffing two grids down to the set of rows
// that changed.
package grid

import (
	"github.com/rune-tui/rune/internal/ansitok"
	"github.com/rune-tui/rune/internal/styledtext"
	"github.com/rune-tui/rune/internal/uwidth"
)

// Cell is one grid column. A width-2 cluster occupies its own Cell plus a
// following continuation Cell so that row length always equals Width.
type Cell struct {
	Cluster      string
	Width        int
	Attributes   styledtext.TextAttributes
	Continuation bool
}

func blankCell() Cell { return Cell{Cluster: " ", Width: 1} }

// TerminalGrid is a rectangular array of cells, one row per line.
type TerminalGrid struct {
	Width  int
	Height int
	Rows   [][]Cell
}

// Frame is a rendered snapshot: Height lines of ANSI-styled text, each
// logically Width display columns wide (lines may be padded or truncated
// when converted to a grid).
type Frame struct {
	Width  int
	Height int
	Lines  []string
}

// ToGrid parses each line's embedded ANSI incrementally through the SGR
// state machine, emitting cells that carry the live attributes at each
// position. SGR state does not carry across lines: each line starts from
// default attributes, matching how the renderer emits one line at a time.
func (f Frame) ToGrid() TerminalGrid {
	g := TerminalGrid{Width: f.Width, Height: f.Height, Rows: make([][]Cell, f.Height)}
	for i := 0; i < f.Height; i++ {
		var line string
		if i < len(f.Lines) {
			line = f.Lines[i]
		}
		g.Rows[i] = rowFromANSI(line, f.Width)
	}
	return g
}

func rowFromANSI(line string, width int) []Cell {
	row := make([]Cell, 0, width)
	state := styledtext.TextAttributes{}
	for _, tok := range ansitok.Tokenize([]byte(line)) {
		switch tok.Kind {
		case ansitok.SGR:
			ansitok.ApplySGR(&state, tok.Params)
		case ansitok.Text:
			for _, cl := range uwidth.Clusters(tok.Text) {
				if len(row) >= width {
					break
				}
				w := uwidth.Cluster(cl)
				if w <= 0 {
					w = 1
				}
				row = append(row, Cell{Cluster: cl, Width: w, Attributes: state})
				if w == 2 && len(row) < width {
					row = append(row, Cell{Cluster: "", Width: 0, Attributes: state, Continuation: true})
				}
			}
		}
	}
	for len(row) < width {
		row = append(row, blankCell())
	}
	if len(row) > width {
		row = row[:width]
	}
	return row
}

// ChangedLines returns the row indices where any cell (cluster, width, or
// attributes) differs between g and other. A dimension mismatch is treated
// as every row having changed.
func (g TerminalGrid) ChangedLines(other TerminalGrid) []int {
	if g.Width != other.Width || g.Height != other.Height {
		all := make([]int, g.Height)
		for i := range all {
			all[i] = i
		}
		return all
	}
	var changed []int
	for i := 0; i < g.Height; i++ {
		if !rowsEqual(g.Rows[i], other.Rows[i]) {
			changed = append(changed, i)
		}
	}
	return changed
}

func rowsEqual(a, b []Cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Cluster != b[i].Cluster || a[i].Width != b[i].Width || a[i].Continuation != b[i].Continuation {
			return false
		}
		if !a[i].Attributes.Equal(b[i].Attributes) {
			return false
		}
	}
	return true
}
