// Package reconcile decides, given a new grid and the reconciler's running
// state, which render strategy to use and carries the adaptive-quality and
// coalescing bookkeeping spec'd for the renderer's driving loop.
package reconcile

import (
	"time"

	"github.com/rune-tui/rune/internal/grid"
	"github.com/rune-tui/rune/internal/render"
)

// Mode is the configured rendering mode.
type Mode int

const (
	// Automatic picks full vs. delta per frame using the change-percentage
	// and byte-estimation heuristics below.
	Automatic Mode = iota
	FullRedrawMode
	LineDiffMode
)

const (
	changePctFullThreshold  = 0.70
	periodicFullRedrawFrame = 100
	periodicFullRedrawSecs  = 30 * time.Second
	coalescingWindow        = 16 * time.Millisecond
	adaptiveQualityFloor    = 0.7
)

// Config holds the reconciler's tunables.
type Config struct {
	Mode            Mode
	DeltaThreshold  float64 // starts at 0.30, adapts within [0.05, 0.60]
	MaxFrameRate    int     // fpsCap, default 60
	ForceFullRedraw bool
}

// DefaultConfig returns the reconciler's baseline defaults.
func DefaultConfig() Config {
	return Config{Mode: Automatic, DeltaThreshold: 0.30, MaxFrameRate: 60}
}

// State is the reconciler's running counters, updated across frames.
type State struct {
	CurrentGrid           *grid.TerminalGrid
	FramesSinceFullRedraw int
	LastFullRedrawAt      time.Time
	LastFrameAt           time.Time
	AdaptiveQuality       float64 // EMA, starts at 1.0
	FramesDropped         int
}

// NewState returns a fresh reconciler State with AdaptiveQuality at its
// neutral starting point.
func NewState() State {
	return State{AdaptiveQuality: 1.0}
}

// estimateFullBytes and estimateDeltaBytes are a byte-estimation heuristic:
// these are not exact wire-byte counts, only values the strategy decision
// compares against the threshold.
func estimateFullBytes(width, height int) int {
	return width*height*2 + 50
}

func estimateDeltaBytes(width int, changedLines []int) int {
	total := 0
	for range changedLines {
		total += width*2 + 12
	}
	return total
}

// SelectStrategy decides between a full redraw and a delta update, in
// order of precedence: forced/no-prior-grid, configured mode override,
// dimension change, high change ratio, estimated-byte comparison, and
// finally periodic/quality-driven forced redraws.
func SelectStrategy(next grid.TerminalGrid, cfg Config, st State, now time.Time) render.Strategy {
	if cfg.ForceFullRedraw || st.CurrentGrid == nil {
		return render.Full
	}
	switch cfg.Mode {
	case FullRedrawMode:
		return render.Full
	case LineDiffMode:
		return render.Delta
	}

	if next.Width != st.CurrentGrid.Width || next.Height != st.CurrentGrid.Height {
		return render.Full
	}
	changed := st.CurrentGrid.ChangedLines(next)
	changePct := float64(len(changed)) / float64(next.Height)
	if changePct > changePctFullThreshold {
		return render.Full
	}
	fullBytes := estimateFullBytes(next.Width, next.Height)
	deltaBytes := estimateDeltaBytes(next.Width, changed)
	if float64(deltaBytes) >= (1-cfg.DeltaThreshold)*float64(fullBytes) {
		return render.Full
	}

	if st.FramesSinceFullRedraw >= periodicFullRedrawFrame ||
		(!st.LastFullRedrawAt.IsZero() && now.Sub(st.LastFullRedrawAt) >= periodicFullRedrawSecs) ||
		st.AdaptiveQuality < adaptiveQualityFloor {
		return render.Full
	}
	return render.Delta
}

// UpdateAdaptiveQuality folds one frame's render duration into the EMA and
// adjusts DeltaThreshold from that frame's quality: raised by 0.05 below
// 0.7, lowered by 0.02 above 0.9, then clamped to [0.05, 0.60].
func UpdateAdaptiveQuality(cfg *Config, st *State, renderDuration, targetFrameInterval time.Duration) {
	ratio := float64(renderDuration) / float64(targetFrameInterval)
	if ratio > 1 {
		ratio = 1
	}
	quality := 1 - ratio

	const emaRate = 0.10
	st.AdaptiveQuality = st.AdaptiveQuality*(1-emaRate) + quality*emaRate

	switch {
	case quality < 0.7:
		cfg.DeltaThreshold += 0.05
	case quality > 0.9:
		cfg.DeltaThreshold -= 0.02
	}
	if cfg.DeltaThreshold < 0.05 {
		cfg.DeltaThreshold = 0.05
	}
	if cfg.DeltaThreshold > 0.60 {
		cfg.DeltaThreshold = 0.60
	}
}

// Commit records that strategy was rendered successfully against next,
// updating CurrentGrid and the full-redraw counters.
func Commit(st *State, next grid.TerminalGrid, strategy render.Strategy, now time.Time) {
	g := next
	st.CurrentGrid = &g
	st.LastFrameAt = now
	if strategy == render.Full {
		st.FramesSinceFullRedraw = 0
		st.LastFullRedrawAt = now
	} else {
		st.FramesSinceFullRedraw++
	}
}

// ShouldDropPendingFrame implements the backpressure rule: if the previous
// render took longer than twice the coalescing window, the current pending
// frame is dropped in favor of whatever is pending by the next scheduled
// tick.
func ShouldDropPendingFrame(previousRenderDuration time.Duration) bool {
	return previousRenderDuration > 2*coalescingWindow
}

// CoalescingWindow is the fixed delay between a render() call and the
// coalesced update firing.
func CoalescingWindow() time.Duration { return coalescingWindow }
