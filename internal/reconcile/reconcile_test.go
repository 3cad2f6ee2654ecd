package reconcile

import (
	"testing"
	"time"

	"github.com/rune-tui/rune/internal/grid"
	"github.com/rune-tui/rune/internal/render"
)

func gridOf(lines []string, width int) grid.TerminalGrid {
	return grid.Frame{Width: width, Height: len(lines), Lines: lines}.ToGrid()
}

func TestSelectStrategyNoCurrentGridIsFull(t *testing.T) {
	next := gridOf([]string{"a"}, 1)
	got := SelectStrategy(next, DefaultConfig(), NewState(), time.Now())
	if got != render.Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func TestSelectStrategyForceFullRedraw(t *testing.T) {
	next := gridOf([]string{"a"}, 1)
	st := NewState()
	cur := gridOf([]string{"a"}, 1)
	st.CurrentGrid = &cur
	cfg := DefaultConfig()
	cfg.ForceFullRedraw = true
	if got := SelectStrategy(next, cfg, st, time.Now()); got != render.Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func TestSelectStrategyDimensionMismatchIsFull(t *testing.T) {
	cur := gridOf([]string{"ab"}, 2)
	next := gridOf([]string{"abc"}, 3)
	st := NewState()
	st.CurrentGrid = &cur
	if got := SelectStrategy(next, DefaultConfig(), st, time.Now()); got != render.Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func TestSelectStrategySmallChangeIsDelta(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "xxxxxxxxxx"
	}
	cur := gridOf(lines, 10)
	next := make([]string, len(lines))
	copy(next, lines)
	next[0] = "yxxxxxxxxx"
	st := NewState()
	st.CurrentGrid = &cur
	got := SelectStrategy(gridOf(next, 10), DefaultConfig(), st, time.Now())
	if got != render.Delta {
		t.Fatalf("got %v, want Delta", got)
	}
}

func TestSelectStrategyLargeChangePctIsFull(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "xxxxxxxxxx"
	}
	cur := gridOf(lines, 10)
	next := make([]string, len(lines))
	for i := range next {
		next[i] = "zzzzzzzzzz"
	}
	st := NewState()
	st.CurrentGrid = &cur
	got := SelectStrategy(gridOf(next, 10), DefaultConfig(), st, time.Now())
	if got != render.Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func smallChangeGrids() (cur, next grid.TerminalGrid) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "xxxxxxxxxx"
	}
	nextLines := make([]string, len(lines))
	copy(nextLines, lines)
	nextLines[0] = "yxxxxxxxxx"
	return gridOf(lines, 10), gridOf(nextLines, 10)
}

func TestSelectStrategyPeriodicForcedFullByFrameCount(t *testing.T) {
	cur, next := smallChangeGrids()
	st := NewState()
	st.CurrentGrid = &cur
	st.FramesSinceFullRedraw = periodicFullRedrawFrame
	got := SelectStrategy(next, DefaultConfig(), st, time.Now())
	if got != render.Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func TestSelectStrategyLowAdaptiveQualityForcesFull(t *testing.T) {
	cur, next := smallChangeGrids()
	st := NewState()
	st.CurrentGrid = &cur
	st.AdaptiveQuality = 0.5
	got := SelectStrategy(next, DefaultConfig(), st, time.Now())
	if got != render.Full {
		t.Fatalf("got %v, want Full", got)
	}
}

func TestUpdateAdaptiveQualityRaisesThresholdWhenSlow(t *testing.T) {
	cfg := DefaultConfig()
	st := NewState()
	UpdateAdaptiveQuality(&cfg, &st, 100*time.Millisecond, 16*time.Millisecond)
	if cfg.DeltaThreshold <= 0.30 {
		t.Fatalf("expected threshold to rise above default, got %v", cfg.DeltaThreshold)
	}
}

func TestUpdateAdaptiveQualityClampsToRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DeltaThreshold = 0.59
	st := NewState()
	st.AdaptiveQuality = 1.0
	for i := 0; i < 50; i++ {
		UpdateAdaptiveQuality(&cfg, &st, 100*time.Millisecond, 16*time.Millisecond)
	}
	if cfg.DeltaThreshold > 0.60 {
		t.Fatalf("expected clamp at 0.60, got %v", cfg.DeltaThreshold)
	}
}

func TestShouldDropPendingFrame(t *testing.T) {
	if ShouldDropPendingFrame(10 * time.Millisecond) {
		t.Fatal("expected no drop for fast previous render")
	}
	if !ShouldDropPendingFrame(40 * time.Millisecond) {
		t.Fatal("expected drop when previous render exceeds 2x coalescing window")
	}
}
