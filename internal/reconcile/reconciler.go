package reconcile

import (
	"io"
	"sync"
	"time"

	"github.com/rune-tui/rune/internal/grid"
	"github.com/rune-tui/rune/internal/render"
	"github.com/rune-tui/rune/internal/rlog"
)

// Reconciler owns currentGrid, pendingGrid, and the coalescing task as a
// single serialised actor: every exported method takes the internal lock,
// matching the "Reconciler: owns currentGrid, pendingGrid, and the
// coalescing task; serialised" concurrency rule.
type Reconciler struct {
	mu  sync.Mutex
	cfg Config
	st  State

	writer             io.Writer
	useAlternateScreen bool

	pending      *grid.TerminalGrid
	timer        *time.Timer
	lastCommitAt time.Time

	lastRenderDuration time.Duration
	onCommit           func(Stats)
	onFatal            func(error)
}

// New builds a Reconciler writing rendered frames to w.
func New(w io.Writer, cfg Config, useAlternateScreen bool) *Reconciler {
	return &Reconciler{
		writer:             w,
		cfg:                cfg,
		st:                 NewState(),
		useAlternateScreen: useAlternateScreen,
	}
}

// OnCommit registers a callback invoked with render stats after every
// successful commit (full or delta).
func (r *Reconciler) OnCommit(f func(Stats)) { r.onCommit = f }

// OnFatal registers a callback invoked when repeated render failures force
// the reconciler to give up; the caller is expected to record an exit
// status and unmount.
func (r *Reconciler) OnFatal(f func(error)) { r.onFatal = f }

// Render replaces the pending grid and (re)schedules the coalesced update
// after the fixed coalescing window, cancelling any previously scheduled
// task.
func (r *Reconciler) Render(g grid.TerminalGrid) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pg := g
	r.pending = &pg
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(CoalescingWindow(), r.performCoalescedUpdate)
}

// ForceFullRedraw marks the next render as a forced full redraw regardless
// of the automatic strategy decision (e.g. after an identity reset).
func (r *Reconciler) ForceFullRedraw() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cfg.ForceFullRedraw = true
}

func (r *Reconciler) performCoalescedUpdate() {
	r.mu.Lock()

	if ShouldDropPendingFrame(r.lastRenderDuration) {
		r.st.FramesDropped++
		r.lastRenderDuration = 0
		r.timer = time.AfterFunc(CoalescingWindow(), r.performCoalescedUpdate)
		r.mu.Unlock()
		return
	}

	pending := r.pending
	r.pending = nil
	if pending == nil {
		r.mu.Unlock()
		return
	}

	if r.cfg.MaxFrameRate > 0 && !r.lastCommitAt.IsZero() {
		minGap := time.Second / time.Duration(r.cfg.MaxFrameRate)
		if wait := minGap - time.Since(r.lastCommitAt); wait > 0 {
			r.mu.Unlock()
			time.Sleep(wait)
			r.mu.Lock()
		}
	}

	strategy := SelectStrategy(*pending, r.cfg, r.st, time.Now())
	r.cfg.ForceFullRedraw = false

	bytes, stats := render.Render(*pending, r.st.CurrentGrid, strategy, r.useAlternateScreen)

	start := time.Now()
	_, err := r.writer.Write(bytes)
	writeDuration := time.Since(start)

	if err != nil {
		rlog.Debug("reconciler: %s render failed: %v", strategyName(strategy), err)
		if strategy == render.Delta {
			r.cfg.ForceFullRedraw = true
			r.mu.Unlock()
			r.Render(*pending)
			return
		}
		r.mu.Unlock()
		if r.onFatal != nil {
			r.onFatal(err)
		}
		return
	}

	now := time.Now()
	Commit(&r.st, *pending, strategy, now)
	r.lastCommitAt = now
	r.lastRenderDuration = writeDuration
	UpdateAdaptiveQuality(&r.cfg, &r.st, writeDuration, targetFrameInterval(r.cfg.MaxFrameRate))

	onCommit := r.onCommit
	r.mu.Unlock()
	if onCommit != nil {
		onCommit(stats)
	}
}

func targetFrameInterval(fpsCap int) time.Duration {
	if fpsCap <= 0 {
		fpsCap = 60
	}
	return time.Second / time.Duration(fpsCap)
}

func strategyName(s render.Strategy) string {
	switch s {
	case render.Full:
		return "full"
	case render.Delta:
		return "delta"
	default:
		return "scroll-optimized"
	}
}
