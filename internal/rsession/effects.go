package rsession

import (
	"sync"

	"github.com/rune-tui/rune/internal/rlog"
)

// Cleanup is the function an effect may return to be run before the effect
// reruns, and on unmount.
type Cleanup func()

// Effect is a pending effect registration collected while evaluating a
// frame: the component's identity path, a key distinguishing this effect
// within the component, the deps token computed from EncodeDeps, whether it
// should always rerun, and the function to invoke.
type Effect struct {
	Path        Path
	Key         string
	DepsToken   string
	AlwaysRerun bool
	Run         func() Cleanup
}

type effectRecord struct {
	depsToken   string
	alwaysRerun bool
	cleanup     Cleanup
}

// EffectCommitter tracks committed effect tokens across frames and runs the
// cleanup-then-effect lifecycle in commit order.
type EffectCommitter struct {
	mu      sync.Mutex
	records map[regKey]effectRecord
}

// NewEffectCommitter returns an empty EffectCommitter.
func NewEffectCommitter() *EffectCommitter {
	return &EffectCommitter{records: make(map[regKey]effectRecord)}
}

// Commit runs cleanup for every effect whose token changed (or that is
// always-rerun) before running its new body, in the order given. Effects
// not present in this frame's list are left untouched; callers drop them
// via EvictExcept for paths that vanished between frames.
func (c *EffectCommitter) Commit(effects []Effect) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range effects {
		k := regKey{e.Path, e.Key}
		prev, existed := c.records[k]
		shouldRun := e.AlwaysRerun || !existed || prev.depsToken != e.DepsToken
		if !shouldRun {
			continue
		}
		if existed && prev.cleanup != nil {
			prev.cleanup()
		}
		cleanup := runEffect(e)
		c.records[k] = effectRecord{depsToken: e.DepsToken, alwaysRerun: e.AlwaysRerun, cleanup: cleanup}
	}
}

// runEffect invokes e.Run, recovering a panic so one misbehaving effect
// can't take down the owning goroutine: the error is logged and the
// effect is recorded with a nil cleanup, same as if it had returned one.
func runEffect(e Effect) (cleanup Cleanup) {
	defer func() {
		if r := recover(); r != nil {
			rlog.Error("effect %s/%s panicked: %v", e.Path, e.Key, r)
			cleanup = nil
		}
	}()
	return e.Run()
}

// EvictExcept runs cleanup for and forgets every effect whose path is not
// present in livePaths, mirroring Registry.EvictExcept for the identity
// reset and per-frame unmount case.
func (c *EffectCommitter) EvictExcept(livePaths map[Path]struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, rec := range c.records {
		if _, ok := livePaths[k.path]; ok {
			continue
		}
		if rec.cleanup != nil {
			rec.cleanup()
		}
		delete(c.records, k)
	}
}

// UnmountAll runs cleanup for every tracked effect and forgets them all,
// used during full session teardown.
func (c *EffectCommitter) UnmountAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, rec := range c.records {
		if rec.cleanup != nil {
			rec.cleanup()
		}
		delete(c.records, k)
	}
}
