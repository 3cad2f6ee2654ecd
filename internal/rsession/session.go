// Package rsession implements the render session: identity-path
// construction, the state/ref/memo registry and its dependency-token
// encoding, the effect commit lifecycle, focus traversal, input dispatch
// gating, and the session's top-level render and event loop.
package rsession

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rune-tui/rune/internal/grid"
	"github.com/rune-tui/rune/internal/input"
	"github.com/rune-tui/rune/internal/reconcile"
	"github.com/rune-tui/rune/internal/rlog"
)

// ExitStatus records why a session stopped, set by ctx.Exit during an
// operation and surfaced to the caller of Run.
type ExitStatus struct {
	Code        int
	Description string
}

// BuildResult is what a view-builder callback returns for one frame:
// the rendered Frame, the focusables it registered in traversal order,
// and the effects it scheduled.
type BuildResult struct {
	Frame        grid.Frame
	Focusables   []Focusable
	Effects      []Effect
	Inputs       []InputHandler
	RootType     string
	RootIdentity string

	// ActivePaths lists every component identity path visited while
	// building this frame, independent of whether it registered a
	// focusable, effect, or input handler. State and memo entries are
	// evicted for any path not present here (or in Focusables/Effects).
	ActivePaths []Path
}

// Builder evaluates the component tree for one frame.
type Builder func(ctx *Context) BuildResult

// Context is handed to the view-builder on every frame and exposes the
// hooks: state, memo, focus jumps, and exit. Effects, focusables and input
// handlers are returned in the BuildResult instead.
type Context struct {
	session *Session
}

// GetState returns the stored value at (path, key), initializing it with
// initial on first use.
func (c *Context) GetState(path Path, key string, initial any) any {
	return c.session.registry.GetState(path, key, initial)
}

// SetState updates stored state and requests a re-render.
func (c *Context) SetState(path Path, key string, value any) {
	c.session.registry.SetState(path, key, value)
	c.session.RequestRender()
}

// Memo returns the memoized value, recomputing per the deps token rule.
func (c *Context) Memo(path Path, key string, deps []any, compute func() any) any {
	token, always := EncodeDeps(deps)
	return c.session.registry.Memo(path, key, token, always, compute)
}

// Exit records the session's exit status and stops the run loop.
func (c *Context) Exit(code int, description string) {
	c.session.exit(ExitStatus{Code: code, Description: description})
}

// FocusPath requests focus jump to the given identity path.
func (c *Context) FocusPath(path Path) bool { return c.session.focus.FocusPath(path) }

// FocusID requests focus jump to the focusable matching id.
func (c *Context) FocusID(id string) bool { return c.session.focus.FocusID(id) }

// Session owns the registry, effect committer, focus and input registries,
// the reconciler, and the event loop that drives re-renders from resize
// and input events: a context for teardown plus a select loop over event
// channels, one owner goroutine per session.
type Session struct {
	id string

	build Builder

	registry   *Registry
	effects    *EffectCommitter
	focus      *FocusRegistry
	input      *InputRegistry
	decoder    *input.Decoder
	reconciler *reconcile.Reconciler

	mu           sync.Mutex
	lastRoot     rootIdentity
	haveLastRoot bool

	renderRequested chan struct{}
	resizeRequested chan struct{}

	exitOnce   sync.Once
	exitStatus ExitStatus
	done       chan struct{}
}

// New constructs a Session driving reconciler with views produced by build.
func New(build Builder, reconciler *reconcile.Reconciler) *Session {
	focus := NewFocusRegistry()
	s := &Session{
		id:              uuid.NewString(),
		build:           build,
		registry:        NewRegistry(),
		effects:         NewEffectCommitter(),
		focus:           focus,
		input:           NewInputRegistry(focus),
		decoder:         input.NewDecoder(),
		reconciler:      reconciler,
		renderRequested: make(chan struct{}, 1),
		resizeRequested: make(chan struct{}, 1),
		done:            make(chan struct{}),
	}
	return s
}

// RequestRender schedules a re-render on the session's event loop,
// coalescing with any already-pending request.
func (s *Session) RequestRender() {
	select {
	case s.renderRequested <- struct{}{}:
	default:
	}
}

// RequestResize schedules a re-render in response to a terminal resize,
// forcing a full redraw rather than a delta since the grid dimensions
// themselves changed.
func (s *Session) RequestResize() {
	select {
	case s.resizeRequested <- struct{}{}:
	default:
	}
}

// Feed decodes raw terminal input bytes and dispatches the resulting
// events, called from the session's stdin read loop.
func (s *Session) Feed(data []byte) {
	for _, ev := range s.decoder.Feed(data) {
		s.input.Dispatch(ev)
	}
}

func (s *Session) exit(status ExitStatus) {
	s.exitOnce.Do(func() {
		s.exitStatus = status
		close(s.done)
	})
}

// Fail records a non-zero exit status from outside a Builder (for example,
// a fatal render or write error observed by the session's caller) and
// unblocks Run the same way Exit does, so Run's teardown path still runs
// instead of the session hanging on a done channel nothing ever closes.
func (s *Session) Fail(status ExitStatus) {
	s.exit(status)
}

// Run drives the session's event loop until Exit is called or ctx is
// cancelled, returning the recorded exit status. It performs an initial
// render immediately, then waits on render/resize requests.
func (s *Session) Run(ctx context.Context) ExitStatus {
	s.renderFrame()
	for {
		select {
		case <-ctx.Done():
			s.Unmount()
			return ExitStatus{Code: 1, Description: "context cancelled"}
		case <-s.done:
			s.Unmount()
			return s.exitStatus
		case <-s.renderRequested:
			s.renderFrame()
		case <-s.resizeRequested:
			s.reconciler.ForceFullRedraw()
			s.renderFrame()
		}
	}
}

// renderFrame runs the six-step render pipeline: mark frame start, bind
// the per-frame context, evaluate the view builder, update focusables,
// submit the resulting grid to the reconciler, and commit effects.
func (s *Session) renderFrame() {
	start := time.Now()
	rlog.Session(s.id, "render: starting frame")

	result := s.build(&Context{session: s})

	root := rootIdentity{typeName: result.RootType, explicitIdentity: result.RootIdentity}
	s.mu.Lock()
	if s.haveLastRoot && !s.lastRoot.equal(root) {
		s.resetIdentity()
	}
	s.lastRoot = root
	s.haveLastRoot = true
	s.mu.Unlock()

	s.focus.Update(result.Focusables)
	s.input.Update(result.Inputs)

	live := make(map[Path]struct{}, len(result.ActivePaths)+len(result.Focusables)+len(result.Effects))
	for _, p := range result.ActivePaths {
		live[p] = struct{}{}
	}
	for _, f := range result.Focusables {
		live[f.Path] = struct{}{}
	}
	for _, e := range result.Effects {
		live[e.Path] = struct{}{}
	}
	s.registry.EvictExcept(live)
	s.effects.EvictExcept(live)

	g := result.Frame.ToGrid()
	s.reconciler.Render(g)

	s.effects.Commit(result.Effects)

	rlog.Session(s.id, "render: committed frame in %s", time.Since(start))
}

// resetIdentity is invoked when the root component's (typeName,
// explicitIdentity) changes between frames: it forces a full redraw and
// discards all accumulated state, memo, and effect entries rather than
// attempt to reconcile against a now-unrelated tree.
func (s *Session) resetIdentity() {
	rlog.Session(s.id, "render: root identity changed, resetting")
	s.reconciler.ForceFullRedraw()
	s.registry.Reset()
	s.effects.UnmountAll()
}

// Unmount idempotently tears the session down: all effect cleanups run,
// and further calls are no-ops.
func (s *Session) Unmount() {
	s.effects.UnmountAll()
}
