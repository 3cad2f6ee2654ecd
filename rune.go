// Package rune is RUNE's public entrypoint: it wires the terminal profile
// resolver, raw-mode terminal, output writer, reconciler, input decoder,
// optional console capture, and render session into one constructor,
// exposing a single Session type while keeping every subsystem it
// composes internal.
package rune

import (
	"context"
	"fmt"
	"os"

	"github.com/rune-tui/rune/internal/capture"
	"github.com/rune-tui/rune/internal/iowriter"
	"github.com/rune-tui/rune/internal/rawterm"
	"github.com/rune-tui/rune/internal/reconcile"
	"github.com/rune-tui/rune/internal/rlog"
	"github.com/rune-tui/rune/internal/rsession"
	"github.com/rune-tui/rune/internal/rtoptions"
	"github.com/rune-tui/rune/internal/termprofile"
)

// Options is re-exported from internal/rtoptions so callers configure a
// session without importing an internal package.
type Options = rtoptions.Options

// DefaultOptions returns TTY- and CI-aware defaults; see rtoptions.Default.
func DefaultOptions() Options { return rtoptions.Default() }

// ExitStatus is re-exported from internal/rsession.
type ExitStatus = rsession.ExitStatus

// Context is re-exported from internal/rsession: the hooks surface handed
// to a Builder on every frame.
type Context = rsession.Context

// BuildResult is re-exported from internal/rsession.
type BuildResult = rsession.BuildResult

// Builder is re-exported from internal/rsession.
type Builder = rsession.Builder

// Path is re-exported from internal/rsession: a component identity path.
type Path = rsession.Path

// Root is the identity path of the render tree's top-level component.
const Root = rsession.Root

// Focusable is re-exported from internal/rsession.
type Focusable = rsession.Focusable

// Effect is re-exported from internal/rsession.
type Effect = rsession.Effect

// Cleanup is re-exported from internal/rsession.
type Cleanup = rsession.Cleanup

// InputHandler is re-exported from internal/rsession.
type InputHandler = rsession.InputHandler

// Session is a fully wired RUNE runtime: terminal state, output pipeline,
// console capture, and the render session driving them.
type Session struct {
	opts Options

	term    *rawterm.Terminal
	profile termprofile.Profile
	writer  *iowriter.Writer
	capt    *capture.Capture
	flush   *capture.FlushJob
	rec     *reconcile.Reconciler
	inner   *rsession.Session

	stopResize func()
}

// NewSession builds a Session from opts, driving frames produced by build.
// It does not start reading input or rendering; call Run to do that.
func NewSession(opts Options, build Builder) (*Session, error) {
	stdout, ok := opts.Stdout.(*os.File)
	useAltScreen := opts.UseAltScreen
	enableCapture := ok && useAltScreen && capture.Enabled(stdout)

	writer := iowriter.New(opts.Stdout)

	var term *rawterm.Terminal
	if stdinFile, ok := opts.Stdin.(*os.File); ok {
		term = rawterm.New(stdinFile)
		if opts.EnableRawMode {
			if err := term.EnableRaw(); err != nil {
				return nil, fmt.Errorf("rune: enable raw mode: %w", err)
			}
		}
	}

	profile := termprofile.Resolve(opts.TerminalProfileOverride, opts.Stdout)

	rec := reconcile.New(writer, reconcile.DefaultConfig(), useAltScreen)

	s := &Session{
		opts:    opts,
		term:    term,
		profile: profile,
		writer:  writer,
		rec:     rec,
	}

	if enableCapture {
		s.capt = capture.New(0)
		s.flush = capture.NewFlushJob(s.capt, nil, "")
	}

	s.inner = rsession.New(build, rec)

	rec.OnFatal(func(err error) {
		rlog.Debug("rune: fatal render error: %v", err)
		s.inner.Fail(rsession.ExitStatus{Code: 1, Description: fmt.Sprintf("fatal render error: %v", err)})
	})

	return s, nil
}

// Profile returns the resolved terminal colour profile.
func (s *Session) Profile() termprofile.Profile { return s.profile }

// Feed decodes raw input bytes read from the terminal/SSH session and
// dispatches them into the render session.
func (s *Session) Feed(data []byte) { s.inner.Feed(data) }

// RequestRender schedules a re-render, e.g. after external state changes.
func (s *Session) RequestRender() { s.inner.RequestRender() }

// Start begins console capture (if enabled) and terminal resize
// observation. Run calls Start automatically; it is exported for callers
// that need capture active before the first frame.
func (s *Session) Start() error {
	if s.capt != nil {
		if err := s.capt.Start(); err != nil {
			return fmt.Errorf("rune: start capture: %w", err)
		}
		if err := s.flush.Start(); err != nil {
			return fmt.Errorf("rune: start capture flush job: %w", err)
		}
	}
	if s.term != nil {
		s.stopResize = s.term.WatchResize(func(width, height int) {
			s.inner.RequestResize()
		})
	}
	return nil
}

// Run starts the session (capture and resize observation), drives the
// render/input event loop until the build Builder calls Context.Exit or
// ctx is cancelled, then tears everything down, returning the recorded
// exit status.
func (s *Session) Run(ctx context.Context) (ExitStatus, error) {
	if err := s.Start(); err != nil {
		return ExitStatus{}, err
	}
	status := s.inner.Run(ctx)
	if err := s.Close(); err != nil {
		return status, err
	}
	return status, nil
}

// Close restores terminal state and stops console capture, idempotently.
func (s *Session) Close() error {
	if s.stopResize != nil {
		s.stopResize()
		s.stopResize = nil
	}
	if s.flush != nil {
		s.flush.Stop()
	}
	if s.capt != nil {
		_ = s.capt.Stop()
	}
	if err := s.writer.Shutdown(); err != nil {
		return fmt.Errorf("rune: shutdown writer: %w", err)
	}
	if s.term != nil {
		if err := s.term.Restore(); err != nil {
			return fmt.Errorf("rune: restore terminal: %w", err)
		}
	}
	return nil
}
