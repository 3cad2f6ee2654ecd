// Package rawterm manages the terminal's raw-mode state, size queries, and
// SIGWINCH observation: an Init/Close/signal-loop shape generalized from a
// fixed signal channel to a caller-supplied resize callback with debounce.
package rawterm

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"
)

const defaultDebounce = 25 * time.Millisecond

// Terminal owns the raw-mode termios state and SIGWINCH observation for one
// file descriptor pair.
type Terminal struct {
	fd       int
	oldState *term.State

	sigwinch chan os.Signal
	done     chan struct{}
}

// New wraps the file descriptor of f (typically os.Stdin) for raw-mode
// control.
func New(f *os.File) *Terminal {
	return &Terminal{fd: int(f.Fd())}
}

// EnableRaw puts the terminal into raw mode, saving the previous termios
// state for Restore.
func (t *Terminal) EnableRaw() error {
	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("rawterm: enable raw mode: %w", err)
	}
	t.oldState = oldState
	return nil
}

// Restore restores the termios state saved by EnableRaw. It is a no-op if
// raw mode was never enabled.
func (t *Terminal) Restore() error {
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("rawterm: restore termios: %w", err)
	}
	return nil
}

// Size returns the current terminal dimensions, falling back to 80x24 when
// the size cannot be determined (e.g. not a TTY).
func (t *Terminal) Size() (width, height int) {
	w, h, err := term.GetSize(t.fd)
	if err != nil {
		return 80, 24
	}
	return w, h
}

// IsTerminal reports whether the wrapped file descriptor is a TTY.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(t.fd)
}

// WatchResize starts a background goroutine that observes SIGWINCH, debounces
// it (default 25ms), and invokes onResize with the new dimensions whenever
// they actually change. The returned func stops the watch.
func (t *Terminal) WatchResize(onResize func(width, height int)) func() {
	t.sigwinch = make(chan os.Signal, 1)
	t.done = make(chan struct{})
	signal.Notify(t.sigwinch, syscall.SIGWINCH)

	lastW, lastH := t.Size()
	go func() {
		var timer *time.Timer
		for {
			select {
			case <-t.done:
				if timer != nil {
					timer.Stop()
				}
				return
			case <-t.sigwinch:
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(defaultDebounce, func() {
					w, h := t.Size()
					if w != lastW || h != lastH {
						lastW, lastH = w, h
						onResize(w, h)
					}
				})
			}
		}
	}()

	return func() {
		signal.Stop(t.sigwinch)
		close(t.done)
	}
}
