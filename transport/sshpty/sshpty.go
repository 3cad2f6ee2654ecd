// Package sshpty adapts an already-accepted gliderlabs/ssh session with a
// PTY request into the io.Reader/io.Writer/resize triple a render session
// needs, bridging the session's window-change channel the way the
// teacher's sshserver package bridges its own resize channel into
// gliderlabs/ssh's Window channel. It adapts one accepted session; running
// an actual listening server is out of scope.
package sshpty

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// Session is the subset of gliderlabs/ssh.Session an Adapter needs.
type Session interface {
	io.Reader
	io.Writer
	Pty() (ssh.Pty, <-chan ssh.Window, bool)
}

// Adapter exposes one accepted SSH session's PTY as an io.Reader/Writer
// plus a resize-subscription, so it can drive a render session the same
// way a local terminal does.
type Adapter struct {
	session Session
	pty     ssh.Pty
	winCh   <-chan ssh.Window
	hasPty  bool
}

// New wraps session, capturing its PTY request (if any) and window-change
// channel.
func New(session Session) *Adapter {
	pty, winCh, hasPty := session.Pty()
	return &Adapter{session: session, pty: pty, winCh: winCh, hasPty: hasPty}
}

// HasPty reports whether the client requested a PTY. A render session
// cannot meaningfully run without one.
func (a *Adapter) HasPty() bool { return a.hasPty }

// Read implements io.Reader by delegating to the underlying session.
func (a *Adapter) Read(p []byte) (int, error) { return a.session.Read(p) }

// Write implements io.Writer by delegating to the underlying session.
func (a *Adapter) Write(p []byte) (int, error) { return a.session.Write(p) }

// Size returns the PTY's initial window dimensions.
func (a *Adapter) Size() (width, height int) {
	return a.pty.Window.Width, a.pty.Window.Height
}

// WatchResize starts a goroutine forwarding window-change events from the
// session's Window channel to onResize, returning a stop function. It
// mirrors rawterm.Terminal.WatchResize's shape, substituting the SSH
// session's winCh for SIGWINCH.
func (a *Adapter) WatchResize(onResize func(width, height int)) func() {
	done := make(chan struct{})
	go func() {
		for {
			select {
			case w, ok := <-a.winCh:
				if !ok {
					return
				}
				onResize(w.Width, w.Height)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

// GenerateHostKey creates an ephemeral ed25519 host key signer, for use by
// a self-contained demo or test SSH server that doesn't want to manage a
// persistent key file on disk.
func GenerateHostKey() (gossh.Signer, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("sshpty: generate host key: %w", err)
	}
	signer, err := gossh.NewSignerFromKey(priv)
	if err != nil {
		return nil, fmt.Errorf("sshpty: wrap host key signer: %w", err)
	}
	return signer, nil
}
