package sshpty

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// RunLocal starts cmd attached to a freshly allocated local PTY and bridges
// it to a's underlying session: the subprocess's PTY master is wired to the
// session's Reader/Writer, and the session's resize events (via WatchResize)
// resize the PTY to match. It blocks until cmd exits.
//
// This is for running a local program (a shell, a door, a demo command)
// under an SSH-attached session's terminal, as opposed to Adapter's normal
// mode of driving a render session directly from the session's own PTY.
func RunLocal(a *Adapter, cmd *exec.Cmd) error {
	if !a.hasPty {
		cmd.Stdin = a.session
		cmd.Stdout = a.session
		cmd.Stderr = a.session
		return cmd.Run()
	}

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(a.pty.Window.Height),
		Cols: uint16(a.pty.Window.Width),
	})
	if err != nil {
		return fmt.Errorf("sshpty: start local pty for %q: %w", cmd.Path, err)
	}
	defer func() { _ = ptmx.Close() }()

	stopResize := a.WatchResize(func(width, height int) {
		_ = pty.Setsize(ptmx, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	})
	defer stopResize()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(ptmx, a.session)
	}()
	go func() {
		defer wg.Done()
		err := copyIgnoringClosedPTY(a.session, ptmx)
		_ = err
	}()

	waitErr := cmd.Wait()
	wg.Wait()
	return waitErr
}

// copyIgnoringClosedPTY copies from the PTY master to dst, treating the
// expected end-of-session errors (EOF, a closed fd, or the EIO a PTY master
// returns once its slave is gone) as a normal end of the copy rather than a
// failure to report.
func copyIgnoringClosedPTY(dst io.Writer, ptmx *os.File) error {
	_, err := io.Copy(dst, ptmx)
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || errors.Is(err, syscall.EIO) {
		return nil
	}
	return err
}
