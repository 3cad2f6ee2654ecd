// Package capture implements console capture: swapping the process's
// stdout/stderr file descriptors for pipes so writes from libraries that
// bypass the session's own renderer (loggers, third-party SDKs) are
// tagged and bounded instead of corrupting the live region. PendingLines
// and FormatLine turn them into log-lane lines; the session does not call
// them, so captured lines are not drawn above the live region.
package capture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

const defaultLineCapacity = 1000

// Source names which of stdout/stderr a captured Line came from.
type Source int

const (
	SourceStdout Source = iota
	SourceStderr
)

func (s Source) String() string {
	if s == SourceStderr {
		return "stderr"
	}
	return "stdout"
}

// Line is one tagged line captured from a redirected stream.
type Line struct {
	Source    Source
	Timestamp time.Time
	Text      string
}

// Capture owns the fd swap for one stream pair and the bounded ring buffer
// lines are tagged into.
type Capture struct {
	buf *RingBuffer[Line]

	mu       sync.Mutex
	active   bool
	restore  []func() error
	pipeDone chan struct{}
}

// New returns a Capture backed by a ring buffer holding up to capacity
// lines (the default is 1000).
func New(capacity int) *Capture {
	if capacity <= 0 {
		capacity = defaultLineCapacity
	}
	return &Capture{buf: NewRingBuffer[Line](capacity)}
}

// Enabled reports whether capture should activate for the given stdout
// file: capture stays off entirely when stdout is not a TTY.
func Enabled(stdout *os.File) bool {
	return isatty.IsTerminal(stdout.Fd()) || isatty.IsCygwinTerminal(stdout.Fd())
}

// Start redirects os.Stdout and os.Stderr to pipes and begins tagging
// lines read from them into the ring buffer. It does not consult Enabled;
// callers decide whether to capture. Calling Start while capture is
// already active is a no-op.
func (c *Capture) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active {
		return nil
	}

	stdoutRestore, err := c.swap(&os.Stdout, SourceStdout)
	if err != nil {
		return fmt.Errorf("capture: swap stdout: %w", err)
	}
	stderrRestore, err := c.swap(&os.Stderr, SourceStderr)
	if err != nil {
		stdoutRestore()
		return fmt.Errorf("capture: swap stderr: %w", err)
	}

	c.restore = []func() error{stdoutRestore, stderrRestore}
	c.active = true
	return nil
}

func (c *Capture) swap(target **os.File, source Source) (func() error, error) {
	original := *target
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}
	*target = w

	go c.readLines(r, source)

	return func() error {
		err := w.Close()
		*target = original
		return err
	}, nil
}

func (c *Capture) readLines(r *os.File, source Source) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	for scanner.Scan() {
		c.buf.Push(Line{Source: source, Timestamp: time.Now(), Text: scanner.Text()})
	}
	r.Close()
}

// Stop restores the original stdout/stderr file descriptors. It does not
// clear the ring buffer; callers collect the remaining lines with
// PendingLines.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return nil
	}
	var firstErr error
	for _, restore := range c.restore {
		if err := restore(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.restore = nil
	c.active = false
	return firstErr
}

// PendingLines returns and clears the lines captured since the last call,
// for pre-frame log-lane emission.
func (c *Capture) PendingLines() []Line {
	return c.buf.Drain()
}

// FormatLine renders a captured line as a single log-lane line, optionally
// timestamped and colourised by source via the given ANSI SGR prefixes
// (callers typically resolve these through the terminal colour profile;
// an empty prefix disables colourisation).
func FormatLine(l Line, withTimestamp bool, stdoutPrefix, stderrPrefix, reset string) string {
	prefix := stdoutPrefix
	if l.Source == SourceStderr {
		prefix = stderrPrefix
	}
	ts := ""
	if withTimestamp {
		ts = l.Timestamp.Format("15:04:05.000") + " "
	}
	if prefix == "" {
		return fmt.Sprintf("%s[%s] %s", ts, l.Source, l.Text)
	}
	return fmt.Sprintf("%s%s[%s] %s%s", prefix, ts, l.Source, l.Text, reset)
}

// Sink receives flushed lines, e.g. an open log file.
type Sink interface {
	io.Writer
}
