package capture

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
)

const defaultFlushSchedule = "@every 5s"

// FlushJob periodically drains a Capture's ring buffer into a Sink so a
// long-running session doesn't lose capture history purely to the
// in-memory bound. It drains the same buffer PendingLines reads, so lines
// it has written to the sink are not returned by a later PendingLines
// call; with a nil sink it leaves the buffer untouched. Grounded in the same
// robfig/cron scheduling shape used for periodic background jobs
// elsewhere in this codebase's lineage.
type FlushJob struct {
	mu       sync.Mutex
	cron     *cron.Cron
	capture  *Capture
	sink     Sink
	schedule string

	withTimestamp                           bool
	stdoutPrefix, stderrPrefix, resetPrefix string
}

// NewFlushJob builds a FlushJob draining capture into sink on the given
// cron schedule (an empty schedule defaults to "@every 5s").
func NewFlushJob(capture *Capture, sink Sink, schedule string) *FlushJob {
	if schedule == "" {
		schedule = defaultFlushSchedule
	}
	return &FlushJob{capture: capture, sink: sink, schedule: schedule}
}

// WithFormatting configures timestamp and colour prefixes applied to each
// flushed line; see FormatLine.
func (f *FlushJob) WithFormatting(withTimestamp bool, stdoutPrefix, stderrPrefix, reset string) *FlushJob {
	f.withTimestamp = withTimestamp
	f.stdoutPrefix = stdoutPrefix
	f.stderrPrefix = stderrPrefix
	f.resetPrefix = reset
	return f
}

// Start begins the periodic flush. It is safe to call once; a second call
// is a no-op.
func (f *FlushJob) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cron != nil {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(f.schedule, f.flush); err != nil {
		return fmt.Errorf("capture: schedule flush job: %w", err)
	}
	f.cron = c
	c.Start()
	return nil
}

// Stop halts the periodic flush, waiting for any in-flight run to finish,
// then performs one final flush so nothing buffered since the last tick
// is lost.
func (f *FlushJob) Stop() {
	f.mu.Lock()
	c := f.cron
	f.cron = nil
	f.mu.Unlock()
	if c == nil {
		return
	}
	<-c.Stop().Done()
	f.flush()
}

func (f *FlushJob) flush() {
	if f.sink == nil {
		return
	}
	lines := f.capture.PendingLines()
	if len(lines) == 0 {
		return
	}
	for _, l := range lines {
		formatted := FormatLine(l, f.withTimestamp, f.stdoutPrefix, f.stderrPrefix, f.resetPrefix)
		fmt.Fprintln(f.sink, formatted)
	}
}
