package rsession

import (
	"sync"

	"github.com/rune-tui/rune/internal/input"
)

// InputHandler is a registered useInput callback: active gates whether it
// receives events at all, and requiresFocus further gates it to only the
// currently focused path (when there is at least one focusable and the
// handler names one via path).
type InputHandler struct {
	Path          Path
	Active        bool
	RequiresFocus bool
	Handle        func(input.Event)
}

// InputRegistry snapshots the handler list per frame and dispatches decoded
// events to it, intercepting Tab/Shift-Tab for focus movement before any
// handler sees them.
type InputRegistry struct {
	mu       sync.Mutex
	handlers []InputHandler
	focus    *FocusRegistry
}

// NewInputRegistry returns an InputRegistry driving the given focus
// registry's Tab/Shift-Tab traversal.
func NewInputRegistry(focus *FocusRegistry) *InputRegistry {
	return &InputRegistry{focus: focus}
}

// Update replaces the handler snapshot for the current frame.
func (r *InputRegistry) Update(handlers []InputHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = handlers
}

// Dispatch delivers a decoded event: Tab/Shift-Tab move focus and are
// never forwarded to handlers; everything else is delivered to every
// active handler for which there are no focusables at all, or the handler
// doesn't require focus, or its path matches the currently focused path.
func (r *InputRegistry) Dispatch(ev input.Event) {
	r.mu.Lock()
	handlers := r.handlers
	r.mu.Unlock()

	if ev.Key != nil && ev.Key.Code == input.KeyTab {
		if ev.Key.Modifiers&input.ModShift != 0 {
			r.focus.Retreat()
		} else {
			r.focus.Advance()
		}
		return
	}

	focusedPath, _ := r.focus.Focused()
	noFocusables := !r.focus.HasFocusables()

	for _, h := range handlers {
		if !h.Active {
			continue
		}
		if h.RequiresFocus && !noFocusables && h.Path != focusedPath {
			continue
		}
		h.Handle(ev)
	}
}
