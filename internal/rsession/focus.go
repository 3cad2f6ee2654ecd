package rsession

import "sync"

// Focusable describes one entry in the ordered focus-traversal list, as
// recorded by a frame's view evaluation.
type Focusable struct {
	Path          Path
	RequiresFocus bool
}

// FocusRegistry tracks the ordered focusables list for the current frame
// and the clamped index of the currently focused entry.
type FocusRegistry struct {
	mu    sync.Mutex
	order []Focusable
	index int
}

// NewFocusRegistry returns a FocusRegistry with no focusables and no
// focused entry.
func NewFocusRegistry() *FocusRegistry {
	return &FocusRegistry{index: -1}
}

// Update replaces the ordered focusables list for the new frame, clamping
// the previously focused index into the new list's bounds. If the
// previously focused path is still present, focus follows it; otherwise
// the index is clamped to the nearest valid position.
func (f *FocusRegistry) Update(order []Focusable) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var previous Path
	hadFocus := f.index >= 0 && f.index < len(f.order)
	if hadFocus {
		previous = f.order[f.index].Path
	}

	f.order = order

	if len(order) == 0 {
		f.index = -1
		return
	}
	if hadFocus {
		for i, fc := range order {
			if fc.Path == previous {
				f.index = i
				return
			}
		}
	}
	if f.index < 0 {
		f.index = 0
	} else if f.index >= len(order) {
		f.index = len(order) - 1
	}
}

// Advance moves focus to the next focusable entry, wrapping around.
func (f *FocusRegistry) Advance() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.order) == 0 {
		return
	}
	f.index = (f.index + 1) % len(f.order)
}

// Retreat moves focus to the previous focusable entry, wrapping around.
func (f *FocusRegistry) Retreat() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.order) == 0 {
		return
	}
	f.index = (f.index - 1 + len(f.order)) % len(f.order)
}

// HasFocusables reports whether the current frame registered any
// focusable entries at all.
func (f *FocusRegistry) HasFocusables() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.order) > 0
}

// Focused returns the currently focused path and whether one exists.
func (f *FocusRegistry) Focused() (Path, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.index < 0 || f.index >= len(f.order) {
		return "", false
	}
	return f.order[f.index].Path, true
}

// FocusPath jumps focus directly to the given path, if present among the
// current focusables.
func (f *FocusRegistry) FocusPath(path Path) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fc := range f.order {
		if fc.Path == path {
			f.index = i
			return true
		}
	}
	return false
}

// FocusID jumps focus to the first focusable whose path contains the given
// explicit identity or type-name segment.
func (f *FocusRegistry) FocusID(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, fc := range f.order {
		if fc.Path.hasSegment(id) {
			f.index = i
			return true
		}
	}
	return false
}
