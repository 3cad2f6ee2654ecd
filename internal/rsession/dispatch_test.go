package rsession

import (
	"testing"

	"github.com/rune-tui/rune/internal/input"
)

func TestDispatchTabAdvancesFocusWithoutReachingHandlers(t *testing.T) {
	focus := NewFocusRegistry()
	focus.Update([]Focusable{{Path: "A"}, {Path: "B"}})
	reg := NewInputRegistry(focus)

	called := false
	reg.Update([]InputHandler{{Path: "A", Active: true, Handle: func(input.Event) { called = true }}})

	reg.Dispatch(input.Event{Key: &input.KeyEvent{Code: input.KeyTab}})

	if called {
		t.Fatalf("expected Tab not forwarded to handlers")
	}
	got, _ := focus.Focused()
	if got != "B" {
		t.Fatalf("got %v, want B after Tab advance", got)
	}
}

func TestDispatchShiftTabRetreatsFocus(t *testing.T) {
	focus := NewFocusRegistry()
	focus.Update([]Focusable{{Path: "A"}, {Path: "B"}})
	reg := NewInputRegistry(focus)

	reg.Dispatch(input.Event{Key: &input.KeyEvent{Code: input.KeyTab, Modifiers: input.ModShift}})

	got, _ := focus.Focused()
	if got != "B" {
		t.Fatalf("got %v, want B after Shift-Tab wraps backward", got)
	}
}

func TestDispatchDeliversToFocusedHandlerOnly(t *testing.T) {
	focus := NewFocusRegistry()
	focus.Update([]Focusable{{Path: "A"}, {Path: "B"}})
	reg := NewInputRegistry(focus)

	var calledA, calledB bool
	reg.Update([]InputHandler{
		{Path: "A", Active: true, RequiresFocus: true, Handle: func(input.Event) { calledA = true }},
		{Path: "B", Active: true, RequiresFocus: true, Handle: func(input.Event) { calledB = true }},
	})

	reg.Dispatch(input.Event{Key: &input.KeyEvent{Code: input.KeyRune, Rune: 'x'}})

	if !calledA || calledB {
		t.Fatalf("expected only focused handler A called, got calledA=%v calledB=%v", calledA, calledB)
	}
}

func TestDispatchDeliversToAllHandlersWhenNoFocusables(t *testing.T) {
	focus := NewFocusRegistry()
	reg := NewInputRegistry(focus)

	var calledA, calledB bool
	reg.Update([]InputHandler{
		{Path: "A", Active: true, RequiresFocus: true, Handle: func(input.Event) { calledA = true }},
		{Path: "B", Active: true, RequiresFocus: false, Handle: func(input.Event) { calledB = true }},
	})

	reg.Dispatch(input.Event{Key: &input.KeyEvent{Code: input.KeyRune, Rune: 'x'}})

	if !calledA || !calledB {
		t.Fatalf("expected both handlers called when no focusables, got calledA=%v calledB=%v", calledA, calledB)
	}
}

func TestDispatchSkipsInactiveHandlers(t *testing.T) {
	focus := NewFocusRegistry()
	reg := NewInputRegistry(focus)

	called := false
	reg.Update([]InputHandler{{Path: "A", Active: false, Handle: func(input.Event) { called = true }}})

	reg.Dispatch(input.Event{Key: &input.KeyEvent{Code: input.KeyRune, Rune: 'x'}})

	if called {
		t.Fatalf("expected inactive handler not called")
	}
}
