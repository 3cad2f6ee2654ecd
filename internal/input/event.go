// Package input implements the raw-byte-stream decoder: CSI/SS3 key
// sequences, modifier encoding, bracketed paste, and the C0 Ctrl-C/Ctrl-D
// shortcuts, grounded in the same read-loop-plus-dispatch shape as a plain
// terminal key reader, generalized to the full CSI/SS3/paste grammar.
package input

// KeyCode names a decoded key, independent of modifiers.
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyRune
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyTab
	KeyFunction // N held in KeyEvent.Function
)

// Modifiers is a bitset of active modifier keys, encoded per xterm's CSI
// modifier parameter: m = code - 1, bits shift=1, alt=2, ctrl=4.
type Modifiers int

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

func modifiersFromXterm(code int) Modifiers {
	if code <= 1 {
		return 0
	}
	return Modifiers(code - 1)
}

// KeyEvent is a single decoded key press.
type KeyEvent struct {
	Code      KeyCode
	Rune      rune // set when Code == KeyRune or KeyTab
	Function  int  // set when Code == KeyFunction: 1..12
	Modifiers Modifiers
}

// Event is the tagged union the decoder emits.
type Event struct {
	Key   *KeyEvent
	Paste *string
	CtrlC bool
	CtrlD bool
}
