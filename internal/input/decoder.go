package input

import "strconv"

const (
	pasteStart = "\x1b[200~"
	pasteEnd   = "\x1b[201~"
)

// Decoder is an incremental byte-stream decoder. Feed may be called with
// however many bytes a single read produced; bytes that don't yet form a
// complete event are retained until the next call.
type Decoder struct {
	buf      []byte
	inPaste  bool
	pasteBuf []byte
}

// NewDecoder returns a fresh Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// Feed appends data to the internal buffer and decodes as many events as
// the buffer currently supports.
func (d *Decoder) Feed(data []byte) []Event {
	d.buf = append(d.buf, data...)

	var events []Event
	for len(d.buf) > 0 {
		ev, consumed := d.step()
		if consumed == 0 {
			break
		}
		d.buf = d.buf[consumed:]
		if ev != nil {
			events = append(events, *ev)
		}
	}
	return events
}

// step attempts to decode (or otherwise consume) a prefix of d.buf. It
// returns consumed == 0 when the buffer doesn't yet hold enough bytes to
// decide, signalling the caller to wait for more input.
func (d *Decoder) step() (*Event, int) {
	buf := d.buf

	if d.inPaste {
		if idx := indexOf(buf, pasteEnd); idx >= 0 {
			d.pasteBuf = append(d.pasteBuf, buf[:idx]...)
			text := string(d.pasteBuf)
			d.pasteBuf = nil
			d.inPaste = false
			return &Event{Paste: &text}, idx + len(pasteEnd)
		}
		// No marker yet; keep the whole buffer held back in case the
		// terminator is split across reads, except for a safe prefix we
		// know cannot itself contain the start of the terminator.
		safe := len(buf) - (len(pasteEnd) - 1)
		if safe <= 0 {
			return nil, 0
		}
		d.pasteBuf = append(d.pasteBuf, buf[:safe]...)
		return nil, safe
	}

	switch buf[0] {
	case 0x03:
		return &Event{CtrlC: true}, 1
	case 0x04:
		return &Event{CtrlD: true}, 1
	}

	if hasPrefix(buf, pasteStart) {
		d.inPaste = true
		return nil, len(pasteStart)
	}

	if buf[0] == 0x1b {
		return d.stepEscape(buf)
	}

	if buf[0] == '\t' {
		return &Event{Key: &KeyEvent{Code: KeyTab, Rune: '\t'}}, 1
	}

	// Anything else isn't one of the recognised sequences; drop the byte
	// without emitting an event.
	return nil, 1
}

func (d *Decoder) stepEscape(buf []byte) (*Event, int) {
	if len(buf) == 1 {
		return nil, 0 // only ESC so far; wait for more
	}

	switch buf[1] {
	case '[':
		return decodeCSI(buf)
	case 'O':
		return decodeSS3(buf)
	default:
		return nil, 1 // unknown ESC sequence: consume ESC only
	}
}

// decodeCSI scans ESC [ params final, final in A..Z or '~'.
func decodeCSI(buf []byte) (*Event, int) {
	i := 2
	for i < len(buf) && !isCSIFinal(buf[i]) {
		i++
	}
	if i >= len(buf) {
		return nil, 0 // incomplete; wait for the final byte
	}
	final := buf[i]
	params := parseCSIParams(buf[2:i])
	consumed := i + 1

	switch final {
	case 'A', 'B', 'C', 'D':
		return csiArrow(final, params), consumed
	case 'H':
		return csiHomeEnd(KeyHome, params), consumed
	case 'F':
		return csiHomeEnd(KeyEnd, params), consumed
	case '~':
		return csiTilde(params), consumed
	default:
		return nil, consumed // recognised CSI shape, unmapped final: drop silently
	}
}

func csiArrow(final byte, params []int) *Event {
	code := map[byte]KeyCode{'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft}[final]
	mods := Modifiers(0)
	if len(params) >= 2 {
		mods = modifiersFromXterm(params[1])
	}
	return &Event{Key: &KeyEvent{Code: code, Modifiers: mods}}
}

func csiHomeEnd(code KeyCode, params []int) *Event {
	mods := Modifiers(0)
	if len(params) >= 2 {
		mods = modifiersFromXterm(params[1])
	}
	return &Event{Key: &KeyEvent{Code: code, Modifiers: mods}}
}

var tildeCodes = map[int]struct {
	code KeyCode
	fn   int
}{
	5:  {KeyPageUp, 0},
	6:  {KeyPageDown, 0},
	15: {KeyFunction, 5},
	17: {KeyFunction, 6},
	18: {KeyFunction, 7},
	19: {KeyFunction, 8},
	20: {KeyFunction, 9},
	21: {KeyFunction, 10},
	23: {KeyFunction, 11},
	24: {KeyFunction, 12},
}

func csiTilde(params []int) *Event {
	if len(params) == 0 {
		return nil
	}
	entry, ok := tildeCodes[params[0]]
	if !ok {
		return nil
	}
	mods := Modifiers(0)
	if len(params) >= 2 {
		mods = modifiersFromXterm(params[1])
	}
	return &Event{Key: &KeyEvent{Code: entry.code, Function: entry.fn, Modifiers: mods}}
}

// decodeSS3 scans the fixed three-byte ESC O <final> sequence.
func decodeSS3(buf []byte) (*Event, int) {
	if len(buf) < 3 {
		return nil, 0
	}
	final := buf[2]
	switch {
	case final >= 'A' && final <= 'D':
		code := map[byte]KeyCode{'A': KeyUp, 'B': KeyDown, 'C': KeyRight, 'D': KeyLeft}[final]
		return &Event{Key: &KeyEvent{Code: code}}, 3
	case final >= 'P' && final <= 'S':
		return &Event{Key: &KeyEvent{Code: KeyFunction, Function: int(final-'P') + 1}}, 3
	case final == 'H':
		return &Event{Key: &KeyEvent{Code: KeyHome}}, 3
	case final == 'F':
		return &Event{Key: &KeyEvent{Code: KeyEnd}}, 3
	default:
		return nil, 1 // unknown ESC O sequence: consume ESC only, per spec's unknown-ESC rule
	}
}

func isCSIFinal(b byte) bool {
	return (b >= 'A' && b <= 'Z') || b == '~'
}

func parseCSIParams(b []byte) []int {
	if len(b) == 0 {
		return nil
	}
	var params []int
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ';' {
			group := b[start:i]
			if len(group) == 0 {
				params = append(params, 0)
			} else if n, err := strconv.Atoi(string(group)); err == nil {
				params = append(params, n)
			} else {
				params = append(params, 0)
			}
			start = i + 1
		}
	}
	return params
}

func hasPrefix(buf []byte, s string) bool {
	if len(buf) < len(s) {
		return false
	}
	return string(buf[:len(s)]) == s
}

func indexOf(buf []byte, s string) int {
	if len(s) == 0 || len(buf) < len(s) {
		return -1
	}
	for i := 0; i+len(s) <= len(buf); i++ {
		if string(buf[i:i+len(s)]) == s {
			return i
		}
	}
	return -1
}
