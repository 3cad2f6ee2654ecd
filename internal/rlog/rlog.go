// Package rlog provides debug logging for the runtime.
package rlog

import "log"

// DebugEnabled controls whether Debug() produces output.
// It is false by default and is set directly by callers.
var DebugEnabled bool

// Debug logs a message only when DebugEnabled is true.
func Debug(format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG: "+format, args...)
	}
}

// Session logs a message prefixed with a session correlation ID, only when
// DebugEnabled is true.
func Session(sessionID, format string, args ...any) {
	if DebugEnabled {
		log.Printf("DEBUG[%s]: "+format, append([]any{sessionID}, args...)...)
	}
}

// Error logs a message unconditionally, for failures the runtime recovers
// from but still needs surfaced (e.g. a panicking effect).
func Error(format string, args ...any) {
	log.Printf("ERROR: "+format, args...)
}
