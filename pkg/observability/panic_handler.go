package observability

import (
	"runtime/debug"
)

// RecoverPanic recovers from a panic and logs it with the full stack trace.
// Intended for defer statements around background work, e.g. the janitor
// sweep:
//
//	defer observability.RecoverPanic(logger, "janitor sweep")
//
// The panic is not re-raised; the goroutine returns normally.
func RecoverPanic(logger *Logger, context string) {
	if r := recover(); r != nil {
		logger.WithField("panic", r).
			WithField("stack", string(debug.Stack())).
			WithField("context", context).
			Error("PANIC recovered")
	}
}

// RecoverPanicWithCallback recovers from a panic, logs it, and then runs
// callback. The HTTP recovery middleware uses this to return a 500 after a
// handler panics:
//
//	defer observability.RecoverPanicWithCallback(logger, "http handler", func() {
//	    WriteInternalError(w, err)
//	})
//
// The callback only runs when a panic actually occurred, so it is the place
// for failure-path cleanup: responding with an error, closing channels,
// flagging state.
func RecoverPanicWithCallback(logger *Logger, context string, callback func()) {
	if r := recover(); r != nil {
		logger.WithField("panic", r).
			WithField("stack", string(debug.Stack())).
			WithField("context", context).
			Error("PANIC recovered")
		if callback != nil {
			callback()
		}
	}
}
