package chipper

import (
	"sync/atomic"

	"github.com/chipperlog/chipper/tag"
)

// defaultLogger is the process-wide logger. Initialized explicitly on first
// access, never as an import side effect.
var defaultLogger atomic.Pointer[Logger]

// Default returns the process-wide [Logger], constructing a stdout-only
// logger on first access.
func Default() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}

	defaultLogger.CompareAndSwap(nil, New())

	return defaultLogger.Load()
}

// SetDefault replaces the process-wide [Logger]. Typically called once at
// startup after configuration is loaded. A nil logger is ignored.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger.Store(l)
	}
}

// Emit routes a message through the process-wide logger. See [Logger.Emit].
func Emit(message string, tags ...string) error {
	l := Default()

	set, err := l.normalize(tags)
	if err != nil {
		return err
	}

	l.dispatch(2, nil, message, set)

	return nil
}

// EmitErr routes a message and an associated error through the process-wide
// logger. See [Logger.EmitErr].
func EmitErr(cause error, message string, tags ...string) error {
	l := Default()

	set, err := l.normalize(tags)
	if err != nil {
		return err
	}

	l.dispatch(2, cause, message, set)

	return nil
}

// Call routes a dynamic-name emission through the process-wide logger. See
// [Logger.Call].
func Call(name, message string) error {
	l := Default()

	if err := checkReserved(name); err != nil {
		return err
	}

	set, err := tag.ParseName(name)
	if err != nil {
		return err
	}

	l.dispatch(2, nil, message, set)

	return nil
}
