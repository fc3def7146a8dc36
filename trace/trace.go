package trace

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

// Frame identifies the call site of an emission: source file base name, line
// number, and the enclosing function. The zero Frame means no call-site
// information is available.
type Frame struct {
	File     string
	Function string
	Line     int
}

// IsZero reports whether f carries no call-site information.
func (f Frame) IsZero() bool {
	return f == Frame{}
}

// Source supplies call-site information for emissions tagged with the
// reserved trace tag. Capture is best-effort: implementations return
// ok=false rather than an error when the runtime cannot supply metadata,
// and callers degrade to empty trace fields.
//
// skip counts stack frames above the caller of Capture, with the same
// convention as [runtime.Caller]: 0 is the caller itself.
type Source interface {
	Capture(skip int) (Frame, bool)
}

// Runtime is a [Source] backed by [runtime.Caller]. The zero value is ready
// to use.
type Runtime struct{}

// Capture returns the frame skip levels above the caller. The function name
// is reduced to package.Function form.
func (Runtime) Capture(skip int) (Frame, bool) {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Frame{}, false
	}

	frame := Frame{
		File: filepath.Base(file),
		Line: line,
	}

	if fn := runtime.FuncForPC(pc); fn != nil {
		frame.Function = shortFuncName(fn.Name())
	}

	return frame, true
}

// shortFuncName strips the package path, keeping package.Function.
func shortFuncName(full string) string {
	if i := strings.LastIndex(full, "/"); i >= 0 && i+1 < len(full) {
		return full[i+1:]
	}

	return full
}

// None is a [Source] that never captures anything, for environments without
// runtime introspection. Emissions still route and render; trace fields stay
// empty.
type None struct{}

// Capture always reports no frame.
func (None) Capture(int) (Frame, bool) {
	return Frame{}, false
}

// stackTracer is the contract emitted by [github.com/pkg/errors].
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// FormatError renders an error for the traceback block appended after a
// traced emission: the error text, then the deepest recorded stack if the
// error (or anything it wraps) carries one.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	sb.WriteString(err.Error())

	if st := deepestStack(err); st != nil {
		sb.WriteString(fmt.Sprintf("%+v", st))
	}

	return sb.String()
}

func deepestStack(err error) errors.StackTrace {
	var deepest errors.StackTrace

	for err != nil {
		if tracer, ok := err.(stackTracer); ok {
			deepest = tracer.StackTrace()
		}

		err = errors.Unwrap(err)
	}

	return deepest
}
