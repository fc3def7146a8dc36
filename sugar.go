package chipper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chipperlog/chipper/tag"
)

// ErrReservedName indicates a dynamic call name that collides with a real
// operation of the logging surface.
var ErrReservedName = errors.New("reserved name")

// reservedOps are operation names a dynamic call name may not shadow.
var reservedOps = map[string]struct{}{
	"emit":     {},
	"emiterr":  {},
	"call":     {},
	"bind":     {},
	"bindname": {},
	"handlers": {},
}

func checkReserved(name string) error {
	if _, ok := reservedOps[strings.ToLower(name)]; ok {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}

	return nil
}

// Call is the dynamic-name form of [Logger.Emit]: the tag set is derived by
// splitting name on underscores, so
//
//	l.Call("general_info", msg)
//
// is equivalent to
//
//	l.Emit(msg, "general", "info")
//
// Names that collide with a real operation (such as "emit") are rejected
// with [ErrReservedName]; malformed names are rejected with
// [tag.ErrInvalidTag].
func (l *Logger) Call(name, message string) error {
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

// TaggedLog is a partial logger with a fixed tag set, for call sites that
// always log with the same tags. Create instances with [Logger.Bind] or
// [Logger.BindName].
type TaggedLog struct {
	logger *Logger
	tags   tag.Set
}

// Bind fixes a tag set ahead of time and returns a [TaggedLog] that only
// takes the message. With no tags the bound set is the reserved default
// tag.
func (l *Logger) Bind(tags ...string) (*TaggedLog, error) {
	set, err := l.normalize(tags)
	if err != nil {
		return nil, err
	}

	return &TaggedLog{logger: l, tags: set}, nil
}

// BindName is [Logger.Bind] with the tag set derived from an underscore-
// delimited name, subject to the same reserved-name check as [Logger.Call].
func (l *Logger) BindName(name string) (*TaggedLog, error) {
	if err := checkReserved(name); err != nil {
		return nil, err
	}

	set, err := tag.ParseName(name)
	if err != nil {
		return nil, err
	}

	return &TaggedLog{logger: l, tags: set}, nil
}

// Tags returns the bound tag set.
func (t *TaggedLog) Tags() tag.Set {
	return t.tags
}

// Log emits a message with the bound tag set.
func (t *TaggedLog) Log(message string) error {
	t.logger.dispatch(2, nil, message, t.tags)

	return nil
}

// LogErr emits a message with the bound tag set and an associated error,
// as in [Logger.EmitErr].
func (t *TaggedLog) LogErr(cause error, message string) error {
	t.logger.dispatch(2, cause, message, t.tags)

	return nil
}
