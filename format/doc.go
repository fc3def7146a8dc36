// Package format renders emission prefixes through a three-stage template
// pipeline.
//
// Stage one renders atomic items: each tag (after the configured
// [TagFormatter] transform), the date and time (strftime patterns), and the
// trace file, line, and module. Stage two combines items of the same kind
// into groups: joined tags, datetime, trace. Stage three interpolates the
// groups into the final line template.
//
// All templates use named {placeholder} substitution; an unknown placeholder
// is a configuration error wrapping [ErrTemplate]. The {trace} group
// contributes an empty string when the emission carries no call-site frame,
// so trace-bearing templates work unchanged for untraced emissions.
//
// A default-configured formatter renders prefixes like
//
//	[2024-05-01 13:37:00][SQL,WARNING] :
//
// Every option has a default (see the Default constants) and any subset may
// be overridden:
//
//	f := format.New(
//	    format.WithTemplate("{datetime} {tags} "),
//	    format.WithTagDelimiter("|"),
//	)
package format
