// Package chipper is a tag-based logging facility: instead of a fixed
// severity hierarchy, each emission carries an arbitrary set of free-form
// tags, and independently configured handlers subscribe to tag sets,
// deciding which emissions they capture and how they render and deliver
// them.
//
// A [Logger] holds an ordered collection of [Handler] values, each binding a
// subscription tag set to a [format.Formatter] and a [target.Target]. An
// emission reaches every handler whose subscription intersects its tags
// ("any of", not "all of"), and additionally the default formatter/target
// pair per the configured [DeliveryPolicy], so by default every emission is
// visible somewhere.
//
//	sqlTarget, _ := target.Open(target.Spec{Filename: "sql.log"})
//
//	logger := chipper.New(
//	    chipper.WithHandlers(
//	        chipper.NewHandler("sql", tag.MustNew("sql", "query"), format.New(), sqlTarget),
//	    ),
//	)
//
//	logger.Emit("connection established", "sql", "info")
//
// Two sugar forms avoid spelling out tag slices at every call site. A
// dynamic name encodes the tags, underscore-delimited:
//
//	logger.Call("sql_warning", "slow query")   // tags {sql, warning}
//
// and [Logger.Bind] fixes the tags ahead of time:
//
//	sqlLog, _ := logger.Bind("sql", "warning")
//	sqlLog.Log("slow query")
//
// Emissions with no tags carry the reserved default tag. The reserved trace
// tag additionally captures the call site (see [trace.Source]) and, via
// [Logger.EmitErr], appends an error's text and stack after the message.
//
// The process-wide logger is available through [Default] and the package
// level [Emit], [EmitErr], and [Call]; replace it once at startup with
// [SetDefault].
package chipper
