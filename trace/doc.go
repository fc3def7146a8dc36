// Package trace captures optional call-site information for log emissions
// carrying the reserved trace tag.
//
// Capture is an optional capability behind the [Source] interface: [Runtime]
// uses the Go runtime's caller metadata, while [None] stubs it out for
// stripped or restricted environments. All capture is best-effort and never
// fails an emission; unavailable metadata degrades to empty fields.
//
// [FormatError] renders the traceback block appended after a traced
// emission's message, including stacks recorded by
// [github.com/pkg/errors].
package trace
