// Package tag provides the canonical tag-set representation used for routing
// log emissions.
//
// A [Set] is an order-insensitive, case-normalized, deduplicated collection
// of single-word tokens. Emissions and handler subscriptions are both tag
// sets; an emission reaches a handler when the two sets intersect (see
// [Set.Matches]).
//
// Sets come from explicit tokens or from a method-name-like identifier:
//
//	s, err := tag.New("blog", "sql", "warning")
//	s, err := tag.ParseName("blog_sql_warning") // same set
//
// Two tag names are reserved: [Default] is synthesized for emissions with no
// tags, and [Trace] additionally triggers call-site capture.
package tag
