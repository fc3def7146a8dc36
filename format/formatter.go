package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/chipperlog/chipper/tag"
	"github.com/chipperlog/chipper/trace"
)

// Default values for every formatter option. Any subset may be overridden
// per handler.
const (
	DefaultTemplate         = "{datetime}{trace}{tags} : "
	DefaultTagsTemplate     = "[{tags}]"
	DefaultTagTemplate      = "{tag}"
	DefaultTagDelimiter     = ","
	DefaultDateTemplate     = "{date}"
	DefaultDateFormat       = "%Y-%m-%d"
	DefaultTimeTemplate     = "{time}"
	DefaultTimeFormat       = "%H:%M:%S"
	DefaultDatetimeTemplate = "[{date} {time}]"
	DefaultFileTemplate     = "{file}"
	DefaultLineTemplate     = ":{line}"
	DefaultModuleTemplate   = ":{module}"
	DefaultTraceTemplate    = "{file}{line}"
)

// Input carries everything a [Formatter] needs to render one emission
// prefix: the owning handler's name, the emission timestamp and tags, and
// the call-site frame when one was captured (zero Frame otherwise).
type Input struct {
	Time    time.Time
	Handler string
	Tags    tag.Set
	Frame   trace.Frame
}

// Formatter renders emission prefixes through a three-stage template
// pipeline: items (each tag, date, time, trace fields), item groups (joined
// tags, datetime, trace), and the final line template interpolating the
// groups. Rendering is pure: the same input and configuration produce
// byte-identical output.
//
// Create instances with [New]; a Formatter is immutable and safe to share
// across concurrent renders.
type Formatter struct {
	tagFormatter     TagFormatter
	template         string
	tagsTemplate     string
	tagTemplate      string
	tagDelimiter     string
	dateTemplate     string
	dateFormat       string
	timeTemplate     string
	timeFormat       string
	datetimeTemplate string
	fileTemplate     string
	lineTemplate     string
	moduleTemplate   string
	traceTemplate    string
}

// Option configures a [Formatter].
type Option func(*Formatter)

// New creates a [Formatter] with the given options. Options not supplied
// keep their defaults. Template problems surface at the first render; call
// [Formatter.Validate] to force them out at construction time.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		tagFormatter:     Uppercase,
		template:         DefaultTemplate,
		tagsTemplate:     DefaultTagsTemplate,
		tagTemplate:      DefaultTagTemplate,
		tagDelimiter:     DefaultTagDelimiter,
		dateTemplate:     DefaultDateTemplate,
		dateFormat:       DefaultDateFormat,
		timeTemplate:     DefaultTimeTemplate,
		timeFormat:       DefaultTimeFormat,
		datetimeTemplate: DefaultDatetimeTemplate,
		fileTemplate:     DefaultFileTemplate,
		lineTemplate:     DefaultLineTemplate,
		moduleTemplate:   DefaultModuleTemplate,
		traceTemplate:    DefaultTraceTemplate,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// WithTemplate sets the final line template. Supported placeholders:
// {datetime}, {tags}, {trace}, {handler}.
func WithTemplate(tmpl string) Option {
	return func(f *Formatter) { f.template = tmpl }
}

// WithTagsTemplate sets the tags group template. Supported placeholder:
// {tags}.
func WithTagsTemplate(tmpl string) Option {
	return func(f *Formatter) { f.tagsTemplate = tmpl }
}

// WithTagTemplate sets the per-tag item template. Supported placeholder:
// {tag}.
func WithTagTemplate(tmpl string) Option {
	return func(f *Formatter) { f.tagTemplate = tmpl }
}

// WithTagFormatter sets the per-tag transform applied before the tag
// template. A nil transform restores the default.
func WithTagFormatter(fn TagFormatter) Option {
	return func(f *Formatter) {
		if fn == nil {
			fn = Uppercase
		}

		f.tagFormatter = fn
	}
}

// WithTagDelimiter sets the separator joining rendered tags.
func WithTagDelimiter(delim string) Option {
	return func(f *Formatter) { f.tagDelimiter = delim }
}

// WithDateTemplate sets the date item template. Supported placeholder:
// {date}.
func WithDateTemplate(tmpl string) Option {
	return func(f *Formatter) { f.dateTemplate = tmpl }
}

// WithDateFormat sets the strftime pattern for the date item.
func WithDateFormat(pattern string) Option {
	return func(f *Formatter) { f.dateFormat = pattern }
}

// WithTimeTemplate sets the time item template. Supported placeholder:
// {time}.
func WithTimeTemplate(tmpl string) Option {
	return func(f *Formatter) { f.timeTemplate = tmpl }
}

// WithTimeFormat sets the strftime pattern for the time item.
func WithTimeFormat(pattern string) Option {
	return func(f *Formatter) { f.timeFormat = pattern }
}

// WithDatetimeTemplate sets the datetime group template. Supported
// placeholders: {date}, {time}.
func WithDatetimeTemplate(tmpl string) Option {
	return func(f *Formatter) { f.datetimeTemplate = tmpl }
}

// WithFileTemplate sets the trace file item template. Supported placeholder:
// {file}.
func WithFileTemplate(tmpl string) Option {
	return func(f *Formatter) { f.fileTemplate = tmpl }
}

// WithLineTemplate sets the trace line item template. Supported placeholder:
// {line}.
func WithLineTemplate(tmpl string) Option {
	return func(f *Formatter) { f.lineTemplate = tmpl }
}

// WithModuleTemplate sets the trace module item template. Supported
// placeholder: {module}.
func WithModuleTemplate(tmpl string) Option {
	return func(f *Formatter) { f.moduleTemplate = tmpl }
}

// WithTraceTemplate sets the trace group template. Supported placeholders:
// {file}, {line}, {module}.
func WithTraceTemplate(tmpl string) Option {
	return func(f *Formatter) { f.traceTemplate = tmpl }
}

// Render produces the prefix for one emission. Errors wrap [ErrTemplate]
// and indicate a configuration problem, not a property of the emission.
func (f *Formatter) Render(in Input) (string, error) {
	tags, err := f.renderTags(in.Tags)
	if err != nil {
		return "", err
	}

	datetime, err := f.renderDatetime(in.Time)
	if err != nil {
		return "", err
	}

	traceGroup, err := f.renderTrace(in.Frame)
	if err != nil {
		return "", err
	}

	return expand(f.template, map[string]string{
		"datetime": datetime,
		"tags":     tags,
		"trace":    traceGroup,
		"handler":  in.Handler,
	})
}

// Validate forces every template and strftime pattern through one render so
// configuration problems surface at construction rather than at the first
// emission.
func (f *Formatter) Validate() error {
	probe := Input{
		Time:    time.Unix(0, 0).UTC(),
		Handler: "probe",
		Tags:    tag.MustNew("probe"),
		Frame:   trace.Frame{File: "probe.go", Function: "probe", Line: 1},
	}

	_, err := f.Render(probe)

	return err
}

func (f *Formatter) renderTags(tags tag.Set) (string, error) {
	items := make([]string, 0, tags.Len())

	for _, t := range tags.Tags() {
		item, err := expand(f.tagTemplate, map[string]string{"tag": f.tagFormatter(t)})
		if err != nil {
			return "", err
		}

		items = append(items, item)
	}

	return expand(f.tagsTemplate, map[string]string{
		"tags": strings.Join(items, f.tagDelimiter),
	})
}

func (f *Formatter) renderDatetime(ts time.Time) (string, error) {
	date, err := f.renderClockItem(f.dateTemplate, "date", f.dateFormat, ts)
	if err != nil {
		return "", err
	}

	clock, err := f.renderClockItem(f.timeTemplate, "time", f.timeFormat, ts)
	if err != nil {
		return "", err
	}

	return expand(f.datetimeTemplate, map[string]string{
		"date": date,
		"time": clock,
	})
}

func (f *Formatter) renderClockItem(tmpl, name, pattern string, ts time.Time) (string, error) {
	val, err := strftime.Format(pattern, ts)
	if err != nil {
		return "", fmt.Errorf("%w: %s format %q: %w", ErrTemplate, name, pattern, err)
	}

	return expand(tmpl, map[string]string{name: val})
}

// renderTrace renders the trace group, or an empty contribution when no
// frame was captured.
func (f *Formatter) renderTrace(frame trace.Frame) (string, error) {
	if frame.IsZero() {
		return "", nil
	}

	file, err := expand(f.fileTemplate, map[string]string{"file": frame.File})
	if err != nil {
		return "", err
	}

	line, err := expand(f.lineTemplate, map[string]string{"line": strconv.Itoa(frame.Line)})
	if err != nil {
		return "", err
	}

	module, err := expand(f.moduleTemplate, map[string]string{"module": frame.Function})
	if err != nil {
		return "", err
	}

	return expand(f.traceTemplate, map[string]string{
		"file":   file,
		"line":   line,
		"module": module,
	})
}
