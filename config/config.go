package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/chipperlog/chipper"
	"github.com/chipperlog/chipper/format"
	"github.com/chipperlog/chipper/tag"
	"github.com/chipperlog/chipper/target"
)

// ErrConfig indicates an invalid configuration document. Configuration
// problems are fatal at build time so misconfiguration is caught before the
// first emission.
var ErrConfig = errors.New("invalid config")

// Config is a declarative logger configuration document.
type Config struct {
	// Handlers are evaluated in declaration order on every emission.
	Handlers []Handler `json:"handlers,omitempty" yaml:"handlers,omitempty"`
	// Default overrides the default formatter/target pair. When absent the
	// default pair renders with default options to stdout.
	Default *Default `json:"default,omitempty" yaml:"default,omitempty"`
	// Delivery is "always" (default pair fires for every emission, the
	// default) or "unmatched" (only when no handler matched).
	Delivery string `json:"delivery,omitempty" yaml:"delivery,omitempty"`
}

// Handler declares one subscription.
type Handler struct {
	// Name identifies the handler in diagnostics. Required.
	Name string `json:"name" yaml:"name"`
	// Tags is the subscription tag set. At least one tag is required.
	Tags []string `json:"tags" yaml:"tags"`
	// Target declares the sink destinations.
	Target target.Spec `json:"target,omitempty" yaml:"target,omitempty"`
	// Formatter overrides rendering options for this handler.
	Formatter *Formatter `json:"formatter,omitempty" yaml:"formatter,omitempty"`
}

// Default declares the default formatter/target pair.
type Default struct {
	Target    *target.Spec `json:"target,omitempty" yaml:"target,omitempty"`
	Formatter *Formatter   `json:"formatter,omitempty" yaml:"formatter,omitempty"`
}

// Formatter holds per-handler rendering overrides. Absent fields keep the
// defaults enumerated in the format package.
type Formatter struct {
	Template         *string `json:"template,omitempty" yaml:"template,omitempty"`
	TagsTemplate     *string `json:"tags_template,omitempty" yaml:"tags_template,omitempty"`
	TagTemplate      *string `json:"tag_template,omitempty" yaml:"tag_template,omitempty"`
	TagDelimiter     *string `json:"tag_delimiter,omitempty" yaml:"tag_delimiter,omitempty"`
	DateTemplate     *string `json:"date_template,omitempty" yaml:"date_template,omitempty"`
	DateFormat       *string `json:"date_format,omitempty" yaml:"date_format,omitempty"`
	TimeTemplate     *string `json:"time_template,omitempty" yaml:"time_template,omitempty"`
	TimeFormat       *string `json:"time_format,omitempty" yaml:"time_format,omitempty"`
	DatetimeTemplate *string `json:"datetime_template,omitempty" yaml:"datetime_template,omitempty"`
	FileTemplate     *string `json:"file_template,omitempty" yaml:"file_template,omitempty"`
	LineTemplate     *string `json:"line_template,omitempty" yaml:"line_template,omitempty"`
	ModuleTemplate   *string `json:"module_template,omitempty" yaml:"module_template,omitempty"`
	TraceTemplate    *string `json:"trace_template,omitempty" yaml:"trace_template,omitempty"`
}

// Load reads and parses a configuration document from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	return Parse(data)
}

// Parse parses a YAML configuration document. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	return &cfg, nil
}

// Build validates the document and constructs a [chipper.Logger] from it.
// Every tag token and template is checked here; any problem is fatal,
// wrapping [ErrConfig], so a misconfigured handler can never silently drop
// emissions later.
func (c *Config) Build(opts ...chipper.LoggerOption) (*chipper.Logger, error) {
	handlers := make([]*chipper.Handler, 0, len(c.Handlers))

	for i, h := range c.Handlers {
		built, err := h.build()
		if err != nil {
			return nil, fmt.Errorf("%w: handler %d: %w", ErrConfig, i, err)
		}

		handlers = append(handlers, built)
	}

	policy, err := ParseDelivery(c.Delivery)
	if err != nil {
		return nil, err
	}

	base := []chipper.LoggerOption{
		chipper.WithHandlers(handlers...),
		chipper.WithDeliveryPolicy(policy),
	}

	if c.Default != nil {
		defFormatter, err := c.Default.Formatter.build()
		if err != nil {
			return nil, fmt.Errorf("%w: default formatter: %w", ErrConfig, err)
		}

		spec := target.Spec{Stdout: true}
		if c.Default.Target != nil {
			spec = *c.Default.Target
		}

		defTarget, err := target.Open(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: default target: %w", ErrConfig, err)
		}

		base = append(base, chipper.WithDefault(defFormatter, defTarget))
	}

	return chipper.New(append(base, opts...)...), nil
}

func (h Handler) build() (*chipper.Handler, error) {
	if h.Name == "" {
		return nil, errors.New("name is required")
	}

	if len(h.Tags) == 0 {
		return nil, fmt.Errorf("%q: tags must contain at least one tag", h.Name)
	}

	subscription, err := tag.New(h.Tags...)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", h.Name, err)
	}

	formatter, err := h.Formatter.build()
	if err != nil {
		return nil, fmt.Errorf("%q: %w", h.Name, err)
	}

	tgt, err := target.Open(h.Target)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", h.Name, err)
	}

	return chipper.NewHandler(h.Name, subscription, formatter, tgt), nil
}

// build constructs and validates a formatter from the overrides. A nil
// receiver yields the default configuration.
func (f *Formatter) build() (*format.Formatter, error) {
	built := format.New(f.options()...)

	if err := built.Validate(); err != nil {
		return nil, err
	}

	return built, nil
}

func (f *Formatter) options() []format.Option {
	if f == nil {
		return nil
	}

	var opts []format.Option

	setString := func(v *string, opt func(string) format.Option) {
		if v != nil {
			opts = append(opts, opt(*v))
		}
	}

	setString(f.Template, format.WithTemplate)
	setString(f.TagsTemplate, format.WithTagsTemplate)
	setString(f.TagTemplate, format.WithTagTemplate)
	setString(f.TagDelimiter, format.WithTagDelimiter)
	setString(f.DateTemplate, format.WithDateTemplate)
	setString(f.DateFormat, format.WithDateFormat)
	setString(f.TimeTemplate, format.WithTimeTemplate)
	setString(f.TimeFormat, format.WithTimeFormat)
	setString(f.DatetimeTemplate, format.WithDatetimeTemplate)
	setString(f.FileTemplate, format.WithFileTemplate)
	setString(f.LineTemplate, format.WithLineTemplate)
	setString(f.ModuleTemplate, format.WithModuleTemplate)
	setString(f.TraceTemplate, format.WithTraceTemplate)

	return opts
}

// ParseDelivery parses a delivery policy string. The empty string means
// "always".
func ParseDelivery(s string) (chipper.DeliveryPolicy, error) {
	switch strings.ToLower(s) {
	case "", "always":
		return chipper.DeliverAlways, nil
	case "unmatched":
		return chipper.DeliverUnmatched, nil
	}

	return 0, fmt.Errorf("%w: unknown delivery policy %q", ErrConfig, s)
}

// GetAllDeliveryStrings returns the accepted delivery policy names.
func GetAllDeliveryStrings() []string {
	return []string{"always", "unmatched"}
}
