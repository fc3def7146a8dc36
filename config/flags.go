package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/chipperlog/chipper"
)

// Flags holds CLI flag names for logger configuration, allowing callers to
// customize flag names while keeping sensible defaults via [NewOptions].
type Flags struct {
	Config   string
	Delivery string
}

// NewOptions creates a new [Options] embedding these flag names.
func (f Flags) NewOptions() *Options {
	return &Options{
		Flags: f,
	}
}

// Options holds CLI flag values for logger configuration.
//
// Create instances with [NewOptions] and register CLI flags with
// [Options.RegisterFlags]. Use [Options.NewLogger] to load the configuration
// document and construct a logger.
type Options struct {
	Config   string
	Delivery string
	Flags    Flags
}

// NewOptions returns a new [Options] with default flag names.
// Use [Options.RegisterFlags] to add CLI flags, or set values directly.
func NewOptions() *Options {
	f := Flags{
		Config:   "config",
		Delivery: "delivery",
	}

	return f.NewOptions()
}

// RegisterFlags adds logger configuration flags to the given
// [*pflag.FlagSet].
func (o *Options) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&o.Config, o.Flags.Config, "",
		"logger configuration file (YAML)")
	flags.StringVar(&o.Delivery, o.Flags.Delivery, "",
		fmt.Sprintf("default delivery policy, one of: %s", GetAllDeliveryStrings()))
}

// RegisterCompletions registers shell completions for configuration flags on
// cmd.
func (o *Options) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(o.Flags.Delivery,
		cobra.FixedCompletions(GetAllDeliveryStrings(), cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering delivery completion: %w", err)
	}

	return nil
}

// NewLogger loads the configuration file named by the config flag (or an
// empty document when the flag is unset), applies the delivery flag on top,
// and builds a [chipper.Logger].
func (o *Options) NewLogger(opts ...chipper.LoggerOption) (*chipper.Logger, error) {
	cfg := &Config{}

	if o.Config != "" {
		loaded, err := Load(o.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if o.Delivery != "" {
		cfg.Delivery = o.Delivery
	}

	return cfg.Build(opts...)
}
