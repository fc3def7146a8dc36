// Package main provides the CLI entry point for chipper, a tag-based
// logging tool. It loads a declarative handler configuration, emits tagged
// messages through it, and prints the configuration JSON schema.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/chipperlog/chipper"
	"github.com/chipperlog/chipper/config"
	"github.com/chipperlog/chipper/format"
	"github.com/chipperlog/chipper/target"
	"github.com/chipperlog/chipper/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chipper",
		Short:         "Tag-based logging",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newEmitCmd(), newSchemaCmd(), newVersionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newEmitCmd() *cobra.Command {
	opts := config.NewOptions()

	var (
		tags     []string
		callName string
		color    bool
	)

	cmd := &cobra.Command{
		Use:   "emit [flags] <message> [message ...]",
		Short: "Emit a tagged message through the configured handlers",
		Long: `emit routes a message through the handlers declared in the configuration
file. Tags are given explicitly with --tags, or derived from an
underscore-delimited name with --name:

  chipper emit --tags sql,warning "slow query"
  chipper emit --name sql_warning "slow query"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runEmit(opts, tags, callName, color, strings.Join(args, " "))
		},
	}

	opts.RegisterFlags(cmd.Flags())
	cmd.Flags().StringSliceVarP(&tags, "tags", "t", nil, "tags for the emission")
	cmd.Flags().StringVarP(&callName, "name", "n", "", "underscore-delimited tag name, e.g. sql_warning")
	cmd.Flags().BoolVar(&color, "color", false, "style tags on terminal output")

	completionErr := opts.RegisterCompletions(cmd)
	if completionErr != nil {
		fmt.Fprintf(os.Stderr, "register completions: %v\n", completionErr)
	}

	return cmd
}

func runEmit(opts *config.Options, tags []string, callName string, color bool, message string) error {
	var extra []chipper.LoggerOption

	if color && term.IsTerminal(int(os.Stdout.Fd())) {
		style := lipgloss.NewStyle().Bold(true)

		extra = append(extra, chipper.WithDefault(
			format.New(format.WithTagFormatter(
				format.Chain(format.Uppercase, format.Styled(style)),
			)),
			target.New(os.Stdout),
		))
	}

	logger, err := opts.NewLogger(extra...)
	if err != nil {
		return err
	}

	if callName != "" {
		return logger.Call(callName, message)
	}

	return logger.Emit(message, tags...)
}

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the configuration JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			out, err := json.MarshalIndent(config.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal schema: %w", err)
			}

			out = append(out, '\n')

			_, err = os.Stdout.Write(out)
			if err != nil {
				return fmt.Errorf("write schema: %w", err)
			}

			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := fmt.Println(version.String())

			return err
		},
	}
}
