package main

import (
	"fmt"

	"github.com/at-ishikawa/termwords/internal/cli"
	"github.com/at-ishikawa/termwords/internal/config"
	"github.com/at-ishikawa/termwords/internal/dictionary/freedict"
	"github.com/at-ishikawa/termwords/internal/render"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type outputFormat render.Format

func (f *outputFormat) Set(val string) error {
	for _, format := range render.AllFormats {
		if val == string(format) {
			*f = outputFormat(format)
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (f outputFormat) String() string {
	return string(f)
}

func (f *outputFormat) Type() string {
	return "format"
}

var _ pflag.Value = (*outputFormat)(nil)

type rootOptions struct {
	configFile  string
	debugMode   bool
	detail      bool
	interactive bool
	limit       int
	noColor     bool
	output      outputFormat
}

func newRootCommand() *cobra.Command {
	opts := rootOptions{
		limit:  render.DefaultLimit,
		output: outputFormat(render.FormatText),
	}

	rootCommand := cobra.Command{
		Use:           "termwords [word]",
		Short:         "A command-line dictionary tool",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(opts.debugMode)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, opts)
		},
	}

	flags := rootCommand.Flags()
	flags.StringVar(&opts.configFile, "config", "", "config file path")
	flags.BoolVar(&opts.debugMode, "debug", false, "Enable debug mode")
	flags.BoolVarP(&opts.detail, "detail", "d", false, "Show every definition, example, synonym, antonym and the source")
	flags.BoolVarP(&opts.interactive, "interactive", "i", false, "Read words from standard input until q, quit or exit")
	flags.IntVarP(&opts.limit, "limit", "n", render.DefaultLimit, "Maximum definitions per part of speech without --detail")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flags.VarP(&opts.output, "output", "o", fmt.Sprintf("Output format. Possible values are %v", render.AllFormats))

	return &rootCommand
}

func runRoot(cmd *cobra.Command, args []string, opts rootOptions) error {
	if len(args) == 0 && !opts.interactive {
		return cli.ErrUsage
	}
	if len(args) > 0 && opts.interactive {
		return fmt.Errorf("%w: a word cannot be combined with --interactive", cli.ErrUsage)
	}

	loader, err := config.NewConfigLoader(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("detail") {
		cfg.Display.Detail = opts.detail
	}
	if flags.Changed("limit") {
		cfg.Display.Limit = opts.limit
	}
	if opts.noColor {
		cfg.Display.Color = false
	}
	if err := loader.Validate(cfg); err != nil {
		return err
	}
	if !cfg.Display.Color {
		color.NoColor = true
	}

	client := freedict.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	defer func() {
		_ = client.Close()
	}()

	session, err := cli.NewSession(
		client,
		render.Options{
			Detailed: cfg.Display.Detail,
			Limit:    cfg.Display.Limit,
		},
		render.Format(opts.output),
		cmd.InOrStdin(),
		cmd.OutOrStdout(),
	)
	if err != nil {
		return fmt.Errorf("cli.NewSession > %w", err)
	}

	ctx := cmd.Context()
	if opts.interactive {
		return session.RunInteractive(ctx)
	}
	return session.RunOnce(ctx, args[0])
}
