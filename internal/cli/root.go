// Package cli wires configuration, logging, the instruction compiler and the
// dispatcher behind the termtheme root command.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/opencode-ai/termtheme/internal/catalog"
	"github.com/opencode-ai/termtheme/internal/config"
	"github.com/opencode-ai/termtheme/internal/dispatch"
	"github.com/opencode-ai/termtheme/internal/editor"
	"github.com/opencode-ai/termtheme/internal/instruction"
	"github.com/opencode-ai/termtheme/internal/logging"
	"github.com/opencode-ai/termtheme/internal/styles"
	"github.com/opencode-ai/termtheme/internal/themes"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Options configure the root command. Zero values use the process defaults.
type Options struct {
	// BinName is shown in the usage text.
	BinName string

	// ConfigPath overrides $TERMTHEME_CONFIG and the XDG lookup.
	ConfigPath string

	Stdout io.Writer
	Stderr io.Writer

	// Executor runs the editor search tool.
	Executor editor.Executor
}

// Execute runs termtheme with args, which exclude the program name.
func Execute(ctx context.Context, args []string) error {
	cmd := NewRootCmd(Options{BinName: instruction.BinName(os.Args[0])})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// ReportError prints err to w unless it was already shown to the user.
func ReportError(w io.Writer, err error) {
	if err == nil || dispatch.IsReported(err) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// NewRootCmd builds the root command. Flags are not parsed by cobra; raw
// tokens are compiled against the flag catalog.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.BinName == "" {
		opts.BinName = "termtheme"
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cmd := &cobra.Command{
		Use:   opts.BinName + " [options] <parameter>",
		Short: "Switch the terminal color theme",
		Long: heredoc.Doc(`
			Switch the Alacritty color theme by assembling the base configuration
			and a theme fragment into the final configuration file.

			With --with-vim the colorscheme directive in the Vim configuration is
			updated to the same theme name.

			Paths and tools are read from $XDG_CONFIG_HOME/termtheme/config.yaml
			(or $TERMTHEME_CONFIG) and TERMTHEME_* environment variables.
		`),
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	return cmd
}

func run(ctx context.Context, opts Options, args []string) error {
	cat := catalog.Default()
	verbose := hasVerbose(cat, args)

	if err := initLogging(opts.Stderr, logging.DefaultLevel, logging.FormatConsole, verbose); err != nil {
		return err
	}

	argv := append([]string{opts.BinName}, args...)
	inst, err := instruction.Compile(cat, argv, opts.BinName, logging.Component("instruction"))
	if err != nil {
		return err
	}

	if inst.Is(instruction.CommandHelp) {
		d := dispatch.New(dispatch.Options{
			Catalog: cat,
			Out:     opts.Stdout,
			Logger:  logging.Component("dispatch"),
		})
		return d.Dispatch(ctx, inst)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	if err := initLogging(opts.Stderr, cfg.Logging.Level, cfg.Logging.Format, verbose); err != nil {
		return err
	}

	logger := logging.Component("cli")
	if cfg.Source != "" {
		logger.Debug().Str("path", cfg.Source).Msg("loaded config")
	}

	// Validate guarantees the palette exists.
	palette, _ := styles.Lookup(cfg.UI.Palette)

	paths := themes.Paths{
		ThemeRoot:   cfg.Theme.Root,
		Extension:   cfg.Theme.Extension,
		BaseConfig:  cfg.Theme.Base,
		FinalConfig: cfg.Theme.Final,
		StateFile:   cfg.Theme.State,
	}
	if err := paths.Validate(); err != nil {
		return err
	}
	store := themes.NewStore(paths, logging.Component("themes"))

	syncer := editor.NewSyncer(opts.Executor, editor.Options{
		ConfigPath: cfg.Editor.Config,
		SearchTool: cfg.Editor.SearchTool,
		Keyword:    cfg.Editor.Keyword,
	}, logging.Component("editor"))

	d := dispatch.New(dispatch.Options{
		Catalog: cat,
		Store:   store,
		Editor:  syncer,
		Out:     opts.Stdout,
		Palette: palette,
		Logger:  logging.Component("dispatch"),
	})
	return d.Dispatch(ctx, inst)
}

func initLogging(out io.Writer, level, format string, verbose bool) error {
	if err := logging.Init(logging.Options{Level: level, Format: format, Out: out}); err != nil {
		return err
	}
	if verbose {
		logging.SetLevel(zerolog.DebugLevel)
	}
	return nil
}

func hasVerbose(cat *catalog.Catalog, args []string) bool {
	for _, arg := range args {
		if flag, ok := cat.Lookup(arg); ok && flag.Name == catalog.Verbose {
			return true
		}
	}
	return false
}
