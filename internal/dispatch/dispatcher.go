// Package dispatch executes a compiled instruction against the theme store
// and the editor colorscheme sync.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/opencode-ai/termtheme/internal/catalog"
	"github.com/opencode-ai/termtheme/internal/editor"
	"github.com/opencode-ai/termtheme/internal/instruction"
	"github.com/opencode-ai/termtheme/internal/styles"
	"github.com/opencode-ai/termtheme/internal/themes"
	"github.com/rs/zerolog"
)

// NotFound is printed when a search matches nothing.
const NotFound = "Not found"

// MaxSuggestions caps the "did you mean" list.
const MaxSuggestions = 3

// ReportedError wraps an error whose message has already been written to the
// output. Callers should set the exit status without printing it again.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }

func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported reports whether err, or an error it wraps, is a ReportedError.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

// ThemeStore is the subset of themes.Store the dispatcher needs.
type ThemeStore interface {
	List() ([]string, error)
	Search(prefix string) ([]string, error)
	Suggest(name string, limit int) []string
	Switch(name string) error
	Current() string
}

var _ ThemeStore = (*themes.Store)(nil)

// Options configure a Dispatcher.
type Options struct {
	Catalog *catalog.Catalog
	Store   ThemeStore

	// Editor is used for --with-vim. It may be nil, in which case the option
	// is logged and ignored.
	Editor editor.DirectiveEditor

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer

	// Palette styles the output; colors only reach terminals.
	Palette styles.Palette

	Logger zerolog.Logger
}

// Dispatcher runs one handler per instruction.
type Dispatcher struct {
	catalog *catalog.Catalog
	store   ThemeStore
	editor  editor.DirectiveEditor
	out     io.Writer
	styles  styles.Styles
	logger  zerolog.Logger
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	palette := opts.Palette
	if palette.Name == "" {
		palette = styles.DefaultPalette
	}

	return &Dispatcher{
		catalog: cat,
		store:   opts.Store,
		editor:  opts.Editor,
		out:     out,
		styles:  styles.ForWriter(out, palette),
		logger:  opts.Logger,
	}
}

// Dispatch executes inst. An instruction without a command does nothing.
func (d *Dispatcher) Dispatch(ctx context.Context, inst instruction.Instruction) error {
	if inst.Command == nil {
		d.logger.Debug().Msg("no command to dispatch")
		return nil
	}

	d.logger.Debug().Str("instruction", inst.String()).Msg("dispatching")

	switch inst.Command.Kind {
	case instruction.CommandHelp:
		return d.printUsage(inst.Command.Arg)
	case instruction.CommandListThemes:
		return d.listThemes()
	case instruction.CommandSearchTheme:
		return d.searchThemes(inst.Command.Arg)
	case instruction.CommandCurrentTheme:
		return d.printCurrent()
	case instruction.CommandSwitchTheme:
		return d.switchTheme(ctx, inst.Command.Arg, inst.Has(instruction.OptionSwitchWithVim))
	case instruction.CommandNoop:
		return nil
	default:
		return fmt.Errorf("unknown command %s", inst.Command.Kind)
	}
}

func (d *Dispatcher) listThemes() error {
	names, err := d.store.List()
	if err != nil {
		return fmt.Errorf("list themes: %w", err)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(d.out, name); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) searchThemes(prefix string) error {
	matches, err := d.store.Search(prefix)
	if err != nil {
		return fmt.Errorf("search themes: %w", err)
	}
	if len(matches) == 0 {
		_, err := fmt.Fprintln(d.out, d.styles.Muted.Render(NotFound))
		return err
	}
	for _, name := range matches {
		if _, err := fmt.Fprintln(d.out, name); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) printCurrent() error {
	_, err := fmt.Fprintln(d.out, d.store.Current())
	return err
}

func (d *Dispatcher) switchTheme(ctx context.Context, name string, withVim bool) error {
	if err := d.store.Switch(name); err != nil {
		if errors.Is(err, themes.ErrThemeNotFound) {
			d.reportNotFound(name)
			return &ReportedError{Err: err}
		}
		return err
	}

	fmt.Fprintln(d.out, d.styles.Success.Render("Switched to "+name))

	if !withVim {
		return nil
	}
	if d.editor == nil {
		d.logger.Warn().Msg("no editor configured; skipping colorscheme sync")
		return nil
	}
	if err := d.editor.SwitchColorscheme(ctx, name); err != nil {
		return fmt.Errorf("sync editor colorscheme: %w", err)
	}
	return nil
}

func (d *Dispatcher) reportNotFound(name string) {
	fmt.Fprintln(d.out, d.styles.Error.Render("ERROR: Theme not found!"))

	suggestions := d.store.Suggest(name, MaxSuggestions)
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintln(d.out, d.styles.Warning.Render("Did you mean:"))
	for _, s := range suggestions {
		fmt.Fprintf(d.out, "\t%s\n", d.styles.Text.Render(s))
	}
}
