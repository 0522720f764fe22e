package editor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opencode-ai/termtheme/internal/fsutil"
	"github.com/rs/zerolog"
)

// Defaults for Options.
const (
	DefaultSearchTool = "ag"
	DefaultKeyword    = "colorscheme"
)

// Sync errors.
var (
	ErrSearchToolUnavailable = errors.New("search tool unavailable")
	ErrSearchFailed          = errors.New("search tool failed")
	ErrNoDirective           = errors.New("no colorscheme directive found")
)

// DirectiveEditor finds and rewrites the editor's colorscheme directive.
type DirectiveEditor interface {
	// FindDirective returns the active directive line.
	FindDirective(ctx context.Context) (string, error)

	// ReplaceDirective substitutes oldLine with newLine in the editor config.
	ReplaceDirective(oldLine, newLine string) error

	// SwitchColorscheme points the active directive at theme.
	SwitchColorscheme(ctx context.Context, theme string) error
}

// Options configure a Syncer.
type Options struct {
	// ConfigPath is the editor configuration file (e.g. ~/.vimrc).
	ConfigPath string

	// SearchTool is the line-search program, invoked as "<tool> <keyword> <path>".
	SearchTool string

	// Keyword starts a directive line.
	Keyword string
}

// Syncer discovers the directive with an external search tool and rewrites
// it with a whole-file text substitution.
type Syncer struct {
	exec   Executor
	opts   Options
	logger zerolog.Logger
}

var _ DirectiveEditor = (*Syncer)(nil)

// exitCoder is implemented by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// NewSyncer creates a Syncer. A nil executor runs tools locally.
func NewSyncer(exec Executor, opts Options, logger zerolog.Logger) *Syncer {
	if exec == nil {
		exec = LocalExecutor{}
	}
	if strings.TrimSpace(opts.SearchTool) == "" {
		opts.SearchTool = DefaultSearchTool
	}
	if strings.TrimSpace(opts.Keyword) == "" {
		opts.Keyword = DefaultKeyword
	}
	return &Syncer{exec: exec, opts: opts, logger: logger}
}

// Directive builds the directive line selecting theme.
func (s *Syncer) Directive(theme string) string {
	return s.opts.Keyword + " " + theme
}

// FindDirective runs the search tool and returns the last matching directive.
// ErrNoDirective is returned when the tool reports no usable match.
func (s *Syncer) FindDirective(ctx context.Context) (string, error) {
	stdout, stderr, err := s.exec.Exec(ctx, s.opts.SearchTool, s.opts.Keyword, s.opts.ConfigPath)
	if err != nil {
		var coder exitCoder
		if !errors.As(err, &coder) {
			return "", fmt.Errorf("%w: %s: %w", ErrSearchToolUnavailable, s.opts.SearchTool, err)
		}
		// Line-search tools exit 1 when nothing matched.
		if coder.ExitCode() == 1 && len(strings.TrimSpace(string(stdout))) == 0 {
			return "", ErrNoDirective
		}
		return "", fmt.Errorf("%w: %s exited %d: %s", ErrSearchFailed, s.opts.SearchTool, coder.ExitCode(), strings.TrimSpace(string(stderr)))
	}

	directive, ok, err := LastDirective(stdout)
	if err != nil {
		return "", fmt.Errorf("%w: read %s output: %w", ErrSearchFailed, s.opts.SearchTool, err)
	}
	if !ok {
		return "", ErrNoDirective
	}
	return directive, nil
}

// ReplaceDirective rewrites every occurrence of oldLine in the editor config.
func (s *Syncer) ReplaceDirective(oldLine, newLine string) error {
	if oldLine == "" {
		return ErrNoDirective
	}

	data, err := os.ReadFile(s.opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("read editor config %s: %w", s.opts.ConfigPath, err)
	}

	content := string(data)
	if !strings.Contains(content, oldLine) {
		return fmt.Errorf("%w: %q not in %s", ErrNoDirective, oldLine, s.opts.ConfigPath)
	}
	if oldLine == newLine {
		return nil
	}

	updated := strings.ReplaceAll(content, oldLine, newLine)
	if err := fsutil.ReplaceFile(s.opts.ConfigPath, []byte(updated)); err != nil {
		return fmt.Errorf("write editor config %s: %w", s.opts.ConfigPath, err)
	}
	return nil
}

// SwitchColorscheme points the editor at theme. A config without a directive
// is left alone.
func (s *Syncer) SwitchColorscheme(ctx context.Context, theme string) error {
	current, err := s.FindDirective(ctx)
	if err != nil {
		if errors.Is(err, ErrNoDirective) {
			s.logger.Debug().Str("path", s.opts.ConfigPath).Msg("no colorscheme directive; skipping editor sync")
			return nil
		}
		return err
	}

	next := s.Directive(theme)
	if current == next {
		s.logger.Debug().Str("directive", current).Msg("editor colorscheme already set")
		return nil
	}

	if err := s.ReplaceDirective(current, next); err != nil {
		return err
	}

	s.logger.Info().
		Str("from", current).
		Str("to", next).
		Str("path", s.opts.ConfigPath).
		Msg("editor colorscheme updated")
	return nil
}
