// Package themes manages terminal theme fragments and the assembled configuration.
//
// A switch replaces two files (the final configuration and the current-theme
// state file). Each replacement is atomic on its own, but the pair is not, and
// nothing guards against two termtheme processes switching at the same time.
package themes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencode-ai/termtheme/internal/fsutil"
	"github.com/rs/zerolog"
	"github.com/sahilm/fuzzy"
)

// Store errors.
var (
	ErrThemeNotFound = errors.New("theme not found")
	ErrNoThemeRoot   = errors.New("theme root is not readable")
)

// Paths locates the files a Store reads and writes.
type Paths struct {
	// ThemeRoot holds one fragment file per theme.
	ThemeRoot string

	// Extension is the fragment file extension, without the dot (e.g. "yml").
	Extension string

	// BaseConfig is prepended to every assembled configuration.
	BaseConfig string

	// FinalConfig is the file the terminal emulator reads.
	FinalConfig string

	// StateFile records the name of the last switched theme.
	StateFile string
}

// Validate reports the first missing path.
func (p Paths) Validate() error {
	switch {
	case strings.TrimSpace(p.ThemeRoot) == "":
		return errors.New("theme root is required")
	case strings.TrimSpace(p.BaseConfig) == "":
		return errors.New("base config path is required")
	case strings.TrimSpace(p.FinalConfig) == "":
		return errors.New("final config path is required")
	case strings.TrimSpace(p.StateFile) == "":
		return errors.New("state file path is required")
	}
	return nil
}

// Store implements theme listing and switching on the local filesystem.
type Store struct {
	paths  Paths
	logger zerolog.Logger
}

// NewStore creates a Store. A leading dot on the extension is ignored.
func NewStore(paths Paths, logger zerolog.Logger) *Store {
	paths.Extension = strings.TrimPrefix(strings.TrimSpace(paths.Extension), ".")
	return &Store{paths: paths, logger: logger}
}

// Paths returns the store's file locations.
func (s *Store) Paths() Paths {
	return s.paths
}

// List returns the theme names found in the theme root, in directory order.
// Each name is the file name up to its first dot.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.paths.ThemeRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNoThemeRoot, s.paths.ThemeRoot, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, _, _ := strings.Cut(entry.Name(), ".")
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// Search returns the theme names starting with prefix (case-sensitive).
func (s *Store) Search(prefix string) ([]string, error) {
	names, err := s.List()
	if err != nil {
		return nil, err
	}

	matches := make([]string, 0)
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// Suggest returns up to limit theme names that fuzzily resemble name, best first.
func (s *Store) Suggest(name string, limit int) []string {
	if strings.TrimSpace(name) == "" || limit <= 0 {
		return nil
	}
	names, err := s.List()
	if err != nil {
		s.logger.Debug().Err(err).Msg("cannot list themes for suggestions")
		return nil
	}

	matches := fuzzy.Find(name, names)
	out := make([]string, 0, limit)
	for _, match := range matches {
		if len(out) == limit {
			break
		}
		out = append(out, match.Str)
	}
	return out
}

// FragmentPath maps a theme name to its fragment file.
// Names that would escape the theme root are rejected with ErrThemeNotFound.
func (s *Store) FragmentPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}
	file := name
	if s.paths.Extension != "" {
		file = name + "." + s.paths.Extension
	}
	return filepath.Join(s.paths.ThemeRoot, file), nil
}

// Exists reports whether name resolves to a fragment file.
func (s *Store) Exists(name string) bool {
	path, err := s.FragmentPath(name)
	if err != nil {
		return false
	}
	return fsutil.IsRegularFile(path)
}

// Switch assembles base config + fragment into the final config and records
// name in the state file. When the theme does not exist nothing is written.
func (s *Store) Switch(name string) error {
	fragmentPath, err := s.FragmentPath(name)
	if err != nil {
		return err
	}
	if !fsutil.IsRegularFile(fragmentPath) {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	s.logger.Debug().
		Str("theme", name).
		Str("fragment", fragmentPath).
		Msg("switching theme")

	base, err := os.ReadFile(s.paths.BaseConfig)
	if err != nil {
		return fmt.Errorf("read base config %s: %w", s.paths.BaseConfig, err)
	}
	fragment, err := os.ReadFile(fragmentPath)
	if err != nil {
		return fmt.Errorf("read theme %s: %w", fragmentPath, err)
	}

	assembled := make([]byte, 0, len(base)+len(fragment))
	assembled = append(assembled, base...)
	assembled = append(assembled, fragment...)

	if err := fsutil.ReplaceFile(s.paths.FinalConfig, assembled); err != nil {
		return fmt.Errorf("write final config %s: %w", s.paths.FinalConfig, err)
	}
	if err := fsutil.ReplaceFile(s.paths.StateFile, []byte(name)); err != nil {
		return fmt.Errorf("write state file %s: %w", s.paths.StateFile, err)
	}

	s.logger.Info().
		Str("theme", name).
		Str("config", s.paths.FinalConfig).
		Int("bytes", len(assembled)).
		Msg("theme switched")
	return nil
}

// Current returns the recorded theme name, or "" when the state file is
// missing or unreadable.
func (s *Store) Current() string {
	data, err := os.ReadFile(s.paths.StateFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Warn().Str("path", s.paths.StateFile).Msg("no current theme recorded")
		} else {
			s.logger.Error().Err(err).Str("path", s.paths.StateFile).Msg("failed to read current theme")
		}
		return ""
	}
	return strings.TrimRight(string(data), " \t\r\n")
}
