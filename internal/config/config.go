// Package config loads termtheme settings from defaults, a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/opencode-ai/termtheme/internal/logging"
	"github.com/opencode-ai/termtheme/internal/styles"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override (e.g. TERMTHEME_THEME_ROOT).
const EnvPrefix = "TERMTHEME"

// EnvConfigFile names an explicit config file.
const EnvConfigFile = EnvPrefix + "_CONFIG"

// Config is the full termtheme configuration.
type Config struct {
	Theme   ThemeConfig   `mapstructure:"theme"`
	Editor  EditorConfig  `mapstructure:"editor"`
	Logging LoggingConfig `mapstructure:"logging"`
	UI      UIConfig      `mapstructure:"ui"`

	// Source is the config file that was read, if any.
	Source string `mapstructure:"-"`
}

// ThemeConfig locates theme fragments and the files a switch writes.
type ThemeConfig struct {
	Root      string `mapstructure:"root"`
	Extension string `mapstructure:"extension"`
	Base      string `mapstructure:"base"`
	Final     string `mapstructure:"final"`
	State     string `mapstructure:"state"`
}

// EditorConfig configures the colorscheme sync.
type EditorConfig struct {
	Config     string `mapstructure:"config"`
	SearchTool string `mapstructure:"search_tool"`
	Keyword    string `mapstructure:"keyword"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UIConfig configures terminal output.
type UIConfig struct {
	Palette string `mapstructure:"palette"`
}

// DefaultConfig returns the built-in configuration for Alacritty and Vim.
func DefaultConfig() *Config {
	alacritty := filepath.Join(xdg.ConfigHome, "alacritty")

	vimrc := "~/.vimrc"
	if home, err := homedir.Dir(); err == nil && home != "" {
		vimrc = filepath.Join(home, ".vimrc")
	}

	return &Config{
		Theme: ThemeConfig{
			Root:      filepath.Join(alacritty, "alacritty-theme", "themes"),
			Extension: "yml",
			Base:      filepath.Join(alacritty, "base.yml"),
			Final:     filepath.Join(alacritty, "alacritty.yml"),
			State:     filepath.Join(alacritty, ".current_theme"),
		},
		Editor: EditorConfig{
			Config:     vimrc,
			SearchTool: "ag",
			Keyword:    "colorscheme",
		},
		Logging: LoggingConfig{
			Level:  logging.DefaultLevel,
			Format: logging.FormatConsole,
		},
		UI: UIConfig{
			Palette: styles.DefaultPaletteName,
		},
	}
}

// DefaultConfigDir is where Load looks for config.yaml.
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "termtheme")
}

// Load reads configuration. An explicit path (or $TERMTHEME_CONFIG) must
// exist; otherwise config.yaml in DefaultConfigDir is optional. Environment
// variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, DefaultConfig())

	if strings.TrimSpace(path) == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", expanded, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required values.
func (c *Config) Validate() error {
	required := []struct {
		key, value string
	}{
		{"theme.root", c.Theme.Root},
		{"theme.base", c.Theme.Base},
		{"theme.final", c.Theme.Final},
		{"theme.state", c.Theme.State},
		{"editor.config", c.Editor.Config},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("config: %s is required", r.key)
		}
	}

	if filepath.Clean(c.Theme.Final) == filepath.Clean(c.Theme.Base) {
		return fmt.Errorf("config: theme.final must differ from theme.base")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", logging.FormatConsole, logging.FormatJSON:
	default:
		return fmt.Errorf("config: logging.format must be %q or %q", logging.FormatConsole, logging.FormatJSON)
	}
	if _, err := styles.Lookup(c.UI.Palette); err != nil {
		return fmt.Errorf("config: ui.palette: %w", err)
	}
	return nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{
		&c.Theme.Root,
		&c.Theme.Base,
		&c.Theme.Final,
		&c.Theme.State,
		&c.Editor.Config,
	} {
		expanded, err := homedir.Expand(strings.TrimSpace(*p))
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("theme.root", cfg.Theme.Root)
	v.SetDefault("theme.extension", cfg.Theme.Extension)
	v.SetDefault("theme.base", cfg.Theme.Base)
	v.SetDefault("theme.final", cfg.Theme.Final)
	v.SetDefault("theme.state", cfg.Theme.State)
	v.SetDefault("editor.config", cfg.Editor.Config)
	v.SetDefault("editor.search_tool", cfg.Editor.SearchTool)
	v.SetDefault("editor.keyword", cfg.Editor.Keyword)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("ui.palette", cfg.UI.Palette)
}
