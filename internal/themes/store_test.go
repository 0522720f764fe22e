package themes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseContent = "font:\n  size: 12\n"

// setupTestStore creates a theme root with the given fragments and a base config.
func setupTestStore(t *testing.T, fragments map[string]string) (*Store, Paths) {
	t.Helper()

	dir := t.TempDir()
	paths := Paths{
		ThemeRoot:   filepath.Join(dir, "themes"),
		Extension:   "yml",
		BaseConfig:  filepath.Join(dir, "base.yml"),
		FinalConfig: filepath.Join(dir, "alacritty.yml"),
		StateFile:   filepath.Join(dir, ".current_theme"),
	}

	require.NoError(t, os.MkdirAll(paths.ThemeRoot, 0o755))
	require.NoError(t, os.WriteFile(paths.BaseConfig, []byte(baseContent), 0o644))
	for file, content := range fragments {
		require.NoError(t, os.WriteFile(filepath.Join(paths.ThemeRoot, file), []byte(content), 0o644))
	}

	return NewStore(paths, zerolog.Nop()), paths
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestList(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml":        "nord",
		"dracula.yml":     "dracula",
		"dracula-pro.yml": "pro",
		".hidden.yml":     "x",
	})
	require.NoError(t, os.Mkdir(filepath.Join(paths.ThemeRoot, "extras"), 0o755))

	names, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"dracula-pro", "dracula", "nord"}, names)
}

func TestListMissingRoot(t *testing.T) {
	store := NewStore(Paths{ThemeRoot: filepath.Join(t.TempDir(), "nope")}, zerolog.Nop())

	_, err := store.List()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoThemeRoot))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSearch(t *testing.T) {
	store, _ := setupTestStore(t, map[string]string{
		"dracula.yml":     "a",
		"dracula-pro.yml": "b",
		"nord.yml":        "c",
	})

	matches, err := store.Search("drac")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"dracula", "dracula-pro"}, matches)

	matches, err = store.Search("zzz")
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = store.Search("Drac")
	require.NoError(t, err)
	assert.Empty(t, matches, "search is case-sensitive")
}

func TestSuggest(t *testing.T) {
	store, _ := setupTestStore(t, map[string]string{
		"dracula.yml":        "a",
		"gruvbox_dark.yml":   "b",
		"nord.yml":           "c",
		"solarized_dark.yml": "d",
	})

	suggestions := store.Suggest("drcla", 3)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "dracula", suggestions[0])

	assert.Len(t, store.Suggest("dark", 1), 1)
	assert.Nil(t, store.Suggest("", 3))
	assert.Nil(t, store.Suggest("nord", 0))
}

func TestSwitch(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml": "colors:\n  primary: nord\n",
	})

	require.NoError(t, store.Switch("nord"))

	assert.Equal(t, baseContent+"colors:\n  primary: nord\n", readFile(t, paths.FinalConfig))
	assert.Equal(t, "nord", readFile(t, paths.StateFile))
	assert.Equal(t, "nord", store.Current())
}

func TestSwitchIsIdempotent(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml": "colors: nord\n",
	})

	require.NoError(t, store.Switch("nord"))
	first := readFile(t, paths.FinalConfig)

	require.NoError(t, store.Switch("nord"))
	assert.Equal(t, first, readFile(t, paths.FinalConfig))
	assert.Equal(t, "nord", readFile(t, paths.StateFile))
}

func TestSwitchReplacesPreviousTheme(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml":    "colors: nord\n",
		"dracula.yml": "colors: dracula\n",
	})

	require.NoError(t, store.Switch("nord"))
	require.NoError(t, store.Switch("dracula"))

	assert.Equal(t, baseContent+"colors: dracula\n", readFile(t, paths.FinalConfig))
	assert.Equal(t, "dracula", readFile(t, paths.StateFile))
}

func TestSwitchUnknownThemeTouchesNothing(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml": "colors: nord\n",
	})
	require.NoError(t, os.WriteFile(paths.FinalConfig, []byte("previous"), 0o644))
	require.NoError(t, os.WriteFile(paths.StateFile, []byte("gruvbox"), 0o644))

	for _, name := range []string{"missing", "", "..", "../base", "themes/nord"} {
		err := store.Switch(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, ErrThemeNotFound), name)
	}

	assert.Equal(t, "previous", readFile(t, paths.FinalConfig))
	assert.Equal(t, "gruvbox", readFile(t, paths.StateFile))
}

func TestSwitchMissingBaseConfig(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml": "colors: nord\n",
	})
	require.NoError(t, os.Remove(paths.BaseConfig))

	err := store.Switch("nord")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrThemeNotFound))
	assert.NoFileExists(t, paths.FinalConfig)
	assert.NoFileExists(t, paths.StateFile)
}

func TestSwitchCreatesParentDirs(t *testing.T) {
	store, paths := setupTestStore(t, map[string]string{
		"nord.yml": "colors: nord\n",
	})
	paths.FinalConfig = filepath.Join(filepath.Dir(paths.FinalConfig), "out", "alacritty.yml")
	paths.StateFile = filepath.Join(filepath.Dir(paths.StateFile), "state", "current")
	store = NewStore(paths, zerolog.Nop())

	require.NoError(t, store.Switch("nord"))
	assert.FileExists(t, paths.FinalConfig)
	assert.Equal(t, "nord", readFile(t, paths.StateFile))
}

func TestExtensionNormalization(t *testing.T) {
	store, _ := setupTestStore(t, map[string]string{"nord.yml": "x"})
	store = NewStore(Paths{ThemeRoot: store.Paths().ThemeRoot, Extension: ".yml"}, zerolog.Nop())

	assert.True(t, store.Exists("nord"))
	assert.False(t, store.Exists("nord.yml"))
	assert.False(t, store.Exists("dracula"))
}

func TestCurrent(t *testing.T) {
	store, paths := setupTestStore(t, nil)

	assert.Equal(t, "", store.Current(), "missing state file reads as empty")

	require.NoError(t, os.WriteFile(paths.StateFile, []byte("nord\n"), 0o644))
	assert.Equal(t, "nord", store.Current())

	require.NoError(t, os.Remove(paths.StateFile))
	require.NoError(t, os.Mkdir(paths.StateFile, 0o755))
	assert.Equal(t, "", store.Current(), "unreadable state file reads as empty")
}

func TestPathsValidate(t *testing.T) {
	full := Paths{ThemeRoot: "/t", BaseConfig: "/b", FinalConfig: "/f", StateFile: "/s"}
	require.NoError(t, full.Validate())

	missing := full
	missing.StateFile = " "
	require.Error(t, missing.Validate())

	missing = full
	missing.ThemeRoot = ""
	require.Error(t, missing.Validate())
}
