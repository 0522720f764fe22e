// Package styles holds the palettes used to decorate termtheme's terminal output.
package styles

import (
	"fmt"
	"sort"
)

// PaletteTokens defines the semantic color roles of the CLI output.
type PaletteTokens struct {
	Text      string
	TextMuted string
	Accent    string
	Success   string
	Warning   string
	Error     string
}

// Palette bundles tokens with a name.
type Palette struct {
	Name   string
	Tokens PaletteTokens
}

// Palettes lists available palettes by name.
var Palettes = map[string]Palette{
	"default":       DefaultPalette,
	"high-contrast": HighContrastPalette,
}

// DefaultPaletteName is used when no palette is configured.
const DefaultPaletteName = "default"

// Lookup returns the palette called name; "" selects the default.
func Lookup(name string) (Palette, error) {
	if name == "" {
		name = DefaultPaletteName
	}
	palette, ok := Palettes[name]
	if !ok {
		return Palette{}, fmt.Errorf("unknown palette %q (available: %v)", name, Names())
	}
	return palette, nil
}

// Names returns the palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(Palettes))
	for name := range Palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
