// Package catalog defines the table of command-line flags understood by termtheme.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Long names of the built-in flags.
const (
	Help    = "--help"
	List    = "--list"
	Current = "--current"
	Switch  = "--switch"
	WithVim = "--with-vim"
	Search  = "--search"
	Verbose = "--verbose"
)

// Prefix marks a token as a flag.
const Prefix = "-"

// Catalog errors.
var (
	ErrDuplicateFlag = errors.New("duplicate flag")
	ErrInvalidName   = errors.New("invalid flag name")
)

// Flag describes a single recognized flag.
type Flag struct {
	// Name is the long form, including the leading dashes (e.g. "--list").
	Name string

	// Short is the optional single-dash alias (e.g. "-l").
	Short string

	// Aliases are additional long names accepted in place of Name.
	Aliases []string

	// Description is shown in the usage text.
	Description string
}

// LongNames returns Name followed by every alias.
func (f Flag) LongNames() []string {
	names := make([]string, 0, 1+len(f.Aliases))
	names = append(names, f.Name)
	names = append(names, f.Aliases...)
	return names
}

// Matches reports whether token is one of the flag's spellings.
func (f Flag) Matches(token string) bool {
	if token == "" {
		return false
	}
	if f.Short != "" && token == f.Short {
		return true
	}
	for _, name := range f.LongNames() {
		if token == name {
			return true
		}
	}
	return false
}

// Catalog is an ordered, read-only set of flags.
// The declaration order is significant: the instruction compiler walks
// recognized flags in this order.
type Catalog struct {
	flags  []Flag
	byName map[string]int
}

// New builds a catalog, rejecting duplicate long names, aliases or short forms.
func New(flags ...Flag) (*Catalog, error) {
	c := &Catalog{
		flags:  make([]Flag, 0, len(flags)),
		byName: make(map[string]int, len(flags)*2),
	}

	for i, flag := range flags {
		if !strings.HasPrefix(flag.Name, "--") || len(flag.Name) < 3 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidName, flag.Name)
		}
		spellings := flag.LongNames()
		if flag.Short != "" {
			if !strings.HasPrefix(flag.Short, Prefix) || strings.HasPrefix(flag.Short, "--") {
				return nil, fmt.Errorf("%w: short alias %q", ErrInvalidName, flag.Short)
			}
			spellings = append(spellings, flag.Short)
		}
		for _, spelling := range spellings {
			if _, exists := c.byName[spelling]; exists {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateFlag, spelling)
			}
			c.byName[spelling] = i
		}
		c.flags = append(c.flags, flag)
	}

	return c, nil
}

// Default returns the catalog used by the termtheme binary.
func Default() *Catalog {
	c, err := New(
		Flag{Name: Help, Short: "-h", Description: "Prints the help string"},
		Flag{Name: List, Short: "-l", Description: "Show the list of all available themes"},
		Flag{Name: Current, Short: "-c", Description: "Show the current theme"},
		Flag{Name: Switch, Short: "-s", Description: "Switch the theme to a new one.\nSWITCH PARAMETER:\n\t<theme_name>"},
		Flag{Name: WithVim, Description: "Also tries to set the same colorscheme in vim (only with --switch)"},
		Flag{Name: Search, Short: "-f", Aliases: []string{"--find"}, Description: "Search for themes whose name starts with the parameter.\nSEARCH PARAMETER:\n\t<prefix>"},
		Flag{Name: Verbose, Short: "-v", Description: "Enable debug logging"},
	)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid default table: %v", err))
	}
	return c
}

// Flags returns the flags in declaration order.
func (c *Catalog) Flags() []Flag {
	out := make([]Flag, len(c.flags))
	copy(out, c.flags)
	return out
}

// Lookup finds a flag by long name, alias or short alias.
func (c *Catalog) Lookup(token string) (Flag, bool) {
	idx, ok := c.byName[token]
	if !ok {
		return Flag{}, false
	}
	return c.flags[idx], true
}

// Has reports whether token is a known spelling.
func (c *Catalog) Has(token string) bool {
	_, ok := c.byName[token]
	return ok
}

// Index returns the declaration position of the flag named name, or -1.
func (c *Catalog) Index(name string) int {
	idx, ok := c.byName[name]
	if !ok {
		return -1
	}
	return idx
}
