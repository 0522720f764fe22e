// Package instruction compiles raw command-line tokens into a single Instruction.
package instruction

import "fmt"

// CommandKind enumerates the commands termtheme can run.
type CommandKind int

// Command kinds.
const (
	CommandHelp CommandKind = iota + 1
	CommandListThemes
	CommandSearchTheme
	CommandCurrentTheme
	CommandSwitchTheme
	CommandNoop
)

// String returns the kind name.
func (k CommandKind) String() string {
	switch k {
	case CommandHelp:
		return "Help"
	case CommandListThemes:
		return "ListThemes"
	case CommandSearchTheme:
		return "SearchTheme"
	case CommandCurrentTheme:
		return "CurrentTheme"
	case CommandSwitchTheme:
		return "SwitchTheme"
	case CommandNoop:
		return "Noop"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is a resolved command with its optional argument.
// Arg holds the binary name for Help, the query for SearchTheme and the
// theme name for SwitchTheme; it is empty for the other kinds.
type Command struct {
	Kind CommandKind
	Arg  string
}

// Help builds a Help command.
func Help(binName string) *Command { return &Command{Kind: CommandHelp, Arg: binName} }

// ListThemes builds a ListThemes command.
func ListThemes() *Command { return &Command{Kind: CommandListThemes} }

// SearchTheme builds a SearchTheme command.
func SearchTheme(query string) *Command { return &Command{Kind: CommandSearchTheme, Arg: query} }

// CurrentTheme builds a CurrentTheme command.
func CurrentTheme() *Command { return &Command{Kind: CommandCurrentTheme} }

// SwitchTheme builds a SwitchTheme command.
func SwitchTheme(theme string) *Command { return &Command{Kind: CommandSwitchTheme, Arg: theme} }

// Noop builds a Noop command.
func Noop() *Command { return &Command{Kind: CommandNoop} }

func (c *Command) String() string {
	if c == nil {
		return "<none>"
	}
	switch c.Kind {
	case CommandHelp, CommandSearchTheme, CommandSwitchTheme:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Arg)
	default:
		return c.Kind.String()
	}
}

// Option modifies how a command runs.
type Option int

// Options.
const (
	OptionSwitchWithVim Option = iota + 1
)

func (o Option) String() string {
	switch o {
	case OptionSwitchWithVim:
		return "SwitchWithVim"
	default:
		return fmt.Sprintf("Option(%d)", int(o))
	}
}

// Instruction is the outcome of a parse: at most one command and one option.
type Instruction struct {
	Command *Command
	Option  *Option
}

// Is reports whether the instruction carries a command of the given kind.
func (i Instruction) Is(kind CommandKind) bool {
	return i.Command != nil && i.Command.Kind == kind
}

// Has reports whether the instruction carries the given option.
func (i Instruction) Has(opt Option) bool {
	return i.Option != nil && *i.Option == opt
}

func (i Instruction) String() string {
	opt := "<none>"
	if i.Option != nil {
		opt = i.Option.String()
	}
	return fmt.Sprintf("Instruction{command: %s, option: %s}", i.Command, opt)
}
