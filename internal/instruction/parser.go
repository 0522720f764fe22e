package instruction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/opencode-ai/termtheme/internal/catalog"
	"github.com/rs/zerolog"
)

// ErrInvalidFlag matches every InvalidFlagError.
var ErrInvalidFlag = errors.New("invalid flag")

// InvalidFlagError reports a flag-shaped token that is not in the catalog.
type InvalidFlagError struct {
	Token string
}

func (e *InvalidFlagError) Error() string {
	return fmt.Sprintf("invalid flag: %s", e.Token)
}

// Is lets errors.Is match ErrInvalidFlag.
func (e *InvalidFlagError) Is(target error) bool {
	return target == ErrInvalidFlag
}

// Validate checks every token after the program name. A token starting with
// the flag prefix must be a known spelling; the first unknown one aborts the
// parse. Other tokens are positional candidates and are not checked.
// The recognized flags are returned in catalog order.
func Validate(cat *catalog.Catalog, args []string) ([]catalog.Flag, error) {
	tokens := tail(args)
	for _, token := range tokens {
		if strings.HasPrefix(token, catalog.Prefix) && !cat.Has(token) {
			return nil, &InvalidFlagError{Token: token}
		}
	}

	recognized := make([]catalog.Flag, 0)
	for _, flag := range cat.Flags() {
		for _, token := range tokens {
			if flag.Matches(token) {
				recognized = append(recognized, flag)
				break
			}
		}
	}
	return recognized, nil
}

// ExtractPositional drops every token equal to a recognized flag's long name
// and returns the last remaining token, or "" when only the program name is
// left. Short aliases are not dropped.
func ExtractPositional(args []string, recognized []catalog.Flag) string {
	longNames := make(map[string]struct{})
	for _, flag := range recognized {
		for _, name := range flag.LongNames() {
			longNames[name] = struct{}{}
		}
	}

	remaining := make([]string, 0, len(args))
	for _, arg := range args {
		if _, isFlag := longNames[arg]; isFlag {
			continue
		}
		remaining = append(remaining, arg)
	}

	if len(remaining) <= 1 {
		return ""
	}
	return remaining[len(remaining)-1]
}

// Compile turns the full argument list (program name first) into an Instruction.
//
// The command is resolved first by walking the recognized flags in catalog
// order; --with-vim is then checked against that resolved command and kept
// only when there is no command, a Noop, or a switch. Only validation can fail. A missing theme name for --switch or --search is
// logged and leaves the command unset.
func Compile(cat *catalog.Catalog, args []string, binName string, logger zerolog.Logger) (Instruction, error) {
	if len(args) <= 1 {
		return Instruction{Command: Help(binName)}, nil
	}

	flags, err := Validate(cat, args)
	if err != nil {
		return Instruction{}, err
	}

	var ins Instruction
	withVim := false

	for _, flag := range flags {
		switch flag.Name {
		case catalog.Help:
			ins.Command = Help(binName)
		case catalog.List:
			ins.Command = ListThemes()
		case catalog.Current:
			ins.Command = CurrentTheme()
		case catalog.Search:
			query := ExtractPositional(args, flags)
			if query == "" {
				logger.Warn().Str("flag", flag.Name).Msg("please provide a non-empty theme name; ignoring flag")
				continue
			}
			ins.Command = SearchTheme(query)
		case catalog.Switch:
			theme := ExtractPositional(args, flags)
			if theme == "" {
				logger.Warn().Str("flag", flag.Name).Msg("no theme name given; ignoring flag")
				continue
			}
			ins.Command = SwitchTheme(theme)
		case catalog.WithVim:
			withVim = true
		default:
			if ins.Command == nil {
				ins.Command = Noop()
			}
		}
	}

	if withVim {
		switch {
		case ins.Command == nil, ins.Command.Kind == CommandSwitchTheme, ins.Command.Kind == CommandNoop:
			opt := OptionSwitchWithVim
			ins.Option = &opt
		default:
			logger.Warn().
				Str("command", ins.Command.String()).
				Msgf("%s should not be used with %s command; ignoring it", catalog.WithVim, ins.Command.Kind)
		}
	}

	logger.Debug().Str("instruction", ins.String()).Msg("compiled instruction")
	return ins, nil
}

// BinName returns the base name of the program path.
func BinName(path string) string {
	if idx := strings.LastIndexAny(path, `/\`); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func tail(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	return args[1:]
}
