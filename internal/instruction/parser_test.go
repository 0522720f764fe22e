package instruction

import (
	"bytes"
	"errors"
	"testing"

	"github.com/opencode-ai/termtheme/internal/catalog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, args ...string) (Instruction, string) {
	t.Helper()
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ins, err := Compile(catalog.Default(), append([]string{"termtheme"}, args...), "termtheme", logger)
	require.NoError(t, err)
	return ins, buf.String()
}

func TestCompileNoArgsIsHelp(t *testing.T) {
	ins, err := Compile(catalog.Default(), []string{"/usr/local/bin/termtheme"}, "termtheme", zerolog.Nop())
	require.NoError(t, err)
	require.True(t, ins.Is(CommandHelp))
	assert.Equal(t, "termtheme", ins.Command.Arg)
	assert.Nil(t, ins.Option)

	ins, err = Compile(catalog.Default(), nil, "termtheme", zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, ins.Is(CommandHelp))
}

func TestCompileInvalidFlag(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		token string
	}{
		{"unknown long", []string{"--list", "--colour"}, "--colour"},
		{"unknown short", []string{"-x"}, "-x"},
		{"lone dash", []string{"--switch", "nord", "-"}, "-"},
		{"before valid flags", []string{"--nope", "--help"}, "--nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"termtheme"}, tt.args...)
			ins, err := Compile(catalog.Default(), args, "termtheme", zerolog.Nop())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFlag))

			var flagErr *InvalidFlagError
			require.True(t, errors.As(err, &flagErr))
			assert.Equal(t, tt.token, flagErr.Token)
			assert.Contains(t, err.Error(), tt.token)
			assert.Nil(t, ins.Command)
		})
	}
}

func TestCompileSimpleCommands(t *testing.T) {
	tests := []struct {
		args []string
		want *Command
	}{
		{[]string{"--help"}, Help("termtheme")},
		{[]string{"-h"}, Help("termtheme")},
		{[]string{"--list"}, ListThemes()},
		{[]string{"-l"}, ListThemes()},
		{[]string{"--current"}, CurrentTheme()},
		{[]string{"-c"}, CurrentTheme()},
		{[]string{"--switch", "nord"}, SwitchTheme("nord")},
		{[]string{"nord", "--switch"}, SwitchTheme("nord")},
		{[]string{"-s", "nord"}, SwitchTheme("nord")},
		{[]string{"--search", "drac"}, SearchTheme("drac")},
		{[]string{"--find", "drac"}, SearchTheme("drac")},
		{[]string{"-f", "drac"}, SearchTheme("drac")},
		{[]string{"--verbose"}, Noop()},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			ins, _ := compile(t, tt.args...)
			require.NotNil(t, ins.Command)
			assert.Equal(t, *tt.want, *ins.Command)
			assert.Nil(t, ins.Option)
		})
	}
}

func TestCompileNoFlagsLeavesCommandUnset(t *testing.T) {
	ins, _ := compile(t, "nord")
	assert.Nil(t, ins.Command)
	assert.Nil(t, ins.Option)
}

func TestCompileLastPositionalWins(t *testing.T) {
	ins, _ := compile(t, "--switch", "nord", "dracula")
	require.True(t, ins.Is(CommandSwitchTheme))
	assert.Equal(t, "dracula", ins.Command.Arg)

	// A trailing short alias is a pass-through token and becomes the parameter.
	ins, _ = compile(t, "nord", "-s")
	require.True(t, ins.Is(CommandSwitchTheme))
	assert.Equal(t, "-s", ins.Command.Arg)
}

func TestCompileMissingParameterWarns(t *testing.T) {
	ins, logs := compile(t, "--switch")
	assert.Nil(t, ins.Command)
	assert.Contains(t, logs, "no theme name given")

	ins, logs = compile(t, "--search")
	assert.Nil(t, ins.Command)
	assert.Contains(t, logs, "non-empty theme name")

	// The missing parameter does not hide other commands.
	ins, _ = compile(t, "--list", "--switch")
	assert.True(t, ins.Is(CommandListThemes))
}

func TestCompileWithVim(t *testing.T) {
	ins, logs := compile(t, "--with-vim", "--switch", "nord")
	require.True(t, ins.Is(CommandSwitchTheme))
	assert.Equal(t, "nord", ins.Command.Arg)
	assert.True(t, ins.Has(OptionSwitchWithVim))
	assert.NotContains(t, logs, "should not be used")

	ins, _ = compile(t, "--switch", "nord", "--with-vim")
	assert.True(t, ins.Has(OptionSwitchWithVim))

	ins, _ = compile(t, "--with-vim")
	assert.Nil(t, ins.Command)
	assert.True(t, ins.Has(OptionSwitchWithVim))
}

func TestCompileWithVimOnNoopIsSilent(t *testing.T) {
	ins, logs := compile(t, "--verbose", "--with-vim")
	require.True(t, ins.Is(CommandNoop))
	assert.True(t, ins.Has(OptionSwitchWithVim))
	assert.NotContains(t, logs, "should not be used")
}

func TestCompileWithVimDroppedForOtherCommands(t *testing.T) {
	tests := []struct {
		args []string
		kind CommandKind
	}{
		{[]string{"--list", "--with-vim"}, CommandListThemes},
		{[]string{"--with-vim", "--current"}, CommandCurrentTheme},
		{[]string{"--help", "--with-vim"}, CommandHelp},
		{[]string{"--search", "dr", "--with-vim"}, CommandSearchTheme},
		{[]string{"--search", "dr", "--switch", "nord", "--with-vim"}, CommandSearchTheme},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			ins, logs := compile(t, tt.args...)
			require.True(t, ins.Is(tt.kind))
			assert.Nil(t, ins.Option)
			assert.Contains(t, logs, "--with-vim should not be used with "+tt.kind.String())
		})
	}
}

func TestCompileCatalogOrderDecides(t *testing.T) {
	// Explicit command rules overwrite earlier ones in catalog order,
	// regardless of the order on the command line.
	ins, _ := compile(t, "--list", "--help")
	assert.True(t, ins.Is(CommandListThemes))

	ins, _ = compile(t, "--current", "--list")
	assert.True(t, ins.Is(CommandCurrentTheme))

	ins, _ = compile(t, "--list", "--switch", "nord")
	assert.True(t, ins.Is(CommandSwitchTheme))

	// Flags without a command rule never replace an assigned command.
	ins, _ = compile(t, "--verbose", "--list")
	assert.True(t, ins.Is(CommandListThemes))
	ins, _ = compile(t, "-v", "-c")
	assert.True(t, ins.Is(CommandCurrentTheme))
}

func TestValidate(t *testing.T) {
	cat := catalog.Default()

	flags, err := Validate(cat, []string{"termtheme", "nord", "--with-vim", "-s"})
	require.NoError(t, err)
	require.Len(t, flags, 2)
	assert.Equal(t, catalog.Switch, flags[0].Name)
	assert.Equal(t, catalog.WithVim, flags[1].Name)

	// The program name is never validated.
	flags, err = Validate(cat, []string{"-weird-bin", "--list"})
	require.NoError(t, err)
	require.Len(t, flags, 1)

	_, err = Validate(cat, []string{"termtheme", "--list", "--wat"})
	require.ErrorIs(t, err, ErrInvalidFlag)
}

func TestExtractPositional(t *testing.T) {
	cat := catalog.Default()
	flagsFor := func(names ...string) []catalog.Flag {
		out := make([]catalog.Flag, 0, len(names))
		for _, name := range names {
			flag, ok := cat.Lookup(name)
			require.True(t, ok)
			out = append(out, flag)
		}
		return out
	}

	tests := []struct {
		name  string
		args  []string
		flags []catalog.Flag
		want  string
	}{
		{"only program", []string{"termtheme"}, nil, ""},
		{"only flags", []string{"termtheme", "--switch", "--with-vim"}, flagsFor("--switch", "--with-vim"), ""},
		{"single value", []string{"termtheme", "--switch", "nord"}, flagsFor("--switch"), "nord"},
		{"last wins", []string{"termtheme", "a", "--switch", "b", "c"}, flagsFor("--switch"), "c"},
		{"short passes through", []string{"termtheme", "nord", "-s"}, flagsFor("-s"), "-s"},
		{"alias removed", []string{"termtheme", "drac", "--find"}, flagsFor("--find"), "drac"},
		{"empty", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPositional(tt.args, tt.flags))
		})
	}
}

func TestBinName(t *testing.T) {
	assert.Equal(t, "termtheme", BinName("/usr/local/bin/termtheme"))
	assert.Equal(t, "termtheme", BinName("termtheme"))
	assert.Equal(t, "termtheme.exe", BinName(`C:\bin\termtheme.exe`))
}

func TestInstructionString(t *testing.T) {
	opt := OptionSwitchWithVim
	ins := Instruction{Command: SwitchTheme("nord"), Option: &opt}
	assert.Equal(t, "Instruction{command: SwitchTheme(nord), option: SwitchWithVim}", ins.String())
	assert.Equal(t, "Instruction{command: <none>, option: <none>}", Instruction{}.String())
}
