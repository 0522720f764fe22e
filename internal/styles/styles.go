package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles contains lipgloss styles derived from palette tokens.
type Styles struct {
	Palette Palette
	Title   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// ForWriter builds styles for output written to w. Colors are dropped when w
// is not a terminal.
func ForWriter(w io.Writer, palette Palette) Styles {
	return Build(lipgloss.NewRenderer(w), palette)
}

// Build converts palette tokens into styles bound to renderer r.
func Build(r *lipgloss.Renderer, palette Palette) Styles {
	tokens := palette.Tokens

	return Styles{
		Palette: palette,
		Title:   r.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:    r.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:   r.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:  r.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Success: r.NewStyle().Foreground(lipgloss.Color(tokens.Success)),
		Warning: r.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
		Error:   r.NewStyle().Foreground(lipgloss.Color(tokens.Error)).Bold(true),
	}
}
