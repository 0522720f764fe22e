package styles

// HighContrastPalette favors visibility on low-contrast terminal themes.
var HighContrastPalette = Palette{
	Name: "high-contrast",
	Tokens: PaletteTokens{
		Text:      "#FFFFFF",
		TextMuted: "#C0C0C0",
		Accent:    "#00A2FF",
		Success:   "#00FF5A",
		Warning:   "#FFB000",
		Error:     "#FF4040",
	},
}
