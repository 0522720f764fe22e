package styles

// DefaultPalette is the baseline palette.
var DefaultPalette = Palette{
	Name: "default",
	Tokens: PaletteTokens{
		Text:      "#E6EDF3",
		TextMuted: "#8B9AAE",
		Accent:    "#5B8DEF",
		Success:   "#3FB950",
		Warning:   "#D29922",
		Error:     "#F85149",
	},
}
