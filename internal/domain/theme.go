package domain

// Theme is a named colour palette for the timer card.
type Theme struct {
	Name           string
	Background     string
	DarkBackground string
	Accent         string
}

// Themes is the fixed palette list cycled by the theme action.
var Themes = []Theme{
	{Name: "Default", Background: "#F3F4F6", DarkBackground: "#111827", Accent: "#3B82F6"},
	{Name: "Nature", Background: "#DCFCE7", DarkBackground: "#14532D", Accent: "#22C55E"},
	{Name: "Ocean", Background: "#DBEAFE", DarkBackground: "#1E3A8A", Accent: "#3B82F6"},
	{Name: "Sunset", Background: "#FFEDD5", DarkBackground: "#7C2D12", Accent: "#F97316"},
}

// ThemeAt returns the theme at index i, or the first theme if i is out of range.
func ThemeAt(i int) Theme {
	if i < 0 || i >= len(Themes) {
		return Themes[0]
	}
	return Themes[i]
}

// NextThemeIndex advances i by one, wrapping around the theme list.
func NextThemeIndex(i int) int {
	return (i + 1) % len(Themes)
}

// ThemeNames lists the theme names in order.
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// BackgroundFor picks the light or dark background of the theme.
func (t Theme) BackgroundFor(dark bool) string {
	if dark {
		return t.DarkBackground
	}
	return t.Background
}
