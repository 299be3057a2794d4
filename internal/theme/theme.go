// Package theme defines colour palettes and the lipgloss styles the reader
// builds from them.
package theme

import "github.com/charmbracelet/lipgloss"

// DefaultSlug names the palette used when none is configured.
const DefaultSlug = "catppuccin-mocha"

// Theme is a named colour palette.
type Theme struct {
	Slug string
	Name string

	// Text colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Favorite  lipgloss.Color

	// UI element colors
	Border       lipgloss.Color
	BorderActive lipgloss.Color
	Highlight    lipgloss.Color
}

var themes = []Theme{
	{
		Slug: "catppuccin-mocha", Name: "Catppuccin Mocha",
		Primary: "#cdd6f4", Secondary: "#a6adc8", Accent: "#f5c2e7", Muted: "#6c7086",
		Error: "#f38ba8", Favorite: "#f9e2af",
		Border: "#45475a", BorderActive: "#89b4fa", Highlight: "#45475a",
	},
	{
		Slug: "catppuccin-latte", Name: "Catppuccin Latte",
		Primary: "#4c4f69", Secondary: "#5c5f77", Accent: "#ea76cb", Muted: "#9ca0b0",
		Error: "#d20f39", Favorite: "#df8e1d",
		Border: "#dce0e8", BorderActive: "#1e66f5", Highlight: "#ccd0da",
	},
	{
		Slug: "dracula", Name: "Dracula",
		Primary: "#f8f8f2", Secondary: "#6272a4", Accent: "#ff79c6", Muted: "#6272a4",
		Error: "#ff5555", Favorite: "#f1fa8c",
		Border: "#44475a", BorderActive: "#bd93f9", Highlight: "#44475a",
	},
	{
		Slug: "rosepine-moon", Name: "Rosé Pine Moon",
		Primary: "#e0def4", Secondary: "#908caa", Accent: "#ebbcba", Muted: "#6e6a86",
		Error: "#eb6f92", Favorite: "#f6c177",
		Border: "#403d52", BorderActive: "#c4a7e7", Highlight: "#393552",
	},
	{
		Slug: "solarized-dark", Name: "Solarized Dark",
		Primary: "#839496", Secondary: "#586e75", Accent: "#d33682", Muted: "#586e75",
		Error: "#dc322f", Favorite: "#b58900",
		Border: "#073642", BorderActive: "#268bd2", Highlight: "#073642",
	},
	{
		Slug: "solarized-light", Name: "Solarized Light",
		Primary: "#657b83", Secondary: "#93a1a1", Accent: "#d33682", Muted: "#93a1a1",
		Error: "#dc322f", Favorite: "#b58900",
		Border: "#eee8d5", BorderActive: "#268bd2", Highlight: "#eee8d5",
	},
}

// All returns every palette in display order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Get returns the palette for slug, defaulting to Catppuccin Mocha.
func Get(slug string) Theme {
	for _, t := range themes {
		if t.Slug == slug {
			return t
		}
	}
	return themes[0]
}

// Next returns the palette after slug, wrapping around.
func Next(slug string) Theme {
	for i, t := range themes {
		if t.Slug == slug {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Styles are the lipgloss styles used by the reader views.
type Styles struct {
	Header      lipgloss.Style
	Title       lipgloss.Style
	VerseNumber lipgloss.Style
	VerseText   lipgloss.Style
	Cursor      lipgloss.Style
	Star        lipgloss.Style
	Help        lipgloss.Style
	Error       lipgloss.Style
	Empty       lipgloss.Style
	Button      lipgloss.Style
	ButtonOn    lipgloss.Style
	Modal       lipgloss.Style
}

// Styles builds the view styles for t.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Accent).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Title:       lipgloss.NewStyle().Bold(true).Foreground(t.BorderActive),
		VerseNumber: lipgloss.NewStyle().Foreground(t.Secondary),
		VerseText:   lipgloss.NewStyle().Foreground(t.Primary),
		Cursor:      lipgloss.NewStyle().Background(t.Highlight),
		Star:        lipgloss.NewStyle().Foreground(t.Favorite).Bold(true),
		Help:        lipgloss.NewStyle().Foreground(t.Muted),
		Error:       lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		Empty:       lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Button: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Padding(0, 1),
		ButtonOn: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Highlight).
			Bold(true).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderActive).
			Padding(1, 3),
	}
}
