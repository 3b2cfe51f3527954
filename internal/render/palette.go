package render

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is the color scheme for the terminal interface
type Palette struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var (
	// FolioPalette is the default palette: violet accents on a near-black surface
	FolioPalette = Palette{
		Name:        "folio",
		Description: "Violet accents on a dark surface",

		Background: lipgloss.Color("#0b0b12"),
		Surface:    lipgloss.Color("#1c1b29"),
		Border:     lipgloss.Color("#3f3d56"),

		Primary:   lipgloss.Color("#a78bfa"),
		Secondary: lipgloss.Color("#34d399"),
		Accent:    lipgloss.Color("#f472b6"),
		Warning:   lipgloss.Color("#fbbf24"),
		Error:     lipgloss.Color("#f87171"),

		Text:     lipgloss.Color("#e5e7eb"),
		TextDim:  lipgloss.Color("#9ca3af"),
		TextMute: lipgloss.Color("#4b5563"),
	}

	TokyoNightPalette = Palette{
		Name:        "tokyonight",
		Description: "Tokyo Night, blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		Primary:   lipgloss.Color("#7aa2f7"),
		Secondary: lipgloss.Color("#9ece6a"),
		Accent:    lipgloss.Color("#bb9af7"),
		Warning:   lipgloss.Color("#e0af68"),
		Error:     lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	CatppuccinPalette = Palette{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha, pastel accents",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		Primary:   lipgloss.Color("#89b4fa"), // Blue
		Secondary: lipgloss.Color("#a6e3a1"), // Green
		Accent:    lipgloss.Color("#cba6f7"), // Mauve
		Warning:   lipgloss.Color("#f9e2af"), // Yellow
		Error:     lipgloss.Color("#f38ba8"), // Red

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	}
)

// PaletteByName returns a palette by name
func PaletteByName(name string) (Palette, bool) {
	for _, p := range Palettes() {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}

// Palettes returns all palettes, default first
func Palettes() []Palette {
	return []Palette{
		FolioPalette,
		TokyoNightPalette,
		CatppuccinPalette,
	}
}
