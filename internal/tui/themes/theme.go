// Package themes defines the dark and light palettes of the terminal UI.
package themes

import (
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title          lipgloss.Style
	Subtitle       lipgloss.Style
	Normal         lipgloss.Style
	Bold           lipgloss.Style
	Muted          lipgloss.Style
	Selected       lipgloss.Style
	RoundedBox     lipgloss.Style
	StatusError    lipgloss.Style
	StatusSuccess  lipgloss.Style
	StatusPending  lipgloss.Style
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Name           string
	GlamourStyle   string // glamour standard style for markdown replies
	Primary        lipgloss.Color
	Secondary      lipgloss.Color
	Border         lipgloss.Color
	Foreground     lipgloss.Color
	Background     lipgloss.Color
	Success        lipgloss.Color
	Error          lipgloss.Color
	rarity         [4]lipgloss.Color
}

type palette struct {
	name       string
	glamour    string
	primary    string
	secondary  string
	muted      string
	border     string
	fg         string
	bg         string
	success    string
	errorColor string
	pending    string
	common     string
	rare       string
	epic       string
	legendary  string
	selectedFg string
}

func newTheme(p palette) Theme {
	return Theme{
		Name:         p.name,
		GlamourStyle: p.glamour,
		Primary:      lipgloss.Color(p.primary),
		Secondary:    lipgloss.Color(p.secondary),
		Border:       lipgloss.Color(p.border),
		Foreground:   lipgloss.Color(p.fg),
		Background:   lipgloss.Color(p.bg),
		Success:      lipgloss.Color(p.success),
		Error:        lipgloss.Color(p.errorColor),
		rarity: [4]lipgloss.Color{
			lipgloss.Color(p.common),
			lipgloss.Color(p.rare),
			lipgloss.Color(p.epic),
			lipgloss.Color(p.legendary),
		},

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.fg)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.secondary)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.fg)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.fg)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.selectedFg)).
			Bold(true),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.pending)).
			Italic(true),
		UserLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.primary)),
		AssistantLabel: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.secondary)),
	}
}

// Dark is the default theme, modeled on GitHub's dark mode.
var Dark = newTheme(palette{
	name:       "dark",
	glamour:    "dark",
	primary:    "#2f81f7",
	secondary:  "#a371f7",
	muted:      "#7d8590",
	border:     "#30363d",
	fg:         "#e6edf3",
	bg:         "#0d1117",
	success:    "#3fb950",
	errorColor: "#f85149",
	pending:    "#d29922",
	common:     "#7d8590",
	rare:       "#2f81f7",
	epic:       "#a371f7",
	legendary:  "#e3b341",
	selectedFg: "#ffffff",
})

// Light mirrors GitHub's light mode.
var Light = newTheme(palette{
	name:       "light",
	glamour:    "light",
	primary:    "#0969da",
	secondary:  "#8250df",
	muted:      "#656d76",
	border:     "#d0d7de",
	fg:         "#1f2328",
	bg:         "#ffffff",
	success:    "#1a7f37",
	errorColor: "#cf222e",
	pending:    "#9a6700",
	common:     "#656d76",
	rare:       "#0969da",
	epic:       "#8250df",
	legendary:  "#9a6700",
	selectedFg: "#ffffff",
})

// ByName returns the theme called name, or Dark and false when unknown.
func ByName(name string) (Theme, bool) {
	switch name {
	case Dark.Name:
		return Dark, true
	case Light.Name:
		return Light, true
	default:
		return Dark, false
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t.Name == Light.Name {
		return Dark
	}
	return Light
}

// RarityColor returns the accent color for a rarity.
func (t Theme) RarityColor(r model.Rarity) lipgloss.Color {
	if r < model.RarityCommon || r > model.RarityLegendary {
		return t.rarity[0]
	}
	return t.rarity[r]
}

// Rarity renders a rarity label in its accent color.
func (t Theme) Rarity(r model.Rarity) string {
	return lipgloss.NewStyle().Foreground(t.RarityColor(r)).Render(r.String())
}
