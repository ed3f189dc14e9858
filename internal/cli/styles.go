// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"github.com/Veraticus/octobadge/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	// PrimaryColor is the main accent color.
	PrimaryColor = lipgloss.Color("#2f81f7")
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#3fb950")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#d29922")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#f85149")
	// InfoColor indicates informational messages.
	InfoColor = lipgloss.Color("#a371f7")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#7d8590")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// InfoStyle formats informational messages.
	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(1, 2)
)

// rarityColors are indexed by model.Rarity.
var rarityColors = []lipgloss.Color{"#7d8590", "#2f81f7", "#a371f7", "#e3b341"}

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	BadgeIcon   = "🏅"
	StarIcon    = "★"
	ChartIcon   = "📊"
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the badge icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(BadgeIcon + " " + title)
}

// FormatRarity renders a rarity name in its accent color.
func FormatRarity(r model.Rarity) string {
	color := rarityColors[0]
	if int(r) >= 0 && int(r) < len(rarityColors) {
		color = rarityColors[r]
	}
	return lipgloss.NewStyle().Foreground(color).Render(r.String())
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}
