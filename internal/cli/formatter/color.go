package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/fundalloc/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ClampStyle returns the style used for a recompute outcome.
func ClampStyle(kind domain.ClampKind) lipgloss.Style {
	switch kind {
	case domain.ClampFunds:
		return StyleYellow
	case domain.ClampOwed:
		return StyleBlue
	case domain.ClampNonPositive:
		return StyleDim
	default:
		return StyleGreen
	}
}

// ClampIndicator returns a colored marker such as "▼ FUNDS" describing
// which bound limited an allocation.
func ClampIndicator(kind domain.ClampKind) string {
	label := string(kind)
	switch kind {
	case domain.ClampFunds:
		label = "▼ FUNDS"
	case domain.ClampOwed:
		label = "▼ OWED"
	case domain.ClampNonPositive:
		label = "○ CLEARED"
	case domain.ClampNone:
		label = "● AS ENTERED"
	}
	return ClampStyle(kind).Render(label)
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
