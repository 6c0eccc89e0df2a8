package formatter

import (
	"fmt"
	"strings"

	"github.com/amezghal/autoecole/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
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
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PhaseStatusIndicator returns a colored marker such as "● IN PROGRESS".
func PhaseStatusIndicator(s domain.PhaseStatus) string {
	switch s {
	case domain.PhaseCompleted:
		return StyleGreen.Render("● COMPLETED")
	case domain.PhaseInProgress:
		return StyleYellow.Render("● IN PROGRESS")
	case domain.PhaseFailed:
		return StyleRed.Render("● FAILED")
	case domain.PhaseNotStarted:
		return StyleDim.Render("● NOT STARTED")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// BookingStatusStyle returns the style for a lesson/exam status string.
func BookingStatusStyle(status string) lipgloss.Style {
	switch status {
	case "scheduled":
		return StyleBlue
	case "completed", "passed":
		return StyleGreen
	case "failed":
		return StyleRed
	case "cancelled":
		return StyleDim
	default:
		return StyleFg
	}
}

// PhaseLabel renders the phase name in its display color.
func PhaseLabel(p domain.Phase) string {
	switch p {
	case domain.PhaseHighwayCode:
		return StyleBlue.Render("highway code")
	case domain.PhaseParking:
		return StylePurple.Render("parking")
	case domain.PhaseDriving:
		return StyleYellow.Render("driving")
	default:
		return StyleDim.Render(string(p))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
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
