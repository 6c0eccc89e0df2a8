package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate formats a calendar day as "Mon, Jan 2 2006".
func HumanDate(t time.Time) string {
	return t.Format("Mon, Jan 2 2006")
}

// ISODate formats a calendar day as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// TruncID shortens an ID for table display.
func TruncID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Euros renders a cent amount as a euro string.
func Euros(cents int) string {
	return fmt.Sprintf("%.2f€", float64(cents)/100)
}

// SessionsBar renders a done/plan quota as "12/20 ██████░░░░".
func SessionsBar(done, plan int) string {
	if plan <= 0 {
		return fmt.Sprintf("%d", done)
	}
	const width = 10
	filled := done * width / plan
	if filled > width {
		filled = width
	}
	bar := StyleGreen.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%d/%d %s", done, plan, bar)
}
