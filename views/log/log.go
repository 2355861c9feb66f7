package log

import (
	"fmt"

	"message-board-tui/helpers"
	"message-board-tui/styles"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Height returns how many log lines fit under the board on a screen of the
// given height: a third of the screen, at most 12 lines, at least 3.
func Height(screenHeight int) int {
	return helpers.Max(3, helpers.Min(screenHeight/3, 12))
}

// Render renders the log panel. vp must already be sized with Height.
func Render(width int, ready bool, spinnerView string, vp viewport.Model) string {
	title := lipgloss.NewStyle().
		Foreground(styles.CAccent2).
		Bold(true).
		Render("Log")

	border := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.CBorder).
		Padding(0, 1).
		Width(helpers.Max(0, width-2))

	if !ready {
		return border.Render(title + "\n" + "initializing... " + spinnerView)
	}

	if vp.TotalLineCount() > vp.Height {
		title += lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Render(fmt.Sprintf(" [%d%%]", int(vp.ScrollPercent()*100)))
	}

	return border.Render(title + "\n" + vp.View())
}
