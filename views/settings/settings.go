package settings

import (
	"strings"

	"message-board-tui/config"
	"message-board-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Nav returns the navigation bar for settings view
func Nav(width int, adding bool) string {
	var left string
	if adding {
		left = strings.Join([]string{
			styles.Key("Enter") + " next",
			styles.Key("Esc") + " cancel",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("↑/↓") + " select",
			styles.Key("Enter") + " activate",
			styles.Key("a") + " add",
			styles.Key("d") + " delete",
			styles.Key("l") + " log",
			styles.Key("Esc") + " back",
		}, "   ")
	}

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the RPC settings view. connected is the URL the board is
// currently talking to.
func Render(cfg config.Config, selectedIdx int, connected string) string {
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)
	lines := []string{styles.TitleStyle.Render("RPC Settings"), ""}

	if len(cfg.RPCURLs) == 0 {
		lines = append(lines, muted.Render("No RPC URLs configured."))
		lines = append(lines, "")
		lines = append(lines, muted.Render("Press ")+styles.Key("a")+muted.Render(" to add your first RPC URL."))
	} else {
		lines = append(lines, muted.Render("Configured RPC Endpoints:"), "")

		for i, rpc := range cfg.RPCURLs {
			marker := muted.Render("○ ")
			if rpc.Active {
				marker = lipgloss.NewStyle().Foreground(styles.CAccent).Render("● ")
			}

			nameStyle := lipgloss.NewStyle().Foreground(styles.CText)
			urlStyle := muted
			if i == selectedIdx {
				nameStyle = nameStyle.Background(styles.CPanel).Foreground(styles.CAccent2).Bold(true)
				urlStyle = urlStyle.Background(styles.CPanel)
				marker = lipgloss.NewStyle().Foreground(styles.CAccent2).Render("▶ ")
			}

			name := nameStyle.Render(rpc.Name)
			if rpc.Transient {
				name += muted.Render("  (this run only)")
			}
			if rpc.URL == connected && connected != "" {
				name += muted.Render("  (connected)")
			}
			lines = append(lines, marker+name, "  "+urlStyle.Render(rpc.URL), "")
		}
	}

	lines = append(lines, styles.TitleStyle.Render("Board"), "")
	lines = append(lines, field("contract", cfg.Contract))
	lines = append(lines, field("keystore", cfg.Keystore))
	lines = append(lines, field("explorer", cfg.Explorer))
	lines = append(lines, field("poll", cfg.PollInterval().String()))

	return strings.Join(lines, "\n")
}

func field(name, value string) string {
	if value == "" {
		value = "not set"
	}
	return lipgloss.NewStyle().Foreground(styles.CMuted).Width(10).Render(name) +
		lipgloss.NewStyle().Foreground(styles.CText).Render(value)
}
