package accounts

import (
	"fmt"
	"strings"

	"message-board-tui/helpers"
	"message-board-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Props is what the accounts page shows
type Props struct {
	Keystore  string
	Present   bool
	Keys      []string // every key in the keystore
	Connected string   // address the board writes with
	Balance   string
	Loading   bool
	Spinner   string
	Explorer  string
}

// Nav returns the navigation bar for the accounts view
func Nav(width int) string {
	left := strings.Join([]string{
		styles.Key("r") + " refresh",
		styles.Key("c") + " copy address",
		styles.Key("l") + " log",
		styles.Key("Esc") + " back",
	}, "   ")

	return styles.NavStyle.Width(width).Render(left)
}

// Render renders the keystore accounts and the connected account's balance
func Render(p Props) string {
	muted := lipgloss.NewStyle().Foreground(styles.CMuted)
	h := styles.TitleStyle.Render("Keystore Accounts")

	if !p.Present {
		return h + "\n" + muted.Render("No keystore found at "+quote(p.Keystore)) + "\n\n" +
			muted.Render("Create one with `geth account new` or pass --keystore.")
	}

	lines := []string{h, muted.Render(p.Keystore), ""}
	if len(p.Keys) == 0 {
		lines = append(lines, muted.Render("The keystore holds no keys yet."))
	}

	for i, addr := range p.Keys {
		marker := "  "
		itemStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#e1a2aa"))
		label := helpers.FadeString(helpers.ShortenAddr(addr), "#F25D94", "#EDFF82")
		if strings.EqualFold(addr, p.Connected) {
			marker = lipgloss.NewStyle().Foreground(styles.CAccent).Bold(true).Render("✓ ")
			itemStyle = lipgloss.NewStyle().Foreground(styles.CAccent2).Bold(true)
			label = helpers.ShortenAddr(addr)
		}
		if i == 0 {
			label += muted.Render("  (unlocked on connect)")
		}
		lines = append(lines, marker+itemStyle.Render(label))
		lines = append(lines, "  "+addressLink(p.Explorer, addr))
		lines = append(lines, "")
	}

	if p.Connected == "" {
		lines = append(lines, muted.Render("No wallet connected."))
		return strings.Join(lines, "\n")
	}

	balance := p.Balance
	if p.Loading {
		balance = p.Spinner + " fetching balance…"
	}
	lines = append(lines, styles.TitleStyle.Render("Balance"), lipgloss.NewStyle().Foreground(styles.CText).Render(balance))
	return strings.Join(lines, "\n")
}

// addressLink renders addr as an OSC 8 hyperlink to the explorer
func addressLink(explorer, addr string) string {
	text := lipgloss.NewStyle().Foreground(styles.CMuted).Underline(true).Render(addr)
	if explorer == "" {
		return text
	}
	return helpers.Hyperlink(strings.TrimRight(explorer, "/")+"/address/"+addr, text)
}

func quote(s string) string {
	if s == "" {
		return "(not set)"
	}
	return fmt.Sprintf("%q", s)
}
