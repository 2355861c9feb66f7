package board

import (
	"strings"

	"message-board-tui/board"
	"message-board-tui/config"
	"message-board-tui/helpers"
	"message-board-tui/styles"

	"github.com/charmbracelet/lipgloss"
)

// Focus targets on the board page, in tab order
const (
	FocusConnect = iota
	FocusInput
	FocusUpdate
	FocusCount
)

// Clickable actions reported in Rendered.Areas
const (
	ActionConnect = "connect"
	ActionUpdate  = "update"
	ActionLink    = "link"
)

// Props is everything the board page needs to draw itself
type Props struct {
	State     board.State
	InputView string
	Focus     int
	Busy      bool
	Spinner   string
	Contract  string
	Width     int
}

// Rendered is the page content plus its clickable areas, relative to the
// top-left cell of Content
type Rendered struct {
	Content string
	Areas   []config.ClickableArea
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(styles.CMuted).
			Bold(true)

	messageStyle = lipgloss.NewStyle().
			Foreground(styles.CText).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(styles.CAccent2).
			Padding(0, 1)
)

// Render draws the message board page
func Render(p Props) Rendered {
	var lines []string
	var areas []config.ClickableArea

	add := func(s string) {
		lines = append(lines, strings.Split(s, "\n")...)
	}
	button := func(label, action string, focused bool, style lipgloss.Style) {
		if focused {
			style = styles.FocusedButtonStyle
		}
		btn := style.Render(label)
		areas = append(areas, config.ClickableArea{
			X:      0,
			Y:      len(lines),
			Width:  lipgloss.Width(btn),
			Height: lipgloss.Height(btn),
			Action: action,
		})
		add(btn)
	}

	connectStyle := styles.ButtonStyle
	if p.State.WalletAddress != "" {
		connectStyle = styles.ActiveButtonStyle
	}
	button(p.State.ConnectLabel(), ActionConnect, p.Focus == FocusConnect, connectStyle)
	add("")

	add(styles.TitleStyle.Render("Current Message:"))
	msgWidth := helpers.Max(20, p.Width-4)
	add(messageStyle.Width(msgWidth).Render(p.State.Message))
	add("")

	add(labelStyle.Render("New Message:"))
	add(p.InputView)
	add("")

	label := "Update"
	if p.Busy {
		label = p.Spinner + " Update"
	}
	button(label, ActionUpdate, p.Focus == FocusUpdate, styles.ButtonStyle)
	add("")

	if !p.State.Status.IsZero() {
		statusY := len(lines)
		status := RenderStatus(p.State.Status)
		add(status)
		if p.State.Status.Link != "" {
			areas = append(areas, config.ClickableArea{
				X:      0,
				Y:      statusY,
				Width:  lipgloss.Width(status),
				Height: lipgloss.Height(status),
				Action: ActionLink,
			})
		}
	}

	if p.Contract != "" {
		add("")
		add(lipgloss.NewStyle().Foreground(styles.CMuted).Render("contract " + helpers.FadeString(helpers.ShortenAddr(p.Contract), "#F25D94", "#EDFF82")))
	}

	return Rendered{Content: strings.Join(lines, "\n"), Areas: areas}
}

// RenderStatus colours a status by kind and hyperlinks its link
func RenderStatus(s board.Status) string {
	var c lipgloss.Color
	switch s.Kind {
	case board.KindError:
		c = styles.CError
	case board.KindSuccess:
		c = styles.CAccent
	case board.KindHint:
		c = styles.CWarn
	default:
		c = styles.CText
	}
	out := lipgloss.NewStyle().Foreground(c).Render(s.Text)
	if s.Link != "" {
		link := lipgloss.NewStyle().Foreground(styles.CAccent2).Underline(true).Render(s.Link)
		out += "\n" + helpers.Hyperlink(s.Link, link)
	}
	return out
}

// RenderQR draws the QR panel for a transaction or docs link
func RenderQR(link string) string {
	title := styles.TitleStyle.Render("Scan to open")
	hint := lipgloss.NewStyle().Foreground(styles.CMuted).Render(link + "\n\nPress v or Esc to close")
	return title + "\n\n" + helpers.QRCode(link) + "\n" + hint
}

// Nav returns the navigation bar for the board page
func Nav(width int, editing bool) string {
	var left string
	if editing {
		left = strings.Join([]string{
			styles.Key("Enter") + " update",
			styles.Key("Tab") + " next",
			styles.Key("Esc") + " leave field",
		}, "   ")
	} else {
		left = strings.Join([]string{
			styles.Key("Tab") + " focus",
			styles.Key("Enter") + " press",
			styles.Key("r") + " reload",
			styles.Key("x") + " disconnect",
			styles.Key("c") + " copy",
			styles.Key("v") + " qr",
			styles.Key("w") + " accounts",
			styles.Key("s") + " settings",
			styles.Key("l") + " log",
			styles.Key("q") + " quit",
		}, "   ")
	}
	return styles.NavStyle.Width(width).Render(left)
}
