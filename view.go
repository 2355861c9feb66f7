package main

import (
	"strings"

	"message-board-tui/config"
	"message-board-tui/helpers"
	"message-board-tui/views/accounts"
	boardview "message-board-tui/views/board"
	logview "message-board-tui/views/log"
	"message-board-tui/views/settings"

	"github.com/charmbracelet/lipgloss"
)

// -------------------- VIEW --------------------

// panel origin: border plus PanelStyle padding
const (
	panelInsetX = 3
	panelInsetY = 2
)

func (m *model) globalHeader() string {
	availableWidth := max(0, m.w-8)

	var statusIcon, statusText string
	statusColor := lipgloss.Color("#c01c28")

	switch {
	case m.rpcURL == "":
		statusIcon, statusText = "○", "No RPC"
	case m.rpcConnecting:
		statusIcon, statusText = "○", "Connecting..."
	case !m.rpcConnected:
		statusIcon, statusText = "○", "Connection Failed"
	default:
		statusIcon, statusText = "●", m.network.String()
		statusColor = cAccent
		if r, ok := m.cfg.ActiveRPC(); ok && r.URL == m.rpcURL && r.Name != "" {
			statusText = r.Name + " · " + statusText
		}
	}

	rpcDisplay := lipgloss.NewStyle().
		Foreground(statusColor).
		Bold(true).
		Render(statusIcon + " " + statusText)

	titleText := lipgloss.NewStyle().
		Foreground(cAccent).
		Bold(true).
		Render(helpers.FadeString("hello world message board", "#7EE787", "#82CFFD"))

	var headerLine string
	gap := availableWidth - lipgloss.Width(titleText) - lipgloss.Width(rpcDisplay)
	if gap < 2 {
		headerLine = titleText + "\n" + rpcDisplay
	} else {
		headerLine = titleText + strings.Repeat(" ", gap) + rpcDisplay
	}

	separator := lipgloss.NewStyle().
		Foreground(cBorder).
		Render(strings.Repeat("─", availableWidth))

	return headerLine + "\n" + separator
}

func (m *model) View() string {
	m.clickableAreas = nil

	if m.showQR && m.state.Status.Link != "" {
		content := panelStyle.Render(boardview.RenderQR(m.state.Status.Link))
		return appStyle.Render(lipgloss.Place(m.w, m.h, lipgloss.Center, lipgloss.Center, content))
	}

	header := m.globalHeader()

	var body, nav string
	switch m.activePage {
	case config.PageSettings:
		body = settings.Render(m.cfg, m.selectedRPCIdx, m.rpcURL)
		nav = settings.Nav(max(0, m.w-2), m.form != nil)

	case config.PageAccounts:
		props := accounts.Props{
			Keystore:  m.cfg.Keystore,
			Present:   m.wallet.Present(),
			Connected: m.state.WalletAddress,
			Balance:   m.balance,
			Loading:   m.balanceLoading,
			Spinner:   m.spin.View(),
			Explorer:  m.cfg.Explorer,
		}
		if ks, ok := m.wallet.(keystore); ok {
			props.Keystore = ks.Dir()
			props.Keys = ks.Accounts()
		}
		body = accounts.Render(props)
		nav = accounts.Nav(max(0, m.w-2))

	default:
		r := boardview.Render(boardview.Props{
			State:     m.state,
			InputView: m.input.View(),
			Focus:     m.focus,
			Busy:      m.submitting,
			Spinner:   m.spin.View(),
			Contract:  m.contractAddress(),
			Width:     max(0, m.w-8),
		})
		body = r.Content
		if m.connecting {
			body = m.spin.View() + " unlocking wallet...\n" + body
		}

		// header and body share one panel; areas are relative to the body
		originY := panelInsetY + lipgloss.Height(header)
		if m.connecting {
			originY++
		}
		for _, a := range r.Areas {
			a.X += panelInsetX
			a.Y += originY
			m.clickableAreas = append(m.clickableAreas, a)
		}
		nav = boardview.Nav(max(0, m.w-2), m.textInputActive())
	}

	if m.form != nil {
		body += "\n\n" + m.form.View()
	}
	if m.copiedMsg != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(cAccent).Bold(true).Render(m.copiedMsg)
	}

	page := panelStyle.Width(max(0, m.w-2)).Render(header + "\n" + body)

	parts := []string{page}
	if m.logEnabled {
		parts = append(parts, logview.Render(m.w, m.logReady, m.logSpinner.View(), m.logViewport))
	}
	parts = append(parts, nav)

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// contractAddress returns the bound contract address when the binding has one
func (m *model) contractAddress() string {
	if a, ok := m.contract.(interface{ Address() string }); ok {
		return a.Address()
	}
	return ""
}
