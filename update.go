package main

import (
	"errors"
	"fmt"
	"strings"

	"message-board-tui/board"
	"message-board-tui/config"
	"message-board-tui/helpers"
	boardview "message-board-tui/views/board"
	logview "message-board-tui/views/log"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// -------------------- TEMP FORM STORAGE --------------------
// Temporary form field storage (package-level to avoid pointer-to-copy issues)
var (
	tempPassphrase  string
	tempRPCFormName string
	tempRPCFormURL  string
)

func (m *model) createPassphraseForm() tea.Cmd {
	tempPassphrase = ""

	m.formKind = "passphrase"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Unlock wallet").
				Description("Passphrase of the first key in the keystore").
				EchoMode(huh.EchoModePassword).
				Value(&tempPassphrase),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return m.form.Init()
}

func (m *model) createAddRPCForm() tea.Cmd {
	tempRPCFormName = ""
	tempRPCFormURL = ""

	m.formKind = "rpc"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("RPC Name").
				Description("A friendly name for this RPC endpoint").
				Value(&tempRPCFormName).
				Placeholder("Local node"),

			huh.NewInput().
				Title("RPC URL").
				Description("http(s) or ws(s) endpoint. Use ws(s) for pushed updates").
				Value(&tempRPCFormURL).
				Validate(func(s string) error {
					if !helpers.IsValidRPCURL(strings.TrimSpace(s)) {
						return errors.New("enter an http(s):// or ws(s):// URL")
					}
					return nil
				}).
				Placeholder("wss://..."),
		),
	).WithTheme(huh.ThemeCatppuccin())

	return m.form.Init()
}

// formDone applies a completed form
func (m *model) formDone() tea.Cmd {
	kind := m.formKind
	m.form = nil
	m.formKind = ""

	switch kind {
	case "passphrase":
		pass := tempPassphrase
		tempPassphrase = ""
		m.connecting = true
		m.addLog("info", "Unlocking wallet")
		return connectWallet(m.ctx, m.wallet, pass)

	case "rpc":
		name := strings.TrimSpace(tempRPCFormName)
		url := strings.TrimSpace(tempRPCFormURL)
		if name == "" {
			name = url
		}
		m.cfg.AddRPC(name, url)
		m.saveConfig()
		m.addLog("success", fmt.Sprintf("Added RPC endpoint `%s`", name))
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Forms take every key while open and see every other message too
	var formCmd tea.Cmd
	if m.form != nil {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.form = nil
				m.formKind = ""
				tempPassphrase = ""
				return m, nil
			}
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
			switch m.form.State {
			case huh.StateCompleted:
				cmd = m.formDone()
			case huh.StateAborted:
				m.form = nil
				m.formKind = ""
			}
		}
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		formCmd = cmd
	}

	_, cmd := m.handleMsg(msg)
	return m, tea.Batch(formCmd, cmd)
}

func (m *model) handleMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case logInitMsg:
		if !m.logEnabled {
			return m, nil
		}
		m.logger = log.NewWithOptions(m.logBuffer, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05",
		})
		m.logger.SetLevel(log.DebugLevel)
		m.logger.SetStyles(&log.Styles{
			Timestamp: lipgloss.NewStyle().Foreground(cMuted),
			Caller:    lipgloss.NewStyle().Faint(true),
			Prefix:    lipgloss.NewStyle().Bold(true).Foreground(cAccent2),
			Message:   lipgloss.NewStyle().Foreground(cText),
			Key:       lipgloss.NewStyle().Foreground(cAccent),
			Value:     lipgloss.NewStyle().Foreground(cText),
			Separator: lipgloss.NewStyle().Faint(true),
			Keys:      map[string]lipgloss.Style{},
			Values:    map[string]lipgloss.Style{},
			Levels: map[log.Level]lipgloss.Style{
				log.DebugLevel: lipgloss.NewStyle().Foreground(cMuted).SetString("DEBUG"),
				log.InfoLevel:  lipgloss.NewStyle().Foreground(cAccent2).SetString("INFO"),
				log.WarnLevel:  lipgloss.NewStyle().Foreground(cWarn).SetString("WARN"),
				log.ErrorLevel: lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).SetString("ERROR"),
			},
		})
		m.logReady = true
		m.addLog("info", "Logger enabled")
		return m, nil

	case rpcConnectedMsg:
		if msg.dial != m.dial {
			if msg.client != nil {
				msg.client.Close()
			}
			m.addLog("debug", "Dropped superseded RPC connection", "url", msg.url)
			return m, nil
		}
		m.rpcConnecting = false
		if msg.err != nil {
			m.rpcConnected = false
			m.network = msg.network
			m.contract = offlineContract{err: msg.err}
			m.addLog("error", fmt.Sprintf("RPC connection failed: `%s`", msg.err.Error()))
			return m, m.mount()
		}

		m.ethClient = msg.client
		m.network = msg.network
		m.rpcConnected = true
		m.addLog("success", fmt.Sprintf("RPC connected to `%s`", msg.client.URL), "network", msg.network.String())

		if m.bind == nil {
			m.contract = offlineContract{err: errNotConnected}
			return m, m.mount()
		}
		c, err := m.bind(msg.client)
		if err != nil {
			m.addLog("error", "Contract unavailable", "err", err)
			c = offlineContract{err: err}
		}
		m.contract = c
		return m, m.mount()

	case messageLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.state.MessageLoaded(msg.message, msg.err)
		if msg.err != nil {
			m.addLog("error", "Failed to load message", "err", msg.err)
		} else {
			m.addLog("info", "Loaded message", "message", msg.message)
		}
		if msg.reload {
			return m, nil
		}
		return m, subscribeUpdates(m.ctx, m.contract, m.gen)

	case updatesSubscribedMsg:
		if msg.gen != m.gen {
			if msg.sub != nil {
				msg.sub.Unsubscribe()
			}
			return m, nil
		}
		var cmds []tea.Cmd
		if msg.err != nil {
			m.state.SubscribeFailed(msg.err)
			m.addLog("error", "Failed to watch message updates", "err", msg.err)
		} else if sub := m.subs.Track(msg.sub); sub != nil {
			m.updatesSub = sub
			m.updatesCh = msg.ch
			m.addLog("debug", "Watching message updates", "subscriptions", m.subs.Count())
			cmds = append(cmds, waitForUpdate(sub, msg.ch, msg.gen))
		}
		if !m.walletStarted {
			m.walletStarted = true
			cmds = append(cmds, loadWallet(m.ctx, m.wallet))
		}
		return m, tea.Batch(cmds...)

	case updateEventMsg:
		if msg.gen != m.gen || m.updatesSub == nil {
			return m, nil
		}
		m.state.Updated(msg.update)
		if msg.update.Err != nil {
			m.addLog("error", "Update stream failed", "err", msg.update.Err)
		} else {
			m.input.SetValue(m.state.NewMessage)
			m.addLog("success", "Message updated", "message", msg.update.NewMessage, "block", msg.update.BlockNumber)
		}
		return m, waitForUpdate(m.updatesSub, m.updatesCh, m.gen)

	case updatesClosedMsg:
		if msg.gen == m.gen {
			m.updatesSub = nil
			m.addLog("warning", "Message update stream closed")
		}
		return m, nil

	case walletLoadedMsg:
		m.state.WalletLoaded(msg.result)
		m.logStatus("Wallet", msg.result.Status)
		if !m.wallet.Present() {
			m.state.ProviderMissing()
			return m, nil
		}
		return m, subscribeAccounts(m.wallet)

	case accountsSubscribedMsg:
		sub := m.subs.Track(msg.sub)
		if sub == nil {
			return m, nil
		}
		m.accountsSub = sub
		m.accountsCh = msg.ch
		m.addLog("debug", "Watching wallet accounts", "subscriptions", m.subs.Count())
		return m, waitForAccounts(sub, msg.ch)

	case accountsChangedMsg:
		m.state.AccountsChanged(msg.accounts)
		if len(msg.accounts) > 0 {
			m.addLog("info", "Accounts changed", "active", helpers.ShortenAddr(msg.accounts[0]))
		} else {
			m.addLog("warning", "No connected accounts")
		}
		if m.accountsSub == nil {
			return m, nil
		}
		return m, waitForAccounts(m.accountsSub, m.accountsCh)

	case accountsClosedMsg:
		m.accountsSub = nil
		return m, nil

	case walletConnectedMsg:
		m.connecting = false
		m.state.Connected(msg.result)
		if msg.result.Err != nil {
			m.addLog("error", "Wallet connection failed", "err", msg.result.Err)
		} else if msg.result.Address != "" {
			m.addLog("success", "Wallet connected", "address", msg.result.Address)
		} else {
			m.logStatus("Wallet", msg.result.Status)
		}
		return m, nil

	case walletDisconnectedMsg:
		if msg.err != nil {
			m.state.Status = board.Failed(msg.err)
			m.addLog("error", "Disconnect failed", "err", msg.err)
			return m, nil
		}
		m.addLog("info", "Wallet disconnected", "address", helpers.ShortenAddr(msg.address))
		return m, nil

	case updateSubmittedMsg:
		m.submitting = false
		m.state.Submitted(msg.result)
		if msg.result.Err != nil {
			m.addLog("error", "Update failed", "err", msg.result.Err)
		} else if msg.result.TxHash != "" {
			m.addLog("success", "Transaction sent", "tx", msg.result.TxHash, "message", msg.message)
		} else {
			m.logStatus("Update", msg.result.Status)
		}
		return m, nil

	case balanceLoadedMsg:
		if msg.address != m.state.WalletAddress {
			return m, nil
		}
		m.balanceLoading = false
		if msg.err != nil {
			m.balance = "unavailable"
			m.addLog("error", "Failed to load balance", "err", msg.err)
			return m, nil
		}
		m.balance = helpers.FormatETH(msg.wei)
		m.addLog("info", "Loaded balance", "address", helpers.ShortenAddr(msg.address), "balance", m.balance)
		return m, nil

	case clipboardCopiedMsg:
		if msg.err != nil {
			m.addLog("error", "Clipboard unavailable", "err", msg.err)
			return m, nil
		}
		m.copiedMsg = "Copied " + msg.what
		m.addLog("info", m.copiedMsg)
		return m, clearCopied()

	case clearCopiedMsg:
		m.copiedMsg = ""
		return m, nil

	case tea.WindowSizeMsg:
		m.w, m.h = msg.Width, msg.Height
		m.input.Width = max(10, msg.Width-12)
		m.logViewport.Width = max(0, msg.Width-6)
		m.logViewport.Height = logview.Height(msg.Height)
		if m.logReady {
			m.updateLogViewport()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		var cmds []tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
		if m.logEnabled && !m.logReady {
			m.logSpinner, cmd = m.logSpinner.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for _, area := range m.clickableAreas {
			if area.Contains(msg.X, msg.Y) {
				m.addLog("debug", fmt.Sprintf("Click on %s at (%d,%d)", area.Action, msg.X, msg.Y))
				return m, m.press(area.Action)
			}
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.showQR {
		switch msg.String() {
		case "esc", "v", "enter":
			m.showQR = false
		}
		return m, nil
	}

	if !m.textInputActive() {
		switch msg.String() {
		case "q":
			return m, tea.Quit

		case "l", "L":
			m.logEnabled = !m.logEnabled
			m.cfg.Logger = m.logEnabled
			m.saveConfig()
			if m.logEnabled {
				m.logReady = false
				return m, tea.Batch(initLogViewport(), m.logSpinner.Tick)
			}
			m.logBuffer.Reset()
			m.logger = nil
			m.logReady = false
			return m, nil

		case "pageup", "pagedown":
			if m.logEnabled && m.logReady {
				var cmd tea.Cmd
				m.logViewport, cmd = m.logViewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}
	}

	switch m.activePage {
	case config.PageSettings:
		return m.handleSettingsKey(msg)
	case config.PageAccounts:
		return m.handleAccountsKey(msg)
	default:
		return m.handleBoardKey(msg)
	}
}

func (m *model) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return m, m.setFocus((m.focus + 1) % boardview.FocusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + boardview.FocusCount - 1) % boardview.FocusCount)
	}

	if m.focus == boardview.FocusInput {
		switch msg.String() {
		case "esc":
			return m, m.setFocus(boardview.FocusConnect)
		case "enter":
			return m, m.press(boardview.ActionUpdate)
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.state.NewMessage = m.input.Value()
		return m, cmd
	}

	switch msg.String() {
	case "enter", " ":
		if m.focus == boardview.FocusUpdate {
			return m, m.press(boardview.ActionUpdate)
		}
		return m, m.press(boardview.ActionConnect)

	case "r", "R":
		m.addLog("info", "Reloading message")
		return m, loadMessage(m.ctx, m.contract, m.gen, true)

	case "x", "X":
		if m.state.WalletAddress == "" {
			m.addLog("warning", "No wallet to disconnect")
			return m, nil
		}
		return m, disconnectWallet(m.wallet, m.state.WalletAddress)

	case "c", "C":
		if link := m.state.Status.Link; link != "" {
			return m, copyToClipboard("link", link)
		}
		if m.state.WalletAddress != "" {
			return m, copyToClipboard("address", m.state.WalletAddress)
		}
		return m, nil

	case "v", "V":
		if m.state.Status.Link != "" {
			m.showQR = true
		}
		return m, nil

	case "s", "S":
		m.activePage = config.PageSettings
		return m, nil

	case "w", "W":
		m.activePage = config.PageAccounts
		return m, m.refreshBalance()
	}
	return m, nil
}

func (m *model) handleAccountsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.activePage = config.PageBoard
	case "r", "R":
		return m, m.refreshBalance()
	case "c", "C":
		if m.state.WalletAddress != "" {
			return m, copyToClipboard("address", m.state.WalletAddress)
		}
	}
	return m, nil
}

// refreshBalance reloads the connected account's balance
func (m *model) refreshBalance() tea.Cmd {
	if m.state.WalletAddress == "" {
		m.balance = ""
		return nil
	}
	m.balanceLoading = true
	return loadBalance(m.ctx, m.ethClient, m.state.WalletAddress)
}

// press runs the action of a board button
func (m *model) press(action string) tea.Cmd {
	switch action {
	case boardview.ActionConnect:
		m.focus = boardview.FocusConnect
		m.input.Blur()
		if m.connecting {
			return nil
		}
		if !m.wallet.Present() {
			return connectWallet(m.ctx, m.wallet, "")
		}
		return m.createPassphraseForm()

	case boardview.ActionUpdate:
		if m.submitting {
			return nil
		}
		m.state.NewMessage = m.input.Value()
		m.submitting = true
		m.addLog("info", "Submitting update", "message", m.state.NewMessage)
		return submitUpdate(m.ctx, m.contract, m.state.WalletAddress, m.state.NewMessage)

	case boardview.ActionLink:
		if link := m.state.Status.Link; link != "" {
			return copyToClipboard("link", link)
		}
	}
	return nil
}

func (m *model) setFocus(f int) tea.Cmd {
	m.focus = f
	if f == boardview.FocusInput {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.activePage = config.PageBoard
		return m, nil

	case "a", "A":
		return m, m.createAddRPCForm()

	case "d", "delete", "backspace":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs) {
			name := m.cfg.RPCURLs[m.selectedRPCIdx].Name
			m.cfg.RemoveRPC(m.selectedRPCIdx)
			if m.selectedRPCIdx >= len(m.cfg.RPCURLs) && m.selectedRPCIdx > 0 {
				m.selectedRPCIdx--
			}
			m.saveConfig()
			m.addLog("warning", fmt.Sprintf("Deleted RPC endpoint `%s`", name))
		}
		return m, nil

	case "up", "k":
		if m.selectedRPCIdx > 0 {
			m.selectedRPCIdx--
		}
		return m, nil

	case "down", "j":
		if m.selectedRPCIdx < len(m.cfg.RPCURLs)-1 {
			m.selectedRPCIdx++
		}
		return m, nil

	case "enter", " ":
		if !m.cfg.SetActive(m.selectedRPCIdx) {
			return m, nil
		}
		m.saveConfig()
		return m, m.reconnect(m.cfg.RPCURLs[m.selectedRPCIdx].URL)
	}
	return m, nil
}

// reconnect drops the current contract stream and client and dials url.
// The wallet half of the mount is kept.
func (m *model) reconnect(url string) tea.Cmd {
	m.gen++
	if m.updatesSub != nil {
		m.updatesSub.Unsubscribe()
		m.updatesSub = nil
	}
	if m.ethClient != nil {
		m.ethClient.Close()
		m.ethClient = nil
	}
	m.rpcURL = url
	m.rpcConnected = false
	m.rpcConnecting = true
	m.dial++
	m.addLog("info", "Switching RPC", "url", url)
	return connectRPC(url, m.dial)
}
