package main

import (
	"context"
	"errors"
	"time"

	"message-board-tui/board"
	"message-board-tui/config"
	"message-board-tui/rpc"
	boardview "message-board-tui/views/board"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

// -------------------- COMMAND FUNCTIONS --------------------
// Functions that return tea.Cmd for async operations

const callTimeout = 20 * time.Second

// connectRPC establishes an RPC connection to the Ethereum node. dial
// identifies the attempt so a superseded result can be discarded.
func connectRPC(url string, dial int) tea.Cmd {
	return func() tea.Msg {
		result := rpc.Connect(url)
		return rpcConnectedMsg{client: result.Client, network: result.Network, err: result.Error, url: url, dial: dial}
	}
}

// initLogViewport initializes the log viewport
func initLogViewport() tea.Cmd {
	return func() tea.Msg {
		return logInitMsg{}
	}
}

// loadMessage reads the stored message
func loadMessage(ctx context.Context, c board.ContractBinding, gen int, reload bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		msg, err := c.LoadMessage(ctx)
		return messageLoadedMsg{message: msg, err: err, gen: gen, reload: reload}
	}
}

// subscribeUpdates opens the contract's update stream
func subscribeUpdates(ctx context.Context, c board.ContractBinding, gen int) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan board.Update, 16)
		sub, err := c.SubscribeUpdates(ctx, ch)
		return updatesSubscribedMsg{sub: sub, ch: ch, err: err, gen: gen}
	}
}

// waitForUpdate blocks on the next update or the end of the stream
func waitForUpdate(sub event.Subscription, ch <-chan board.Update, gen int) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-ch:
			return updateEventMsg{update: u, gen: gen}
		case <-sub.Err():
			// drain anything delivered just before the stream ended
			select {
			case u := <-ch:
				return updateEventMsg{update: u, gen: gen}
			default:
			}
			return updatesClosedMsg{gen: gen}
		}
	}
}

// loadWallet queries the currently connected wallet
func loadWallet(ctx context.Context, w board.WalletConnector) tea.Cmd {
	return func() tea.Msg {
		return walletLoadedMsg{result: w.CurrentWallet(ctx)}
	}
}

// subscribeAccounts opens the wallet's account feed
func subscribeAccounts(w board.WalletConnector) tea.Cmd {
	return func() tea.Msg {
		ch := make(chan []string, 8)
		return accountsSubscribedMsg{sub: w.SubscribeAccounts(ch), ch: ch}
	}
}

// waitForAccounts blocks on the next account change or the end of the feed
func waitForAccounts(sub event.Subscription, ch <-chan []string) tea.Cmd {
	return func() tea.Msg {
		select {
		case accts := <-ch:
			return accountsChangedMsg{accounts: accts}
		case <-sub.Err():
			return accountsClosedMsg{}
		}
	}
}

// connectWallet unlocks the wallet with passphrase
func connectWallet(ctx context.Context, w board.WalletConnector, passphrase string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		return walletConnectedMsg{result: w.ConnectWallet(ctx, passphrase)}
	}
}

// disconnecter is implemented by wallets that can lock an account again
type disconnecter interface {
	Disconnect(address string) error
}

// disconnectWallet locks address
func disconnectWallet(w board.WalletConnector, address string) tea.Cmd {
	return func() tea.Msg {
		d, ok := w.(disconnecter)
		if !ok {
			return walletDisconnectedMsg{address: address, err: errors.New("wallet cannot disconnect")}
		}
		return walletDisconnectedMsg{address: address, err: d.Disconnect(address)}
	}
}

// submitUpdate sends update(message) from address
func submitUpdate(ctx context.Context, c board.ContractBinding, address, message string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		return updateSubmittedMsg{result: c.UpdateMessage(ctx, address, message), message: message}
	}
}

// loadBalance fetches the ETH balance of address
func loadBalance(ctx context.Context, client *rpc.Client, address string) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return balanceLoadedMsg{address: address, err: errNotConnected}
		}
		ctx, cancel := context.WithTimeout(ctx, callTimeout)
		defer cancel()
		wei, err := client.BalanceAt(ctx, common.HexToAddress(address), nil)
		return balanceLoadedMsg{address: address, wei: wei, err: err}
	}
}

// copyToClipboard copies text to clipboard
func copyToClipboard(what, text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardCopiedMsg{what: what, err: clipboard.WriteAll(text)}
	}
}

// clearCopied waits 2 seconds then clears clipboard feedback
func clearCopied() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// -------------------- MODEL HELPER METHODS --------------------

// addLog adds a log entry with timestamp and type
func (m *model) addLog(logType, message string, keyvals ...interface{}) {
	if !m.logEnabled || !m.logReady || m.logger == nil {
		return
	}

	switch logType {
	case "info":
		m.logger.Info(message, keyvals...)
	case "success":
		m.logger.Info("✓ "+message, keyvals...)
	case "error":
		m.logger.Error(message, keyvals...)
	case "warning":
		m.logger.Warn(message, keyvals...)
	case "debug":
		m.logger.Debug(message, keyvals...)
	default:
		m.logger.Print(message, keyvals...)
	}

	m.updateLogViewport()
}

// updateLogViewport refreshes the viewport content with log output
func (m *model) updateLogViewport() {
	if !m.logReady || m.logBuffer == nil {
		return
	}
	m.logViewport.SetContent(m.logBuffer.String())
	m.logViewport.GotoBottom()
}

// logStatus mirrors a status line into the log at a matching level
func (m *model) logStatus(prefix string, s board.Status) {
	if s.IsZero() {
		return
	}
	kind := "info"
	switch s.Kind {
	case board.KindError:
		kind = "error"
	case board.KindSuccess:
		kind = "success"
	}
	if s.Link != "" {
		m.addLog(kind, prefix+": "+s.Text, "link", s.Link)
		return
	}
	m.addLog(kind, prefix+": "+s.Text)
}

// textInputActive returns true if typing should not trigger hotkeys
func (m *model) textInputActive() bool {
	if m.form != nil {
		return true
	}
	return m.activePage == config.PageBoard && m.focus == boardview.FocusInput
}
