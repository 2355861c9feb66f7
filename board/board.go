// Package board holds the message board state and the interfaces of the two
// collaborators it mirrors: a wallet connector and a contract binding.
package board

import (
	"context"

	"github.com/ethereum/go-ethereum/event"
)

// DefaultMessage is shown until the contract has been read
const DefaultMessage = "No connection to the network."

// Result is the outcome of any collaborator call. Address is set by wallet
// calls, TxHash by a submitted update. Err is nil on success.
type Result struct {
	Address string
	TxHash  string
	Status  Status
	Err     error
}

// Fail wraps err into a Result with an error status
func Fail(err error) Result {
	return Result{Status: Failed(err), Err: err}
}

// Update is one emission of the contract's update stream
type Update struct {
	OldMessage  string
	NewMessage  string
	TxHash      string
	BlockNumber uint64
	Err         error
}

// WalletConnector is the wallet provider the board connects through
type WalletConnector interface {
	// Present reports whether a wallet provider is available at all
	Present() bool
	ConnectWallet(ctx context.Context, passphrase string) Result
	CurrentWallet(ctx context.Context) Result
	// SubscribeAccounts delivers the ordered list of connected addresses
	// whenever it changes.
	SubscribeAccounts(ch chan<- []string) event.Subscription
}

// ContractBinding reads, writes and watches the stored message
type ContractBinding interface {
	LoadMessage(ctx context.Context) (string, error)
	UpdateMessage(ctx context.Context, address, message string) Result
	SubscribeUpdates(ctx context.Context, ch chan<- Update) (event.Subscription, error)
}

// State is the board's UI state. It is only mutated from the UI loop.
type State struct {
	WalletAddress string
	Status        Status
	Message       string
	NewMessage    string
}

// New returns the state a freshly mounted board starts with
func New() State {
	return State{Message: DefaultMessage}
}

// MessageLoaded applies the initial contract read
func (s *State) MessageLoaded(message string, err error) {
	if err != nil {
		s.Status = Failed(err)
		return
	}
	s.Message = message
}

// SubscribeFailed records a failure to open the update stream
func (s *State) SubscribeFailed(err error) {
	s.Status = Failed(err)
}

// WalletLoaded applies the current-wallet query
func (s *State) WalletLoaded(r Result) {
	s.WalletAddress = r.Address
	s.Status = r.Status
}

// ProviderMissing is applied when no wallet provider can be watched
func (s *State) ProviderMissing() {
	s.Status = InstallPrompt
}

// AccountsChanged applies an account-change notification
func (s *State) AccountsChanged(accounts []string) {
	if len(accounts) > 0 {
		s.WalletAddress = accounts[0]
		s.Status = WritePrompt
		return
	}
	s.WalletAddress = ""
	s.Status = ConnectPrompt
}

// Updated applies one emission of the update stream. Updates from any
// account are applied; the stream is not filtered by sender.
func (s *State) Updated(u Update) {
	if u.Err != nil {
		s.Status = Failed(u.Err)
		return
	}
	s.Message = u.NewMessage
	s.NewMessage = ""
	s.Status = UpdatedStatus
}

// Connected applies the result of a connect action
func (s *State) Connected(r Result) {
	s.Status = r.Status
	s.WalletAddress = r.Address
}

// Submitted applies the result of a submit action. Message is left alone
// until the update stream confirms the write.
func (s *State) Submitted(r Result) {
	s.Status = r.Status
}

// ConnectLabel is the text of the connect button
func (s State) ConnectLabel() string {
	if s.WalletAddress == "" {
		return "Connect Wallet"
	}
	return "Connected: " + TruncateAddress(s.WalletAddress)
}

// TruncateAddress keeps the first six and everything from the 39th character
func TruncateAddress(addr string) string {
	if len(addr) <= 38 {
		if len(addr) <= 6 {
			return addr + "..."
		}
		return addr[:6] + "..."
	}
	return addr[:6] + "..." + addr[38:]
}
