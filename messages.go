package main

import (
	"math/big"

	"message-board-tui/board"
	"message-board-tui/rpc"

	"github.com/ethereum/go-ethereum/event"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	client  *rpc.Client
	network rpc.Network
	err     error
	url     string
	dial    int
}

// messageLoadedMsg carries a contract read. gen ties contract messages to
// the connection they were issued on; reload marks a manual refresh.
type messageLoadedMsg struct {
	message string
	err     error
	gen     int
	reload  bool
}

// updatesSubscribedMsg carries the opened update stream
type updatesSubscribedMsg struct {
	sub event.Subscription
	ch  chan board.Update
	err error
	gen int
}

// updateEventMsg is one emission of the update stream
type updateEventMsg struct {
	update board.Update
	gen    int
}

// updatesClosedMsg signals the update stream ended
type updatesClosedMsg struct {
	gen int
}

// walletLoadedMsg carries the current-wallet query
type walletLoadedMsg struct {
	result board.Result
}

// accountsSubscribedMsg carries the opened account feed
type accountsSubscribedMsg struct {
	sub event.Subscription
	ch  chan []string
}

// accountsChangedMsg is one account-change notification
type accountsChangedMsg struct {
	accounts []string
}

// accountsClosedMsg signals the account feed ended
type accountsClosedMsg struct{}

// walletConnectedMsg carries the result of the connect action
type walletConnectedMsg struct {
	result board.Result
}

// walletDisconnectedMsg carries the result of the disconnect action
type walletDisconnectedMsg struct {
	address string
	err     error
}

// updateSubmittedMsg carries the result of the submit action
type updateSubmittedMsg struct {
	result  board.Result
	message string
}

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
	err  error
}

// clearCopiedMsg clears the clipboard feedback line
type clearCopiedMsg struct{}

// balanceLoadedMsg carries the connected account's balance
type balanceLoadedMsg struct {
	address string
	wei     *big.Int
	err     error
}
