package contract

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"time"

	"message-board-tui/board"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
)

// DefaultPollInterval is used when the endpoint cannot push logs
const DefaultPollInterval = 4 * time.Second

// Backend is what the messenger needs from an RPC connection
type Backend interface {
	bind.ContractBackend
	ChainID(ctx context.Context) (*big.Int, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Signer hands out signing options for a connected wallet address
type Signer interface {
	TransactOpts(ctx context.Context, address string, chainID *big.Int) (*bind.TransactOpts, error)
}

// Messenger adapts the HelloWorld binding to board.ContractBinding
type Messenger struct {
	hw           *HelloWorld
	backend      Backend
	signer       Signer
	explorer     string
	pollInterval time.Duration
}

// NewMessenger binds the contract at address. explorer is the block explorer
// base URL used to link submitted transactions, and may be empty.
func NewMessenger(address string, backend Backend, signer Signer, explorer string) (*Messenger, error) {
	if strings.TrimSpace(address) == "" {
		return nil, ErrNoContract
	}
	if !common.IsHexAddress(address) {
		return nil, errors.New("invalid contract address: " + address)
	}
	hw, err := NewHelloWorld(common.HexToAddress(address), backend)
	if err != nil {
		return nil, err
	}
	return &Messenger{
		hw:           hw,
		backend:      backend,
		signer:       signer,
		explorer:     strings.TrimRight(explorer, "/"),
		pollInterval: DefaultPollInterval,
	}, nil
}

// SetPollInterval changes how often logs are polled when push is unavailable
func (m *Messenger) SetPollInterval(d time.Duration) {
	if d > 0 {
		m.pollInterval = d
	}
}

// Address returns the contract address
func (m *Messenger) Address() string {
	return m.hw.Address().Hex()
}

// LoadMessage reads the stored message
func (m *Messenger) LoadMessage(ctx context.Context) (string, error) {
	return m.hw.Message(&bind.CallOpts{Context: ctx})
}

// UpdateMessage sends update(message) signed by address. The returned status
// only says the transaction was sent; the update stream confirms it.
func (m *Messenger) UpdateMessage(ctx context.Context, address, message string) board.Result {
	if m.signer == nil || address == "" {
		return board.Result{Status: board.NoWalletStatus}
	}
	if strings.TrimSpace(message) == "" {
		return board.Result{Status: board.EmptyMessageStatus}
	}

	chainID, err := m.backend.ChainID(ctx)
	if err != nil {
		return board.Fail(err)
	}
	opts, err := m.signer.TransactOpts(ctx, address, chainID)
	if err != nil {
		return board.Fail(err)
	}
	tx, err := m.hw.Update(opts, message)
	if err != nil {
		return board.Fail(err)
	}

	hash := tx.Hash().Hex()
	return board.Result{
		Address: address,
		TxHash:  hash,
		Status:  board.Submitted(m.TxURL(hash)),
	}
}

// TxURL links a transaction hash on the configured explorer
func (m *Messenger) TxURL(hash string) string {
	if m.explorer == "" {
		return ""
	}
	return m.explorer + "/tx/" + hash
}

// SubscribeUpdates streams UpdatedMessages events into ch. A failed log
// subscription is delivered as an Update carrying the error before the
// returned subscription ends. Endpoints without push support are polled.
func (m *Messenger) SubscribeUpdates(ctx context.Context, ch chan<- board.Update) (event.Subscription, error) {
	events := make(chan *HelloWorldUpdatedMessages)
	sub, err := m.hw.WatchUpdatedMessages(&bind.WatchOpts{Context: ctx}, events)
	if errors.Is(err, rpc.ErrNotificationsUnsupported) {
		return m.pollUpdates(ctx, ch)
	}
	if err != nil {
		return nil, err
	}

	return event.NewSubscription(func(quit <-chan struct{}) error {
		defer sub.Unsubscribe()
		for {
			select {
			case ev := <-events:
				select {
				case ch <- toUpdate(ev):
				case <-quit:
					return nil
				}
			case err := <-sub.Err():
				if err == nil {
					return nil
				}
				select {
				case ch <- board.Update{Err: err}:
				case <-quit:
				}
				return err
			case <-quit:
				return nil
			}
		}
	}), nil
}

// pollUpdates filters logs on a ticker, starting after the current head
func (m *Messenger) pollUpdates(ctx context.Context, ch chan<- board.Update) (event.Subscription, error) {
	head, err := m.backend.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	from := head + 1

	return event.NewSubscription(func(quit <-chan struct{}) error {
		ticker := time.NewTicker(m.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return nil
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}

			to, err := m.backend.BlockNumber(ctx)
			if err != nil {
				if !deliver(ch, board.Update{Err: err}, quit) {
					return nil
				}
				continue
			}
			if to < from {
				continue
			}

			evs, err := m.hw.FilterUpdatedMessages(ctx, from, &to)
			if err != nil {
				if !deliver(ch, board.Update{Err: err}, quit) {
					return nil
				}
				continue
			}
			for _, ev := range evs {
				if !deliver(ch, toUpdate(ev), quit) {
					return nil
				}
			}
			from = to + 1
		}
	}), nil
}

func deliver(ch chan<- board.Update, u board.Update, quit <-chan struct{}) bool {
	select {
	case ch <- u:
		return true
	case <-quit:
		return false
	}
}

func toUpdate(ev *HelloWorldUpdatedMessages) board.Update {
	return board.Update{
		OldMessage:  ev.OldStr,
		NewMessage:  ev.NewStr,
		TxHash:      ev.Raw.TxHash.Hex(),
		BlockNumber: ev.Raw.BlockNumber,
	}
}
