// Package wallet provides a keystore-backed wallet provider. "Connecting"
// unlocks a key file with its passphrase; the ordered list of unlocked
// addresses is published on an account feed whenever it changes.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"message-board-tui/board"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
)

var (
	ErrNoAccounts   = errors.New("no accounts found in keystore")
	ErrNotConnected = errors.New("wallet is not connected")
	ErrNoProvider   = errors.New("no wallet provider")
)

// Provider wraps a go-ethereum keystore
type Provider struct {
	dir string
	ks  *keystore.KeyStore

	mu        sync.Mutex
	connected []accounts.Account

	feed  event.Feed
	scope event.SubscriptionScope

	ksSub     event.Subscription
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Open opens the keystore in dir with standard scrypt parameters. A missing
// or empty dir yields a provider that reports itself absent.
func Open(dir string) *Provider {
	return OpenWithScrypt(dir, keystore.StandardScryptN, keystore.StandardScryptP)
}

// OpenWithScrypt opens the keystore with custom scrypt parameters
func OpenWithScrypt(dir string, scryptN, scryptP int) *Provider {
	p := &Provider{dir: dir}
	if strings.TrimSpace(dir) == "" {
		return p
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return p
	}

	p.ks = keystore.NewKeyStore(dir, scryptN, scryptP)
	p.quit = make(chan struct{})
	p.done = make(chan struct{})

	events := make(chan accounts.WalletEvent, 8)
	p.ksSub = p.ks.Subscribe(events)
	go p.watch(events)

	return p
}

// Dir returns the keystore directory
func (p *Provider) Dir() string {
	return p.dir
}

// Present reports whether a keystore is available
func (p *Provider) Present() bool {
	return p != nil && p.ks != nil
}

// Accounts lists every key in the keystore, connected or not
func (p *Provider) Accounts() []string {
	if !p.Present() {
		return nil
	}
	var out []string
	for _, a := range p.ks.Accounts() {
		out = append(out, a.Address.Hex())
	}
	return out
}

// ConnectWallet unlocks the first key in the keystore with passphrase
func (p *Provider) ConnectWallet(ctx context.Context, passphrase string) board.Result {
	if !p.Present() {
		return board.Result{Status: board.InstallPrompt}
	}
	if err := ctx.Err(); err != nil {
		return board.Fail(err)
	}

	all := p.ks.Accounts()
	if len(all) == 0 {
		return board.Fail(fmt.Errorf("%w (%s)", ErrNoAccounts, p.dir))
	}
	acc := all[0]
	if err := p.ks.Unlock(acc, passphrase); err != nil {
		return board.Fail(err)
	}

	p.mu.Lock()
	p.connected = prepend(p.connected, acc)
	snapshot := addresses(p.connected)
	p.mu.Unlock()

	p.feed.Send(snapshot)
	return board.Result{Address: acc.Address.Hex(), Status: board.WritePrompt}
}

// CurrentWallet reports the most recently connected address, if any
func (p *Provider) CurrentWallet(ctx context.Context) board.Result {
	if !p.Present() {
		return board.Result{Status: board.InstallPrompt}
	}
	if err := ctx.Err(); err != nil {
		return board.Fail(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.connected) == 0 {
		return board.Result{Status: board.ConnectPrompt}
	}
	return board.Result{Address: p.connected[0].Address.Hex(), Status: board.WritePrompt}
}

// Disconnect locks address again and drops it from the connected list
func (p *Provider) Disconnect(address string) error {
	if !p.Present() {
		return ErrNoProvider
	}

	p.mu.Lock()
	idx := indexOf(p.connected, address)
	if idx < 0 {
		p.mu.Unlock()
		return ErrNotConnected
	}
	acc := p.connected[idx]
	p.connected = append(p.connected[:idx:idx], p.connected[idx+1:]...)
	snapshot := addresses(p.connected)
	p.mu.Unlock()

	if err := p.ks.Lock(acc.Address); err != nil {
		return err
	}
	p.feed.Send(snapshot)
	return nil
}

// SubscribeAccounts delivers the connected address list on every change
func (p *Provider) SubscribeAccounts(ch chan<- []string) event.Subscription {
	return p.scope.Track(p.feed.Subscribe(ch))
}

// TransactOpts returns signing options for a connected address
func (p *Provider) TransactOpts(ctx context.Context, address string, chainID *big.Int) (*bind.TransactOpts, error) {
	if !p.Present() {
		return nil, ErrNoProvider
	}

	p.mu.Lock()
	idx := indexOf(p.connected, address)
	var acc accounts.Account
	if idx >= 0 {
		acc = p.connected[idx]
	}
	p.mu.Unlock()
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotConnected, address)
	}

	opts, err := bind.NewKeyStoreTransactorWithChainID(p.ks, acc, chainID)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// Close stops watching the keystore and releases every account subscription
func (p *Provider) Close() {
	p.closeOnce.Do(func() {
		p.scope.Close()
		if !p.Present() {
			return
		}
		p.ksSub.Unsubscribe()
		close(p.quit)
		<-p.done
	})
}

// watch drops connected accounts whose key file disappears
func (p *Provider) watch(events <-chan accounts.WalletEvent) {
	defer close(p.done)
	for {
		select {
		case ev := <-events:
			if ev.Kind != accounts.WalletDropped {
				continue
			}
			p.dropped(ev.Wallet.Accounts())
		case <-p.quit:
			return
		}
	}
}

func (p *Provider) dropped(gone []accounts.Account) {
	p.mu.Lock()
	changed := false
	for _, acc := range gone {
		if idx := indexOf(p.connected, acc.Address.Hex()); idx >= 0 {
			p.connected = append(p.connected[:idx:idx], p.connected[idx+1:]...)
			changed = true
		}
	}
	snapshot := addresses(p.connected)
	p.mu.Unlock()

	if changed {
		p.feed.Send(snapshot)
	}
}

func prepend(list []accounts.Account, acc accounts.Account) []accounts.Account {
	out := []accounts.Account{acc}
	for _, a := range list {
		if a.Address != acc.Address {
			out = append(out, a)
		}
	}
	return out
}

func indexOf(list []accounts.Account, address string) int {
	if !common.IsHexAddress(address) {
		return -1
	}
	want := common.HexToAddress(address)
	for i, a := range list {
		if a.Address == want {
			return i
		}
	}
	return -1
}

func addresses(list []accounts.Account) []string {
	out := make([]string, 0, len(list))
	for _, a := range list {
		out = append(out, a.Address.Hex())
	}
	return out
}
