package wallet

import (
	"context"
	"errors"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"message-board-tui/board"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
)

const testPassphrase = "correct horse battery staple"

// newTestProvider creates a keystore with one key and opens a provider on it
func newTestProvider(t *testing.T) (*Provider, accounts.Account) {
	t.Helper()
	dir := t.TempDir()
	ks := keystore.NewKeyStore(dir, keystore.LightScryptN, keystore.LightScryptP)
	acc, err := ks.NewAccount(testPassphrase)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	p := OpenWithScrypt(dir, keystore.LightScryptN, keystore.LightScryptP)
	t.Cleanup(p.Close)
	return p, acc
}

func receive(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case got := <-ch:
		return got
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for account feed")
		return nil
	}
}

func TestAbsentProvider(t *testing.T) {
	ctx := context.Background()

	for name, dir := range map[string]string{
		"empty dir":   "",
		"missing dir": filepath.Join(t.TempDir(), "does-not-exist"),
	} {
		t.Run(name, func(t *testing.T) {
			p := Open(dir)
			defer p.Close()

			if p.Present() {
				t.Fatal("Expected provider to be absent")
			}
			if r := p.CurrentWallet(ctx); r.Status != board.InstallPrompt || r.Address != "" {
				t.Errorf("Expected install prompt, got %+v", r)
			}
			if r := p.ConnectWallet(ctx, "x"); r.Status != board.InstallPrompt {
				t.Errorf("Expected install prompt on connect, got %+v", r)
			}
			if err := p.Disconnect("0x0000000000000000000000000000000000000001"); !errors.Is(err, ErrNoProvider) {
				t.Errorf("Expected ErrNoProvider, got %v", err)
			}
		})
	}
}

func TestConnectWallet(t *testing.T) {
	ctx := context.Background()
	p, acc := newTestProvider(t)

	feed := make(chan []string, 4)
	sub := p.SubscribeAccounts(feed)
	defer sub.Unsubscribe()

	t.Run("not connected yet", func(t *testing.T) {
		r := p.CurrentWallet(ctx)
		if r.Address != "" || r.Status != board.ConnectPrompt {
			t.Errorf("Expected connect prompt, got %+v", r)
		}
	})

	t.Run("wrong passphrase", func(t *testing.T) {
		r := p.ConnectWallet(ctx, "wrong")
		if r.Err == nil {
			t.Fatal("Expected error for wrong passphrase")
		}
		if r.Address != "" || r.Status.Kind != board.KindError {
			t.Errorf("Expected error status without address, got %+v", r)
		}
	})

	t.Run("correct passphrase", func(t *testing.T) {
		r := p.ConnectWallet(ctx, testPassphrase)
		if r.Err != nil {
			t.Fatalf("Connect failed: %v", r.Err)
		}
		if r.Address != acc.Address.Hex() {
			t.Errorf("Expected address %s, got %s", acc.Address.Hex(), r.Address)
		}
		if r.Status != board.WritePrompt {
			t.Errorf("Expected write prompt, got %q", r.Status)
		}

		got := receive(t, feed)
		if len(got) != 1 || got[0] != acc.Address.Hex() {
			t.Errorf("Expected feed [%s], got %v", acc.Address.Hex(), got)
		}

		cur := p.CurrentWallet(ctx)
		if cur.Address != acc.Address.Hex() {
			t.Errorf("Expected current wallet %s, got %s", acc.Address.Hex(), cur.Address)
		}
	})

	t.Run("disconnect", func(t *testing.T) {
		if err := p.Disconnect(acc.Address.Hex()); err != nil {
			t.Fatalf("Disconnect failed: %v", err)
		}
		if got := receive(t, feed); len(got) != 0 {
			t.Errorf("Expected empty account list, got %v", got)
		}
		if err := p.Disconnect(acc.Address.Hex()); !errors.Is(err, ErrNotConnected) {
			t.Errorf("Expected ErrNotConnected on second disconnect, got %v", err)
		}
	})
}

func TestConnectWalletNoAccounts(t *testing.T) {
	p := OpenWithScrypt(t.TempDir(), keystore.LightScryptN, keystore.LightScryptP)
	defer p.Close()

	r := p.ConnectWallet(context.Background(), testPassphrase)
	if !errors.Is(r.Err, ErrNoAccounts) {
		t.Errorf("Expected ErrNoAccounts, got %v", r.Err)
	}
}

func TestTransactOpts(t *testing.T) {
	ctx := context.Background()
	p, acc := newTestProvider(t)
	chainID := big.NewInt(1337)

	if _, err := p.TransactOpts(ctx, acc.Address.Hex(), chainID); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Expected ErrNotConnected before connect, got %v", err)
	}

	if r := p.ConnectWallet(ctx, testPassphrase); r.Err != nil {
		t.Fatalf("Connect failed: %v", r.Err)
	}

	opts, err := p.TransactOpts(ctx, acc.Address.Hex(), chainID)
	if err != nil {
		t.Fatalf("TransactOpts failed: %v", err)
	}
	if opts.From != acc.Address {
		t.Errorf("Expected From %s, got %s", acc.Address.Hex(), opts.From.Hex())
	}
	if opts.Context != ctx {
		t.Error("Expected context to be carried into opts")
	}
}

func TestDroppedKeyFile(t *testing.T) {
	ctx := context.Background()
	p, acc := newTestProvider(t)

	feed := make(chan []string, 4)
	sub := p.SubscribeAccounts(feed)
	defer sub.Unsubscribe()

	if r := p.ConnectWallet(ctx, testPassphrase); r.Err != nil {
		t.Fatalf("Connect failed: %v", r.Err)
	}
	receive(t, feed)

	p.dropped([]accounts.Account{acc})

	if got := receive(t, feed); len(got) != 0 {
		t.Errorf("Expected empty list after key file dropped, got %v", got)
	}
	if r := p.CurrentWallet(ctx); r.Address != "" {
		t.Errorf("Expected no current wallet, got %s", r.Address)
	}
}

func TestCloseReleasesSubscriptions(t *testing.T) {
	p, _ := newTestProvider(t)

	sub := p.SubscribeAccounts(make(chan []string, 1))
	p.Close()

	select {
	case <-sub.Err():
	case <-time.After(time.Second):
		t.Fatal("Expected subscription to be released by Close")
	}
}
