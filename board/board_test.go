package board

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/event"
)

func TestNewState(t *testing.T) {
	s := New()
	if s.Message != DefaultMessage {
		t.Errorf("Expected default message %q, got %q", DefaultMessage, s.Message)
	}
	if s.WalletAddress != "" || s.NewMessage != "" {
		t.Errorf("Expected empty wallet and input, got %+v", s)
	}
	if !s.Status.IsZero() {
		t.Errorf("Expected empty status, got %q", s.Status)
	}
}

func TestMessageLoaded(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		s := New()
		s.MessageLoaded("gm", nil)
		if s.Message != "gm" {
			t.Errorf("Expected message gm, got %q", s.Message)
		}
	})

	t.Run("failure keeps fallback", func(t *testing.T) {
		s := New()
		s.MessageLoaded("", errors.New("dial tcp: refused"))
		if s.Message != DefaultMessage {
			t.Errorf("Expected fallback message, got %q", s.Message)
		}
		if s.Status.Kind != KindError || !s.Status.Contains("dial tcp: refused") {
			t.Errorf("Expected error status with description, got %q", s.Status)
		}
	})
}

func TestAccountsChanged(t *testing.T) {
	tests := []struct {
		name       string
		sequence   [][]string
		wantAddr   string
		wantStatus Status
	}{
		{"single non-empty", [][]string{{"0xA", "0xB"}}, "0xA", WritePrompt},
		{"empty", [][]string{{}}, "", ConnectPrompt},
		{"non-empty then empty", [][]string{{"0xA"}, {}}, "", ConnectPrompt},
		{"empty then non-empty", [][]string{{}, {"0xC"}}, "0xC", WritePrompt},
		{"latest wins", [][]string{{"0xA"}, {"0xB", "0xA"}}, "0xB", WritePrompt},
		{"nil list", [][]string{nil}, "", ConnectPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.WalletAddress = "0xSTALE"
			for _, accounts := range tt.sequence {
				s.AccountsChanged(accounts)
			}
			if s.WalletAddress != tt.wantAddr {
				t.Errorf("Expected wallet %q, got %q", tt.wantAddr, s.WalletAddress)
			}
			if s.Status != tt.wantStatus {
				t.Errorf("Expected status %q, got %q", tt.wantStatus, s.Status)
			}
		})
	}
}

func TestUpdated(t *testing.T) {
	t.Run("error leaves message and input alone", func(t *testing.T) {
		s := New()
		s.Message = "old"
		s.NewMessage = "typing"
		s.Updated(Update{Err: errors.New("subscription dropped")})

		if s.Message != "old" || s.NewMessage != "typing" {
			t.Errorf("Expected message/input unchanged, got %q/%q", s.Message, s.NewMessage)
		}
		if !s.Status.Contains("subscription dropped") {
			t.Errorf("Expected status to contain error, got %q", s.Status)
		}
		if s.Status.Text[:len(ErrorMarker)] != ErrorMarker {
			t.Errorf("Expected error marker prefix, got %q", s.Status.Text)
		}
	})

	t.Run("success from any account", func(t *testing.T) {
		s := New()
		s.WalletAddress = "0xME"
		s.NewMessage = "mine, not sent yet"
		s.Updated(Update{OldMessage: "old", NewMessage: "someone else's"})

		if s.Message != "someone else's" {
			t.Errorf("Expected message to follow the event, got %q", s.Message)
		}
		if s.NewMessage != "" {
			t.Errorf("Expected input cleared, got %q", s.NewMessage)
		}
		if s.Status != UpdatedStatus {
			t.Errorf("Expected updated status, got %q", s.Status)
		}
	})
}

func TestWalletAndActions(t *testing.T) {
	t.Run("wallet loaded", func(t *testing.T) {
		s := New()
		s.WalletLoaded(Result{Address: "0xABC", Status: Status{Text: "ok"}})
		if s.WalletAddress != "0xABC" || s.Status.Text != "ok" {
			t.Errorf("Unexpected state %+v", s)
		}
	})

	t.Run("provider missing", func(t *testing.T) {
		s := New()
		s.WalletLoaded(Result{Status: InstallPrompt})
		s.ProviderMissing()
		if s.WalletAddress != "" || s.Status != InstallPrompt {
			t.Errorf("Expected install prompt and no wallet, got %+v", s)
		}
	})

	t.Run("connected mirrors collaborator", func(t *testing.T) {
		s := New()
		s.Connected(Fail(errors.New("could not decrypt key with given password")))
		if s.WalletAddress != "" || s.Status.Kind != KindError {
			t.Errorf("Expected failed connect to clear wallet, got %+v", s)
		}
		s.Connected(Result{Address: "0xABC", Status: WritePrompt})
		if s.WalletAddress != "0xABC" || s.Status != WritePrompt {
			t.Errorf("Expected connected wallet, got %+v", s)
		}
	})

	t.Run("submitted does not touch message", func(t *testing.T) {
		s := New()
		s.Message = "current"
		s.NewMessage = "hello"
		s.Submitted(Result{TxHash: "0x01", Status: Submitted("https://example/tx/0x01")})
		if s.Message != "current" || s.NewMessage != "hello" {
			t.Errorf("Expected no optimistic apply, got %q/%q", s.Message, s.NewMessage)
		}
		if s.Status.Link != "https://example/tx/0x01" {
			t.Errorf("Expected explorer link in status, got %q", s.Status.Link)
		}
	})
}

func TestConnectLabel(t *testing.T) {
	s := New()
	if got := s.ConnectLabel(); got != "Connect Wallet" {
		t.Errorf("Expected Connect Wallet, got %q", got)
	}

	s.WalletAddress = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	want := "Connected: 0xd8dA...6045"
	if got := s.ConnectLabel(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestTruncateAddress(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0xABC", "0xABC..."},
		{"0x1234567890", "0x1234..."},
		{"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", "0xd8dA...6045"},
	}
	for _, tt := range tests {
		if got := TruncateAddress(tt.in); got != tt.want {
			t.Errorf("TruncateAddress(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSubscriptionsClose(t *testing.T) {
	var subs Subscriptions
	var feed event.Feed

	ch := make(chan []string, 1)
	sub := subs.Track(feed.Subscribe(ch))
	if sub == nil {
		t.Fatal("Expected tracked subscription")
	}
	if subs.Count() != 1 {
		t.Fatalf("Expected 1 tracked subscription, got %d", subs.Count())
	}

	subs.Close()

	if n := feed.Send([]string{"0xA"}); n != 0 {
		t.Errorf("Expected no subscribers after Close, sent to %d", n)
	}
	if _, ok := <-sub.Err(); ok {
		t.Error("Expected Err channel closed after Close")
	}

	late := feed.Subscribe(make(chan []string))
	if subs.Track(late) != nil {
		t.Error("Expected Track after Close to return nil")
	}
	if n := feed.Send([]string{"0xB"}); n != 0 {
		t.Errorf("Expected late subscription to be released, sent to %d", n)
	}
}
