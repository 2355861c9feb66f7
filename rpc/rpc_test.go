package rpc

import (
	"context"
	"math/big"
	"os"
	"testing"
	"time"
)

func TestConnect(t *testing.T) {
	// Get RPC URL from environment
	rpcURL := os.Getenv("ETH_RPC_URL")
	if rpcURL == "" {
		t.Skip("ETH_RPC_URL not set, skipping connection test")
	}

	t.Run("successful connection", func(t *testing.T) {
		result := Connect(rpcURL)

		if result.Error != nil {
			t.Fatalf("Failed to connect to RPC: %v", result.Error)
		}
		if result.Client == nil {
			t.Fatal("Client is nil despite no error")
		}
		defer result.Client.Close()

		if result.Client.URL != rpcURL {
			t.Errorf("Expected URL %s, got %s", rpcURL, result.Client.URL)
		}
		if result.Network.ChainID == nil {
			t.Fatal("Expected chain ID to be probed")
		}
		t.Logf("Connected to %s", result.Network)
	})

	t.Run("network refresh", func(t *testing.T) {
		result := ConnectWithTimeout(rpcURL, 10*time.Second)
		if result.Error != nil {
			t.Fatalf("Failed to connect with custom timeout: %v", result.Error)
		}
		defer result.Client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		net, err := result.Client.Network(ctx)
		if err != nil {
			t.Fatalf("Failed to refresh network: %v", err)
		}
		if net.Head < result.Network.Head {
			t.Errorf("Head went backwards: %d < %d", net.Head, result.Network.Head)
		}
	})
}

func TestConnectErrors(t *testing.T) {
	t.Run("empty URL", func(t *testing.T) {
		if result := Connect(""); result.Error == nil || result.Client != nil {
			t.Errorf("Expected error for empty URL, got %+v", result)
		}
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		result := ConnectWithTimeout("http://127.0.0.1:1", time.Second)
		if result.Error == nil {
			t.Error("Expected error for unreachable endpoint")
		}
	})
}

func TestNetwork(t *testing.T) {
	tests := []struct {
		name string
		net  Network
		want string
	}{
		{"offline", Network{}, "offline"},
		{"sepolia", Network{ChainID: big.NewInt(11155111), Head: 42}, "Sepolia (11155111) #42"},
		{"unknown chain", Network{ChainID: big.NewInt(999), Head: 1}, "chain 999 (999) #1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.net.String(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}
