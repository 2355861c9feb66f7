package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
)

// Client wraps an Ethereum RPC client
type Client struct {
	*ethclient.Client
	URL string
}

// ConnectResult holds the result of an RPC connection attempt
type ConnectResult struct {
	Client  *Client
	Network Network
	Error   error
}

// Network describes the chain behind an endpoint
type Network struct {
	ChainID *big.Int
	Head    uint64
}

// Name returns a human name for well-known chains
func (n Network) Name() string {
	if n.ChainID == nil {
		return "unknown"
	}
	return ChainName(n.ChainID.Uint64())
}

// String renders the network for the header, e.g. "Sepolia (11155111) #123"
func (n Network) String() string {
	if n.ChainID == nil {
		return "offline"
	}
	return fmt.Sprintf("%s (%s) #%d", n.Name(), n.ChainID, n.Head)
}

var chainNames = map[uint64]string{
	1:        "Mainnet",
	10:       "Optimism",
	137:      "Polygon",
	1337:     "Dev",
	8453:     "Base",
	17000:    "Holesky",
	31337:    "Anvil",
	42161:    "Arbitrum One",
	11155111: "Sepolia",
}

// ChainName maps a chain ID to a display name
func ChainName(id uint64) string {
	if name, ok := chainNames[id]; ok {
		return name
	}
	return fmt.Sprintf("chain %d", id)
}

// Connect attempts to connect to an Ethereum RPC endpoint
func Connect(url string) ConnectResult {
	return ConnectWithTimeout(url, 8*time.Second)
}

// ConnectWithTimeout attempts to connect with a custom timeout. The endpoint
// is probed for its chain ID and head so a dead URL fails here rather than
// on the first contract call.
func ConnectWithTimeout(url string, timeout time.Duration) ConnectResult {
	if url == "" {
		return ConnectResult{Error: fmt.Errorf("no RPC URL configured (set ETH_RPC_URL or --rpc)")}
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return ConnectResult{Client: nil, Error: err}
	}

	c := &Client{Client: client, URL: url}
	net, err := c.Network(ctx)
	if err != nil {
		client.Close()
		return ConnectResult{Error: fmt.Errorf("probe %s: %w", url, err)}
	}

	return ConnectResult{
		Client:  c,
		Network: net,
		Error:   nil,
	}
}

// Network fetches the chain ID and current head
func (c *Client) Network(ctx context.Context) (Network, error) {
	id, err := c.ChainID(ctx)
	if err != nil {
		return Network{}, err
	}
	head, err := c.BlockNumber(ctx)
	if err != nil {
		return Network{}, err
	}
	return Network{ChainID: id, Head: head}, nil
}
