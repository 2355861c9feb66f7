package main

import (
	"fmt"

	"message-board-tui/config"
	"message-board-tui/helpers"

	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Value: config.DefaultPath(),
		Usage: "path of the JSON config file",
	}
	rpcFlag = cli.StringFlag{
		Name:  "rpc",
		Usage: "RPC endpoint to use for this run instead of the configured active one",
	}
	contractFlag = cli.StringFlag{
		Name:  "contract",
		Usage: "address of the HelloWorld contract",
	}
	keystoreFlag = cli.StringFlag{
		Name:  "keystore",
		Usage: "keystore directory holding the wallet key",
	}
	explorerFlag = cli.StringFlag{
		Name:  "explorer",
		Usage: "block explorer base URL for transaction links",
	}
	pollFlag = cli.IntFlag{
		Name:  "poll",
		Usage: "seconds between log polls when the endpoint cannot push updates",
	}
	loggerFlag = cli.BoolFlag{
		Name:  "logger",
		Usage: "open the log panel on start",
	}
)

// applyFlags overrides file config with flags set on the command line.
// --rpc holds for this run only; the other values are written back the
// next time the config is saved.
func applyFlags(ctx *cli.Context, cfg *config.Config) error {
	if url := ctx.String(rpcFlag.Name); url != "" {
		if !helpers.IsValidRPCURL(url) {
			return fmt.Errorf("invalid --%s %q: want an http(s):// or ws(s):// URL", rpcFlag.Name, url)
		}
		cfg.OverrideRPC(url)
	}
	if v := ctx.String(contractFlag.Name); v != "" {
		if !helpers.IsValidEthAddress(v) {
			return fmt.Errorf("invalid --%s %q: want a 0x-prefixed 20-byte address", contractFlag.Name, v)
		}
		cfg.Contract = v
	}
	if v := ctx.String(keystoreFlag.Name); v != "" {
		cfg.Keystore = v
	}
	if v := ctx.String(explorerFlag.Name); v != "" {
		cfg.Explorer = v
	}
	if v := ctx.Int(pollFlag.Name); v > 0 {
		cfg.PollSeconds = v
	}
	if ctx.Bool(loggerFlag.Name) {
		cfg.Logger = true
	}
	return nil
}
