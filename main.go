package main

import (
	"fmt"
	"os"

	"message-board-tui/board"
	"message-board-tui/config"
	"message-board-tui/contract"
	"message-board-tui/rpc"
	"message-board-tui/wallet"

	tea "github.com/charmbracelet/bubbletea"
	cli "gopkg.in/urfave/cli.v1"
)

// -------------------- MAIN --------------------

func main() {
	app := cli.App{
		Name:  "message-board",
		Usage: "read and update the HelloWorld contract message from the terminal",
		Flags: []cli.Flag{
			configFlag,
			rpcFlag,
			contractFlag,
			keystoreFlag,
			explorerFlag,
			pollFlag,
			loggerFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "accounts",
				Usage:  "list the keys in the keystore",
				Flags:  []cli.Flag{configFlag, keystoreFlag},
				Action: accountsAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig(ctx *cli.Context) (config.Config, string, error) {
	path := ctx.String(configFlag.Name)
	cfg := config.LoadOrCreate(path)
	if err := applyFlags(ctx, &cfg); err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

func defaultAction(ctx *cli.Context) error {
	cfg, path, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	provider := wallet.Open(cfg.Keystore)
	defer provider.Close()

	m := newModel(options{
		cfg:        cfg,
		configPath: path,
		wallet:     provider,
		bind: func(client *rpc.Client) (board.ContractBinding, error) {
			ms, err := contract.NewMessenger(cfg.Contract, client, provider, cfg.Explorer)
			if err != nil {
				return nil, err
			}
			ms.SetPollInterval(cfg.PollInterval())
			return ms, nil
		},
	})
	defer m.Close()

	p := tea.NewProgram(&m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func accountsAction(ctx *cli.Context) error {
	cfg, _, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	provider := wallet.Open(cfg.Keystore)
	defer provider.Close()

	if !provider.Present() {
		return fmt.Errorf("no keystore at %q, see %s", cfg.Keystore, board.InstallURL)
	}
	accts := provider.Accounts()
	if len(accts) == 0 {
		return wallet.ErrNoAccounts
	}
	for i, a := range accts {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, a)
	}
	return nil
}
