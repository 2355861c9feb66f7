package main

import (
	"context"
	"errors"
	"strings"

	"message-board-tui/board"
	"message-board-tui/config"
	"message-board-tui/rpc"
	"message-board-tui/styles"
	boardview "message-board-tui/views/board"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/ethereum/go-ethereum/event"
)

// -------------------- MODEL --------------------

// binder builds the contract binding once an RPC client is available
type binder func(client *rpc.Client) (board.ContractBinding, error)

// model represents the application state following The Elm Architecture
type model struct {
	w, h int

	activePage config.Page

	cfg        config.Config
	configPath string

	// mounted lifetime; cancelled by Close
	ctx    context.Context
	cancel context.CancelFunc

	// board state and its collaborators
	state    board.State
	wallet   board.WalletConnector
	contract board.ContractBinding
	bind     binder

	// connection state
	rpcURL        string
	ethClient     *rpc.Client
	network       rpc.Network
	rpcConnected  bool
	rpcConnecting bool
	dial          int // last connectRPC attempt; older results are closed

	// gen increments on every (re)connect; contract messages from an older
	// connection are dropped
	gen           int
	subs          board.Subscriptions
	updatesSub    event.Subscription
	updatesCh     chan board.Update
	accountsSub   event.Subscription
	accountsCh    chan []string
	walletStarted bool

	// board widgets
	input      textinput.Model
	focus      int
	spin       spinner.Model
	submitting bool
	connecting bool
	showQR     bool
	copiedMsg  string

	// accounts page
	balance        string
	balanceLoading bool

	// settings + forms
	selectedRPCIdx int
	form           *huh.Form
	formKind       string // "passphrase", "rpc"

	// clickable areas for mouse support
	clickableAreas []config.ClickableArea

	// logger panel
	logEnabled  bool
	logger      *log.Logger
	logBuffer   *strings.Builder
	logViewport viewport.Model
	logReady    bool
	logSpinner  spinner.Model
}

// options wires a model. contract, when set, is used as is and no RPC
// connection is made.
type options struct {
	cfg        config.Config
	configPath string
	wallet     board.WalletConnector
	contract   board.ContractBinding
	bind       binder
}

// offlineContract stands in for the binding when none could be built
type offlineContract struct {
	err error
}

func (c offlineContract) LoadMessage(context.Context) (string, error) {
	return "", c.err
}

func (c offlineContract) UpdateMessage(context.Context, string, string) board.Result {
	return board.Fail(c.err)
}

func (c offlineContract) SubscribeUpdates(context.Context, chan<- board.Update) (event.Subscription, error) {
	return nil, c.err
}

var errNotConnected = errors.New("not connected to the network")

// -------------------- INIT --------------------

// newModel creates and initializes a new model
func newModel(opts options) model {
	in := textinput.New()
	in.Placeholder = "Update the message in your smart contract."
	in.Prompt = "> "
	in.PromptStyle = lipgloss.NewStyle().Foreground(styles.CAccent)
	in.TextStyle = lipgloss.NewStyle().Foreground(styles.CText)
	in.Cursor.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)
	in.Width = 48

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	vp := viewport.New(0, 5)
	vp.Style = lipgloss.NewStyle().
		Foreground(styles.CText).
		Background(styles.CPanel)

	logSpin := spinner.New()
	logSpin.Spinner = spinner.Dot
	logSpin.Style = lipgloss.NewStyle().Foreground(styles.CAccent2)

	ctx, cancel := context.WithCancel(context.Background())

	m := model{
		activePage:  config.PageBoard,
		cfg:         opts.cfg,
		configPath:  opts.configPath,
		ctx:         ctx,
		cancel:      cancel,
		state:       board.New(),
		wallet:      opts.wallet,
		contract:    opts.contract,
		bind:        opts.bind,
		input:       in,
		focus:       boardview.FocusConnect,
		spin:        sp,
		logEnabled:  opts.cfg.Logger,
		logViewport: vp,
		logBuffer:   &strings.Builder{},
		logSpinner:  logSpin,
	}
	if r, ok := opts.cfg.ActiveRPC(); ok {
		m.rpcURL = r.URL
	}
	return m
}

// Init implements tea.Model interface and returns initial commands
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spin.Tick}
	if m.logEnabled {
		cmds = append(cmds, initLogViewport(), m.logSpinner.Tick)
	}

	switch {
	case m.contract != nil:
		cmds = append(cmds, m.mount())
	case m.rpcURL != "":
		m.rpcConnecting = true
		m.dial++
		cmds = append(cmds, connectRPC(m.rpcURL, m.dial))
	default:
		m.contract = offlineContract{err: errNotConnected}
		cmds = append(cmds, m.mount())
	}
	return tea.Batch(cmds...)
}

// mount starts the contract half of the mount sequence on a new generation.
// The wallet half follows once the update stream is settled.
func (m *model) mount() tea.Cmd {
	m.gen++
	return loadMessage(m.ctx, m.contract, m.gen, false)
}

// Close releases every subscription and the RPC client
func (m *model) Close() {
	m.cancel()
	m.subs.Close()
	if m.ethClient != nil {
		m.ethClient.Close()
		m.ethClient = nil
	}
}

// keystore is implemented by wallets backed by a key directory
type keystore interface {
	Dir() string
	Accounts() []string
}

// saveConfig persists the config when the model was loaded from a file
func (m *model) saveConfig() {
	if m.configPath == "" {
		return
	}
	if err := config.Save(m.configPath, m.cfg); err != nil {
		m.addLog("error", "Failed to save config", "err", err)
	}
}
