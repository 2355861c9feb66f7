package board

import (
	"strings"
	"testing"

	"message-board-tui/board"
)

func TestRenderAreas(t *testing.T) {
	state := board.New()
	state.WalletAddress = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"
	state.Status = board.Submitted("https://sepolia.etherscan.io/tx/0x1")

	r := Render(Props{State: state, InputView: "> hello", Focus: FocusInput, Width: 60})

	lines := strings.Split(r.Content, "\n")
	actions := map[string]bool{}
	for _, a := range r.Areas {
		actions[a.Action] = true
		if a.Y < 0 || a.Y >= len(lines) {
			t.Errorf("Area %s at row %d is outside %d rendered lines", a.Action, a.Y, len(lines))
		}
	}
	for _, want := range []string{ActionConnect, ActionUpdate, ActionLink} {
		if !actions[want] {
			t.Errorf("Expected a %s area", want)
		}
	}

	if !strings.Contains(lines[r.Areas[0].Y], "Connected: 0xd8dA...6045") {
		t.Errorf("Expected connect label on the connect row, got %q", lines[r.Areas[0].Y])
	}
	if !strings.Contains(r.Content, board.DefaultMessage) {
		t.Error("Expected current message to be rendered")
	}
}

func TestRenderNoLinkArea(t *testing.T) {
	state := board.New()
	state.Status = board.ConnectPrompt

	r := Render(Props{State: state, Width: 40})
	for _, a := range r.Areas {
		if a.Action == ActionLink {
			t.Error("Did not expect a link area without a link")
		}
	}
	if !strings.Contains(r.Content, "Connect Wallet") {
		t.Error("Expected the disconnected connect label")
	}
}

func TestRenderStatusLink(t *testing.T) {
	out := RenderStatus(board.InstallPrompt)
	if !strings.Contains(out, "\x1b]8;;"+board.InstallURL) {
		t.Error("Expected an OSC 8 hyperlink to the install docs")
	}
}
