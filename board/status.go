package board

import "strings"

// Kind classifies a status line for rendering
type Kind int

const (
	KindInfo Kind = iota
	KindHint
	KindSuccess
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindHint:
		return "hint"
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Status is the human-readable line shown under the message card.
// Link is optional and rendered as a terminal hyperlink.
type Status struct {
	Kind Kind
	Text string
	Link string
}

// IsZero reports whether the status carries nothing to show
func (s Status) IsZero() bool {
	return s.Text == "" && s.Link == ""
}

// String flattens the status for logs and tests
func (s Status) String() string {
	if s.Link == "" {
		return s.Text
	}
	return s.Text + " (" + s.Link + ")"
}

// Contains reports whether the status text contains sub
func (s Status) Contains(sub string) bool {
	return strings.Contains(s.Text, sub)
}

// Markers prefixed to status text
const (
	ErrorMarker   = "😥 "
	SuccessMarker = "🎉 "
)

// InstallURL points users without a keystore at the geth account docs
const InstallURL = "https://geth.ethereum.org/docs/fundamentals/account-management"

var (
	WritePrompt = Status{Kind: KindHint, Text: "👆🏽 Write a message in the text-field above."}

	ConnectPrompt = Status{Kind: KindHint, Text: "🦊 Connect your wallet using the button at the top."}

	InstallPrompt = Status{
		Kind: KindHint,
		Text: "🦊 You must set up an Ethereum keystore wallet to use this app.",
		Link: InstallURL,
	}

	UpdatedStatus = Status{Kind: KindSuccess, Text: SuccessMarker + "Your message has been updated!"}

	NoWalletStatus = Status{Kind: KindHint, Text: "💡 Connect your wallet to update the message on the blockchain."}

	EmptyMessageStatus = Status{Kind: KindError, Text: "❌ Your message cannot be an empty string."}
)

// Failed builds an error status from err
func Failed(err error) Status {
	if err == nil {
		return Status{Kind: KindError, Text: ErrorMarker + "unknown error"}
	}
	return Status{Kind: KindError, Text: ErrorMarker + err.Error()}
}

// Submitted is shown once a transaction has been handed to the network.
// link may be empty when no explorer is configured.
func Submitted(link string) Status {
	text := "✅ Transaction sent. View its status on the block explorer!\n" +
		"ℹ️ Once the transaction is verified by the network, the message will be updated automatically."
	if link == "" {
		text = "✅ Transaction sent.\n" +
			"ℹ️ Once the transaction is verified by the network, the message will be updated automatically."
	}
	return Status{Kind: KindSuccess, Text: text, Link: link}
}
