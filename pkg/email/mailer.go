package email

import (
	"context"
	"fmt"
	"strings"
)

// Provider names reported by the bundled senders. ProviderSendmail marks the
// local development fallback, which never counts as a configured provider.
const (
	ProviderPostmark = "postmark"
	ProviderSendmail = "sendmail"
)

// Sender delivers fully rendered email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	// ProviderName identifies the underlying provider, e.g. "postmark".
	ProviderName() string
}

// Attachment is a file attached to an outgoing message.
type Attachment struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     []byte `json:"content"`
}

// Message is a fully rendered email ready for transport. Header values may be
// strings or string slices; anything else is stringified by the sender.
type Message struct {
	To          []string       `json:"to"`
	From        string         `json:"from,omitempty"`
	CC          []string       `json:"cc,omitempty"`
	BCC         []string       `json:"bcc,omitempty"`
	ReplyTo     string         `json:"replyTo,omitempty"`
	Subject     string         `json:"subject"`
	HTML        string         `json:"html,omitempty"`
	Text        string         `json:"text,omitempty"`
	Headers     map[string]any `json:"headers,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
}

// Validate checks the message against transport requirements: at least one
// valid recipient, valid optional addresses, and a non-empty body.
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("%w: at least one recipient is required", ErrInvalidMessage)
	}
	for _, addr := range m.To {
		if !IsValidAddress(addr) {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
	}
	for _, addr := range append(append([]string{}, m.CC...), m.BCC...) {
		if !IsValidAddress(addr) {
			return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
		}
	}
	if m.From != "" && !IsValidAddress(m.From) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, m.From)
	}
	if m.ReplyTo != "" && !IsValidAddress(m.ReplyTo) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, m.ReplyTo)
	}
	if strings.TrimSpace(m.HTML) == "" && strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: an HTML or text body is required", ErrInvalidMessage)
	}
	return nil
}
