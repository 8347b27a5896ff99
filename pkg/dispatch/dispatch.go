package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mailforge/designer/pkg/designer"
	"github.com/mailforge/designer/pkg/email"
	"github.com/mailforge/designer/pkg/render"
)

// SendOptions are the transport options passed through to the mail sender
// alongside the compiled template.
type SendOptions struct {
	To          []string           `json:"to"`
	From        string             `json:"from,omitempty"`
	CC          []string           `json:"cc,omitempty"`
	BCC         []string           `json:"bcc,omitempty"`
	ReplyTo     string             `json:"replyTo,omitempty"`
	Headers     map[string]any     `json:"headers,omitempty"`
	Attachments []email.Attachment `json:"attachments,omitempty"`
}

// TemplateRef selects a stored template for sending. Subject, when set,
// overrides the stored subject.
type TemplateRef struct {
	ReferenceID int    `json:"templateReferenceId"`
	Subject     string `json:"subject,omitempty"`
}

// TestContent is caller-supplied content for an ad-hoc test send that
// bypasses template storage.
type TestContent struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

// ComposedTemplate is the compile-only result of Compose.
type ComposedTemplate struct {
	HTML string `json:"composedHtml"`
	Text string `json:"composedText"`
}

// Dispatcher sends templated emails. All collaborators are injected.
type Dispatcher struct {
	templates designer.TemplateStore
	sender    email.Sender
	log       *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for non-fatal send-path diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(d *Dispatcher) {
		if log != nil {
			d.log = log
		}
	}
}

// New creates a dispatcher over the given template store and mail sender.
// A nil sender is allowed; it simply reports the provider as unconfigured.
func New(templates designer.TemplateStore, sender email.Sender, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		templates: templates,
		sender:    sender,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SendTemplatedEmail compiles the template selected by ref against data and
// forwards it to the mail transport with opts merged in. A missing template
// is logged and swallowed so the caller's own operation is not blocked by a
// dangling reference id.
func (d *Dispatcher) SendTemplatedEmail(ctx context.Context, opts SendOptions, ref TemplateRef, data map[string]any) error {
	if err := validateReferenceID(ref.ReferenceID); err != nil {
		return err
	}
	if err := validateAddresses(opts); err != nil {
		return err
	}

	tpl, err := d.templates.GetByReferenceID(ctx, ref.ReferenceID)
	if err != nil {
		if errors.Is(err, designer.ErrTemplateNotFound) {
			d.log.ErrorContext(ctx, "no email template found for reference id",
				slog.Int("template_reference_id", ref.ReferenceID),
			)
			return nil
		}
		return err
	}

	subject := tpl.Subject
	if ref.Subject != "" {
		subject = ref.Subject
	}

	out, err := render.Compile(subject, tpl.BodyHTML, tpl.BodyText, data)
	if err != nil {
		return err
	}

	headers, err := render.RenderHeaders(opts.Headers, data)
	if err != nil {
		return fmt.Errorf("render headers: %w", err)
	}

	return d.sender.Send(ctx, email.Message{
		To:          opts.To,
		From:        opts.From,
		CC:          opts.CC,
		BCC:         opts.BCC,
		ReplyTo:     opts.ReplyTo,
		Subject:     out.Subject,
		HTML:        out.HTML,
		Text:        out.Text,
		Headers:     headers,
		Attachments: opts.Attachments,
	})
}

// Compose compiles the template selected by refID against data without
// sending. Unlike the send path, a missing template is an error here.
func (d *Dispatcher) Compose(ctx context.Context, refID int, data map[string]any) (*ComposedTemplate, error) {
	if err := validateReferenceID(refID); err != nil {
		return nil, err
	}

	tpl, err := d.templates.GetByReferenceID(ctx, refID)
	if err != nil {
		return nil, err
	}

	out, err := render.Compile(tpl.Subject, tpl.BodyHTML, tpl.BodyText, data)
	if err != nil {
		return nil, err
	}
	return &ComposedTemplate{HTML: out.HTML, Text: out.Text}, nil
}

// SendTest compiles caller-supplied content and sends it to a single
// recipient, bypassing template storage. Fails fast with
// ErrProviderNotConfigured when no real provider is wired.
func (d *Dispatcher) SendTest(ctx context.Context, to string, content TestContent, data map[string]any) error {
	if !d.IsProviderConfigured() {
		return ErrProviderNotConfigured
	}
	if !email.IsValidAddress(to) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, to)
	}

	out, err := render.Compile(content.Subject, content.HTML, content.Text, data)
	if err != nil {
		return err
	}

	return d.sender.Send(ctx, email.Message{
		To:      []string{to},
		Subject: out.Subject,
		HTML:    out.HTML,
		Text:    out.Text,
	})
}

// IsProviderConfigured reports whether a real mail provider is wired: a
// sender must be present and must not be the local sendmail-style fallback.
// Side-effect-free; it gates the test-send UI path.
func (d *Dispatcher) IsProviderConfigured() bool {
	if d.sender == nil {
		return false
	}
	name := d.sender.ProviderName()
	return name != "" && name != email.ProviderSendmail
}

func validateReferenceID(refID int) error {
	if refID < 1 {
		return designer.ErrInvalidReferenceID
	}
	return nil
}

// validateAddresses checks every address in to/from/cc/bcc/replyTo eagerly,
// before any compilation or store lookup. Headers and attachments are not
// address-bearing and are skipped.
func validateAddresses(opts SendOptions) error {
	for _, list := range [][]string{opts.To, opts.CC, opts.BCC} {
		for _, addr := range list {
			if !email.IsValidAddress(addr) {
				return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
			}
		}
	}
	if opts.From != "" && !email.IsValidAddress(opts.From) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, opts.From)
	}
	if opts.ReplyTo != "" && !email.IsValidAddress(opts.ReplyTo) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, opts.ReplyTo)
	}
	return nil
}
