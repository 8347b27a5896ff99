package email

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

type postmarkSender struct {
	client *postmark.Client
	config Config
}

// NewPostmarkSender creates a Postmark-backed sender. Both tokens and a valid
// sender address are required so misconfiguration fails at startup instead of
// at first send.
func NewPostmarkSender(cfg Config) (Sender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if cfg.PostmarkAccountToken == "" {
		return nil, fmt.Errorf("%w: PostmarkAccountToken is required", ErrInvalidConfig)
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("%w: SenderEmail is required", ErrInvalidConfig)
	}
	if !IsValidAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}

	return &postmarkSender{
		client: postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken),
		config: cfg,
	}, nil
}

// MustNewPostmarkSender creates a Postmark sender that panics on invalid
// config.
func MustNewPostmarkSender(cfg Config) Sender {
	sender, err := NewPostmarkSender(cfg)
	if err != nil {
		panic(err)
	}
	return sender
}

func (s *postmarkSender) ProviderName() string {
	return ProviderPostmark
}

// Send delivers the message through Postmark's transactional API.
func (s *postmarkSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := msg.From
	if from == "" {
		from = s.config.SenderEmail
	}

	out := postmark.Email{
		From:     from,
		To:       strings.Join(msg.To, ","),
		Cc:       strings.Join(msg.CC, ","),
		Bcc:      strings.Join(msg.BCC, ","),
		ReplyTo:  msg.ReplyTo,
		Subject:  msg.Subject,
		HTMLBody: msg.HTML,
		TextBody: msg.Text,
	}
	for name, value := range msg.Headers {
		out.Headers = append(out.Headers, postmark.Header{
			Name:  name,
			Value: headerValueString(value),
		})
	}
	for _, att := range msg.Attachments {
		out.Attachments = append(out.Attachments, postmark.Attachment{
			Name:        att.Filename,
			ContentType: att.ContentType,
			Content:     base64.StdEncoding.EncodeToString(att.Content),
		})
	}

	resp, err := s.client.SendEmail(ctx, out)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

func headerValueString(v any) string {
	switch h := v.(type) {
	case string:
		return h
	case []string:
		return strings.Join(h, ", ")
	default:
		return fmt.Sprint(v)
	}
}
