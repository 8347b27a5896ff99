// Package email provides a provider-agnostic transport for sending fully
// rendered emails, with a Postmark implementation for production and a
// DevSender that writes messages to disk for local development.
//
// The package is built around the Sender interface so providers can be
// swapped without touching dispatch code. Senders validate the message
// envelope before delivery and report failures through sentinel errors:
//
//	if errors.Is(err, email.ErrInvalidAddress) { ... }
//
// The DevSender identifies itself with the "sendmail" provider name, the
// historical marker for the local no-op fallback; the dispatch layer uses
// that name to report the provider as not configured.
//
// Usage:
//
//	sender, err := email.NewPostmarkSender(email.Config{
//	    PostmarkServerToken:  "...",
//	    PostmarkAccountToken: "...",
//	    SenderEmail:          "noreply@example.com",
//	})
//	if err != nil {
//	    return err
//	}
//	err = sender.Send(ctx, email.Message{
//	    To:      []string{"user@example.com"},
//	    Subject: "Welcome",
//	    HTML:    htmlBody,
//	    Text:    textBody,
//	})
package email
