package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender for local development. It saves messages as
// HTML and JSON files to a directory instead of delivering them, and reports
// the sendmail provider name so the configured-provider check treats it as
// the local fallback.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves messages to disk. The
// directory is created on first send if it does not exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

func (d *DevSender) ProviderName() string {
	return ProviderSendmail
}

// messageMetadata is the message envelope saved to JSON next to the HTML
// body.
type messageMetadata struct {
	Timestamp string         `json:"timestamp"`
	To        []string       `json:"to"`
	CC        []string       `json:"cc,omitempty"`
	BCC       []string       `json:"bcc,omitempty"`
	Subject   string         `json:"subject"`
	Text      string         `json:"text,omitempty"`
	Headers   map[string]any `json:"headers,omitempty"`
}

// Send saves the message body and envelope to the configured directory.
func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrFailedToSend, err)
	}

	now := time.Now()
	baseFilename := fmt.Sprintf("%s_%s", now.Format("2006_01_02_150405"), sanitizeFilename(msg.Subject))

	htmlPath := filepath.Join(d.dir, baseFilename+".html")
	if err := os.WriteFile(htmlPath, []byte(msg.HTML), 0644); err != nil {
		return fmt.Errorf("%w: failed to write HTML file: %v", ErrFailedToSend, err)
	}

	metadata := messageMetadata{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		CC:        msg.CC,
		BCC:       msg.BCC,
		Subject:   msg.Subject,
		Text:      msg.Text,
		Headers:   msg.Headers,
	}
	jsonData, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal metadata: %v", ErrFailedToSend, err)
	}

	jsonPath := filepath.Join(d.dir, baseFilename+".json")
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf("%w: failed to write JSON file: %v", ErrFailedToSend, err)
	}

	return nil
}

// sanitizeRegex matches characters that are not alphanumeric, dash,
// underscore, or dot.
var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a subject line into a safe filename.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}
