package coreemail

import (
	"context"
	"fmt"

	"github.com/mailforge/designer/pkg/render"
)

// CoreEmail is the editor-facing view of one override, with the stored
// legacy syntax normalized to mustache and a plain-text body derived from the
// message HTML.
type CoreEmail struct {
	Kind     Kind           `json:"coreEmailType"`
	From     any            `json:"from,omitempty"`
	Message  string         `json:"message,omitempty"`
	Subject  string         `json:"subject"`
	BodyHTML string         `json:"bodyHtml"`
	BodyText string         `json:"bodyText"`
	Design   map[string]any `json:"design,omitempty"`
}

// SaveInput carries the editable fields of an override. Subject and Message
// arrive in mustache syntax and are converted back to the legacy delimiters
// before hitting the store.
type SaveInput struct {
	Subject string         `json:"subject"`
	Message string         `json:"message"`
	Design  map[string]any `json:"design"`
}

// Service reads and writes the two core email overrides through the external
// settings store.
type Service struct {
	store SettingsStore
}

// NewService creates a core email service over the given settings store.
func NewService(store SettingsStore) *Service {
	return &Service{store: store}
}

// Get returns the override for the given kind. A kind that was never saved
// yields an empty override, not an error.
func (s *Service) Get(ctx context.Context, kind Kind) (*CoreEmail, error) {
	storeKey, ok := storeKeys[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	settings, err := s.store.Get(ctx, settingsKey)
	if err != nil {
		return nil, err
	}
	entry := settings[storeKey]

	out := &CoreEmail{
		Kind:    kind,
		From:    entry.Options.From,
		Message: entry.Options.Message,
		Subject: render.NormalizeDelimiters(entry.Options.Object),
		Design:  entry.Design,
	}
	out.BodyHTML = render.NormalizeDelimiters(entry.Options.Message)
	if out.BodyHTML != "" {
		text, err := render.PlainText(out.BodyHTML)
		if err != nil {
			return nil, fmt.Errorf("derive text body for %s: %w", kind, err)
		}
		out.BodyText = text
	}
	return out, nil
}

// Save writes the override for the given kind, converting the subject and
// message back to the legacy delimiter syntax the store keeps on disk.
// Fields outside the editable set (from, response address) are preserved.
func (s *Service) Save(ctx context.Context, kind Kind, in SaveInput) error {
	storeKey, ok := storeKeys[kind]
	if !ok {
		return ErrUnknownKind
	}

	settings, err := s.store.Get(ctx, settingsKey)
	if err != nil {
		return err
	}

	entry := settings[storeKey]
	entry.Options.Message = render.DenormalizeDelimiters(in.Message)
	entry.Options.Object = render.DenormalizeDelimiters(in.Subject)
	entry.Design = in.Design
	settings[storeKey] = entry

	return s.store.Set(ctx, settingsKey, settings)
}
