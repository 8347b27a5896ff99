package designer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Service wires the template store and the versioning engine into the
// operations exposed by the HTTP surface.
type Service struct {
	templates  TemplateStore
	versioning *Versioning
	log        *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the logger for the Service and its versioning
// engine.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a template service over the given stores.
func NewService(templates TemplateStore, versions VersionStore, opts ...ServiceOption) *Service {
	s := &Service{
		templates: templates,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.versioning = NewVersioning(templates, versions, s.log)
	return s
}

// Versioning exposes the version history engine.
func (s *Service) Versioning() *Versioning {
	return s.versioning
}

// List returns all templates.
func (s *Service) List(ctx context.Context) ([]Template, error) {
	return s.templates.List(ctx)
}

// Get fetches a template by its storage id.
func (s *Service) Get(ctx context.Context, id string) (*Template, error) {
	return s.templates.Get(ctx, id)
}

// GetByReferenceID fetches a template by its numeric reference id.
func (s *Service) GetByReferenceID(ctx context.Context, refID int) (*Template, error) {
	if refID < 1 {
		return nil, ErrInvalidReferenceID
	}
	return s.templates.GetByReferenceID(ctx, refID)
}

// Save creates or updates a template and change-tracks the mutation. Pass
// NewTemplateID to create. The reference-id pre-check here is a fast path
// for a friendly error; the store-level constraint remains the final
// arbiter under concurrency.
func (s *Service) Save(ctx context.Context, templateID string, in SaveTemplateInput, actor string) (*Template, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if in.Import {
		templateID = s.resolveImportTarget(ctx, templateID, in)
		if templateID == "" {
			return nil, ErrReferenceIDTaken
		}
	}

	if templateID == NewTemplateID {
		return s.create(ctx, in, actor)
	}
	return s.update(ctx, templateID, in, actor)
}

// resolveImportTarget maps an imported design onto an existing template when
// its reference id is already in use. Returns the template id to save into,
// or "" when the import must be rejected because an explicit create collides
// with an existing reference id.
func (s *Service) resolveImportTarget(ctx context.Context, templateID string, in SaveTemplateInput) string {
	if in.ReferenceID == nil {
		return NewTemplateID
	}
	existing, err := s.templates.GetByReferenceID(ctx, *in.ReferenceID)
	if err != nil {
		return NewTemplateID
	}
	if templateID == NewTemplateID {
		return ""
	}
	return existing.ID
}

func (s *Service) create(ctx context.Context, in SaveTemplateInput, actor string) (*Template, error) {
	if in.ReferenceID != nil {
		if _, err := s.templates.GetByReferenceID(ctx, *in.ReferenceID); err == nil {
			return nil, ErrReferenceIDTaken
		} else if !errors.Is(err, ErrTemplateNotFound) {
			return nil, err
		}
	}

	created, err := s.templates.Create(ctx, in.toTemplate())
	if err != nil {
		return nil, err
	}

	if _, err := s.versioning.MaybeSnapshot(ctx, &Template{}, created, actor); err != nil {
		return nil, fmt.Errorf("version initial state of template %s: %w", created.ID, err)
	}
	return created, nil
}

func (s *Service) update(ctx context.Context, templateID string, in SaveTemplateInput, actor string) (*Template, error) {
	old, err := s.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	if in.ReferenceID != nil {
		if _, err := s.templates.GetByReferenceIDExcluding(ctx, *in.ReferenceID, templateID); err == nil {
			return nil, ErrReferenceIDTaken
		} else if !errors.Is(err, ErrTemplateNotFound) {
			return nil, err
		}
	}

	fresh, err := s.templates.Update(ctx, templateID, in.toTemplate())
	if err != nil {
		return nil, err
	}

	if _, err := s.versioning.MaybeSnapshot(ctx, old, fresh, actor); err != nil {
		return nil, fmt.Errorf("version template %s: %w", templateID, err)
	}
	return fresh, nil
}

// Duplicate clones an existing template under a new name. The reference id is
// cleared; it must stay unique across templates.
func (s *Service) Duplicate(ctx context.Context, sourceID, actor string) (*Template, error) {
	source, err := s.templates.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	return s.Save(ctx, NewTemplateID, SaveTemplateInput{
		Design:   source.Design,
		Name:     source.Name + " copy",
		Subject:  source.Subject,
		BodyHTML: source.BodyHTML,
		BodyText: source.BodyText,
		Tags:     source.Tags,
	}, actor)
}

// Delete removes a template and cascades to its version history, so no
// version rows are left referencing a gone template.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.versioning.versions.DeleteByTemplate(ctx, id); err != nil {
		return fmt.Errorf("cascade delete versions of template %s: %w", id, err)
	}
	return nil
}
