package designer

import (
	"context"
	"maps"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryTemplateStore is an in-memory TemplateStore. Suitable for development
// and testing. The uniqueness constraint on reference ids is enforced under
// the store mutex, making it the authoritative backstop the save fast-path
// relies on.
type MemoryTemplateStore struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewMemoryTemplateStore creates an empty in-memory template store.
func NewMemoryTemplateStore() *MemoryTemplateStore {
	return &MemoryTemplateStore{templates: make(map[string]Template)}
}

func (s *MemoryTemplateStore) Create(ctx context.Context, tpl Template) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tpl.ReferenceID != nil {
		for _, existing := range s.templates {
			if existing.ReferenceID != nil && *existing.ReferenceID == *tpl.ReferenceID {
				return nil, ErrReferenceIDTaken
			}
		}
	}

	if tpl.ID == "" {
		tpl.ID = uuid.New().String()
	}
	now := time.Now()
	tpl.CreatedAt = now
	tpl.UpdatedAt = now

	s.templates[tpl.ID] = cloneTemplate(tpl)
	out := cloneTemplate(tpl)
	return &out, nil
}

func (s *MemoryTemplateStore) Get(ctx context.Context, id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tpl, ok := s.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	out := cloneTemplate(tpl)
	return &out, nil
}

func (s *MemoryTemplateStore) GetByReferenceID(ctx context.Context, refID int) (*Template, error) {
	return s.GetByReferenceIDExcluding(ctx, refID, "")
}

func (s *MemoryTemplateStore) GetByReferenceIDExcluding(ctx context.Context, refID int, excludeID string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tpl := range s.templates {
		if tpl.ID == excludeID {
			continue
		}
		if tpl.ReferenceID != nil && *tpl.ReferenceID == refID {
			out := cloneTemplate(tpl)
			return &out, nil
		}
	}
	return nil, ErrTemplateNotFound
}

func (s *MemoryTemplateStore) List(ctx context.Context) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, 0, len(s.templates))
	for _, tpl := range s.templates {
		out = append(out, cloneTemplate(tpl))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryTemplateStore) Update(ctx context.Context, id string, tpl Template) (*Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.templates[id]
	if !ok {
		return nil, ErrTemplateNotFound
	}

	if tpl.ReferenceID != nil {
		for _, existing := range s.templates {
			if existing.ID == id {
				continue
			}
			if existing.ReferenceID != nil && *existing.ReferenceID == *tpl.ReferenceID {
				return nil, ErrReferenceIDTaken
			}
		}
	}

	current.ReferenceID = tpl.ReferenceID
	current.Design = tpl.Design
	current.Name = tpl.Name
	current.Subject = tpl.Subject
	current.BodyHTML = tpl.BodyHTML
	current.BodyText = tpl.BodyText
	current.Tags = tpl.Tags
	current.UpdatedAt = time.Now()

	s.templates[id] = cloneTemplate(current)
	out := cloneTemplate(current)
	return &out, nil
}

func (s *MemoryTemplateStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return ErrTemplateNotFound
	}
	delete(s.templates, id)
	return nil
}

// MemoryVersionStore is an in-memory VersionStore for development and
// testing.
type MemoryVersionStore struct {
	mu       sync.RWMutex
	versions map[string]Version
}

// NewMemoryVersionStore creates an empty in-memory version store.
func NewMemoryVersionStore() *MemoryVersionStore {
	return &MemoryVersionStore{versions: make(map[string]Version)}
}

func (s *MemoryVersionStore) Create(ctx context.Context, v Version) (*Version, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	s.versions[v.ID] = cloneVersion(v)
	out := cloneVersion(v)
	return &out, nil
}

func (s *MemoryVersionStore) Get(ctx context.Context, id string) (*Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.versions[id]
	if !ok {
		return nil, ErrVersionNotFound
	}
	out := cloneVersion(v)
	return &out, nil
}

func (s *MemoryVersionStore) ListByTemplate(ctx context.Context, templateID string) ([]Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Version
	for _, v := range s.versions {
		if v.TemplateID == templateID {
			out = append(out, cloneVersion(v))
		}
	}
	// Newest first; version number breaks ties between snapshots created
	// within the same clock tick.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].VersionNumber > out[j].VersionNumber
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryVersionStore) CountByTemplate(ctx context.Context, templateID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, v := range s.versions {
		if v.TemplateID == templateID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryVersionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.versions[id]; !ok {
		return ErrVersionNotFound
	}
	delete(s.versions, id)
	return nil
}

func (s *MemoryVersionStore) DeleteByTemplate(ctx context.Context, templateID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, v := range s.versions {
		if v.TemplateID == templateID {
			delete(s.versions, id)
		}
	}
	return nil
}

// cloneTemplate deep-copies a template so stored records cannot be mutated
// through returned pointers.
func cloneTemplate(t Template) Template {
	t.Design = maps.Clone(t.Design)
	t.Tags = slices.Clone(t.Tags)
	if t.ReferenceID != nil {
		refID := *t.ReferenceID
		t.ReferenceID = &refID
	}
	return t
}

func cloneVersion(v Version) Version {
	v.Design = maps.Clone(v.Design)
	v.Tags = slices.Clone(v.Tags)
	v.ChangesSummary.Changed = slices.Clone(v.ChangesSummary.Changed)
	return v
}
