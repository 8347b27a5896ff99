package designer

import "context"

// TemplateStore is the persistence contract for template records. Lookups
// that match nothing return ErrTemplateNotFound. Implementations must enforce
// reference-id uniqueness on create and update and report violations as
// ErrReferenceIDTaken; the service-level pre-check is a fast path only, the
// store is the final arbiter.
type TemplateStore interface {
	Create(ctx context.Context, tpl Template) (*Template, error)
	Get(ctx context.Context, id string) (*Template, error)
	GetByReferenceID(ctx context.Context, refID int) (*Template, error)
	// GetByReferenceIDExcluding looks up a template holding refID while
	// excluding the given record id, for uniqueness checks during update.
	GetByReferenceIDExcluding(ctx context.Context, refID int, excludeID string) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	// Update overwrites the mutable fields of the record and returns the
	// post-update state as persisted.
	Update(ctx context.Context, id string, tpl Template) (*Template, error)
	Delete(ctx context.Context, id string) error
}

// VersionStore is the persistence contract for immutable version records,
// scoped to a template. ListByTemplate orders by creation time descending.
type VersionStore interface {
	Create(ctx context.Context, v Version) (*Version, error)
	Get(ctx context.Context, id string) (*Version, error)
	ListByTemplate(ctx context.Context, templateID string) ([]Version, error)
	CountByTemplate(ctx context.Context, templateID string) (int, error)
	Delete(ctx context.Context, id string) error
	// DeleteByTemplate removes all versions of a template; used as the
	// cascade when a template is deleted.
	DeleteByTemplate(ctx context.Context, templateID string) error
}
