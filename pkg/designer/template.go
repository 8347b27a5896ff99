package designer

import "time"

// SystemActor is recorded as changedBy when a change cannot be attributed to
// a user.
const SystemActor = "system"

// NewTemplateID is the sentinel template id used by the save operation to
// request creation instead of update.
const NewTemplateID = "new"

// Template is a stored email design. Subject and bodies may contain template
// placeholders in either the mustache or the legacy delimiter syntax; Design
// is the visual editor's document and is persisted and diffed but never
// interpreted here.
type Template struct {
	ID          string         `json:"id" bson:"_id,omitempty"`
	ReferenceID *int           `json:"templateReferenceId,omitempty" bson:"templateReferenceId,omitempty"`
	Design      map[string]any `json:"design,omitempty" bson:"design,omitempty"`
	Name        string         `json:"name" bson:"name"`
	Subject     string         `json:"subject" bson:"subject"`
	BodyHTML    string         `json:"bodyHtml" bson:"bodyHtml"`
	BodyText    string         `json:"bodyText" bson:"bodyText"`
	Tags        []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	CreatedAt   time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// SaveTemplateInput is the allow-list of mutable template fields accepted by
// a save. Server-managed fields (id, timestamps) are deliberately absent so a
// request body can never overwrite them.
type SaveTemplateInput struct {
	ReferenceID *int           `json:"templateReferenceId"`
	Design      map[string]any `json:"design"`
	Name        string         `json:"name"`
	Subject     string         `json:"subject"`
	BodyHTML    string         `json:"bodyHtml"`
	BodyText    string         `json:"bodyText"`
	Tags        []string       `json:"tags"`
	// Import marks an imported design: when the reference id already exists
	// the matching template is overwritten instead of rejected.
	Import bool `json:"import,omitempty"`
}

// Validate checks the input against the reference-id contract.
func (in SaveTemplateInput) Validate() error {
	if in.ReferenceID != nil && *in.ReferenceID < 1 {
		return ErrInvalidReferenceID
	}
	return nil
}

func (in SaveTemplateInput) toTemplate() Template {
	return Template{
		ReferenceID: in.ReferenceID,
		Design:      in.Design,
		Name:        in.Name,
		Subject:     in.Subject,
		BodyHTML:    in.BodyHTML,
		BodyText:    in.BodyText,
		Tags:        in.Tags,
	}
}
