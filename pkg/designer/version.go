package designer

import "time"

// Content field names as they appear in version change summaries.
const (
	FieldDesign   = "design"
	FieldName     = "name"
	FieldSubject  = "subject"
	FieldBodyHTML = "bodyHtml"
	FieldBodyText = "bodyText"
	FieldTags     = "tags"
)

// ChangesSummary is a tagged variant: a normal edit carries the list of
// changed fields, a restore-triggered snapshot carries the restored flag and
// the number of the version that was restored from.
type ChangesSummary struct {
	Changed             []string `json:"changed,omitempty" bson:"changed,omitempty"`
	Restored            bool     `json:"restored,omitempty" bson:"restored,omitempty"`
	RestoredFromVersion int      `json:"restoredFromVersion,omitempty" bson:"restoredFromVersion,omitempty"`
}

// Version is an immutable full-copy snapshot of a template's content fields
// at a point in time. It is written once and never mutated; it is only read,
// compared, restored from, or deleted.
type Version struct {
	ID             string         `json:"id" bson:"_id,omitempty"`
	TemplateID     string         `json:"templateId" bson:"templateId"`
	VersionNumber  int            `json:"versionNumber" bson:"versionNumber"`
	Design         map[string]any `json:"design,omitempty" bson:"design,omitempty"`
	Name           string         `json:"name" bson:"name"`
	Subject        string         `json:"subject" bson:"subject"`
	BodyHTML       string         `json:"bodyHtml" bson:"bodyHtml"`
	BodyText       string         `json:"bodyText" bson:"bodyText"`
	Tags           []string       `json:"tags,omitempty" bson:"tags,omitempty"`
	ChangedBy      string         `json:"changedBy" bson:"changedBy"`
	ChangeReason   string         `json:"changeReason,omitempty" bson:"changeReason,omitempty"`
	ChangesSummary ChangesSummary `json:"changesSummary" bson:"changesSummary"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
}

// snapshotOf copies the template's six content fields into a new version
// body. The caller fills in numbering, attribution and summary.
func snapshotOf(t *Template) Version {
	return Version{
		TemplateID: t.ID,
		Design:     t.Design,
		Name:       t.Name,
		Subject:    t.Subject,
		BodyHTML:   t.BodyHTML,
		BodyText:   t.BodyText,
		Tags:       t.Tags,
	}
}
