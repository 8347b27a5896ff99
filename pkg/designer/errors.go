package designer

import "errors"

var (
	// ErrTemplateNotFound is returned when no template matches the lookup.
	ErrTemplateNotFound = errors.New("email template not found")
	// ErrVersionNotFound is returned when no version matches the lookup.
	ErrVersionNotFound = errors.New("template version not found")
	// ErrVersionMismatch is returned when a version does not belong to the
	// template it is being restored into.
	ErrVersionMismatch = errors.New("version does not belong to this template")
	// ErrReferenceIDTaken is returned when another template already holds the
	// requested reference id.
	ErrReferenceIDTaken = errors.New("template reference ID is already taken")
	// ErrInvalidReferenceID is returned for non-positive reference ids.
	ErrInvalidReferenceID = errors.New("template reference ID must be a positive integer")
)
