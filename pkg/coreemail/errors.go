package coreemail

import "errors"

var (
	// ErrUnknownKind is returned for a core email type outside the fixed
	// pair of address confirmation and password reset.
	ErrUnknownKind = errors.New("no valid core message key")
)
