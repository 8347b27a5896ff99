package dispatch

import "errors"

var (
	// ErrProviderNotConfigured is returned by the test send path when no
	// real mail provider is configured. Distinct from generic send failures
	// so the UI can render a specific state.
	ErrProviderNotConfigured = errors.New("email provider is not configured")
	// ErrInvalidAddress is returned when a recipient address fails
	// validation.
	ErrInvalidAddress = errors.New("invalid email address")
)
