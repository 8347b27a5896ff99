package email

import "errors"

var (
	ErrFailedToSend   = errors.New("mailer.errors.failed_to_send_email")
	ErrInvalidConfig  = errors.New("mailer.errors.invalid_config")
	ErrInvalidMessage = errors.New("mailer.errors.invalid_message")
	ErrInvalidAddress = errors.New("mailer.errors.invalid_email_address")
)
