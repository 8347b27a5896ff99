package redis

import "errors"

var (
	// ErrFailedToParseURL indicates a malformed Redis connection URL.
	ErrFailedToParseURL = errors.New("failed to parse redis connection string")
	// ErrFailedToConnect indicates that all connection attempts were exhausted.
	ErrFailedToConnect = errors.New("failed to connect to redis")
	// ErrHealthcheckFailed indicates that a ping against the server failed.
	ErrHealthcheckFailed = errors.New("redis healthcheck failed")
)
