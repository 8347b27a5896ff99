package mongo

import "errors"

var (
	// ErrEmptyConnectionString indicates a missing MongoDB connection URL.
	ErrEmptyConnectionString = errors.New("empty mongodb connection string")
	// ErrFailedToConnect indicates that all connection attempts were exhausted.
	ErrFailedToConnect = errors.New("failed to connect to mongodb")
	// ErrHealthcheckFailed indicates that a ping against the server failed.
	ErrHealthcheckFailed = errors.New("mongodb healthcheck failed")
)
