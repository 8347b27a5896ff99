// Package redis provides Redis connection helpers with retry logic and
// environment-driven configuration.
package redis
