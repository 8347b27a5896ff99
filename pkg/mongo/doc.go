// Package mongo provides MongoDB connection helpers with retry logic and
// environment-driven configuration.
package mongo
