// Package coreemail manages the overrides for the two built-in system
// emails: address confirmation and password reset.
//
// Unlike designer templates these overrides are not versioned records; they
// live in a single slot of an external key-value settings store owned by the
// users/permissions collaborator, keyed "email", with the legacy `<% %>`
// delimiter syntax on disk. Reads normalize the stored subject and message to
// mustache syntax and derive a word-wrapped plain-text body; writes convert
// mustache braces back to the legacy delimiters.
//
// SettingsStore abstracts the slot; a Redis implementation backs production
// and MemorySettingsStore backs development and tests.
package coreemail
