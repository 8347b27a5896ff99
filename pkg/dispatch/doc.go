// Package dispatch orchestrates outgoing template emails: it looks up a
// stored template by its numeric reference id, compiles it against
// caller-supplied data, renders transport headers, and hands the result to
// the mail transport.
//
// Recipient addresses and the reference id are validated eagerly, before any
// compilation or store access. A missing template on the structured send path
// is a logged, non-fatal outcome so a host operation (e.g. user registration)
// is never blocked by a misconfigured reference id; the compose-only path
// treats the same condition as an error.
//
// The ad-hoc test send path compiles caller-supplied content through the
// same pipeline without touching storage, and is gated by
// IsProviderConfigured, which reports false for the local sendmail-style
// development fallback.
package dispatch
