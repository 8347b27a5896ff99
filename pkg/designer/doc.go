// Package designer owns the email template data model: stored templates with
// an optional numeric reference id, and the immutable version history written
// whenever tracked content changes.
//
// The package is split into three layers:
//
//   - TemplateStore and VersionStore are the persistence contracts. A Mongo
//     implementation backs production; MemoryTemplateStore/MemoryVersionStore
//     back development and tests. Stores are the authoritative backstop for
//     the reference-id uniqueness constraint.
//   - Versioning decides when a save must be change-tracked into a snapshot,
//     assigns version numbers, and implements restore. A restore first writes
//     a durable snapshot of the pre-restore state, then overwrites the
//     template, so no state is ever lost.
//   - Service wires the stores and the versioning engine into the save,
//     duplicate, delete and lookup operations the HTTP surface exposes.
//
// All collaborators are passed in explicitly; nothing in this package reaches
// for ambient globals.
package designer
