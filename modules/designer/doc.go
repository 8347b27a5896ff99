// Package designer exposes the template designer over HTTP: template CRUD
// with change tracking, version history and restore, core email overrides,
// sample data, test sends and the editor configuration.
//
// Authentication and authorization are the host application's concern; mount
// the router behind whatever middleware enforces them.
package designer
