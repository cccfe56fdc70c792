// Package template defines the template renderer contract shared by snippet,
// preview and page rendering. The gotemplate subpackage provides the
// pongo2-backed implementation.
package template
