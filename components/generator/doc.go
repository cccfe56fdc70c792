// Package generator serves the border and tube generators over net/http.
//
// Each variant gets a server-rendered form page whose query string is the form
// state, a JSON endpoint the page script refreshes the preview from, and an
// OpenAPI document describing those endpoints. The handler responds to GET and
// HEAD requests only. Page templates and the runtime script are embedded.
package generator
