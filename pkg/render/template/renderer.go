package template

import (
	"io"
)

// TemplateRenderer is the seam snippet, preview and page rendering rely on.
// Implementations render named templates from their bundle or ad-hoc template
// strings, optionally copying the result to writers.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
