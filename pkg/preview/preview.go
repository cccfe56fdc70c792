// Package preview renders what the generated code looks like, as HTML for the
// web pages and as a styled box for terminals.
package preview

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/cssvalue"
	render "github.com/EthanThatOneKid/border-tube-code-generator/pkg/render/template"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/render/template/gotemplate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/snippet"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

var (
	tubePolicyOnce sync.Once
	tubePolicy     *bluemonday.Policy
)

// TubePolicy sanitizes a generated tube body before it is embedded in a page.
// On top of user markup it keeps the wrapper's class and its background and
// padding styles, checked with the same rules the strict policy applies.
func TubePolicy() *bluemonday.Policy {
	tubePolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").OnElements("div")
		policy.AllowStyles("background-color").MatchingHandler(cssvalue.IsColor).OnElements("div")
		policy.AllowStyles("padding").MatchingHandler(cssvalue.IsLength).OnElements("div")
		tubePolicy = policy
	})
	return tubePolicy
}

// Renderer builds HTML previews on top of the snippet generator.
type Renderer struct {
	snippets *snippet.Generator
	renderer render.TemplateRenderer
}

// New returns a Renderer drawing its code from snippets.
func New(snippets *snippet.Generator) (*Renderer, error) {
	if snippets == nil {
		return nil, fmt.Errorf("preview: snippet generator required")
	}
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("preview: templates: %w", err)
	}
	engine, err := gotemplate.New(gotemplate.WithName("preview"), gotemplate.WithFS(sub))
	if err != nil {
		return nil, fmt.Errorf("preview: init templates: %w", err)
	}
	return &Renderer{snippets: snippets, renderer: engine}, nil
}

// Border renders a container styled with the border declaration holding the
// content as plain text.
func (r *Renderer) Border(s border.State) (template.HTML, error) {
	declaration, err := r.snippets.Border(s)
	if err != nil {
		return "", err
	}
	out, err := r.renderer.RenderTemplate("border", map[string]any{
		"declaration": declaration,
		"content":     s.Content,
	})
	if err != nil {
		return "", fmt.Errorf("preview: render border: %w", err)
	}
	return template.HTML(strings.TrimSpace(out)), nil
}

// Tube renders the generated body fragment after sanitization.
func (r *Renderer) Tube(s tube.State) (template.HTML, error) {
	body, err := r.snippets.TubeBody(s)
	if err != nil {
		return "", err
	}
	out, err := r.renderer.RenderTemplate("tube", map[string]any{
		"body": TubePolicy().Sanitize(body),
	})
	if err != nil {
		return "", fmt.Errorf("preview: render tube: %w", err)
	}
	return template.HTML(strings.TrimSpace(out)), nil
}
