// Package snippet renders the copy-pasteable code of both generators: the
// border CSS declaration and the tube head/body HTML fragments.
package snippet

import (
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/render/template"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/render/template/gotemplate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Template names inside the embedded bundle.
const (
	TemplateBorder   = "border"
	TemplateTubeHead = "tube_head"
	TemplateTubeBody = "tube_body"
)

// DefaultStylesheetBase hosts the tube stylesheets when the catalog names none.
const DefaultStylesheetBase = "https://css.fart.tools/tubes"

var (
	contentPolicyOnce sync.Once
	contentPolicy     *bluemonday.Policy
)

// ContentPolicy returns the policy applied to tube body content: user markup
// stays, scripts and event handlers go.
func ContentPolicy() *bluemonday.Policy {
	contentPolicyOnce.Do(func() {
		contentPolicy = bluemonday.UGCPolicy()
	})
	return contentPolicy
}

// TemplatesFS exposes the embedded snippet templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option customises a Generator.
type Option func(*Generator)

// WithTemplateRenderer swaps the engine used to render snippet templates. The
// renderer must resolve the template names exported by this package.
func WithTemplateRenderer(renderer template.TemplateRenderer) Option {
	return func(g *Generator) {
		if renderer != nil {
			g.renderer = renderer
		}
	}
}

// WithStylesheetBase overrides the URL tube stylesheets are served from.
func WithStylesheetBase(base string) Option {
	return func(g *Generator) {
		if trimmed := strings.TrimSpace(base); trimmed != "" {
			g.stylesheetBase = trimmed
		}
	}
}

// WithCatalog takes the stylesheet base from cat.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(g *Generator) {
		if cat != nil && strings.TrimSpace(cat.StylesheetBase) != "" {
			g.stylesheetBase = strings.TrimSpace(cat.StylesheetBase)
		}
	}
}

// WithMinify minifies every snippet.
func WithMinify(enabled bool) Option {
	return func(g *Generator) {
		if !enabled {
			g.minifier = nil
			return
		}
		m := minify.New()
		m.AddFunc("text/css", css.Minify)
		m.AddFunc("text/html", html.Minify)
		g.minifier = m
	}
}

// Generator renders snippets. It is deterministic and safe for concurrent use.
type Generator struct {
	renderer       template.TemplateRenderer
	stylesheetBase string
	minifier       *minify.M
}

// New builds a Generator over the embedded templates unless a renderer is
// supplied.
func New(options ...Option) (*Generator, error) {
	g := &Generator{stylesheetBase: DefaultStylesheetBase}
	for _, opt := range options {
		if opt != nil {
			opt(g)
		}
	}
	if g.renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName("snippets"),
			gotemplate.WithFS(TemplatesFS()),
		)
		if err != nil {
			return nil, fmt.Errorf("snippet: init templates: %w", err)
		}
		g.renderer = engine
	}
	return g, nil
}

// StylesheetBase reports the base URL used for head links.
func (g *Generator) StylesheetBase() string {
	return g.stylesheetBase
}

// StylesheetURL is the absolute URL of a tube's stylesheet.
func (g *Generator) StylesheetURL(tubeID string) string {
	return strings.TrimRight(g.stylesheetBase, "/") + "/" + url.PathEscape(tubeID) + ".css"
}

// Border renders `border: {width}px {style} {color};`.
func (g *Generator) Border(s border.State) (string, error) {
	out, err := g.render(TemplateBorder, map[string]any{
		"width": s.Width,
		"style": s.Style,
		"color": s.Color,
	})
	if err != nil {
		return "", err
	}
	return g.minify("text/css;inline=1", out)
}

// TubeHead renders the stylesheet link for the selected tube.
func (g *Generator) TubeHead(s tube.State) (string, error) {
	out, err := g.render(TemplateTubeHead, map[string]any{
		"href": g.StylesheetURL(s.Tube),
	})
	if err != nil {
		return "", err
	}
	return g.minify("text/html", out)
}

// TubeBody renders the tube wrapper around the sanitized content. The padding
// declaration is left out when padding is the literal "0".
func (g *Generator) TubeBody(s tube.State) (string, error) {
	out, err := g.render(TemplateTubeBody, map[string]any{
		"tube":         s.Tube,
		"bgColor":      s.BgColor,
		"hasPadding":   s.HasPadding(),
		"paddingStyle": s.PaddingStyle,
		"content":      SanitizeContent(s.Content),
	})
	if err != nil {
		return "", err
	}
	return g.minify("text/html", out)
}

// SanitizeContent applies ContentPolicy to user markup.
func SanitizeContent(content string) string {
	return ContentPolicy().Sanitize(content)
}

func (g *Generator) render(name string, data map[string]any) (string, error) {
	out, err := g.renderer.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("snippet: render %s: %w", name, err)
	}
	return strings.TrimSpace(out), nil
}

func (g *Generator) minify(mediatype, in string) (string, error) {
	if g.minifier == nil {
		return in, nil
	}
	out, err := g.minifier.String(mediatype, in)
	if err != nil {
		return "", fmt.Errorf("snippet: minify %s: %w", mediatype, err)
	}
	return out, nil
}
