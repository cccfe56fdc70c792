package generator

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/chrome"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/clipboard"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/render/template/gotemplate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

//go:embed templates/*.tpl
var templatesFS embed.FS

// TemplatesFS exposes the embedded page templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return templatesFS
	}
	return sub
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	return m
}

type pages struct {
	engine   *gotemplate.Engine
	minifier *minify.M
	opts     Options
}

func newPages(opts Options) (*pages, error) {
	engine, err := gotemplate.New(
		gotemplate.WithName("pages"),
		gotemplate.WithFS(TemplatesFS()),
		gotemplate.WithGlobalData(map[string]any{
			"siteTitle":     opts.Title,
			"copiedMessage": clipboard.DefaultMessage,
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("generator: init page templates: %w", err)
	}
	p := &pages{engine: engine, opts: opts}
	if opts.Minify {
		p.minifier = newMinifier()
	}
	return p, nil
}

type variantLink struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
}

// pageField shadows Min and Max so a zero bound still reaches the template.
type pageField struct {
	formstate.Field
	Value string `json:"value"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

func (p *pages) index(h *handler, reg *widget.Registry) (string, error) {
	data, err := p.common(h, reg, "")
	if err != nil {
		return "", err
	}
	return p.render("index", data)
}

func (p *pages) variant(h *handler, reg *widget.Registry, v widget.Variant, res widget.Result) (string, error) {
	data, err := p.common(h, reg, v.Name())
	if err != nil {
		return "", err
	}
	fields := make([]pageField, 0, len(v.Fields()))
	for _, f := range v.Fields() {
		fields = append(fields, pageField{Field: f, Value: res.Values[f.Param], Min: f.Min, Max: f.Max})
	}
	data["variant"] = variantLink{
		Name:        v.Name(),
		Title:       v.Title(),
		Description: v.Description(),
		Href:        h.link(v.Name()),
	}
	data["fields"] = fields
	data["snippets"] = res.Snippets
	data["preview"] = string(res.Preview)
	data["stylesheets"] = res.Stylesheets
	data["apiURL"] = h.link("api/" + v.Name())
	return p.render("variant", data)
}

func (p *pages) common(h *handler, reg *widget.Registry, active string) (map[string]any, error) {
	selector := p.opts.Selector
	if selector == nil {
		s, err := chrome.NewSelector("", "")
		if err != nil {
			return nil, err
		}
		selector = s
	}
	cfg, style, err := chrome.Resolve(selector, p.opts.Theme, p.opts.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("generator: resolve theme: %w", err)
	}

	links := make([]variantLink, 0)
	for _, v := range reg.Variants() {
		links = append(links, variantLink{
			Name:        v.Name(),
			Title:       v.Title(),
			Description: v.Description(),
			Href:        h.link(v.Name()),
		})
	}
	return map[string]any{
		"title":        p.opts.Title,
		"homeURL":      h.link(""),
		"assetsURL":    h.link("assets"),
		"openapiURL":   h.link("api/openapi.json"),
		"themeStyle":   style,
		"themeName":    cfg.Theme,
		"themeVariant": cfg.Variant,
		"variants":     links,
		"active":       active,
	}, nil
}

func (p *pages) render(name string, data map[string]any) (string, error) {
	out, err := p.engine.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("generator: render %s: %w", name, err)
	}
	if p.minifier == nil {
		return out, nil
	}
	minified, err := p.minifier.String("text/html", out)
	if err != nil {
		return "", fmt.Errorf("generator: minify %s: %w", name, err)
	}
	return minified, nil
}
