package generator

import (
	"net/http"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/rs/zerolog"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	BasePath     string
	Title        string
	Registry     *widget.Registry
	Selector     theme.ThemeSelector
	Theme        string
	ThemeVariant string
	Guard        GuardFunc
	Minify       bool
	// Redirect sends non-canonical page requests to their canonical query.
	Redirect bool
	Logger   zerolog.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		BasePath: "/",
		Title:    "Border & Tube Code Generator",
		Redirect: true,
		Logger:   zerolog.Nop(),
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	opts.BasePath = normalizeBase(opts.BasePath)
	if strings.TrimSpace(opts.Title) == "" {
		opts.Title = DefaultOptions().Title
	}
	return opts
}

func WithBasePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.BasePath = path
	}
}

func WithTitle(title string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Title = title
	}
}

func WithRegistry(reg *widget.Registry) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Registry = reg
	}
}

// WithTheme selects the page chrome. An empty selector uses the built-in
// manifest.
func WithTheme(selector theme.ThemeSelector, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Selector = selector
		o.Theme = name
		o.ThemeVariant = variant
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithMinify(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Minify = enabled
	}
}

func WithRedirect(enabled bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Redirect = enabled
	}
}

func WithLogger(logger zerolog.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// normalizeBase yields "/" or a slash-led path without a trailing slash.
func normalizeBase(basePath string) string {
	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return "/"
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/")
}
