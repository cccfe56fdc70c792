package generator

import (
	"net/http"
	"sync/atomic"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

// Component wraps the generator handler, its configuration and routing
// helpers. The variant registry can be swapped while serving.
type Component struct {
	opts     Options
	registry atomic.Pointer[widget.Registry]
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	c := &Component{opts: NewOptions(fns...)}
	if c.opts.Registry != nil {
		c.registry.Store(c.opts.Registry)
	}
	return c
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	opts := c.opts
	opts.Registry = c.registry.Load()
	return opts
}

// SwapRegistry replaces the registry used by handlers built from c. Requests
// in flight finish with the registry they started with.
func (c *Component) SwapRegistry(reg *widget.Registry) {
	if c == nil || reg == nil {
		return
	}
	c.registry.Store(reg)
}

// Handler returns a net/http handler serving every generator route.
func (c *Component) Handler() (http.Handler, error) {
	if c == nil {
		return Handler()
	}
	return newHandler(c.opts, c.registry.Load)
}

// RegisterRoutes registers the component handler under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	if mux == nil {
		return "", errMissingMux
	}
	opts := c.opts
	opts.BasePath = basePath
	opts = NewOptions(func(o *Options) { *o = opts })
	h, err := newHandler(opts, c.registry.Load)
	if err != nil {
		return "", err
	}
	pattern := MountPath(basePath)
	mux.Handle(pattern, h)
	return pattern, nil
}
