package generator

import (
	"errors"
	"net/http"
)

var errMissingMux = errors.New("generator: missing mux")

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the subtree pattern the component is registered under.
func MountPath(basePath string) string {
	base := normalizeBase(basePath)
	if base == "/" {
		return "/"
	}
	return base + "/"
}

// RegisterRoutes registers the generator handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers a handler under basePath using a pre-built
// Options value. basePath overrides Options.BasePath.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (string, error) {
	if mux == nil {
		return "", errMissingMux
	}
	opts.BasePath = basePath
	opts = NewOptions(func(o *Options) { *o = opts })
	h, err := newHandler(opts, nil)
	if err != nil {
		return "", err
	}
	pattern := MountPath(basePath)
	mux.Handle(pattern, h)
	return pattern, nil
}
