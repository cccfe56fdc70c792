package generator

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/apidoc"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type errorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

var (
	defaultRegistryOnce sync.Once
	defaultRegistry     *widget.Registry
	defaultRegistryErr  error
)

// DefaultRegistry serves both variants over the embedded catalog with the
// strict policy.
func DefaultRegistry() (*widget.Registry, error) {
	defaultRegistryOnce.Do(func() {
		cat, err := catalog.Default()
		if err != nil {
			defaultRegistryErr = err
			return
		}
		deps, err := widget.NewDeps(cat, formstate.PolicyStrict)
		if err != nil {
			defaultRegistryErr = err
			return
		}
		defaultRegistry, defaultRegistryErr = widget.NewRegistryFromDeps(deps)
	})
	return defaultRegistry, defaultRegistryErr
}

// Handler builds a net/http handler with default options plus any overrides.
// It is an alias of NewHandler to match the recommended component API surface.
func Handler(fns ...OptionFn) (http.Handler, error) {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) (http.Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a net/http handler from a pre-constructed Options value.
func HandlerWithOptions(opts Options) (http.Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })
	return newHandler(opts, nil)
}

type handler struct {
	opts   Options
	source func() *widget.Registry
	pages  *pages
	assets map[string]asset
}

func newHandler(opts Options, source func() *widget.Registry) (*handler, error) {
	p, err := newPages(opts)
	if err != nil {
		return nil, err
	}
	assets, err := loadAssets(opts.Minify)
	if err != nil {
		return nil, err
	}
	return &handler{opts: opts, source: source, pages: p, assets: assets}, nil
}

func (h *handler) registry() (*widget.Registry, error) {
	if h.source != nil {
		if reg := h.source(); reg != nil {
			return reg, nil
		}
	}
	if h.opts.Registry != nil {
		return h.opts.Registry, nil
	}
	return DefaultRegistry()
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	rel, ok := h.relative(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	switch {
	case strings.HasPrefix(rel, "/assets/"):
		h.serveAsset(w, r, strings.TrimPrefix(rel, "/assets/"))
		return
	case rel == "/api/openapi.json":
		h.serveOpenAPI(w, r)
		return
	case strings.HasPrefix(rel, "/api/"):
		h.serveAPI(w, r, strings.TrimPrefix(rel, "/api/"))
		return
	}

	reg, err := h.registry()
	if err != nil {
		h.fail(w, r, err, "load variants")
		return
	}
	if rel == "/" {
		h.serveIndex(w, r, reg)
		return
	}
	name := strings.TrimPrefix(rel, "/")
	if strings.Contains(name, "/") {
		http.NotFound(w, r)
		return
	}
	h.servePage(w, r, reg, name)
}

// relative strips the base path, reporting false for paths outside it.
func (h *handler) relative(path string) (string, bool) {
	base := h.opts.BasePath
	if base == "/" {
		if path == "" {
			return "/", true
		}
		return path, true
	}
	if path == base {
		return "/", true
	}
	if !strings.HasPrefix(path, base+"/") {
		return "", false
	}
	return strings.TrimPrefix(path, base), true
}

// link joins route onto the base path.
func (h *handler) link(route string) string {
	if h.opts.BasePath == "/" {
		return "/" + strings.TrimPrefix(route, "/")
	}
	return h.opts.BasePath + "/" + strings.TrimPrefix(route, "/")
}

func (h *handler) serveIndex(w http.ResponseWriter, r *http.Request, reg *widget.Registry) {
	body, err := h.pages.index(h, reg)
	if err != nil {
		h.fail(w, r, err, "render index")
		return
	}
	writeHTML(w, r, http.StatusOK, body)
}

func (h *handler) servePage(w http.ResponseWriter, r *http.Request, reg *widget.Registry, name string) {
	variant, err := reg.Get(name)
	if errors.Is(err, widget.ErrUnknownVariant) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		h.fail(w, r, err, "lookup variant")
		return
	}

	query := r.URL.Query()
	res, err := variant.Resolve(query)
	if err != nil {
		h.fail(w, r, err, "resolve "+name)
		return
	}
	if h.opts.Redirect && !res.Canonical {
		http.Redirect(w, r, h.link(name)+"?"+res.QueryString, http.StatusSeeOther)
		return
	}

	body, err := h.pages.variant(h, reg, variant, res)
	if err != nil {
		h.fail(w, r, err, "render "+name)
		return
	}
	writeHTML(w, r, http.StatusOK, body)
}

func (h *handler) serveAPI(w http.ResponseWriter, r *http.Request, name string) {
	reg, err := h.registry()
	if err != nil {
		h.logError(r, err, "load variants")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error", Status: http.StatusInternalServerError})
		return
	}
	variant, err := reg.Get(name)
	if err != nil {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "unknown variant " + name, Status: http.StatusNotFound})
		return
	}
	resolve := variant.Resolve
	if r.Header.Get(apidoc.EditHeader) != "" {
		resolve = variant.Edit
	}
	res, err := resolve(r.URL.Query())
	if err != nil {
		h.logError(r, err, "resolve "+name)
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error", Status: http.StatusInternalServerError})
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *handler) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	reg, err := h.registry()
	if err != nil {
		h.logError(r, err, "load variants")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error", Status: http.StatusInternalServerError})
		return
	}
	doc, err := apidoc.Build(h.opts.BasePath, apidoc.Info{}, reg.Variants())
	if err != nil {
		h.logError(r, err, "build openapi document")
		writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error", Status: http.StatusInternalServerError})
		return
	}
	writeJSON(w, r, http.StatusOK, doc)
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error, action string) {
	h.logError(r, err, action)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *handler) logError(r *http.Request, err error, action string) {
	h.opts.Logger.Error().Err(err).Str("path", r.URL.Path).Msg(action + " failed")
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
