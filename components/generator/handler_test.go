package generator

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/apidoc"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/widget"
)

const borderQuery = "color=red&content=Framed&style=dashed&width=4"

func newTestHandler(t *testing.T, fns ...OptionFn) http.Handler {
	t.Helper()
	h, err := NewHandler(fns...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return h
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestHandler_IndexListsVariants(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	doc := parse(t, rec)
	var hrefs []string
	doc.Find(".bt-variants a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
	})
	if strings.Join(hrefs, ",") != "/border,/tube" {
		t.Fatalf("unexpected variant links %v", hrefs)
	}
	if !strings.Contains(doc.Find("style").Text(), "--accent:") {
		t.Fatalf("expected theme variables in page")
	}
}

func TestHandler_RedirectsToCanonicalQuery(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/border?color=red")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	want := "/border?color=red&content=Hello%2C+Border%21&style=solid&width=2"
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("expected redirect to %q, got %q", want, got)
	}
}

func TestHandler_RedirectDropsRejectedValues(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/tube?tube=square&content=x&bgColor=%23fff&paddingStyle=0&utm=1")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status 303, got %d", rec.Code)
	}
	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	q := loc.Query()
	if q.Get("tube") != "green" || q.Has("utm") {
		t.Fatalf("unexpected canonical query %v", q)
	}
}

func TestHandler_BorderPage(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/border?"+borderQuery)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	doc := parse(t, rec)

	if got := strings.TrimSpace(doc.Find(`[data-snippet="css"]`).Text()); got != "border: 4px dashed red;" {
		t.Fatalf("unexpected css snippet %q", got)
	}
	if selected, _ := doc.Find(`select[name="color"] option[selected]`).Attr("value"); selected != "red" {
		t.Fatalf("expected red selected, got %q", selected)
	}
	if maxAttr, _ := doc.Find(`input[name="width"]`).Attr("max"); maxAttr != "20" {
		t.Fatalf("expected width max 20, got %q", maxAttr)
	}
	if style, _ := doc.Find(".preview-border").Attr("style"); style != "border: 4px dashed red;" {
		t.Fatalf("unexpected preview style %q", style)
	}
	if api, _ := doc.Find("[data-bordertube-form]").Attr("data-api"); api != "/api/border" {
		t.Fatalf("unexpected api url %q", api)
	}
	if doc.Find(`button[data-copy="css"]`).Length() != 1 {
		t.Fatalf("expected a copy button")
	}
}

func TestHandler_BorderPageKeepsZeroMinimum(t *testing.T) {
	cat := catalog.MustDefault()
	cat.Width.Min = 0
	deps, err := widget.NewDeps(cat, formstate.PolicyStrict)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	reg, err := widget.NewRegistryFromDeps(deps)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}

	rec := serve(newTestHandler(t, WithRegistry(reg)), http.MethodGet, "/border?"+borderQuery)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	input := parse(t, rec).Find(`input[name="width"]`)
	if minAttr, ok := input.Attr("min"); !ok || minAttr != "0" {
		t.Fatalf("expected width min 0, got %q (present %v)", minAttr, ok)
	}
	if maxAttr, _ := input.Attr("max"); maxAttr != "20" {
		t.Fatalf("expected width max 20, got %q", maxAttr)
	}
}

func TestHandler_TubePageSanitizesContent(t *testing.T) {
	q := url.Values{
		"tube":         {"blue"},
		"content":      {`<b>hi</b><script>alert(1)</script>`},
		"bgColor":      {"#ffffff"},
		"paddingStyle": {"1rem"},
	}
	rec := serve(newTestHandler(t), http.MethodGet, "/tube?"+q.Encode())
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatalf("expected script removed from page")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	if href, _ := doc.Find("[data-tube-stylesheet]").Attr("href"); href != "https://css.fart.tools/tubes/blue.css" {
		t.Fatalf("unexpected tube stylesheet %q", href)
	}
	if doc.Find("[data-preview] b").Length() != 1 {
		t.Fatalf("expected markup rendered in preview")
	}
	wantBody := `<div class="tube tube-blue" style="background-color: #ffffff; padding: 1rem;"><b>hi</b></div>`
	if got := doc.Find(`[data-snippet="body"]`).Text(); got != wantBody {
		t.Fatalf("unexpected body snippet %q", got)
	}
}

func TestHandler_API(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/api/border?color=blue")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload widget.Result
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Values["color"] != "blue" || payload.Values["width"] != "2" {
		t.Fatalf("unexpected values %v", payload.Values)
	}
	if css, _ := payload.Snippet("css"); css.Code != "border: 2px solid blue;" {
		t.Fatalf("unexpected snippet %q", css.Code)
	}
}

func TestHandler_APIEditKeepsClearedContent(t *testing.T) {
	h := newTestHandler(t)
	decode := func(rec *httptest.ResponseRecorder) widget.Result {
		t.Helper()
		var payload widget.Result
		if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return payload
	}

	req := httptest.NewRequest(http.MethodGet, "/api/border?content=", nil)
	req.Header.Set(apidoc.EditHeader, "1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := decode(rec).Values["content"]; got != "" {
		t.Fatalf("expected cleared content kept, got %q", got)
	}

	if got := decode(serve(h, http.MethodGet, "/api/border?content=")).Values["content"]; got != "Hello, Border!" {
		t.Fatalf("expected default content without edit header, got %q", got)
	}
}

func TestHandler_APIUnknownVariant(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodGet, "/api/square")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var payload errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Status != http.StatusNotFound {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestHandler_OpenAPI(t *testing.T) {
	rec := serve(newTestHandler(t, WithBasePath("/tools")), http.MethodGet, "/tools/api/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var doc map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	paths, _ := doc["paths"].(map[string]any)
	if _, ok := paths["/tools/api/tube"]; !ok {
		t.Fatalf("expected tube path, got %v", paths)
	}
}

func TestHandler_Assets(t *testing.T) {
	h := newTestHandler(t, WithMinify(true))
	rec := serve(h, http.MethodGet, "/assets/bordertube.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "clipboard") {
		t.Fatalf("expected runtime script body")
	}
	if rec := serve(h, http.MethodGet, "/assets/missing.js"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestHandler_HeadHasNoBody(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodHead, "/border?"+borderQuery)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %d bytes", rec.Body.Len())
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	rec := serve(newTestHandler(t), http.MethodPost, "/border")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, HEAD" {
		t.Fatalf("unexpected Allow header %q", allow)
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	h := newTestHandler(t, WithGuard(func(r *http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))
	if rec := serve(h, http.MethodGet, "/"); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandler_UnknownPage(t *testing.T) {
	h := newTestHandler(t)
	for _, target := range []string{"/square", "/border/extra"} {
		if rec := serve(h, http.MethodGet, target); rec.Code != http.StatusNotFound {
			t.Fatalf("%s: expected status 404, got %d", target, rec.Code)
		}
	}
}

func TestHandler_NoRedirectRendersResolvedState(t *testing.T) {
	rec := serve(newTestHandler(t, WithRedirect(false)), http.MethodGet, "/border?color=nope")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := strings.TrimSpace(parse(t, rec).Find(`[data-snippet="css"]`).Text()); got != "border: 2px solid black;" {
		t.Fatalf("unexpected css snippet %q", got)
	}
}

func TestComponent_SwapRegistry(t *testing.T) {
	c := New()
	h, err := c.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	cat := catalog.MustDefault()
	cat.Border.Color = "purple"
	deps, err := widget.NewDeps(cat, formstate.PolicyStrict)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	reg, err := widget.NewRegistryFromDeps(deps)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	c.SwapRegistry(reg)

	rec := serve(h, http.MethodGet, "/api/border")
	var payload widget.Result
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Values["color"] != "purple" {
		t.Fatalf("expected swapped registry defaults, got %v", payload.Values)
	}
}
