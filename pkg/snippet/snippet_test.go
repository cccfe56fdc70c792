package snippet

import (
	"strings"
	"testing"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
)

func newGenerator(t *testing.T, options ...Option) *Generator {
	t.Helper()
	g, err := New(options...)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	return g
}

func TestBorder_Defaults(t *testing.T) {
	got, err := newGenerator(t).Border(border.Defaults(catalog.MustDefault()))
	if err != nil {
		t.Fatalf("border: %v", err)
	}
	if got != "border: 2px solid black;" {
		t.Fatalf("expected default declaration, got %q", got)
	}
}

func TestBorder_EveryCatalogValueAppearsVerbatim(t *testing.T) {
	g := newGenerator(t)
	cat := catalog.MustDefault()
	for _, color := range catalog.Values(cat.Colors) {
		for _, style := range catalog.Values(cat.Styles) {
			got, err := g.Border(border.State{Color: color, Style: style, Width: "5"})
			if err != nil {
				t.Fatalf("border: %v", err)
			}
			want := "border: 5px " + style + " " + color + ";"
			if got != want {
				t.Fatalf("expected %q, got %q", want, got)
			}
		}
	}
}

func TestBorder_StripsDeclarationBreakers(t *testing.T) {
	got, err := newGenerator(t).Border(border.State{Color: "red; background: url(x)", Style: "solid", Width: "1"})
	if err != nil {
		t.Fatalf("border: %v", err)
	}
	if strings.Count(got, ";") != 1 {
		t.Fatalf("expected a single declaration, got %q", got)
	}
}

func TestTubeHead(t *testing.T) {
	g := newGenerator(t)
	for _, id := range catalog.Values(catalog.MustDefault().Tubes) {
		got, err := g.TubeHead(tube.State{Tube: id})
		if err != nil {
			t.Fatalf("tube head: %v", err)
		}
		want := `<link rel="stylesheet" href="https://css.fart.tools/tubes/` + id + `.css">`
		if got != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}

func TestTubeHead_CustomBase(t *testing.T) {
	g := newGenerator(t, WithStylesheetBase("https://cdn.example.com/t/"))
	got, err := g.TubeHead(tube.State{Tube: "blue"})
	if err != nil {
		t.Fatalf("tube head: %v", err)
	}
	if got != `<link rel="stylesheet" href="https://cdn.example.com/t/blue.css">` {
		t.Fatalf("unexpected head %q", got)
	}
}

func TestTubeBody_Padding(t *testing.T) {
	g := newGenerator(t)
	state := tube.State{Tube: "green", Content: "Hello, Tube!", BgColor: "#ffffff", PaddingStyle: "0"}

	got, err := g.TubeBody(state)
	if err != nil {
		t.Fatalf("tube body: %v", err)
	}
	want := `<div class="tube tube-green" style="background-color: #ffffff;">Hello, Tube!</div>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	state.PaddingStyle = "1rem"
	got, err = g.TubeBody(state)
	if err != nil {
		t.Fatalf("tube body: %v", err)
	}
	want = `<div class="tube tube-green" style="background-color: #ffffff; padding: 1rem;">Hello, Tube!</div>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTubeBody_SanitizesContent(t *testing.T) {
	got, err := newGenerator(t).TubeBody(tube.State{
		Tube:         "red",
		Content:      `<b onclick="steal()">bold</b><script>alert(1)</script>`,
		BgColor:      "#000",
		PaddingStyle: "0",
	})
	if err != nil {
		t.Fatalf("tube body: %v", err)
	}
	if strings.Contains(got, "<script") || strings.Contains(got, "onclick") {
		t.Fatalf("expected script and handler removed, got %q", got)
	}
	if !strings.Contains(got, "<b>bold</b>") {
		t.Fatalf("expected markup kept, got %q", got)
	}
}

func TestTubeBody_EscapesAttributes(t *testing.T) {
	got, err := newGenerator(t).TubeBody(tube.State{
		Tube:         `x"><script>`,
		BgColor:      `red" onmouseover="x`,
		PaddingStyle: "0",
	})
	if err != nil {
		t.Fatalf("tube body: %v", err)
	}
	if strings.Contains(got, "<script>") || strings.Contains(got, `" onmouseover`) {
		t.Fatalf("expected attribute values escaped, got %q", got)
	}
}

func TestMinify(t *testing.T) {
	g := newGenerator(t, WithMinify(true))
	body, err := g.TubeBody(tube.State{Tube: "green", Content: "<p>  hi  </p>", BgColor: "#ffffff", PaddingStyle: "1rem"})
	if err != nil {
		t.Fatalf("tube body: %v", err)
	}
	if strings.Contains(body, "  ") {
		t.Fatalf("expected collapsed whitespace, got %q", body)
	}
	decl, err := g.Border(border.State{Color: "red", Style: "dashed", Width: "3"})
	if err != nil {
		t.Fatalf("border: %v", err)
	}
	if strings.Contains(decl, ": ") {
		t.Fatalf("expected minified declaration, got %q", decl)
	}
}
