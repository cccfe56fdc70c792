package preview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/snippet"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	snippets, err := snippet.New()
	if err != nil {
		t.Fatalf("snippet generator: %v", err)
	}
	r, err := New(snippets)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestBorder_EscapesContent(t *testing.T) {
	got, err := newRenderer(t).Border(border.State{Color: "red", Style: "dotted", Width: "3", Content: "<i>not markup</i>"})
	if err != nil {
		t.Fatalf("border: %v", err)
	}
	html := string(got)
	if !strings.Contains(html, `style="border: 3px dotted red;"`) {
		t.Fatalf("expected border style, got %q", html)
	}
	if strings.Contains(html, "<i>") || !strings.Contains(html, "&lt;i&gt;not markup&lt;/i&gt;") {
		t.Fatalf("expected escaped content, got %q", html)
	}
}

func TestTube_KeepsWrapperStyles(t *testing.T) {
	got, err := newRenderer(t).Tube(tube.State{Tube: "blue", Content: "<em>hi</em>", BgColor: "#ffffff", PaddingStyle: "1rem"})
	if err != nil {
		t.Fatalf("tube: %v", err)
	}
	html := string(got)
	for _, want := range []string{`class="tube tube-blue"`, "background-color", "padding", "<em>hi</em>"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in %q", want, html)
		}
	}
}

func TestTube_KeepsEveryAcceptedColor(t *testing.T) {
	r := newRenderer(t)
	colors := []string{
		"rgb(1 2 3 / 50%)", "hwb(120 10% 20%)", "lab(50% 40 59.5)", "oklch(70% 0.1 200)",
		"hsl(120 50% 50% / 0.3)", "rgba(0,0,0,0.5)", "#ffffff80", "rebeccapurple",
	}
	for _, color := range colors {
		got, err := r.Tube(tube.State{Tube: "green", Content: "x", BgColor: color, PaddingStyle: "1rem 2rem"})
		if err != nil {
			t.Fatalf("tube %q: %v", color, err)
		}
		html := string(got)
		if !strings.Contains(html, "background-color: "+color) {
			t.Fatalf("expected background %q kept, got %q", color, html)
		}
		if !strings.Contains(html, "padding: 1rem 2rem") {
			t.Fatalf("expected padding kept for %q, got %q", color, html)
		}
	}
}

func TestTube_DropsUnsafeWrapperStyles(t *testing.T) {
	got, err := newRenderer(t).Tube(tube.State{Tube: "green", Content: "x", BgColor: "url(x.png)", PaddingStyle: "calc(1px + 2px)"})
	if err != nil {
		t.Fatalf("tube: %v", err)
	}
	html := string(got)
	if strings.Contains(html, "url(") || strings.Contains(html, "calc(") {
		t.Fatalf("expected unsafe styles removed, got %q", html)
	}
}

func TestTube_DropsScripts(t *testing.T) {
	got, err := newRenderer(t).Tube(tube.State{Tube: "red", Content: `<img src=x onerror="alert(1)"><script>x()</script>`, BgColor: "#fff", PaddingStyle: "0"})
	if err != nil {
		t.Fatalf("tube: %v", err)
	}
	html := string(got)
	if strings.Contains(html, "<script") || strings.Contains(html, "onerror") {
		t.Fatalf("expected scripts removed, got %q", html)
	}
	if strings.Contains(html, "padding") {
		t.Fatalf("expected no padding for literal 0, got %q", html)
	}
}

func TestNew_RequiresSnippets(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatalf("expected error without snippet generator")
	}
}

func TestTerminalBorder(t *testing.T) {
	cases := []struct {
		style string
		width int
		want  lipgloss.Border
	}{
		{"solid", 2, lipgloss.NormalBorder()},
		{"solid", 8, lipgloss.ThickBorder()},
		{"double", 1, lipgloss.DoubleBorder()},
		{"dashed", 1, dashedBorder},
		{"dotted", 1, dottedBorder},
	}
	for _, tc := range cases {
		if got := TerminalBorder(tc.style, tc.width); got != tc.want {
			t.Fatalf("%s/%d: unexpected border %#v", tc.style, tc.width, got)
		}
	}
}

func TestTerminal_ContainsContent(t *testing.T) {
	out := Terminal(border.State{Color: "blue", Style: "double", Width: "2", Content: "Boxed"})
	if !strings.Contains(out, "Boxed") || !strings.Contains(out, "═") {
		t.Fatalf("expected double box around content, got %q", out)
	}
	if !strings.Contains(TerminalTube(tube.State{Tube: "green", Content: "Tubed", PaddingStyle: "0"}), "Tubed") {
		t.Fatalf("expected tube content in terminal preview")
	}
}
