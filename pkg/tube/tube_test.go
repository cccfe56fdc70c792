package tube

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
)

func newCodec(t *testing.T, policy formstate.Policy) *Codec {
	t.Helper()
	codec, err := NewCodec(catalog.MustDefault(), policy)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	return codec
}

func TestDecode_EmptyQueryYieldsDefaults(t *testing.T) {
	got := newCodec(t, formstate.PolicyStrict).Decode(nil)
	want := State{Tube: "green", Content: "Hello, Tube!", BgColor: "#ffffff", PaddingStyle: "1rem"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("default state mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	codec := newCodec(t, formstate.PolicyStrict)
	for _, id := range catalog.Values(catalog.MustDefault().Tubes) {
		for _, padding := range []string{"0", "2rem", "4px 8px"} {
			state := State{Tube: id, Content: "<em>hi</em>", BgColor: "#123abc", PaddingStyle: padding}
			if got := codec.Decode(codec.Encode(state)); got != state {
				t.Fatalf("round trip mismatch: want %#v, got %#v", state, got)
			}
		}
	}
}

func TestResolve_StrictRejectsUnsafeValues(t *testing.T) {
	codec := newCodec(t, formstate.PolicyStrict)
	q := url.Values{
		ParamTube:         {"square"},
		ParamBgColor:      {`red" onmouseover="alert(1)`},
		ParamPaddingStyle: {"1rem; position: fixed"},
		ParamContent:      {"<p>ok</p>"},
	}
	got, rejected := codec.Resolve(q)
	want := State{Tube: "green", Content: "<p>ok</p>", BgColor: "#ffffff", PaddingStyle: "1rem"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{ParamTube, ParamBgColor, ParamPaddingStyle}, rejected); diff != "" {
		t.Fatalf("rejected mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_LenientKeepsValues(t *testing.T) {
	got := newCodec(t, formstate.PolicyLenient).Decode(url.Values{ParamTube: {"square"}, ParamPaddingStyle: {"auto"}})
	if got.Tube != "square" || got.PaddingStyle != "auto" {
		t.Fatalf("expected lenient values kept, got %#v", got)
	}
}

func TestEdit_KeepsClearedContent(t *testing.T) {
	codec := newCodec(t, formstate.PolicyStrict)
	got, rejected := codec.Edit(url.Values{
		ParamTube:         {"blue"},
		ParamContent:      {""},
		ParamBgColor:      {""},
		ParamPaddingStyle: {"0"},
	})
	want := State{Tube: "blue", Content: "", BgColor: "#ffffff", PaddingStyle: "0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("state mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{ParamBgColor}, rejected); diff != "" {
		t.Fatalf("rejected mismatch (-want +got):\n%s", diff)
	}
}

func TestHasPadding(t *testing.T) {
	if (State{PaddingStyle: "0"}).HasPadding() {
		t.Fatalf("expected literal 0 to drop padding")
	}
	if !(State{PaddingStyle: "0px"}).HasPadding() {
		t.Fatalf("expected 0px to keep padding")
	}
}

func TestStore_SetField(t *testing.T) {
	store := NewStore(Defaults(catalog.MustDefault()))
	for param, value := range map[string]string{
		ParamTube:         "blue",
		ParamContent:      "x",
		ParamBgColor:      "#000",
		ParamPaddingStyle: "0",
	} {
		if err := store.SetField(param, value); err != nil {
			t.Fatalf("set %s: %v", param, err)
		}
	}
	want := State{Tube: "blue", Content: "x", BgColor: "#000", PaddingStyle: "0"}
	if diff := cmp.Diff(want, store.Get()); diff != "" {
		t.Fatalf("store mismatch (-want +got):\n%s", diff)
	}
	if err := store.SetField("color", "red"); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestFields_AttachChecks(t *testing.T) {
	fields := newCodec(t, formstate.PolicyStrict).Fields()
	byParam := map[string]formstate.Field{}
	for _, f := range fields {
		byParam[f.Param] = f
	}
	if byParam[ParamBgColor].Allows("nope") || !byParam[ParamBgColor].Allows("#fff") {
		t.Fatalf("unexpected bg color check")
	}
	if byParam[ParamPaddingStyle].Allows("auto") || !byParam[ParamPaddingStyle].Allows("0") {
		t.Fatalf("unexpected padding check")
	}
	if byParam[ParamTube].Kind != formstate.KindEnum || len(byParam[ParamTube].Options) != 6 {
		t.Fatalf("unexpected tube field: %#v", byParam[ParamTube])
	}
}
