package urlsync_test

import (
	"net/url"
	"testing"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/catalog"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
)

func newSync(t *testing.T, raw string) (*border.Store, *urlsync.MemoryLocation, *urlsync.Synchronizer[border.State]) {
	t.Helper()
	cat := catalog.MustDefault()
	codec, err := border.NewCodec(cat, formstate.PolicyStrict)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}
	loc, err := urlsync.NewMemoryLocation(raw)
	if err != nil {
		t.Fatalf("new location: %v", err)
	}
	store := border.NewStore(border.Defaults(cat))
	sync, err := urlsync.New(store.Store, codec, loc)
	if err != nil {
		t.Fatalf("new synchronizer: %v", err)
	}
	return store, loc, sync
}

func TestSynchronizer_StartSeedsFromLocation(t *testing.T) {
	store, loc, sync := newSync(t, "/border?color=red&width=4")
	seeded := sync.Start()

	if seeded.Color != "red" || seeded.Width != "4" || seeded.Style != "solid" {
		t.Fatalf("unexpected seeded state: %#v", seeded)
	}
	if store.Get() != seeded {
		t.Fatalf("expected store to hold the seeded state")
	}
	want := "/border?color=red&content=Hello%2C+Border%21&style=solid&width=4"
	if got := loc.String(); got != want {
		t.Fatalf("expected canonical location %q, got %q", want, got)
	}
}

func TestSynchronizer_EveryWriteRewritesLocation(t *testing.T) {
	store, loc, sync := newSync(t, "/border")
	sync.Start()
	before := loc.Writes()

	store.SetContent("a")
	store.SetContent("ab")
	store.SetContent("abc")

	if got := loc.Writes() - before; got != 3 {
		t.Fatalf("expected 3 writes, got %d", got)
	}
	if got := loc.Query().Get(border.ParamContent); got != "abc" {
		t.Fatalf("expected content abc, got %q", got)
	}
}

func TestSynchronizer_StopDetaches(t *testing.T) {
	store, loc, sync := newSync(t, "/border")
	sync.Start()
	sync.Stop()
	store.SetColor("blue")
	if got := loc.Query().Get(border.ParamColor); got != "black" {
		t.Fatalf("expected location untouched after stop, got %q", got)
	}
}

func TestSynchronizer_RoundTripThroughLocation(t *testing.T) {
	store, loc, sync := newSync(t, "/border")
	sync.Start()
	store.SetColor("purple")
	store.SetStyle("double")
	store.SetWidth("12")
	store.SetContent("Round trip")
	want := store.Get()

	_, _, reloaded := newSync(t, loc.String())
	if got := reloaded.Start(); got != want {
		t.Fatalf("reload mismatch: want %#v, got %#v", want, got)
	}
}

func TestCanonical(t *testing.T) {
	codec, err := border.NewCodec(catalog.MustDefault(), formstate.PolicyStrict)
	if err != nil {
		t.Fatalf("new codec: %v", err)
	}

	full := url.Values{"color": {"red"}, "style": {"solid"}, "width": {"2"}, "content": {"x"}}
	if _, ok := urlsync.Canonical[border.State](codec, full); !ok {
		t.Fatalf("expected full valid query to be canonical")
	}

	partial := url.Values{"color": {"red"}}
	canonical, ok := urlsync.Canonical[border.State](codec, partial)
	if ok {
		t.Fatalf("expected partial query to be non-canonical")
	}
	if canonical.Get("width") != "2" {
		t.Fatalf("expected defaults filled in, got %v", canonical)
	}

	extra := url.Values{"color": {"red"}, "style": {"solid"}, "width": {"2"}, "content": {"x"}, "utm": {"1"}}
	if _, ok := urlsync.Canonical[border.State](codec, extra); ok {
		t.Fatalf("expected unknown parameters to be dropped")
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	if _, err := urlsync.New[border.State](nil, nil, nil); err == nil {
		t.Fatalf("expected error for missing dependencies")
	}
}
