package widget

import (
	"net/url"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/border"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
)

// NameBorder identifies the border generator.
const NameBorder = "border"

// Border is the border generator.
type Border struct {
	deps  Deps
	codec *border.Codec
}

var _ Variant = (*Border)(nil)

// NewBorder builds the border generator.
func NewBorder(deps Deps) (*Border, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	codec, err := border.NewCodec(deps.Catalog, deps.Policy)
	if err != nil {
		return nil, err
	}
	return &Border{deps: deps, codec: codec}, nil
}

func (b *Border) Name() string  { return NameBorder }
func (b *Border) Title() string { return "Border Code Generator" }
func (b *Border) Description() string {
	return "Pick a color, style and width to get a CSS border declaration."
}

// Codec exposes the query codec.
func (b *Border) Codec() *border.Codec { return b.codec }

func (b *Border) Fields() []formstate.Field {
	return b.codec.Fields()
}

func (b *Border) Resolve(q url.Values) (Result, error) {
	return b.resolveWith(q, b.codec.Resolve)
}

func (b *Border) Edit(q url.Values) (Result, error) {
	return b.resolveWith(q, b.codec.Edit)
}

func (b *Border) resolveWith(q url.Values, decode func(url.Values) (border.State, []string)) (Result, error) {
	state, rejected := decode(q)
	logFallbacks(b.deps.Logger, NameBorder, q, rejected)
	res, err := b.Render(state)
	if err != nil {
		return Result{}, err
	}
	res.Fallbacks = rejected
	res.Canonical = res.Query.Encode() == q.Encode()
	return res, nil
}

// Render builds the result for an already decoded state.
func (b *Border) Render(state border.State) (Result, error) {
	css, err := b.deps.Snippets.Border(state)
	if err != nil {
		return Result{}, err
	}
	html, err := b.deps.Preview.Border(state)
	if err != nil {
		return Result{}, err
	}
	query := b.codec.Encode(state)
	return Result{
		Variant:     NameBorder,
		Query:       query,
		QueryString: query.Encode(),
		Canonical:   true,
		Values:      stateValues(border.Params, state.Get),
		Snippets: []Snippet{
			{Name: "css", Label: "CSS", Language: "css", Code: css},
		},
		Preview: html,
	}, nil
}

func (b *Border) Open(loc urlsync.Location) (Session, error) {
	store := border.NewStore(border.Defaults(b.deps.Catalog))
	sync, err := urlsync.New(store.Store, urlsync.Codec[border.State](b.codec), loc)
	if err != nil {
		return nil, err
	}
	sync.Start()
	return &session[border.State]{
		params:  border.Params,
		set:     store.SetField,
		get:     store.Get,
		getter:  func(s border.State) func(string) (string, bool) { return s.Get },
		encode:  b.codec.Encode,
		resolve: b.Edit,
		stop:    sync.Stop,
	}, nil
}
