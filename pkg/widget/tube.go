package widget

import (
	"net/url"

	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/formstate"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/tube"
	"github.com/EthanThatOneKid/border-tube-code-generator/pkg/urlsync"
)

// NameTube identifies the tube generator.
const NameTube = "tube"

// Tube is the tube generator.
type Tube struct {
	deps  Deps
	codec *tube.Codec
}

var _ Variant = (*Tube)(nil)

// NewTube builds the tube generator.
func NewTube(deps Deps) (*Tube, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	codec, err := tube.NewCodec(deps.Catalog, deps.Policy)
	if err != nil {
		return nil, err
	}
	return &Tube{deps: deps, codec: codec}, nil
}

func (t *Tube) Name() string  { return NameTube }
func (t *Tube) Title() string { return "Tube Code Generator" }
func (t *Tube) Description() string {
	return "Wrap content in a hosted tube style and get the head and body HTML."
}

// Codec exposes the query codec.
func (t *Tube) Codec() *tube.Codec { return t.codec }

func (t *Tube) Fields() []formstate.Field {
	return t.codec.Fields()
}

func (t *Tube) Resolve(q url.Values) (Result, error) {
	return t.resolveWith(q, t.codec.Resolve)
}

func (t *Tube) Edit(q url.Values) (Result, error) {
	return t.resolveWith(q, t.codec.Edit)
}

func (t *Tube) resolveWith(q url.Values, decode func(url.Values) (tube.State, []string)) (Result, error) {
	state, rejected := decode(q)
	logFallbacks(t.deps.Logger, NameTube, q, rejected)
	res, err := t.Render(state)
	if err != nil {
		return Result{}, err
	}
	res.Fallbacks = rejected
	res.Canonical = res.Query.Encode() == q.Encode()
	return res, nil
}

// Render builds the result for an already decoded state.
func (t *Tube) Render(state tube.State) (Result, error) {
	head, err := t.deps.Snippets.TubeHead(state)
	if err != nil {
		return Result{}, err
	}
	body, err := t.deps.Snippets.TubeBody(state)
	if err != nil {
		return Result{}, err
	}
	html, err := t.deps.Preview.Tube(state)
	if err != nil {
		return Result{}, err
	}
	query := t.codec.Encode(state)
	return Result{
		Variant:     NameTube,
		Query:       query,
		QueryString: query.Encode(),
		Canonical:   true,
		Values:      stateValues(tube.Params, state.Get),
		Snippets: []Snippet{
			{Name: "head", Label: "HTML <head>", Language: "html", Code: head},
			{Name: "body", Label: "HTML <body>", Language: "html", Code: body},
		},
		Preview:     html,
		Stylesheets: []string{t.deps.Snippets.StylesheetURL(state.Tube)},
	}, nil
}

func (t *Tube) Open(loc urlsync.Location) (Session, error) {
	store := tube.NewStore(tube.Defaults(t.deps.Catalog))
	sync, err := urlsync.New(store.Store, urlsync.Codec[tube.State](t.codec), loc)
	if err != nil {
		return nil, err
	}
	sync.Start()
	return &session[tube.State]{
		params:  tube.Params,
		set:     store.SetField,
		get:     store.Get,
		getter:  func(s tube.State) func(string) (string, bool) { return s.Get },
		encode:  t.codec.Encode,
		resolve: t.Edit,
		stop:    sync.Stop,
	}, nil
}
