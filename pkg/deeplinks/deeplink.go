package deeplinks

// Deeplink is a registered route as seen by the Service. It hides the
// route's parameter type: values are created with Link, which binds the
// decoding of that type to the route.
type Deeplink interface {
	// Path identifies the URLs the deeplink answers to.
	Path() Path
	// NeedsLoader asks for a loader scene while the deeplink is handled.
	NeedsLoader() bool
	// NeedsRootReset asks for navigation to return to the root first.
	NeedsRootReset() bool
	// Recover maps a processing error to a fallback action, or nil.
	Recover(err *ProcessingError) Action

	bind(segments []string, raw map[string]string, decoder Decoder) (handleFunc, error)
}

// handleFunc runs a deeplink's handling with already decoded parameters.
type handleFunc func(done func(Action, error))

// Handler is implemented by route owners. P is the parameter type the query
// is decoded into; use EmptyParameters when the route takes none.
type Handler[P any] interface {
	Path() Path
	NeedsLoader() bool
	NeedsRootReset() bool
	// Handle works out the action for a matched URL and reports it through
	// done exactly once, possibly asynchronously.
	Handle(segments []string, params P, done func(Action, error))
	Recover(err *ProcessingError) Action
}

// EmptyParameters is the parameter type of routes without parameters.
type EmptyParameters struct{}

// Link registers h as a Deeplink.
func Link[P any](h Handler[P]) Deeplink {
	return &link[P]{handler: h}
}

type link[P any] struct {
	handler Handler[P]
}

func (l *link[P]) Path() Path                          { return l.handler.Path() }
func (l *link[P]) NeedsLoader() bool                   { return l.handler.NeedsLoader() }
func (l *link[P]) NeedsRootReset() bool                { return l.handler.NeedsRootReset() }
func (l *link[P]) Recover(err *ProcessingError) Action { return l.handler.Recover(err) }

// Handler returns the route owner's handler.
func (l *link[P]) Handler() Handler[P] {
	return l.handler
}

func (l *link[P]) bind(segments []string, raw map[string]string, decoder Decoder) (handleFunc, error) {
	var params P
	if err := decoder.Decode(raw, &params); err != nil {
		return nil, err
	}
	return func(done func(Action, error)) {
		l.handler.Handle(segments, params, done)
	}, nil
}

// HandlerOf returns the handler behind a Deeplink created by Link with the
// same parameter type.
func HandlerOf[P any](d Deeplink) (Handler[P], bool) {
	l, ok := d.(*link[P])
	if !ok {
		return nil, false
	}
	return l.handler, true
}

// Route is a Handler built from plain values and functions.
//
//	deeplinks.Link[ItemParameters](&deeplinks.Route[ItemParameters]{
//	    Pattern: deeplinks.Paths("item/{id}"),
//	    Loader:  true,
//	    OnHandle: func(segments []string, p ItemParameters, done func(deeplinks.Action, error)) {
//	        done(deeplinks.Present(itemScene(segments[1]), deeplinks.StrategyPrimary), nil)
//	    },
//	})
type Route[P any] struct {
	Pattern   Path
	Loader    bool
	RootReset bool
	OnHandle  func(segments []string, params P, done func(Action, error))
	OnRecover func(err *ProcessingError) Action // Optional; nil means no fallback action
}

func (r *Route[P]) Path() Path           { return r.Pattern }
func (r *Route[P]) NeedsLoader() bool    { return r.Loader }
func (r *Route[P]) NeedsRootReset() bool { return r.RootReset }

func (r *Route[P]) Handle(segments []string, params P, done func(Action, error)) {
	if r.OnHandle == nil {
		done(nil, nil)
		return
	}
	r.OnHandle(segments, params, done)
}

func (r *Route[P]) Recover(err *ProcessingError) Action {
	if r.OnRecover == nil {
		return nil
	}
	return r.OnRecover(err)
}
