package deeplinks

// Scene is anything the presentation layer can show: a screen, a view
// controller, a loader overlay.
type Scene interface {
	// Dismiss removes the scene and calls done once it is gone.
	Dismiss(animated bool, done func())
	// IsBeingPresented reports whether the scene is on screen or on its way there.
	IsBeingPresented() bool
}

// Host shows scenes. It is obtained from the DataSource each time it is needed.
type Host interface {
	// Present shows scene modally and calls done once it is shown.
	Present(scene Scene, animated bool, done func())
	// ShowPrimary shows scene in the primary context.
	ShowPrimary(scene Scene)
	// ShowSecondary shows scene in the secondary (detail) context.
	ShowSecondary(scene Scene)
}

// DataSource supplies the scenes the coordinator needs.
type DataSource interface {
	// LoaderScene returns a scene showing a loading state.
	LoaderScene() Scene
	// PresentationHost returns the host used to show scenes.
	PresentationHost() Host
}

// NavigationDelegate performs app-level navigation.
type NavigationDelegate interface {
	// ResetToRoot closes every open screen, returns to the root one, and
	// calls done once finished.
	ResetToRoot(done func())
}

// Provider supplies the registered deeplinks in lookup order.
type Provider interface {
	Deeplinks() []Deeplink
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func() []Deeplink

func (f ProviderFunc) Deeplinks() []Deeplink {
	return f()
}

// Registry is an ordered, append-only Provider.
type Registry struct {
	links []Deeplink
}

// NewRegistry creates a registry holding links in the given order.
func NewRegistry(links ...Deeplink) *Registry {
	return &Registry{links: append([]Deeplink(nil), links...)}
}

// Register appends a deeplink. Earlier registrations win lookups.
func (r *Registry) Register(link Deeplink) *Registry {
	r.links = append(r.links, link)
	return r
}

func (r *Registry) Deeplinks() []Deeplink {
	return append([]Deeplink(nil), r.links...)
}

func (r *Registry) Len() int {
	return len(r.links)
}
