package nav

// Page is a live view instance owned by the Controller. Implementations
// live in internal/pages; the Controller only needs the lifecycle surface.
type Page interface {
	// ID returns the page identifier this instance was registered under.
	ID() string

	// Apply merges new properties onto the live instance when it is
	// recycled. Keys absent from props keep their current values.
	// Implementations validate the full property set before touching any
	// field, so a failed Apply leaves the page unchanged.
	Apply(props map[string]any) error

	// Focus transfers input focus to the page.
	Focus()

	// Close releases the page's resources. Called exactly once, when the
	// Controller replaces the page with a newly constructed one.
	Close()
}

// Factory constructs a page from a property bag. Errors from a factory are
// wrapped in ConstructionError by the Controller.
type Factory func(props map[string]any) (Page, error)

type registration struct {
	factory    Factory
	recyclable bool
}

// Registry maps page identifiers to the factories that construct them.
// Pages registered as recyclable may be reused in place by the Controller
// instead of being torn down and rebuilt.
type Registry struct {
	pages map[string]registration
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{pages: make(map[string]registration)}
}

// Register adds a page factory. A later Register for the same identifier
// replaces the earlier one.
func (r *Registry) Register(page string, factory Factory) {
	r.pages[page] = registration{factory: factory}
}

// RegisterRecyclable adds a page factory whose instances may be recycled
// in place. Reserved for views that are expensive to reconstruct: the room
// page keeps scroll position, loaded history and composer state alive
// across navigations.
func (r *Registry) RegisterRecyclable(page string, factory Factory) {
	r.pages[page] = registration{factory: factory, recyclable: true}
}

// Resolve returns the factory for a page identifier.
func (r *Registry) Resolve(page string) (Factory, error) {
	reg, ok := r.pages[page]
	if !ok {
		return nil, &UnknownPageError{Page: page}
	}
	return reg.factory, nil
}

// Recyclable reports whether the page was registered as recyclable.
// Unregistered pages are never recyclable.
func (r *Registry) Recyclable(page string) bool {
	return r.pages[page].recyclable
}
