// Package nav implements page navigation for the parlor UI: a registry of
// page factories, a bounded history of visited pages, and the controller
// that owns the single active page.
//
// # Model
//
// A navigable destination is a PageRef: a page identifier (a path-like
// string such as "chat/room") plus an opaque property bag handed to the
// page. The Registry maps identifiers to factories; the History records
// every navigation most-recent-first up to a fixed capacity; the
// Controller drives the two and persists the latest navigation through a
// StateStore so the last view survives a restart.
//
// # Recycling
//
// Navigating to a page normally tears down the active page and constructs
// a fresh instance. Pages registered with RegisterRecyclable may instead
// be reused in place when the requested page matches both the live
// instance and the page persisted as last shown: the new properties are
// merged onto the instance via Apply and no construction happens. Only the
// room page opts in; it owns scroll position, loaded history and composer
// state that are expensive to rebuild.
//
// # Back navigation
//
// ShowPrevious re-shows a remembered history entry as a normal forward
// navigation. History therefore grows monotonically (bounded by capacity)
// instead of popping, and going back past the oldest entry degrades to a
// no-op rather than an error.
//
// # Events
//
// Listeners register with OnLoaded, OnRecycled and OnPreviousShown and are
// invoked synchronously after the corresponding transition. A navigation
// started from inside a listener is queued until the current transition
// finishes; the push, recycle decision, construction and persisted-state
// write of one navigation are never interleaved with another.
//
// # Failure semantics
//
// When a factory is missing or rejects its properties, ShowPage returns
// UnknownPageError or ConstructionError and the previous page stays
// mounted; the persisted state is only written after a successful
// transition.
package nav
