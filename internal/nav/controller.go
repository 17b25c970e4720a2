package nav

import (
	"fmt"
	"log"
	"sync"
)

// UIState is the durable record of the most recent navigation. It is
// overwritten on every successful page show and read back exactly once at
// startup to restore the last view.
type UIState struct {
	Page      string         `json:"page"`
	PageProps map[string]any `json:"pageProperties"`
}

// StateStore persists UIState across restarts. The settings store provides
// the implementation; the Controller only sees this narrow surface.
type StateStore interface {
	SaveUIState(UIState) error
	LoadUIState() (state UIState, ok bool, err error)
}

// SidePane is the collapsible pane TakeFocus may close before handing
// focus to the active page.
type SidePane interface {
	Open() bool
	Collapse()
}

// Options configure a Controller.
type Options struct {
	Registry *Registry
	History  *History // nil uses a fresh history with the default capacity
	State    StateStore

	// Page identifiers the controller needs to know by role.
	RoomPage       string // the recyclable primary content view
	AddAccountPage string // forced on first run, header suppressed
	WelcomePage    string // fallback when nothing was persisted

	// Pane, when set with AutoCollapsePane, is collapsed by TakeFocus.
	Pane             SidePane
	AutoCollapsePane bool
}

// Controller owns the single active page and orchestrates show, recycle
// and go-back operations over the registry and history. All successful
// navigations persist {page, pageProperties} through the state store.
//
// Navigation is serialized: a ShowPage triggered from inside an event
// listener is queued and runs after the current transition completes, so
// the push/recycle/construct/persist sequence is never interleaved.
type Controller struct {
	registry *Registry
	history  *History
	state    StateStore

	roomPage       string
	addAccountPage string
	welcomePage    string

	pane         SidePane
	autoCollapse bool

	mu        sync.Mutex
	busy      bool
	pending   []PageRef
	active    Page
	lastShown string

	onLoaded        []func(PageRef)
	onRecycled      []func(PageRef)
	onPreviousShown []func(PageRef)
}

// NewController wires a Controller from options.
func NewController(opts Options) (*Controller, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("nav: registry is required")
	}
	if opts.State == nil {
		return nil, fmt.Errorf("nav: state store is required")
	}
	history := opts.History
	if history == nil {
		history = NewHistory(0)
	}
	return &Controller{
		registry:       opts.Registry,
		history:        history,
		state:          opts.State,
		roomPage:       opts.RoomPage,
		addAccountPage: opts.AddAccountPage,
		welcomePage:    opts.WelcomePage,
		pane:           opts.Pane,
		autoCollapse:   opts.AutoCollapsePane,
	}, nil
}

// OnLoaded registers a listener fired after a page is constructed and
// mounted.
func (c *Controller) OnLoaded(fn func(PageRef)) {
	c.onLoaded = append(c.onLoaded, fn)
}

// OnRecycled registers a listener fired after an existing page instance is
// reused in place.
func (c *Controller) OnRecycled(fn func(PageRef)) {
	c.onRecycled = append(c.onRecycled, fn)
}

// OnPreviousShown registers a listener fired after a back navigation, in
// addition to the loaded or recycled event of the inner show.
func (c *Controller) OnPreviousShown(fn func(PageRef)) {
	c.onPreviousShown = append(c.onPreviousShown, fn)
}

// ActivePage returns the currently mounted page, or nil before the first
// navigation.
func (c *Controller) ActivePage() Page {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// ShowPage navigates to a page. The call pushes a history entry, recycles
// or rebuilds the active view, and persists the new state, in that order.
// When resolution or construction fails the previous page stays mounted
// and the persisted state is left untouched.
//
// A ShowPage issued while another navigation is still in flight (from an
// event listener, typically) is queued and executed afterwards; queued
// navigation failures are logged, not returned.
func (c *Controller) ShowPage(page string, props map[string]any) error {
	ref := PageRef{Page: page, Props: cloneProps(props)}

	c.mu.Lock()
	if c.busy {
		c.pending = append(c.pending, ref)
		c.mu.Unlock()
		return nil
	}
	c.busy = true
	c.mu.Unlock()

	err := c.show(ref)
	c.drain()
	return err
}

// ShowRoom navigates to the primary room view for the given account and
// room.
func (c *Controller) ShowRoom(accountID, roomID string) error {
	return c.ShowPage(c.roomPage, map[string]any{
		"account_id": accountID,
		"room_id":    roomID,
	})
}

// ShowPrevious navigates to the entry stepsBack steps back in history.
// It returns false without touching history when there is nothing to go
// back to; requesting more steps than recorded is clamped, not an error.
// The back target is re-shown as a normal navigation, so history gains a
// new entry rather than popping.
func (c *Controller) ShowPrevious(stepsBack int) (bool, error) {
	c.mu.Lock()
	effective := c.history.ClampBack(stepsBack)
	if effective < 1 {
		c.mu.Unlock()
		return false, nil
	}
	ref, err := c.history.EntryAt(effective)
	c.mu.Unlock()
	if err != nil {
		return false, err
	}

	if err := c.ShowPage(ref.Page, ref.Props); err != nil {
		return false, err
	}
	c.emit(c.onPreviousShown, ref)
	return true, nil
}

// TakeFocus hands input focus to the active page, collapsing the side
// pane first when configured to do so. No navigation state changes.
func (c *Controller) TakeFocus() {
	if c.autoCollapse && c.pane != nil && c.pane.Open() {
		c.pane.Collapse()
	}
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()
	if active != nil {
		active.Focus()
	}
}

// Restore runs the startup navigation, once, before any other ShowPage
// call. Without a saved account it forces the add-account page with the
// header suppressed, skipping the persisted state entirely. Otherwise the
// persisted state is read back; a persisted room page is re-derived
// through ShowRoom so recycling eligibility is established the same way a
// live navigation would.
func (c *Controller) Restore(hasAccounts bool) error {
	if !hasAccounts {
		return c.ShowPage(c.addAccountPage, map[string]any{"show_header": false})
	}

	st, ok, err := c.state.LoadUIState()
	if err != nil {
		log.Printf("restore ui state: %v", err)
	}
	if err != nil || !ok || st.Page == "" {
		return c.ShowPage(c.welcomePage, nil)
	}

	if st.Page == c.roomPage {
		accountID, _ := st.PageProps["account_id"].(string)
		roomID, _ := st.PageProps["room_id"].(string)
		if accountID != "" && roomID != "" {
			return c.ShowRoom(accountID, roomID)
		}
		return c.ShowPage(c.welcomePage, nil)
	}
	return c.ShowPage(st.Page, st.PageProps)
}

// History returns the navigation history. Exposed for status rendering;
// mutation stays inside the controller.
func (c *Controller) History() *History {
	return c.history
}

// show runs one complete navigation: history push, recycle decision,
// construct or recycle, persisted-state write.
func (c *Controller) show(ref PageRef) error {
	c.mu.Lock()
	c.history.Push(ref)
	recycle := c.active != nil &&
		c.active.ID() == ref.Page &&
		ref.Page == c.lastShown &&
		c.registry.Recyclable(ref.Page)
	active := c.active
	c.mu.Unlock()

	if recycle {
		if err := active.Apply(ref.Props); err != nil {
			return err
		}
		c.emit(c.onRecycled, ref)
	} else {
		factory, err := c.registry.Resolve(ref.Page)
		if err != nil {
			return err
		}
		// Construct before closing the old page so a factory failure
		// leaves the previous page mounted.
		page, err := factory(ref.Props)
		if err != nil {
			return &ConstructionError{Page: ref.Page, Err: err}
		}
		c.mu.Lock()
		old := c.active
		c.active = page
		c.mu.Unlock()
		if old != nil {
			old.Close()
		}
		c.emit(c.onLoaded, ref)
	}

	c.mu.Lock()
	c.lastShown = ref.Page
	c.mu.Unlock()

	// The navigation itself succeeded; a failed write only costs the
	// restore-on-restart, so log and carry on.
	if err := c.state.SaveUIState(UIState{Page: ref.Page, PageProps: ref.Props}); err != nil {
		log.Printf("persist ui state: %v", err)
	}
	return nil
}

// drain runs navigations queued during the current transition, then
// releases the controller.
func (c *Controller) drain() {
	for {
		c.mu.Lock()
		if len(c.pending) == 0 {
			c.busy = false
			c.mu.Unlock()
			return
		}
		next := c.pending[0]
		c.pending = c.pending[1:]
		c.mu.Unlock()

		if err := c.show(next); err != nil {
			log.Printf("queued navigation to %s failed: %v", next.Page, err)
		}
	}
}

func (c *Controller) emit(listeners []func(PageRef), ref PageRef) {
	for _, fn := range listeners {
		fn(ref)
	}
}
