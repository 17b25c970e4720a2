package pages

import "github.com/parlorchat/parlor/internal/nav"

// WelcomePage is the empty landing view shown when nothing better is
// known: a fresh boot with an account but no persisted navigation.
type WelcomePage struct {
	focused bool
}

// WelcomeFactory constructs WelcomePage instances. It accepts any
// property bag; the page has no properties.
func WelcomeFactory(props map[string]any) (nav.Page, error) {
	return &WelcomePage{}, nil
}

// ID implements nav.Page.
func (p *WelcomePage) ID() string { return Welcome }

// Apply implements nav.Page.
func (p *WelcomePage) Apply(props map[string]any) error { return nil }

// Focus implements nav.Page.
func (p *WelcomePage) Focus() { p.focused = true }

// Close implements nav.Page.
func (p *WelcomePage) Close() {}

// View renders the landing hint.
func (p *WelcomePage) View() string {
	return "Select a room to start chatting.\n"
}
