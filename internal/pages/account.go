package pages

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/parlorchat/parlor/internal/nav"
)

// AddAccountPage is the account-creation form. The startup sequence
// forces it, header suppressed, when no account session exists yet.
type AddAccountPage struct {
	showHeader bool

	userInput   textinput.Model
	serverInput textinput.Model
	focusedIdx  int
	focused     bool
}

// AddAccountFactory constructs AddAccountPage instances. The optional
// show_header property (default true) hides the page header on the
// first-run path.
func AddAccountFactory(props map[string]any) (nav.Page, error) {
	showHeader := true
	if raw, present := props["show_header"]; present {
		value, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("property %q must be a bool", "show_header")
		}
		showHeader = value
	}

	user := textinput.New()
	user.Placeholder = "@user:example.org"
	user.CharLimit = 255

	server := textinput.New()
	server.Placeholder = "https://example.org"
	server.CharLimit = 255

	return &AddAccountPage{
		showHeader:  showHeader,
		userInput:   user,
		serverInput: server,
	}, nil
}

// ID implements nav.Page.
func (p *AddAccountPage) ID() string { return AddAccount }

// Apply implements nav.Page. The page is not recyclable, so Apply only
// exists to satisfy the interface; the controller never calls it.
func (p *AddAccountPage) Apply(props map[string]any) error {
	return fmt.Errorf("page %q does not support property updates", AddAccount)
}

// Focus implements nav.Page.
func (p *AddAccountPage) Focus() {
	p.focused = true
	p.focusedIdx = 0
	p.userInput.Focus()
	p.serverInput.Blur()
}

// Close implements nav.Page.
func (p *AddAccountPage) Close() {
	p.userInput.Blur()
	p.serverInput.Blur()
}

// ShowHeader reports whether the page header should render.
func (p *AddAccountPage) ShowHeader() bool { return p.showHeader }

// CycleFocus moves focus to the next input field.
func (p *AddAccountPage) CycleFocus() {
	p.focusedIdx = (p.focusedIdx + 1) % 2
	if p.focusedIdx == 0 {
		p.userInput.Focus()
		p.serverInput.Blur()
	} else {
		p.userInput.Blur()
		p.serverInput.Focus()
	}
}

// Inputs exposes the form fields for the UI's update loop.
func (p *AddAccountPage) Inputs() (user, server *textinput.Model) {
	return &p.userInput, &p.serverInput
}

// View renders the form.
func (p *AddAccountPage) View() string {
	var b strings.Builder
	if p.showHeader {
		b.WriteString("Add an account\n\n")
	}
	b.WriteString("User ID\n")
	b.WriteString(p.userInput.View())
	b.WriteString("\n\nHomeserver\n")
	b.WriteString(p.serverInput.View())
	b.WriteString("\n")
	return b.String()
}
