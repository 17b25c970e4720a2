package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/parlorchat/parlor/internal/backend"
	"github.com/parlorchat/parlor/internal/filter"
)

// memberPane is the collapsible side pane listing room members behind a
// debounced name filter. It implements nav.SidePane so TakeFocus can
// auto-collapse it. The pane is shared by pointer between Model copies
// and the navigation controller.
type memberPane struct {
	input    textinput.Model
	binding  *filter.Binding[backend.Member]
	members  []backend.Member
	selected int
	open     bool
	focused  bool
}

func newMemberPane(collapsed bool) *memberPane {
	input := textinput.New()
	input.Placeholder = "filter members"
	input.Prompt = "/"
	input.CharLimit = 64
	return &memberPane{input: input, open: !collapsed}
}

// Open implements nav.SidePane.
func (p *memberPane) Open() bool { return p.open }

// Collapse implements nav.SidePane.
func (p *memberPane) Collapse() {
	p.open = false
	p.focused = false
	p.input.Blur()
}

func (p *memberPane) expand() {
	p.open = true
}

func (p *memberPane) focus() {
	p.open = true
	p.focused = true
	p.input.Focus()
}

func (p *memberPane) blur() {
	p.focused = false
	p.input.Blur()
}

// setFiltered replaces the displayed members with a filter result.
func (p *memberPane) setFiltered(members []backend.Member) {
	p.members = members
	if p.selected >= len(members) {
		p.selected = len(members) - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

func (p *memberPane) moveSelection(delta int) {
	if len(p.members) == 0 {
		return
	}
	p.selected += delta
	if p.selected < 0 {
		p.selected = 0
	}
	if p.selected >= len(p.members) {
		p.selected = len(p.members) - 1
	}
}

// setText forwards the filter text to the debounced binding.
func (p *memberPane) setText(text string) {
	if p.binding != nil {
		p.binding.SetText(text)
	}
}

// view renders the pane at the given height.
func (p *memberPane) view(styles Styles, height int) string {
	var b strings.Builder
	b.WriteString(styles.PaneTitle.Render(fmt.Sprintf("Members (%d)", len(p.members))))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n")

	rows := height - 3
	if rows < 1 {
		rows = 1
	}
	start := 0
	if p.selected >= rows {
		start = p.selected - rows + 1
	}
	for i := start; i < len(p.members) && i < start+rows; i++ {
		member := p.members[i]
		line := member.Name()
		if member.PowerLevel >= 100 {
			line = "~" + line
		} else if member.PowerLevel >= 50 {
			line = "+" + line
		}
		if member.Typing {
			line += " …"
		}
		if i == p.selected && p.focused {
			line = styles.Selection.Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
