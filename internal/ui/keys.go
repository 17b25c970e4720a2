package ui

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/parlorchat/parlor/internal/pages"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.showLog {
		m.showLog = false
		m.logLines = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "f1":
		m.showHelp = true
		return m, nil
	case "f2":
		return m, readLogCmd(m.logPath)
	case "ctrl+b":
		went, err := m.controller.ShowPrevious(1)
		if err != nil {
			log.Printf("show previous: %v", err)
			m.status = "navigation failed"
		} else if !went {
			m.status = "nothing to go back to"
		}
		return m, nil
	case "ctrl+o":
		if m.pane.open {
			m.pane.Collapse()
			m.controller.TakeFocus()
		} else {
			m.pane.expand()
		}
		return m, nil
	case "ctrl+t":
		return m.cycleTheme()
	case "tab":
		if room := m.activeRoom(); room != nil {
			if m.pane.focused {
				m.pane.blur()
				m.controller.TakeFocus()
			} else {
				m.pane.focus()
			}
			return m, nil
		}
	case "esc":
		m.pane.blur()
		m.controller.TakeFocus()
		return m, nil
	}

	if m.pane.focused {
		return m.handlePaneKey(msg)
	}

	switch page := m.controller.ActivePage().(type) {
	case *pages.RoomPage:
		return m.handleRoomKey(page, msg)
	case *pages.AddAccountPage:
		return m.handleAccountKey(page, msg)
	}
	return m, nil
}

func (m Model) handlePaneKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		m.pane.moveSelection(-1)
		return m, nil
	case "down":
		m.pane.moveSelection(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.pane.input, cmd = m.pane.input.Update(msg)
	m.pane.setText(m.pane.input.Value())
	return m, cmd
}

func (m Model) handleRoomKey(page *pages.RoomPage, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.timeline, cmd = m.timeline.Update(msg)
		page.SetScroll(m.timeline.YOffset)
		return m, cmd
	case "enter":
		if _, queued := page.QueueDraft(page.AccountID(), ""); queued {
			m.timeline.SetContent(page.View())
			m.timeline.GotoBottom()
			m.status = "message queued"
		}
		return m, nil
	case "backspace":
		draft := page.Draft()
		if draft != "" {
			runes := []rune(draft)
			page.SetDraft(string(runes[:len(runes)-1]))
		}
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		page.SetDraft(page.Draft() + string(msg.Runes))
	case tea.KeySpace:
		page.SetDraft(page.Draft() + " ")
	}
	return m, nil
}

func (m Model) handleAccountKey(page *pages.AddAccountPage, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		page.CycleFocus()
		return m, nil
	case "enter":
		// Session setup happens in the daemon; the form only collects
		// the identifiers it will need.
		m.status = "waiting for the daemon to add the account"
		return m, nil
	}

	user, server := page.Inputs()
	var cmd tea.Cmd
	if user.Focused() {
		*user, cmd = user.Update(msg)
	} else {
		*server, cmd = server.Update(msg)
	}
	return m, cmd
}
