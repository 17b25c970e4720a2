package ui

import (
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/parlorchat/parlor/internal/logtail"
	"github.com/parlorchat/parlor/internal/nav"
	"github.com/parlorchat/parlor/internal/pages"
	"github.com/parlorchat/parlor/internal/prefs"
)

func pageTitle(ref nav.PageRef) string {
	switch ref.Page {
	case pages.Room:
		if roomID, ok := ref.Props["room_id"].(string); ok {
			return roomID
		}
		return "room"
	case pages.AddAccount:
		return "add account"
	case pages.Welcome:
		return "welcome"
	}
	return ref.Page
}

func (m Model) renderLoading() string {
	body := m.styles.MutedText.Render("Waiting for the parlor daemon...")
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Keys"))
	b.WriteString("\n\n")
	rows := []struct{ key, action string }{
		{"tab", "switch between the room and the member pane"},
		{"ctrl+b", "go back to the previous view"},
		{"ctrl+o", "toggle the member pane"},
		{"ctrl+t", "cycle the color theme"},
		{"esc", "return focus to the page"},
		{"enter", "queue the drafted message"},
		{"f1", "toggle this help"},
		{"f2", "show the client log"},
		{"ctrl+c", "quit"},
	}
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", m.styles.AccentText.Render(row.key), row.action))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("press any key to close"))
	return b.String()
}

func (m Model) renderLog() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Client log"))
	b.WriteString("\n\n")
	if len(m.logLines) == 0 {
		b.WriteString(m.styles.MutedText.Render("nothing logged yet"))
		b.WriteString("\n")
	}

	visible := m.logLines
	if max := m.height - 4; max > 0 && len(visible) > max {
		visible = visible[len(visible)-max:]
	}
	for _, line := range visible {
		switch logtail.Level(line) {
		case "ERROR", "WARN":
			b.WriteString(m.styles.WarningText.Render(line))
		case "DEBUG":
			b.WriteString(m.styles.MutedText.Render(line))
		default:
			b.WriteString(m.styles.Text.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("press any key to close"))
	return b.String()
}

func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	content := m.renderContent()
	if m.pane.open {
		pane := m.styles.Pane.Width(paneWidth - 2).Render(m.pane.view(m.styles, m.contentHeight()))
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, pane)
	}
	b.WriteString(content)
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m Model) renderHeader() string {
	var title string
	switch page := m.controller.ActivePage().(type) {
	case *pages.RoomPage:
		title = page.RoomID()
	case *pages.AddAccountPage:
		if !page.ShowHeader() {
			title = "parlor"
		} else {
			title = "add account"
		}
	case *pages.WelcomePage:
		title = "welcome"
	default:
		title = "parlor"
	}
	header := m.styles.Header.Render(title)
	if m.status != "" {
		header += "  " + m.styles.MutedText.Render(m.status)
	}
	return header
}

func (m Model) renderContent() string {
	switch page := m.controller.ActivePage().(type) {
	case *pages.RoomPage:
		var b strings.Builder
		b.WriteString(m.timeline.View())
		b.WriteString("\n")
		prompt := "> "
		if !page.Focused() {
			prompt = "  "
		}
		b.WriteString(m.styles.Text.Render(prompt + page.Draft()))
		return lipgloss.NewStyle().Width(m.contentWidth()).Render(b.String())
	case *pages.AddAccountPage:
		return lipgloss.NewStyle().Width(m.contentWidth()).Render(page.View())
	case *pages.WelcomePage:
		return lipgloss.NewStyle().Width(m.contentWidth()).Render(page.View())
	}
	return m.styles.MutedText.Render("nothing to show")
}

func (m Model) renderStatusBar() string {
	hints := "tab: pane  ctrl+b: back  f1: help  ctrl+c: quit"
	return m.styles.StatusBar.Width(m.width).Render(hints)
}

// cycleTheme switches to the next theme and persists the choice.
func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.styles = m.theme.Styles()
	m.status = "theme: " + m.theme.Name

	if m.prefsPath != "" {
		saved := prefs.Prefs{Theme: m.theme.Name, CollapsedPane: !m.pane.open}
		if err := prefs.Save(m.prefsPath, saved); err != nil {
			log.Printf("save prefs: %v", err)
		}
	}
	return m, nil
}
