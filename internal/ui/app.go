// Package ui provides the Bubble Tea front end for parlor.
package ui

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/parlorchat/parlor/internal/backend"
	"github.com/parlorchat/parlor/internal/config"
	"github.com/parlorchat/parlor/internal/filter"
	"github.com/parlorchat/parlor/internal/logtail"
	"github.com/parlorchat/parlor/internal/nav"
	"github.com/parlorchat/parlor/internal/pages"
	"github.com/parlorchat/parlor/internal/prefs"
	"github.com/parlorchat/parlor/internal/state"
)

const (
	paneWidth        = 28
	backendProbeTick = 500 * time.Millisecond
)

// Options configures the UI.
type Options struct {
	Context  context.Context
	Client   backend.Fetcher
	Members  *state.Store[backend.Member]
	Registry *nav.Registry
	Settings nav.StateStore
	Config   config.Config

	ThemeName string
	PrefsPath string
	LogPath   string

	// CollapsedPane starts the member pane collapsed (restored from
	// prefs).
	CollapsedPane bool

	// OnNavigate observes every load and recycle, in addition to the
	// UI's own handling. Used to re-target background polling.
	OnNavigate func(nav.PageRef)
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx        context.Context
	client     backend.Fetcher
	controller *nav.Controller
	members    *state.Store[backend.Member]
	cfg        config.Config
	prefsPath  string
	logPath    string

	theme  Theme
	styles Styles

	width  int
	height int
	ready  bool

	// backendReady gates the main UI; until the daemon reports ready
	// only the loading view is mounted.
	backendReady bool

	pane          *memberPane
	cancelMembers func()

	timeline viewport.Model
	status   string
	showHelp bool
	showLog  bool
	logLines []string
}

// New creates a new Bubble Tea model together with the navigation
// controller it drives. The member pane doubles as the controller's
// side pane so TakeFocus can collapse it.
func New(opts Options) (Model, error) {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Dracula"
	}
	theme := GetTheme(themeName)

	pane := newMemberPane(opts.CollapsedPane)
	controller, err := nav.NewController(nav.Options{
		Registry:         opts.Registry,
		History:          nav.NewHistory(opts.Config.HistoryCapacity),
		State:            opts.Settings,
		RoomPage:         pages.Room,
		AddAccountPage:   pages.AddAccount,
		WelcomePage:      pages.Welcome,
		Pane:             pane,
		AutoCollapsePane: opts.Config.AutoCollapsePane,
	})
	if err != nil {
		return Model{}, err
	}

	return Model{
		ctx:        ctx,
		client:     opts.Client,
		controller: controller,
		members:    opts.Members,
		cfg:        opts.Config,
		prefsPath:  opts.PrefsPath,
		logPath:    opts.LogPath,
		theme:      theme,
		styles:     theme.Styles(),
		pane:       pane,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.cfg.PollEvery)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.timeline = viewport.New(m.contentWidth(), m.contentHeight())
			m.ready = true
		} else {
			m.timeline.Width = m.contentWidth()
			m.timeline.Height = m.contentHeight()
		}
		if room := m.activeRoom(); room != nil {
			room.SetWrapWidth(m.contentWidth() - 2)
			m.timeline.SetContent(room.View())
		}
		return m, nil

	case tickMsg:
		return m.handleTick()

	case backendReadyMsg:
		m.backendReady = true
		if err := m.controller.Restore(msg.hasAccounts); err != nil {
			log.Printf("restore navigation: %v", err)
			m.status = "could not restore the last view"
		}
		return m, nil

	case pageShownMsg:
		return m.handlePageShown(msg)

	case previousShownMsg:
		m.status = "back to " + pageTitle(nav.PageRef(msg))
		return m, nil

	case filteredMembersMsg:
		m.pane.setFiltered([]backend.Member(msg))
		return m, nil

	case messagesMsg:
		return m.handleMessages(msg)

	case logLinesMsg:
		m.logLines = []string(msg)
		m.showLog = true
		return m, nil

	case prefsReloadedMsg:
		loaded := prefs.Prefs(msg)
		m.theme = GetTheme(loaded.Theme)
		m.styles = m.theme.Styles()
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if !m.backendReady {
		return m.renderLoading()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.showLog {
		return m.renderLog()
	}
	return m.renderMain()
}

// handleTick refreshes the active room's timeline and schedules the next
// poll.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.cfg.PollEvery)}
	if room := m.activeRoom(); room != nil {
		cmds = append(cmds, fetchMessagesCmd(m.ctx, m.client, room.AccountID(), room.RoomID()))
	}
	return m, tea.Batch(cmds...)
}

// handlePageShown reacts to a completed navigation: wire the member
// source for room pages, restore the timeline and flash the transition.
func (m Model) handlePageShown(msg pageShownMsg) (tea.Model, tea.Cmd) {
	if msg.recycled {
		m.status = "recycled " + pageTitle(msg.ref)
	} else {
		m.status = "opened " + pageTitle(msg.ref)
	}

	room := m.activeRoom()
	if msg.ref.Page != pages.Room || room == nil {
		if m.cancelMembers != nil {
			m.cancelMembers()
			m.cancelMembers = nil
		}
		m.pane.setFiltered(nil)
		return m, nil
	}

	m.watchRoom(room.RoomID())
	room.SetWrapWidth(m.contentWidth() - 2)
	if m.ready {
		m.timeline.SetContent(room.View())
		m.timeline.SetYOffset(room.Scroll())
	}
	return m, fetchMessagesCmd(m.ctx, m.client, room.AccountID(), room.RoomID())
}

func (m Model) handleMessages(msg messagesMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Transient fetch failures keep the previous timeline.
		return m, nil
	}
	room := m.activeRoom()
	if room == nil || room.RoomID() != msg.roomID {
		return m, nil
	}
	wasBottom := m.timeline.AtBottom()
	room.SetMessages(msg.messages)
	m.timeline.SetContent(room.View())
	if wasBottom {
		m.timeline.GotoBottom()
	}
	return m, nil
}

// watchRoom re-targets the member subscription at a room. The source
// store notifies on the poller goroutine, so the callback only feeds the
// debounced binding; the filtered result comes back as a message.
func (m *Model) watchRoom(roomID string) {
	if m.cancelMembers != nil {
		m.cancelMembers()
	}
	binding := m.pane.binding
	m.cancelMembers = m.members.Subscribe(state.Key{Kind: "member", Scope: roomID}, func(entries []backend.Member) {
		if binding != nil {
			binding.SetSource(entries)
		}
	})
}

func (m Model) activeRoom() *pages.RoomPage {
	if m.controller == nil {
		return nil
	}
	room, _ := m.controller.ActivePage().(*pages.RoomPage)
	return room
}

func (m Model) contentWidth() int {
	width := m.width
	if m.pane.open {
		width -= paneWidth
	}
	if width < 20 {
		width = 20
	}
	return width
}

func (m Model) contentHeight() int {
	height := m.height - 4 // header, status flash, composer, key bar
	if height < 3 {
		height = 3
	}
	return height
}

// Messages

type tickMsg time.Time

type backendReadyMsg struct {
	hasAccounts bool
}

type pageShownMsg struct {
	ref      nav.PageRef
	recycled bool
}

type previousShownMsg nav.PageRef

type filteredMembersMsg []backend.Member

type logLinesMsg []string

type messagesMsg struct {
	roomID   string
	messages []backend.Message
	err      error
}

type prefsReloadedMsg prefs.Prefs

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	if d <= 0 {
		d = 2 * time.Second
	}
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func readLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := logtail.Read(path, 200)
		if err != nil {
			log.Printf("read client log: %v", err)
			return logLinesMsg(nil)
		}
		return logLinesMsg(lines)
	}
}

func fetchMessagesCmd(ctx context.Context, client backend.Fetcher, accountID, roomID string) tea.Cmd {
	return func() tea.Msg {
		messages, err := client.FetchMessages(ctx, accountID, roomID)
		return messagesMsg{roomID: roomID, messages: messages, err: err}
	}
}

// waitForBackend polls the daemon's readiness probe and reports the
// account existence query once it comes up.
func waitForBackend(ctx context.Context, client backend.Fetcher, p *tea.Program) {
	ticker := time.NewTicker(backendProbeTick)
	defer ticker.Stop()

	for {
		ready, err := client.Ready(ctx)
		if err == nil && ready {
			hasAccounts, err := client.HasSavedAccounts(ctx)
			if err == nil {
				p.Send(backendReadyMsg{hasAccounts: hasAccounts})
				return
			}
			log.Printf("account query failed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Run starts the Bubble Tea program and blocks until exit.
func Run(opts Options) error {
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())

	// The filtered member sequence and navigation events arrive as
	// program messages so all UI state changes stay on the event loop.
	m.pane.binding = filter.New(opts.Config.FilterDebounce, func(members []backend.Member) {
		p.Send(filteredMembersMsg(members))
	})
	defer m.pane.binding.Close()

	m.controller.OnLoaded(func(ref nav.PageRef) {
		p.Send(pageShownMsg{ref: ref})
		if opts.OnNavigate != nil {
			opts.OnNavigate(ref)
		}
	})
	m.controller.OnRecycled(func(ref nav.PageRef) {
		p.Send(pageShownMsg{ref: ref, recycled: true})
		if opts.OnNavigate != nil {
			opts.OnNavigate(ref)
		}
	})
	m.controller.OnPreviousShown(func(ref nav.PageRef) {
		p.Send(previousShownMsg(ref))
	})

	go waitForBackend(m.ctx, m.client, p)

	if opts.PrefsPath != "" {
		if err := prefs.Watch(m.ctx, opts.PrefsPath, func(loaded prefs.Prefs) {
			p.Send(prefsReloadedMsg(loaded))
		}); err != nil {
			log.Printf("watch prefs: %v", err)
		}
	}

	_, err = p.Run()
	return err
}
