package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/parlorchat/parlor/internal/backend"
	"github.com/parlorchat/parlor/internal/nav"
)

// Page identifiers registered with the navigation controller.
const (
	Room       = "chat/room"
	AddAccount = "account/add"
	Welcome    = "welcome"
)

const defaultWrapWidth = 80

// RoomPage is the primary content view: a room's timeline plus composer.
// It is the only recyclable page; switching rooms reuses the instance and
// its renderer instead of rebuilding them, and returning to the same room
// keeps scroll position, loaded messages and the composer draft alive.
type RoomPage struct {
	accountID string
	roomID    string

	renderer  *glamour.TermRenderer
	wrapWidth int

	messages []backend.Message
	pending  []backend.Message
	draft    string
	scroll   int
	focused  bool
}

// RoomFactory constructs RoomPage instances; registered as the recyclable
// factory for the Room identifier.
func RoomFactory(props map[string]any) (nav.Page, error) {
	accountID, roomID, err := roomProps(props, true)
	if err != nil {
		return nil, err
	}
	renderer, err := newRenderer(defaultWrapWidth)
	if err != nil {
		return nil, fmt.Errorf("markdown renderer: %w", err)
	}
	return &RoomPage{
		accountID: accountID,
		roomID:    roomID,
		renderer:  renderer,
		wrapWidth: defaultWrapWidth,
	}, nil
}

func newRenderer(wrap int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
}

// roomProps validates a room property bag. When required is false, absent
// keys are allowed (partial updates for recycling); present keys must
// still be well-typed strings.
func roomProps(props map[string]any, required bool) (accountID, roomID string, err error) {
	for key := range props {
		if key != "account_id" && key != "room_id" {
			return "", "", fmt.Errorf("unknown room property %q", key)
		}
	}
	accountID, err = stringProp(props, "account_id", required)
	if err != nil {
		return "", "", err
	}
	roomID, err = stringProp(props, "room_id", required)
	if err != nil {
		return "", "", err
	}
	return accountID, roomID, nil
}

func stringProp(props map[string]any, key string, required bool) (string, error) {
	raw, present := props[key]
	if !present {
		if required {
			return "", fmt.Errorf("property %q is required", key)
		}
		return "", nil
	}
	value, ok := raw.(string)
	if !ok || value == "" {
		return "", fmt.Errorf("property %q must be a non-empty string", key)
	}
	return value, nil
}

// ID implements nav.Page.
func (p *RoomPage) ID() string { return Room }

// Apply implements nav.Page. The whole update is validated before any
// field changes; switching to a different room resets the loaded
// timeline, scroll position and draft, while re-showing the current room
// keeps them.
func (p *RoomPage) Apply(props map[string]any) error {
	accountID, roomID, err := roomProps(props, false)
	if err != nil {
		return err
	}

	changed := (roomID != "" && roomID != p.roomID) ||
		(accountID != "" && accountID != p.accountID)
	if accountID != "" {
		p.accountID = accountID
	}
	if roomID != "" {
		p.roomID = roomID
	}
	if changed {
		p.messages = nil
		p.pending = nil
		p.draft = ""
		p.scroll = 0
	}
	return nil
}

// Focus implements nav.Page.
func (p *RoomPage) Focus() { p.focused = true }

// Blur drops input focus, used when the side pane takes over.
func (p *RoomPage) Blur() { p.focused = false }

// Close implements nav.Page.
func (p *RoomPage) Close() {
	p.messages = nil
	p.pending = nil
	p.renderer = nil
}

// AccountID returns the account this view reads through.
func (p *RoomPage) AccountID() string { return p.accountID }

// RoomID returns the room currently shown.
func (p *RoomPage) RoomID() string { return p.roomID }

// Focused reports whether the composer has input focus.
func (p *RoomPage) Focused() bool { return p.focused }

// SetWrapWidth adjusts markdown wrapping to the available width.
func (p *RoomPage) SetWrapWidth(width int) {
	if width <= 0 || width == p.wrapWidth {
		return
	}
	renderer, err := newRenderer(width)
	if err != nil {
		return
	}
	p.wrapWidth = width
	p.renderer = renderer
}

// SetMessages replaces the confirmed timeline. Pending local echoes whose
// transaction IDs now appear in the timeline are dropped.
func (p *RoomPage) SetMessages(messages []backend.Message) {
	p.messages = append(p.messages[:0:0], messages...)

	if len(p.pending) == 0 {
		return
	}
	confirmed := make(map[string]bool, len(messages))
	for _, m := range messages {
		if m.TransactionID != "" {
			confirmed[m.TransactionID] = true
		}
	}
	var remaining []backend.Message
	for _, m := range p.pending {
		if !confirmed[m.TransactionID] {
			remaining = append(remaining, m)
		}
	}
	p.pending = remaining
}

// Draft returns the composer text.
func (p *RoomPage) Draft() string { return p.draft }

// SetDraft replaces the composer text.
func (p *RoomPage) SetDraft(text string) { p.draft = text }

// QueueDraft turns the current draft into a pending local message tagged
// with a fresh transaction ID and clears the composer. Returns false when
// the draft is blank.
func (p *RoomPage) QueueDraft(senderID, senderName string) (backend.Message, bool) {
	body := strings.TrimSpace(p.draft)
	if body == "" {
		return backend.Message{}, false
	}
	msg := backend.Message{
		TransactionID: uuid.NewString(),
		SenderID:      senderID,
		SenderName:    senderName,
		Body:          body,
		SentAt:        time.Now(),
		Local:         true,
	}
	p.pending = append(p.pending, msg)
	p.draft = ""
	return msg, true
}

// Scroll returns the timeline scroll offset.
func (p *RoomPage) Scroll() int { return p.scroll }

// SetScroll records the timeline scroll offset so it survives recycling.
func (p *RoomPage) SetScroll(offset int) {
	if offset < 0 {
		offset = 0
	}
	p.scroll = offset
}

// View renders the timeline, confirmed messages first, then pending local
// echoes.
func (p *RoomPage) View() string {
	var b strings.Builder
	for _, m := range p.messages {
		b.WriteString(p.renderMessage(m))
	}
	for _, m := range p.pending {
		b.WriteString(p.renderMessage(m))
	}
	if b.Len() == 0 {
		return "No messages yet.\n"
	}
	return b.String()
}

func (p *RoomPage) renderMessage(m backend.Message) string {
	sender := m.SenderName
	if sender == "" {
		sender = m.SenderID
	}
	marker := ""
	if m.Local {
		marker = " (sending)"
	}

	body := m.Body
	if p.renderer != nil {
		if rendered, err := p.renderer.Render(m.Body); err == nil {
			body = strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	return fmt.Sprintf("%s · %s%s\n%s", sender, m.SentAt.Format("15:04"), marker, body)
}
