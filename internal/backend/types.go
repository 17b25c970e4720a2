package backend

import (
	"strings"
	"time"
)

// Account is a logged-in account known to the daemon.
type Account struct {
	ID            string    `json:"id"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     string    `json:"avatar_url"`
	FirstSyncDone bool      `json:"first_sync_done"`
	ProfileAt     time.Time `json:"profile_updated"`
}

// Name returns the account's display name, falling back to the user ID
// without its leading sigil.
func (a Account) Name() string {
	return nameOrID(a.DisplayName, a.ID)
}

// Room is a room the account is invited to, a member of, or has left.
type Room struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	MainAlias   string    `json:"main_alias"`
	AvatarURL   string    `json:"avatar_url"`
	Topic       string    `json:"topic"`
	InviterID   string    `json:"inviter_id"`
	Left        bool      `json:"left"`
	Encrypted   bool      `json:"encrypted"`
	LastEventAt time.Time `json:"last_event_at"`
}

// Name returns the room's display name, falling back to its ID.
func (r Room) Name() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	return r.ID
}

// Less orders rooms for the room list: invited first, then joined, then
// left; within a bucket, most recent activity first, then name.
func (r Room) Less(other Room) bool {
	if r.Left != other.Left {
		return !r.Left
	}
	if (r.InviterID != "") != (other.InviterID != "") {
		return r.InviterID != ""
	}
	if !r.LastEventAt.Equal(other.LastEventAt) {
		return r.LastEventAt.After(other.LastEventAt)
	}
	return strings.ToLower(r.Name()) < strings.ToLower(other.Name())
}

// Member is a participant in a room.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	PowerLevel  int    `json:"power_level"`
	Typing      bool   `json:"typing"`
	Invited     bool   `json:"invited"`
}

// Name returns the member's display name, falling back to the user ID
// without its leading sigil.
func (m Member) Name() string {
	return nameOrID(m.DisplayName, m.ID)
}

// Less orders members by power level (highest first), then by name.
func (m Member) Less(other Member) bool {
	if m.PowerLevel != other.PowerLevel {
		return m.PowerLevel > other.PowerLevel
	}
	return strings.ToLower(m.Name()) < strings.ToLower(other.Name())
}

// Message is a room timeline event. Body is markdown. Local messages are
// composer echoes not yet confirmed by the daemon; they carry the
// transaction ID the daemon will echo back.
type Message struct {
	ID            string    `json:"id"`
	TransactionID string    `json:"transaction_id,omitempty"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	Body          string    `json:"body"`
	SentAt        time.Time `json:"sent_at"`
	Local         bool      `json:"-"`
}

func nameOrID(displayName, id string) string {
	if displayName != "" {
		return displayName
	}
	if len(id) > 1 && (id[0] == '@' || id[0] == '!' || id[0] == '#') {
		return id[1:]
	}
	return id
}
