package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/parlorchat/parlor/internal/backend"
	"github.com/parlorchat/parlor/internal/state"
)

const defaultPollInterval = 2 * time.Second

// Poller refreshes the member list of the currently shown room at a
// fixed cadence and publishes it to the state store. Navigation
// re-targets it; pages without a room clear the target and the poller
// stays idle until one returns.
type Poller struct {
	client   backend.Fetcher
	members  *state.Store[backend.Member]
	interval time.Duration

	mu        sync.Mutex
	accountID string
	roomID    string
}

func NewPoller(client backend.Fetcher, members *state.Store[backend.Member], interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Poller{
		client:   client,
		members:  members,
		interval: interval,
	}
}

// SetTarget points the poller at a room and refreshes it immediately on
// the caller's next tick.
func (p *Poller) SetTarget(accountID, roomID string) {
	p.mu.Lock()
	p.accountID = accountID
	p.roomID = roomID
	p.mu.Unlock()
}

// ClearTarget idles the poller.
func (p *Poller) ClearTarget() {
	p.SetTarget("", "")
}

func (p *Poller) target() (accountID, roomID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.accountID, p.roomID
}

// Start launches the background refresh goroutine. It returns
// immediately and stops when the context is cancelled.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			p.refresh(ctx)
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

func (p *Poller) refresh(ctx context.Context) {
	accountID, roomID := p.target()
	if accountID == "" || roomID == "" {
		return
	}

	members, err := p.client.FetchMembers(ctx, accountID, roomID)
	if err != nil {
		log.Printf("member poll failed for %s: %v", roomID, err)
		return
	}

	// Stale responses for a room we already left are dropped.
	if _, current := p.target(); current != roomID {
		return
	}
	p.members.Replace(state.Key{Kind: "member", Scope: roomID}, members)
}
