// Package filter provides a debounced text filter over a list data
// source, republishing the filtered view for list widgets such as the
// room member pane.
package filter

import (
	"strings"
	"sync"
	"time"
)

// DefaultDelay is the debounce window applied between an input change and
// the recompute it schedules.
const DefaultDelay = 16 * time.Millisecond

// Named is an entry with a display name the filter can match against.
type Named interface {
	Name() string
}

// Binding holds a raw source sequence and a filter string and publishes
// the filtered subsequence whenever either changes. Recomputes are
// debounced: a burst of changes inside the delay window collapses into a
// single pass over the final values. The source is never mutated; every
// publish hands out a fresh slice.
type Binding[T Named] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	source  []T
	text    string
	publish func([]T)
	closed  bool
}

// New creates a binding that calls publish with the filtered sequence
// after each debounced recompute. A zero delay uses DefaultDelay. The
// publish callback runs on the timer goroutine.
func New[T Named](delay time.Duration, publish func([]T)) *Binding[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Binding[T]{delay: delay, publish: publish}
}

// SetSource replaces the raw sequence and schedules a recompute.
func (b *Binding[T]) SetSource(entries []T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.source = append(b.source[:0:0], entries...)
	b.schedule()
}

// SetText replaces the filter text and schedules a recompute.
func (b *Binding[T]) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.text = text
	b.schedule()
}

// Close cancels any pending recompute. Further input changes are ignored.
func (b *Binding[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

// schedule restarts the debounce timer. Each change resets the pending
// delay instead of stacking an extra pass. Caller holds b.mu.
func (b *Binding[T]) schedule() {
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.delay, b.recompute)
}

// recompute runs one filter pass and publishes the result.
func (b *Binding[T]) recompute() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	filtered := Apply(b.source, b.text)
	publish := b.publish
	b.mu.Unlock()

	if publish != nil {
		publish(filtered)
	}
}

// Apply returns the ordered subsequence of entries whose name contains
// text, case-insensitively. Empty text keeps every entry. Entries without
// a usable name never match a non-empty filter; they are skipped rather
// than aborting the pass.
func Apply[T Named](entries []T, text string) []T {
	if strings.TrimSpace(text) == "" {
		return append([]T(nil), entries...)
	}
	needle := strings.ToLower(text)
	var out []T
	for _, entry := range entries {
		name := entry.Name()
		if name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(name), needle) {
			out = append(out, entry)
		}
	}
	return out
}
