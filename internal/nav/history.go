package nav

// DefaultHistoryCapacity bounds the navigation history when no explicit
// capacity is configured.
const DefaultHistoryCapacity = 20

// PageRef identifies a navigable destination: a page identifier plus the
// property bag handed to the page. Props are opaque to the navigator and
// immutable once pushed.
type PageRef struct {
	Page  string
	Props map[string]any
}

func cloneProps(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	clone := make(map[string]any, len(props))
	for k, v := range props {
		clone[k] = v
	}
	return clone
}

// History is a bounded, most-recent-first record of visited pages.
// Every navigation pushes an entry; "back" replays a remembered entry
// rather than popping, so the sequence only grows until capacity evicts
// the oldest tail entries.
type History struct {
	capacity int
	entries  []PageRef
}

// NewHistory returns a history bounded to the given capacity. Zero or
// negative capacities fall back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Push records ref as the most recent entry, evicting the oldest entry
// when capacity is exceeded. The property bag is copied so later mutation
// by the caller cannot rewrite history.
func (h *History) Push(ref PageRef) {
	ref.Props = cloneProps(ref.Props)
	h.entries = append([]PageRef{ref}, h.entries...)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// EntryAt returns the entry distance steps back; distance 0 is the current
// entry.
func (h *History) EntryAt(distance int) (PageRef, error) {
	if distance < 0 || distance >= len(h.entries) {
		return PageRef{}, &OutOfRangeError{Distance: distance, Length: len(h.entries)}
	}
	return h.entries[distance], nil
}

// ClampBack bounds a requested back distance to what the history can
// satisfy, flooring at 0 so "go back further than recorded" degrades to a
// no-op instead of an error.
func (h *History) ClampBack(requested int) int {
	max := len(h.entries) - 1
	if max < 0 {
		max = 0
	}
	if requested > max {
		return max
	}
	if requested < 0 {
		return 0
	}
	return requested
}

// Len returns the number of recorded entries.
func (h *History) Len() int { return len(h.entries) }
