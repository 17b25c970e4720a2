package filter

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type member struct {
	name string
}

func (m member) Name() string { return m.name }

func names(entries []member) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.name)
	}
	return out
}

func TestApply_CaseInsensitiveSubstring(t *testing.T) {
	source := []member{{"Alice"}, {"bob"}, {"Charlie"}}

	got := names(Apply(source, "a"))
	want := []string{"Alice", "Charlie"}
	if len(got) != len(want) {
		t.Fatalf("Apply = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Apply = %v, want %v (order preserved from source)", got, want)
		}
	}
}

func TestApply_EmptyFilterIsIdentity(t *testing.T) {
	source := []member{{"Alice"}, {"bob"}, {"Charlie"}}

	got := Apply(source, "")
	if len(got) != 3 {
		t.Fatalf("Apply with empty filter = %v, want all entries", names(got))
	}
	got = Apply(source, "   ")
	if len(got) != 3 {
		t.Fatalf("Apply with blank filter = %v, want all entries", names(got))
	}
}

func TestApply_MalformedEntriesAreSkipped(t *testing.T) {
	source := []member{{"Alice"}, {""}, {"alba"}}

	got := names(Apply(source, "al"))
	if len(got) != 2 || got[0] != "Alice" || got[1] != "alba" {
		t.Fatalf("Apply = %v, want [Alice alba]", got)
	}
}

func TestApply_DoesNotMutateSource(t *testing.T) {
	source := []member{{"Alice"}, {"bob"}}
	Apply(source, "alice")
	if source[0].name != "Alice" || source[1].name != "bob" {
		t.Fatalf("source mutated: %v", names(source))
	}
}

// collector records every publish for debounce assertions.
type collector struct {
	mu     sync.Mutex
	passes [][]member
}

func (c *collector) publish(entries []member) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passes = append(c.passes, entries)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.passes)
}

func (c *collector) last() []member {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.passes) == 0 {
		return nil
	}
	return c.passes[len(c.passes)-1]
}

func TestBinding_RapidChangesCoalesceIntoOnePass(t *testing.T) {
	var got collector
	b := New[member](30*time.Millisecond, got.publish)
	defer b.Close()

	b.SetSource([]member{{"Alice"}, {"bob"}, {"Charlie"}})
	for i := 0; i < 10; i++ {
		b.SetText(fmt.Sprintf("partial-%d", i))
	}
	b.SetText("a")

	deadline := time.After(2 * time.Second)
	for got.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no recompute published")
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Give any (incorrect) extra passes time to land.
	time.Sleep(100 * time.Millisecond)
	if got.count() != 1 {
		t.Fatalf("recomputes = %d, want 1 (burst must coalesce)", got.count())
	}
	last := names(got.last())
	if len(last) != 2 || last[0] != "Alice" || last[1] != "Charlie" {
		t.Fatalf("published = %v, want final text applied: [Alice Charlie]", last)
	}
}

func TestBinding_SourceChangeReschedules(t *testing.T) {
	var got collector
	b := New[member](20*time.Millisecond, got.publish)
	defer b.Close()

	b.SetText("a")
	b.SetSource([]member{{"Alice"}})
	b.SetSource([]member{{"Alice"}, {"Charlie"}})

	time.Sleep(150 * time.Millisecond)
	if got.count() != 1 {
		t.Fatalf("recomputes = %d, want 1", got.count())
	}
	if len(got.last()) != 2 {
		t.Fatalf("published = %v, want latest source", names(got.last()))
	}
}

func TestBinding_CloseCancelsPendingPass(t *testing.T) {
	var got collector
	b := New[member](30*time.Millisecond, got.publish)

	b.SetSource([]member{{"Alice"}})
	b.Close()

	time.Sleep(100 * time.Millisecond)
	if got.count() != 0 {
		t.Fatalf("recomputes after Close = %d, want 0", got.count())
	}

	// Input changes after Close stay ignored.
	b.SetText("a")
	time.Sleep(100 * time.Millisecond)
	if got.count() != 0 {
		t.Fatalf("recomputes after post-Close change = %d, want 0", got.count())
	}
}

func TestBinding_ZeroDelayUsesDefault(t *testing.T) {
	var got collector
	b := New[member](0, got.publish)
	defer b.Close()

	b.SetSource([]member{{"Alice"}})
	time.Sleep(200 * time.Millisecond)
	if got.count() != 1 {
		t.Fatalf("recomputes = %d, want 1", got.count())
	}
}
