package state

import "testing"

type entity struct {
	ID   string
	Name string
}

func TestStore_ReplaceAndSource(t *testing.T) {
	s := NewStore[entity]()
	key := Key{Kind: "member", Scope: "!room:x"}

	if got := s.Source(key); got != nil {
		t.Fatalf("Source before Replace = %v, want nil", got)
	}

	s.Replace(key, []entity{{ID: "@a"}, {ID: "@b"}})

	got := s.Source(key)
	if len(got) != 2 || got[0].ID != "@a" {
		t.Fatalf("Source = %v, want [@a @b]", got)
	}
}

func TestStore_SourceIsACopy(t *testing.T) {
	s := NewStore[entity]()
	key := Key{Kind: "member", Scope: "!room:x"}

	in := []entity{{ID: "@a", Name: "A"}}
	s.Replace(key, in)

	// Mutating the producer slice after Replace must not leak in.
	in[0].Name = "mutated"
	if got := s.Source(key); got[0].Name != "A" {
		t.Fatalf("stored entry mutated through producer slice: %v", got)
	}

	// Mutating a returned copy must not leak back.
	out := s.Source(key)
	out[0].Name = "mutated"
	if got := s.Source(key); got[0].Name != "A" {
		t.Fatalf("stored entry mutated through consumer slice: %v", got)
	}
}

func TestStore_SubscribeNotifiesOnReplace(t *testing.T) {
	s := NewStore[entity]()
	key := Key{Kind: "member", Scope: "!room:x"}

	var got [][]entity
	cancel := s.Subscribe(key, func(entries []entity) {
		got = append(got, entries)
	})
	defer cancel()

	s.Replace(key, []entity{{ID: "@a"}})
	s.Replace(key, []entity{{ID: "@a"}, {ID: "@b"}})

	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if len(got[1]) != 2 {
		t.Fatalf("second notification = %v, want two entries", got[1])
	}
}

func TestStore_SubscribeDeliversCurrentState(t *testing.T) {
	s := NewStore[entity]()
	key := Key{Kind: "member", Scope: "!room:x"}
	s.Replace(key, []entity{{ID: "@a"}})

	var got []entity
	cancel := s.Subscribe(key, func(entries []entity) { got = entries })
	defer cancel()

	if len(got) != 1 || got[0].ID != "@a" {
		t.Fatalf("late subscriber got %v, want current state", got)
	}
}

func TestStore_CancelStopsNotifications(t *testing.T) {
	s := NewStore[entity]()
	key := Key{Kind: "member", Scope: "!room:x"}

	calls := 0
	cancel := s.Subscribe(key, func([]entity) { calls++ })

	s.Replace(key, []entity{{ID: "@a"}})
	cancel()
	s.Replace(key, []entity{{ID: "@b"}})

	if calls != 1 {
		t.Fatalf("calls = %d, want 1 after cancel", calls)
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	s := NewStore[entity]()
	room1 := Key{Kind: "member", Scope: "!room1:x"}
	room2 := Key{Kind: "member", Scope: "!room2:x"}

	calls := 0
	cancel := s.Subscribe(room1, func([]entity) { calls++ })
	defer cancel()

	s.Replace(room2, []entity{{ID: "@a"}})
	if calls != 0 {
		t.Fatal("subscriber notified for a different key")
	}
	if got := s.Source(room1); got != nil {
		t.Fatalf("Source(room1) = %v, want nil", got)
	}
}
