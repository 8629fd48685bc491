package scrolllock

import "testing"

// fakeScroller records the mutations the lock performs on it.
type fakeScroller struct {
	offset   int
	location string
	frozen   bool
	setCalls int
}

func (s *fakeScroller) Offset() int      { return s.offset }
func (s *fakeScroller) Location() string { return s.location }
func (s *fakeScroller) SetFrozen(f bool) { s.frozen = f }
func (s *fakeScroller) SetOffset(off int) {
	s.offset = off
	s.setCalls++
}

func TestAcquireRestore(t *testing.T) {
	var m Manager
	s := &fakeScroller{offset: 42, location: "doc-a"}

	if err := m.Acquire(s); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if !s.frozen {
		t.Error("scroller not frozen after Acquire")
	}
	if !m.Held() {
		t.Error("Held() = false after Acquire")
	}

	// Background offset drifts while locked (programmatic scroll).
	s.offset = 0

	m.Restore(s)
	if s.frozen {
		t.Error("scroller still frozen after Restore")
	}
	if s.offset != 42 {
		t.Errorf("offset = %d after Restore, want 42", s.offset)
	}
	if m.Held() {
		t.Error("Held() = true after Restore")
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	var m Manager
	s := &fakeScroller{offset: 7, location: "doc-a"}

	if err := m.Acquire(s); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	m.Restore(s)
	calls := s.setCalls

	// Second restore must not touch the scroller again.
	m.Restore(s)
	if s.setCalls != calls {
		t.Errorf("second Restore mutated the scroller (%d calls, want %d)", s.setCalls, calls)
	}
}

func TestSecondAcquireRejected(t *testing.T) {
	var m Manager
	first := &fakeScroller{offset: 10, location: "doc-a"}
	second := &fakeScroller{offset: 99, location: "doc-b"}

	if err := m.Acquire(first); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if err := m.Acquire(second); err != ErrHeld {
		t.Fatalf("second Acquire = %v, want ErrHeld", err)
	}
	if second.frozen {
		t.Error("rejected Acquire froze the scroller")
	}

	// The first opener's snapshot is still the one restored.
	first.offset = 0
	m.Restore(first)
	if first.offset != 10 {
		t.Errorf("offset = %d, want 10", first.offset)
	}
}

func TestLocationChangeSkipsOffsetRestore(t *testing.T) {
	var m Manager
	s := &fakeScroller{offset: 30, location: "doc-a"}

	if err := m.Acquire(s); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	// In-app navigation while locked: restoring the old offset would
	// jump on the new content.
	s.location = "doc-b"
	s.offset = 0

	m.Restore(s)
	if s.offset != 0 {
		t.Errorf("offset = %d, want 0 (restore skipped on navigation)", s.offset)
	}
	if s.frozen {
		t.Error("scroller still frozen after Restore")
	}
	if m.Held() {
		t.Error("snapshot not cleared after skipped restore")
	}
}

func TestNilScrollerIsNoOp(t *testing.T) {
	var m Manager
	if err := m.Acquire(nil); err != nil {
		t.Errorf("Acquire(nil) = %v, want nil", err)
	}
	if m.Held() {
		t.Error("Held() = true after Acquire(nil)")
	}
	m.Restore(nil)
}
