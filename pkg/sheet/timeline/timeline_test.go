package timeline

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScheduleAndAdvance(t *testing.T) {
	var s Scheduler
	var fired []string

	s.Schedule(t0, 100*time.Millisecond, func() { fired = append(fired, "a") })
	s.Schedule(t0, 300*time.Millisecond, func() { fired = append(fired, "b") })

	// Nothing due yet.
	s.Advance(t0.Add(50 * time.Millisecond))
	if len(fired) != 0 {
		t.Fatalf("fired %v before any deadline", fired)
	}

	// Only the first task is due.
	s.Advance(t0.Add(150 * time.Millisecond))
	if len(fired) != 1 || fired[0] != "a" {
		t.Fatalf("after 150ms fired = %v, want [a]", fired)
	}

	// The rest fires later.
	s.Advance(t0.Add(400 * time.Millisecond))
	if len(fired) != 2 || fired[1] != "b" {
		t.Fatalf("after 400ms fired = %v, want [a b]", fired)
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}
}

func TestAdvanceFiresInDeadlineOrder(t *testing.T) {
	var s Scheduler
	var fired []string

	// Scheduled out of deadline order on purpose.
	s.Schedule(t0, 300*time.Millisecond, func() { fired = append(fired, "late") })
	s.Schedule(t0, 100*time.Millisecond, func() { fired = append(fired, "early") })

	s.Advance(t0.Add(time.Second))
	if len(fired) != 2 || fired[0] != "early" || fired[1] != "late" {
		t.Fatalf("fired = %v, want [early late]", fired)
	}
}

func TestCancel(t *testing.T) {
	var s Scheduler
	fired := false

	tok := s.Schedule(t0, 100*time.Millisecond, func() { fired = true })
	s.Cancel(tok)
	s.Advance(t0.Add(time.Second))

	if fired {
		t.Error("cancelled task fired")
	}

	// Cancelling again, or cancelling an unknown token, is a no-op.
	s.Cancel(tok)
	s.Cancel(Token(999))
}

func TestCancelBeforeReschedule(t *testing.T) {
	var s Scheduler
	var fired []string

	// The nested-drawer pattern: an older cleanup task is cancelled before
	// a newer one is scheduled, so only the newest fires.
	tok := s.Schedule(t0, 100*time.Millisecond, func() { fired = append(fired, "stale") })
	s.Cancel(tok)
	s.Schedule(t0.Add(50*time.Millisecond), 100*time.Millisecond, func() { fired = append(fired, "fresh") })

	s.Advance(t0.Add(time.Second))
	if len(fired) != 1 || fired[0] != "fresh" {
		t.Fatalf("fired = %v, want [fresh]", fired)
	}
}

func TestScheduleDuringAdvanceDefers(t *testing.T) {
	var s Scheduler
	var fired []string

	s.Schedule(t0, 10*time.Millisecond, func() {
		fired = append(fired, "outer")
		// Already past its deadline, but must wait for the next pump.
		s.Schedule(t0, time.Millisecond, func() { fired = append(fired, "inner") })
	})

	s.Advance(t0.Add(time.Second))
	if len(fired) != 1 || fired[0] != "outer" {
		t.Fatalf("first pump fired = %v, want [outer]", fired)
	}

	s.Advance(t0.Add(2 * time.Second))
	if len(fired) != 2 || fired[1] != "inner" {
		t.Fatalf("second pump fired = %v, want [outer inner]", fired)
	}
}

func TestNext(t *testing.T) {
	var s Scheduler

	if _, ok := s.Next(); ok {
		t.Fatal("Next() reported a deadline on an empty scheduler")
	}

	s.Schedule(t0, 300*time.Millisecond, func() {})
	s.Schedule(t0, 100*time.Millisecond, func() {})

	deadline, ok := s.Next()
	if !ok {
		t.Fatal("Next() = !ok with pending tasks")
	}
	if want := t0.Add(100 * time.Millisecond); !deadline.Equal(want) {
		t.Errorf("Next() = %v, want %v", deadline, want)
	}
}
