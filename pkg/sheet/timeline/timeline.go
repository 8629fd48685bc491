// Package timeline provides a cooperative deadline scheduler for deferred
// UI effects.
//
// Tasks are not backed by goroutines or real timers. The owning component
// schedules work with a deadline and pumps the scheduler from its event
// loop (a tick message in Bubble Tea, a synthetic clock in tests), which
// keeps every callback on the single UI goroutine and makes animation
// sequencing deterministic.
package timeline

import (
	"sort"
	"time"
)

// Token identifies a scheduled task so it can be cancelled before firing.
// The zero Token is never issued.
type Token uint64

type task struct {
	token    Token
	deadline time.Time
	seq      uint64
	fn       func()
}

// Scheduler holds pending tasks ordered by deadline. The zero value is
// ready to use.
type Scheduler struct {
	tasks []task
	seq   uint64
}

// Schedule registers fn to run once d has elapsed from now. It returns a
// Token that cancels the task if passed to Cancel before the deadline.
func (s *Scheduler) Schedule(now time.Time, d time.Duration, fn func()) Token {
	s.seq++
	t := task{
		token:    Token(s.seq),
		deadline: now.Add(d),
		seq:      s.seq,
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return t.token
}

// Cancel removes a pending task. Cancelling an unknown or already-fired
// token is a no-op, so callers can cancel unconditionally before
// rescheduling.
func (s *Scheduler) Cancel(tok Token) {
	for i, t := range s.tasks {
		if t.token == tok {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

// Advance fires every task whose deadline is at or before now, in deadline
// order (insertion order breaks ties). Callbacks may schedule or cancel
// further tasks; tasks scheduled during Advance only fire on a later call,
// even if their deadline has already passed.
func (s *Scheduler) Advance(now time.Time) {
	due := make([]task, 0, len(s.tasks))
	rest := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.deadline.After(now) {
			due = append(due, t)
		} else {
			rest = append(rest, t)
		}
	}
	s.tasks = rest
	sort.Slice(due, func(i, j int) bool {
		if !due[i].deadline.Equal(due[j].deadline) {
			return due[i].deadline.Before(due[j].deadline)
		}
		return due[i].seq < due[j].seq
	})
	for _, t := range due {
		t.fn()
	}
}

// Pending reports the number of tasks waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// Next returns the earliest pending deadline. ok is false when nothing is
// scheduled.
func (s *Scheduler) Next() (deadline time.Time, ok bool) {
	for i, t := range s.tasks {
		if i == 0 || t.deadline.Before(deadline) {
			deadline = t.deadline
		}
	}
	return deadline, len(s.tasks) > 0
}
