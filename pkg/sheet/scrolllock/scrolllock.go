// Package scrolllock pins the background pane while a sheet is open and
// restores its exact scroll state on close.
//
// The lock is a single-owner resource: multiple independently mounted
// sheets share one Manager, and only the first opener snapshots the
// background. A second acquire is rejected explicitly rather than
// stacking snapshots.
package scrolllock

import "errors"

// ErrHeld is returned by Acquire while another sheet already holds the
// lock. Callers treat it as benign: the first opener's snapshot stays
// authoritative.
var ErrHeld = errors.New("scrolllock: lock already held")

// Scroller is the background pane being locked. Hosts adapt their
// scrolling surface (a viewport, a page, a document body) to this
// interface.
type Scroller interface {
	// Offset returns the current scroll offset.
	Offset() int
	// SetOffset restores a previously observed scroll offset.
	SetOffset(int)
	// Location identifies the content being shown. If it changes while
	// locked (in-app navigation), the offset is not restored.
	Location() string
	// SetFrozen toggles whether the pane accepts scroll input.
	SetFrozen(bool)
}

type snapshot struct {
	owner    Scroller
	offset   int
	location string
}

// Manager owns at most one background lock at a time. The zero value is
// ready to use.
type Manager struct {
	snap *snapshot
}

// Default is the process-wide manager shared by sheet instances, mirroring
// the one-owner invariant across independently mounted sheets.
var Default = &Manager{}

// Held reports whether a snapshot is currently held.
func (m *Manager) Held() bool {
	return m.snap != nil
}

// Acquire snapshots the scroller's state and freezes it. It returns
// ErrHeld if a snapshot already exists; the scroller is left untouched in
// that case.
func (m *Manager) Acquire(s Scroller) error {
	if s == nil {
		return nil
	}
	if m.snap != nil {
		return ErrHeld
	}
	m.snap = &snapshot{
		owner:    s,
		offset:   s.Offset(),
		location: s.Location(),
	}
	s.SetFrozen(true)
	return nil
}

// Restore unfreezes the scroller and reapplies the snapshotted offset,
// unless the location changed while locked. Only the scroller that was
// snapshotted is restored; a sheet whose Acquire was rejected cannot
// release another sheet's lock. The snapshot is cleared unconditionally
// on a matching restore, so a second Restore is a no-op.
func (m *Manager) Restore(s Scroller) {
	if m.snap == nil || s == nil || m.snap.owner != s {
		return
	}
	snap := m.snap
	m.snap = nil
	s.SetFrozen(false)
	if s.Location() == snap.location {
		s.SetOffset(snap.offset)
	}
}
