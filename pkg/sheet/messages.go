package sheet

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives sheet animations and deferred effects. The sheet
// schedules its own ticks while anything is in flight; hosts only need to
// route the message back to Update.
type TickMsg time.Time

// ViewportResizeMsg reports a visible-viewport change: host chrome, an
// input dock, or an on-screen keyboard eating rows at the bottom of the
// window.
type ViewportResizeMsg struct {
	// WindowRows is the full terminal height.
	WindowRows int
	// VisibleRows is the height not obscured by the keyboard/chrome.
	VisibleRows int
}

// NestedOpenChangedMsg is emitted by a nested sheet when it opens or
// closes. Hosts forward it to the parent sheet's Update.
type NestedOpenChangedMsg struct {
	Open bool
}

// NestedDragMsg is emitted by a nested sheet while it is being dragged.
// Percentage is the drag progress toward closed.
type NestedDragMsg struct {
	Percentage float64
}

// NestedReleasedMsg is emitted by a nested sheet when a gesture ends.
type NestedReleasedMsg struct {
	Open bool
}

func nestedOpenChangedCmd(open bool) tea.Cmd {
	return func() tea.Msg { return NestedOpenChangedMsg{Open: open} }
}

func nestedDragCmd(pct float64) tea.Cmd {
	return func() tea.Msg { return NestedDragMsg{Percentage: pct} }
}

func nestedReleasedCmd(open bool) tea.Cmd {
	return func() tea.Msg { return NestedReleasedMsg{Open: open} }
}
