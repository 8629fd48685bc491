// Package sheet is a draggable bottom sheet for Bubble Tea programs.
//
// The sheet slides up over a background view and follows the mouse while
// dragged: drag it down far enough (or flick it) and it dismisses, snap
// points let it rest at intermediate heights, and the backdrop dims in
// step with the drag. The gesture, snap, keyboard and scrolllock
// subpackages hold the headless logic; this package binds them to the
// Bubble Tea update loop and renders the result.
package sheet

import (
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheet/pkg/sheet/gesture"
	"github.com/marcus/sheet/pkg/sheet/keyboard"
	"github.com/marcus/sheet/pkg/sheet/snap"
	"github.com/marcus/sheet/pkg/sheet/timeline"
)

const (
	// TransitionDuration is the length of every sheet animation.
	TransitionDuration = 350 * time.Millisecond

	// NestedDisplacement is how far, in units, a parent sheet retreats
	// while a nested sheet is open on top of it.
	NestedDisplacement = 16.0

	// nestedCleanupDelay keeps the parent displaced until the nested
	// sheet's close animation has finished.
	nestedCleanupDelay = 500 * time.Millisecond

	// nonModalRestoreDelay is how long a non-modal sheet holds the
	// background lock after opening before handing scrolling back.
	nonModalRestoreDelay = 500 * time.Millisecond

	frameInterval = time.Second / 30
)

// Content is the view hosted inside the sheet.
type Content interface {
	Init() tea.Cmd
	Update(tea.Msg) (Content, tea.Cmd)
	View() string
}

// NodeProvider is optionally implemented by Content to describe the
// widget under a pointer position, so inner scrollable regions can claim
// gestures before the sheet does. row and col are relative to the
// content's top-left corner.
type NodeProvider interface {
	NodeAt(row, col int) gesture.Node
}

// FocusReporter is optionally implemented by Content to report a focused
// text input, which drives keyboard avoidance.
type FocusReporter interface {
	InputFocused() bool
}

// SelectionReporter is optionally implemented by Content to report an
// active text selection, which blocks drags.
type SelectionReporter interface {
	HasSelection() bool
}

// openMsg triggers the deferred default-open from Init.
type openMsg struct{}

// sheetEvent is a deferred effect queued by the scheduler and applied to
// the current model copy on the next tick.
type sheetEvent uint8

const (
	eventRestoreLock sheetEvent = iota
	eventNestedCleanup
)

type eventQueue struct {
	events []sheetEvent
}

func (q *eventQueue) push(e sheetEvent) {
	q.events = append(q.events, e)
}

func (q *eventQueue) drain() []sheetEvent {
	out := q.events
	q.events = nil
	return out
}

// Model is the sheet component. Create it with New and route messages
// through Update like any other Bubble Tea model.
type Model struct {
	cfg     config
	content Content

	isOpen        bool
	isClosing     bool
	visible       bool
	hasBeenOpened bool

	windowRows int
	windowCols int
	viewportH  float64

	snaps  *snap.Engine
	drag   gesture.Drag
	kb     keyboard.Monitor
	sched  *timeline.Scheduler
	events *eventQueue

	anim *animation

	// y is the sheet's translate offset in units: 0 fully open, closedY
	// fully off screen, negative when overdragged past open.
	y              float64
	overlayOpacity float64
	bgProgress     float64

	// kbHeight overrides the sheet height while the keyboard monitor has
	// an adjustment in effect; zero means no override.
	kbHeight float64
	kbBottom float64

	nestedProgress float64
	nestedToken    timeline.Token
	restoreToken   timeline.Token
}

// New creates a sheet hosting the given content.
func New(content Content, opts ...Option) Model {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	m := Model{
		cfg:     cfg,
		content: content,
		snaps:   snap.New(cfg.snapPoints, cfg.fadeFromIndex, cfg.defaultSnapPoint),
		sched:   &timeline.Scheduler{},
		events:  &eventQueue{},
	}
	m.drag.ScrollLockTimeout = cfg.scrollLockTimeout
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.content != nil {
		cmds = append(cmds, m.content.Init())
	}
	if m.cfg.defaultOpen {
		cmds = append(cmds, func() tea.Msg { return openMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model with a concrete return type.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case ViewportResizeMsg:
		return m.handleViewportResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case openMsg:
		return m.Open()

	case tea.KeyMsg:
		// Like a backdrop press, esc only dismisses modal sheets.
		if m.isOpen && m.cfg.modal && m.cfg.dismissible && msg.String() == "esc" {
			return m.Close()
		}
		if m.visible {
			return m.updateContent(msg)
		}
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case NestedOpenChangedMsg:
		return m.handleNestedOpenChanged(msg)

	case NestedDragMsg:
		m.nestedProgress = 1 - clamp01(msg.Percentage)
		return m, nil

	case NestedReleasedMsg:
		if msg.Open {
			m.nestedProgress = 1
		} else {
			m.nestedProgress = 0
		}
		return m, nil
	}
	if m.visible {
		return m.updateContent(msg)
	}
	return m, nil
}

func (m Model) updateContent(msg tea.Msg) (Model, tea.Cmd) {
	if m.content == nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

// Open shows the sheet. Opening an already open or currently closing
// sheet is a no-op.
func (m Model) Open() (Model, tea.Cmd) {
	if m.isOpen || m.isClosing {
		return m, nil
	}
	now := m.cfg.clock()
	m.isOpen = true
	m.visible = true
	m.hasBeenOpened = true
	m.snaps.SetActiveIndex(m.cfg.defaultSnapPoint)

	var cmds []tea.Cmd
	if m.cfg.nested {
		cmds = append(cmds, nestedOpenChangedCmd(true))
	} else {
		// ErrHeld means another sheet already pinned the background; its
		// snapshot stays authoritative.
		_ = m.cfg.lock.Acquire(m.cfg.background)
		if !m.cfg.modal {
			m.sched.Cancel(m.restoreToken)
			events := m.events
			m.restoreToken = m.sched.Schedule(now, nonModalRestoreDelay, func() {
				events.push(eventRestoreLock)
			})
		}
	}

	m.y = m.closedY()
	m.startAnim(animOpen, m.restingY(m.snaps.ActiveIndex()), m.targetOpacity(), m.targetScale(), now)
	if m.cfg.onOpenChange != nil {
		m.cfg.onOpenChange(true)
	}
	cmds = append(cmds, m.tickCmd())
	return m, tea.Batch(cmds...)
}

// Close dismisses the sheet. Closing while already closing (or while
// closed) is a no-op; a non-dismissible sheet settles back instead.
func (m Model) Close() (Model, tea.Cmd) {
	if !m.isOpen || m.isClosing {
		return m, nil
	}
	if !m.cfg.dismissible {
		return m.snapTo(m.snaps.ActiveIndex())
	}
	return m.startClose()
}

func (m Model) startClose() (Model, tea.Cmd) {
	now := m.cfg.clock()
	m.isClosing = true
	m.drag.Cancel()
	m.drag.SetSwipe(0)
	m.startAnim(animClose, m.closedY(), 0, 0, now)
	return m, m.tickCmd()
}

func (m Model) finishClose() (Model, tea.Cmd) {
	m.isOpen = false
	m.isClosing = false
	m.visible = false
	m.y = m.closedY()
	m.overlayOpacity = 0
	m.bgProgress = 0
	m.kb.Reset()
	m.kbHeight = 0
	m.kbBottom = 0
	m.snaps.SetActiveIndex(0)

	var cmds []tea.Cmd
	if m.cfg.nested {
		cmds = append(cmds, nestedOpenChangedCmd(false))
	} else {
		m.sched.Cancel(m.restoreToken)
		m.cfg.lock.Restore(m.cfg.background)
	}
	if m.cfg.onClose != nil {
		m.cfg.onClose()
	}
	if m.cfg.onOpenChange != nil {
		m.cfg.onOpenChange(false)
	}
	return m, tea.Batch(cmds...)
}

// SetActiveSnapPoint snaps the sheet to the given snap point index. It is
// a no-op without snap points or while the sheet is closed.
func (m Model) SetActiveSnapPoint(i int) (Model, tea.Cmd) {
	if m.snaps.Len() == 0 || !m.isOpen || m.isClosing {
		return m, nil
	}
	return m.snapTo(i)
}

func (m Model) snapTo(i int) (Model, tea.Cmd) {
	now := m.cfg.clock()
	prev := m.snaps.ActiveIndex()
	m.snaps.SetActiveIndex(i)
	if m.snaps.ActiveIndex() != prev && m.cfg.onSnapChange != nil {
		m.cfg.onSnapChange(m.snaps.ActiveIndex())
	}
	m.startAnim(animSnap, m.restingY(m.snaps.ActiveIndex()), m.targetOpacity(), m.targetScale(), now)
	return m, m.tickCmd()
}

// RestoreScroll releases the background lock early, for hosts that
// navigate away while the sheet is still open.
func (m Model) RestoreScroll() {
	m.cfg.lock.Restore(m.cfg.background)
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.windowRows = msg.Height
	m.windowCols = msg.Width
	m.viewportH = m.cfg.metrics.RowsToUnits(msg.Height)
	m.snaps.SetDimensions(m.cfg.height.Resolve(m.viewportH), m.viewportH)
	if !m.visible {
		m.y = m.closedY()
	} else if m.anim == nil && !m.drag.Dragging() {
		m.y = m.restingY(m.snaps.ActiveIndex())
	}
	return m.updateContent(msg)
}

func (m Model) handleViewportResize(msg ViewportResizeMsg) (Model, tea.Cmd) {
	// Resize chatter before the first open is never keyboard-driven.
	if !m.hasBeenOpened {
		return m, nil
	}
	height := m.drawerHeight()
	adj := m.kb.Observe(keyboard.Reading{
		WindowHeight:     m.cfg.metrics.RowsToUnits(msg.WindowRows),
		VisibleHeight:    m.cfg.metrics.RowsToUnits(msg.VisibleRows),
		DrawerHeight:     height,
		DrawerTop:        m.viewportH - height + math.Max(m.y, 0),
		ActiveSnapOffset: m.snaps.ActiveOffset(),
		InputFocused:     m.inputFocused(),
		SnapConfigured:   m.snaps.Len() > 0,
		Fixed:            m.cfg.fixed,
	})
	if adj.Relevant {
		m.kbHeight = adj.Height
		m.kbBottom = adj.Bottom
	}
	return m, nil
}

func (m Model) handleTick(now time.Time) (Model, tea.Cmd) {
	m.sched.Advance(now)
	for _, e := range m.events.drain() {
		switch e {
		case eventRestoreLock:
			m.cfg.lock.Restore(m.cfg.background)
		case eventNestedCleanup:
			m.nestedProgress = 0
		}
	}

	var cmds []tea.Cmd
	if m.anim != nil {
		y, opacity, scale, done := m.anim.value(now)
		m.y = y
		m.overlayOpacity = opacity
		m.bgProgress = scale
		if done {
			kind := m.anim.kind
			m.anim = nil
			var cmd tea.Cmd
			m, cmd = m.animDone(kind, now)
			cmds = append(cmds, cmd)
		}
	}
	if m.anim != nil || m.sched.Pending() > 0 {
		cmds = append(cmds, m.tickCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) animDone(kind animKind, now time.Time) (Model, tea.Cmd) {
	switch kind {
	case animOpen, animReset:
		m.drag.MarkOpened(now)
	case animSnap:
		if m.snaps.Len() > 0 && m.snaps.ActiveIndex() == m.snaps.Len()-1 {
			m.drag.MarkOpened(now)
		}
	case animClose:
		return m.finishClose()
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.isOpen || m.isClosing {
		return m, nil
	}
	now := m.cfg.clock()

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if m.pointerInPanel(msg.Y) {
			// Content scrolled: hold off on drags for the cooldown so the
			// tail of the scroll doesn't move the sheet.
			m.drag.MarkScrolled(now)
			return m.updateContent(msg)
		}
		return m, nil
	}

	yU := m.cfg.metrics.RowsToUnits(msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if m.pointerInPanel(msg.Y) {
			if m.cfg.dismissible || m.snaps.Len() > 0 {
				m.drag.Press(yU, now)
			}
			return m.updateContent(msg)
		}
		// Press on the backdrop.
		if m.cfg.modal && m.cfg.dismissible {
			return m.Close()
		}
		return m, nil

	case tea.MouseActionMotion:
		dist, ok := m.drag.Move(yU, now, m.nodeAt(msg), m.hasSelection())
		if !ok {
			return m, nil
		}
		return m.applyDrag(dist)

	case tea.MouseActionRelease:
		r, ok := m.drag.Release(yU, now)
		if !ok {
			return m, nil
		}
		return m.applyRelease(r)
	}
	return m, nil
}

func (m Model) applyDrag(dist float64) (Model, tea.Cmd) {
	m.anim = nil
	base := m.restingY(m.snaps.ActiveIndex())
	y := base - dist
	if y < 0 {
		// Past fully open the sheet resists: log-dampened displacement
		// instead of tracking the pointer.
		y = -math.Max(0, Dampen(-y))
	}
	if y > m.closedY() {
		y = m.closedY()
	}
	m.y = y
	m.drag.SetSwipe(dist)

	pct, ok := m.snaps.PercentageDragged(math.Abs(dist), dist < 0)
	if !ok && dist < 0 {
		if h := m.drawerHeight(); h > 0 {
			pct = clamp01(-dist / h)
		}
	}
	if dist < 0 && (m.snaps.Len() == 0 || m.snaps.ShouldFade()) {
		m.overlayOpacity = 1 - pct
		if m.cfg.scaleBackground {
			m.bgProgress = 1 - pct
		}
	}
	if m.cfg.onDrag != nil {
		m.cfg.onDrag(pct)
	}
	if m.cfg.nested {
		return m, nestedDragCmd(pct)
	}
	return m, nil
}

func (m Model) applyRelease(r gesture.Result) (Model, tea.Cmd) {
	m.drag.SetSwipe(0)

	var cmds []tea.Cmd
	finish := func(mm Model, open bool, cmd tea.Cmd) (Model, tea.Cmd) {
		if mm.cfg.onRelease != nil {
			mm.cfg.onRelease(open)
		}
		cmds = append(cmds, cmd)
		if mm.cfg.nested {
			cmds = append(cmds, nestedReleasedCmd(open))
		}
		return mm, tea.Batch(cmds...)
	}

	if m.snaps.Len() > 0 {
		idx, dismiss := m.snaps.Destination(r.Distance, r.Velocity, m.cfg.dismissible)
		if dismiss {
			mm, cmd := m.startClose()
			return finish(mm, false, cmd)
		}
		mm, cmd := m.snapTo(idx)
		return finish(mm, true, cmd)
	}

	switch gesture.Decide(r, m.drawerHeight(), m.cfg.closeThreshold) {
	case gesture.OutcomeClose:
		if m.cfg.dismissible {
			mm, cmd := m.startClose()
			return finish(mm, false, cmd)
		}
		fallthrough
	default:
		now := m.cfg.clock()
		m.startAnim(animReset, m.restingY(m.snaps.ActiveIndex()), m.targetOpacity(), m.targetScale(), now)
		return finish(m, true, m.tickCmd())
	}
}

func (m Model) handleNestedOpenChanged(msg NestedOpenChangedMsg) (Model, tea.Cmd) {
	now := m.cfg.clock()
	m.sched.Cancel(m.nestedToken)
	if msg.Open {
		m.nestedProgress = 1
		return m, nil
	}
	events := m.events
	m.nestedToken = m.sched.Schedule(now, nestedCleanupDelay, func() {
		events.push(eventNestedCleanup)
	})
	return m, m.tickCmd()
}

func (m *Model) startAnim(kind animKind, toY, toOpacity, toScale float64, now time.Time) {
	m.anim = &animation{
		kind:        kind,
		fromY:       m.y,
		toY:         toY,
		fromOpacity: m.overlayOpacity,
		toOpacity:   toOpacity,
		fromScale:   m.bgProgress,
		toScale:     toScale,
		start:       now,
		duration:    TransitionDuration,
	}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// panelHeightUnits is the sheet's natural height in units: with snap
// points, the height at the most-open point; otherwise the configured
// height.
func (m Model) panelHeightUnits() float64 {
	if offs := m.snaps.Offsets(); len(offs) > 0 {
		return m.viewportH - offs[len(offs)-1]
	}
	return math.Min(m.cfg.height.Resolve(m.viewportH), m.viewportH)
}

// drawerHeight is the sheet height in effect, including any keyboard
// adjustment.
func (m Model) drawerHeight() float64 {
	if m.kbHeight > 0 {
		return m.kbHeight
	}
	return m.panelHeightUnits()
}

// restingY is the translate offset at which snap point i rests. Without
// snap points the only rest position is fully open.
func (m Model) restingY(i int) float64 {
	offs := m.snaps.Offsets()
	if len(offs) == 0 {
		return 0
	}
	if i < 0 {
		i = 0
	}
	if i >= len(offs) {
		i = len(offs) - 1
	}
	return offs[i] - offs[len(offs)-1]
}

// closedY is the translate offset at which the sheet is fully off
// screen.
func (m Model) closedY() float64 {
	return m.panelHeightUnits()
}

// targetOpacity is the backdrop opacity at the active resting position.
func (m Model) targetOpacity() float64 {
	if m.snaps.Len() == 0 || m.cfg.fadeFromIndex < 0 {
		return 1
	}
	if m.snaps.ActiveIndex() >= m.cfg.fadeFromIndex {
		return 1
	}
	return 0
}

func (m Model) targetScale() float64 {
	if !m.cfg.scaleBackground {
		return 0
	}
	return m.targetOpacity()
}

// pointerInPanel reports whether the given terminal row falls on the
// visible part of the sheet.
func (m Model) pointerInPanel(row int) bool {
	rows := m.panelRows()
	if rows <= 0 {
		return false
	}
	return row >= m.windowRows-rows
}

// panelRows is the number of terminal rows the sheet currently covers.
func (m Model) panelRows() int {
	total := m.cfg.metrics.UnitsToRows(m.drawerHeight())
	hidden := m.cfg.metrics.UnitsToRows(math.Max(0, m.y))
	rows := total - hidden
	if rows < 0 {
		return 0
	}
	if rows > m.windowRows {
		return m.windowRows
	}
	return rows
}

func (m Model) nodeAt(msg tea.MouseMsg) gesture.Node {
	np, ok := m.content.(NodeProvider)
	if !ok {
		return nil
	}
	top := m.windowRows - m.panelRows()
	return np.NodeAt(msg.Y-top, msg.X)
}

func (m Model) inputFocused() bool {
	if f, ok := m.content.(FocusReporter); ok {
		return f.InputFocused()
	}
	return false
}

func (m Model) hasSelection() bool {
	if s, ok := m.content.(SelectionReporter); ok {
		return s.HasSelection()
	}
	return false
}

// IsOpen reports whether the sheet is logically open. It reports false
// as soon as closing begins, while Visible stays true until the close
// animation finishes.
func (m Model) IsOpen() bool {
	return m.isOpen && !m.isClosing
}

// Visible reports whether the sheet occupies screen space, including
// during its close animation.
func (m Model) Visible() bool {
	return m.visible
}

// HasBeenOpened reports whether the sheet has opened at least once.
func (m Model) HasBeenOpened() bool {
	return m.hasBeenOpened
}

// Dragging reports whether a gesture is tracking the pointer.
func (m Model) Dragging() bool {
	return m.drag.Dragging()
}

// JustReleased reports whether a gesture ended moments ago; hosts use it
// to suppress focus side effects right after a fast drag.
func (m Model) JustReleased() bool {
	return m.drag.JustReleased(m.cfg.clock())
}

// ActiveSnapPoint returns the active snap point index, 0 without snap
// points.
func (m Model) ActiveSnapPoint() int {
	return m.snaps.ActiveIndex()
}

// SnapOffsets returns the snap point offsets in units for the current
// viewport, least open first.
func (m Model) SnapOffsets() []float64 {
	return m.snaps.Offsets()
}

// KeyboardOpen reports the keyboard monitor's current flag.
func (m Model) KeyboardOpen() bool {
	return m.kb.Open()
}

// ShouldFade reports whether backdrop opacity tracks the drag at the
// current snap point.
func (m Model) ShouldFade() bool {
	return m.snaps.ShouldFade()
}

// Offset returns the current translate offset in units: 0 fully open,
// growing as the sheet moves off screen.
func (m Model) Offset() float64 {
	return m.y
}

// Content returns the hosted content model.
func (m Model) Content() Content {
	return m.content
}
