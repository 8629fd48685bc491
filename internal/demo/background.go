package demo

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
)

// Background is the scrollable document pane the sheets open over. It is
// the pane the sheet locks while open, so it implements
// scrolllock.Scroller.
type Background struct {
	vp     viewport.Model
	doc    string
	width  int
	frozen bool
}

func NewBackground(doc string) *Background {
	return &Background{vp: viewport.New(0, 0), doc: doc}
}

// Resize fits the pane to the window, reserving a header and status row.
func (b *Background) Resize(width, height int) {
	b.width = width
	b.vp.Width = width
	b.vp.Height = max(0, height-2)
	b.render()
}

func (b *Background) render() {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(20, b.width-2)),
	)
	if err != nil {
		b.vp.SetContent(b.doc)
		return
	}
	out, err := r.Render(b.doc)
	if err != nil {
		out = b.doc
	}
	b.vp.SetContent(out)
}

// Scroll applies a wheel event unless the pane is frozen by an open
// sheet.
func (b *Background) Scroll(msg tea.MouseMsg) {
	if b.frozen {
		return
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		b.vp.LineUp(3)
	case tea.MouseButtonWheelDown:
		b.vp.LineDown(3)
	}
}

func (b *Background) GotoTop() {
	b.vp.GotoTop()
}

func (b *Background) Offset() int      { return b.vp.YOffset }
func (b *Background) SetOffset(o int)  { b.vp.SetYOffset(o) }
func (b *Background) Location() string { return "reader" }
func (b *Background) SetFrozen(f bool) { b.frozen = f }

func (b *Background) View(status string) string {
	var sb strings.Builder
	sb.WriteString(headerStyle.Render("sheetdemo"))
	sb.WriteString("\n")
	sb.WriteString(b.vp.View())
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render(status))
	return sb.String()
}
