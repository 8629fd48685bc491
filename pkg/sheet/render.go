package sheet

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const handleWidth = 8

// View composites the sheet over the host's background view. The
// background is expected to be the full-window render; while the sheet is
// closed it is returned unchanged.
func (m Model) View(background string) string {
	if !m.visible || m.windowRows <= 0 || m.windowCols <= 0 {
		return background
	}

	lines := strings.Split(background, "\n")
	for len(lines) < m.windowRows {
		lines = append(lines, "")
	}
	lines = lines[:m.windowRows]

	if m.cfg.scaleBackground && m.bgProgress >= 0.5 {
		lines = m.scaleAway(lines)
	}
	if style, ok := m.backdropStyle(); ok {
		for i, l := range lines {
			lines[i] = style.Render(ansi.Strip(l))
		}
	}

	panel := m.panelLines()
	if len(panel) == 0 {
		return strings.Join(lines, "\n")
	}

	// Overdrag past open and a nested sheet on top both lift the panel,
	// leaving background visible below it.
	lift := m.cfg.metrics.UnitsToRows(math.Max(0, -m.y))
	lift += m.cfg.metrics.UnitsToRows(NestedDisplacement * m.nestedProgress)

	start := m.windowRows - len(panel) - lift
	for i, pl := range panel {
		if idx := start + i; idx >= 0 && idx < len(lines) {
			lines[idx] = pl
		}
	}
	return strings.Join(lines, "\n")
}

// scaleAway approximates the background receding: shifted down a row and
// inset a column.
func (m Model) scaleAway(lines []string) []string {
	out := make([]string, len(lines))
	for i := 1; i < len(out); i++ {
		l := ansi.Truncate(lines[i-1], m.windowCols-2, "")
		out[i] = " " + m.cfg.styles.ScaledBackground.Render(ansi.Strip(l))
	}
	return out
}

// backdropStyle maps the overlay opacity onto the dimming styles. ok is
// false while the backdrop is effectively transparent or the sheet is
// non-modal.
func (m Model) backdropStyle() (lipgloss.Style, bool) {
	if !m.cfg.modal {
		return lipgloss.Style{}, false
	}
	switch {
	case m.overlayOpacity >= 0.66:
		return m.cfg.styles.BackdropHeavy, true
	case m.overlayOpacity >= 0.15:
		return m.cfg.styles.Backdrop, true
	}
	return lipgloss.Style{}, false
}

// panelLines renders the sheet box at its full height and clips it to the
// rows currently on screen.
func (m Model) panelLines() []string {
	visible := m.panelRows()
	if visible <= 0 {
		return nil
	}
	st := m.cfg.styles.Panel
	frameW := st.GetHorizontalFrameSize()
	frameH := st.GetVerticalFrameSize()
	total := m.cfg.metrics.UnitsToRows(m.drawerHeight())

	innerW := m.windowCols - frameW
	innerH := total - frameH
	if innerW < 1 || innerH < 1 {
		return nil
	}

	handle := m.cfg.styles.Handle.Render(strings.Repeat("─", min(handleWidth, innerW)))
	body := ""
	if m.content != nil {
		body = m.content.View()
	}
	inner := lipgloss.JoinVertical(lipgloss.Center, handle, body)
	box := st.Width(innerW).Height(innerH).MaxWidth(m.windowCols).Render(inner)

	lines := strings.Split(box, "\n")
	dimPanel := m.nestedProgress > 0
	if len(lines) > visible {
		lines = lines[:visible]
	}
	if dimPanel {
		for i, l := range lines {
			lines[i] = m.cfg.styles.Backdrop.Render(ansi.Strip(l))
		}
	}
	return lines
}
