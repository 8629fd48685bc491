package demo

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheet/gesture"
)

var (
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	selectedStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Faint(true)
)

// node is a minimal widget-tree element for the sheet's drag permission
// walk.
type node struct {
	scrollable bool
	top        float64
	dialog     bool
	parent     gesture.Node
}

func (n node) Scrollable() bool     { return n.scrollable }
func (n node) ScrollTop() float64   { return n.top }
func (n node) Dialog() bool         { return n.dialog }
func (n node) Parent() gesture.Node { return n.parent }

// Article hosts a scrollable text body inside a sheet. While the body is
// scrolled away from its top the scroll owns downward drags, so it
// reports itself as a scrollable node.
type Article struct {
	vp    viewport.Model
	lines int
}

func NewArticle(body string) *Article {
	a := &Article{vp: viewport.New(0, 0)}
	a.vp.SetContent(body)
	a.lines = strings.Count(body, "\n") + 1
	return a
}

func (a *Article) Init() tea.Cmd { return nil }

func (a *Article) Update(msg tea.Msg) (sheet.Content, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.vp.Width = max(10, msg.Width-6)
		a.vp.Height = max(3, msg.Height/2-4)
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.vp.LineUp(3)
		case tea.MouseButtonWheelDown:
			a.vp.LineDown(3)
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			a.vp.LineUp(1)
		case "down", "j":
			a.vp.LineDown(1)
		}
	}
	return a, nil
}

func (a *Article) View() string {
	return a.vp.View()
}

// NodeAt reports the widget under the pointer: the body is a scrollable
// region inside the sheet's content root, the handle area is the root
// itself.
func (a *Article) NodeAt(row, col int) gesture.Node {
	if row >= 2 {
		return node{
			scrollable: a.lines > a.vp.Height,
			top:        float64(a.vp.YOffset),
			parent:     node{dialog: true},
		}
	}
	return node{dialog: true}
}

// FeedbackForm hosts a huh form inside a sheet.
type FeedbackForm struct {
	form *huh.Form

	Name string
	Mood string
}

func NewFeedbackForm() *FeedbackForm {
	f := &FeedbackForm{}
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Value(&f.Name),
			huh.NewSelect[string]().
				Key("mood").
				Title("How is the sheet feeling?").
				Options(huh.NewOptions("smooth", "springy", "sticky")...).
				Value(&f.Mood),
		),
	).WithShowHelp(false)
	return f
}

func (f *FeedbackForm) Init() tea.Cmd { return f.form.Init() }

func (f *FeedbackForm) Update(msg tea.Msg) (sheet.Content, tea.Cmd) {
	model, cmd := f.form.Update(msg)
	if form, ok := model.(*huh.Form); ok {
		f.form = form
	}
	if f.form.State == huh.StateCompleted {
		return f, tea.Batch(cmd, func() tea.Msg {
			return FormDoneMsg{Name: f.Name, Mood: f.Mood}
		})
	}
	return f, cmd
}

func (f *FeedbackForm) View() string {
	return f.form.View()
}

// InputFocused keeps the sheet's keyboard avoidance active while the
// form is being filled in.
func (f *FeedbackForm) InputFocused() bool {
	return f.form.State == huh.StateNormal
}

// FormDoneMsg is emitted when the feedback form completes.
type FormDoneMsg struct {
	Name string
	Mood string
}

// PaletteChoiceMsg is emitted when a palette entry is confirmed.
type PaletteChoiceMsg struct {
	Command string
}

// Palette is a fuzzy-filtered command list inside a sheet.
type Palette struct {
	input    textinput.Model
	commands []string
	filtered []string
	cursor   int
}

func NewPalette(commands []string) *Palette {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40
	return &Palette{
		input:    ti,
		commands: commands,
		filtered: append([]string(nil), commands...),
	}
}

func (p *Palette) Init() tea.Cmd { return textinput.Blink }

func (p *Palette) Update(msg tea.Msg) (sheet.Content, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "down", "ctrl+n":
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
			}
			return p, nil
		case "enter":
			if p.cursor < len(p.filtered) {
				choice := p.filtered[p.cursor]
				return p, func() tea.Msg { return PaletteChoiceMsg{Command: choice} }
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.filter()
	return p, cmd
}

func (p *Palette) filter() {
	query := p.input.Value()
	if query == "" {
		p.filtered = append(p.filtered[:0], p.commands...)
	} else {
		matches := fuzzy.Find(query, p.commands)
		p.filtered = p.filtered[:0]
		for _, match := range matches {
			p.filtered = append(p.filtered, p.commands[match.Index])
		}
	}
	if p.cursor >= len(p.filtered) {
		p.cursor = max(0, len(p.filtered)-1)
	}
}

func (p *Palette) View() string {
	var sb strings.Builder
	sb.WriteString(p.input.View())
	sb.WriteString("\n\n")
	if len(p.filtered) == 0 {
		sb.WriteString(mutedStyle.Render("(no matches)"))
		return sb.String()
	}
	for i, cmd := range p.filtered {
		if i > 0 {
			sb.WriteString("\n")
		}
		if i == p.cursor {
			sb.WriteString(cursorStyle.Render("> "))
			sb.WriteString(selectedStyle.Render(cmd))
		} else {
			sb.WriteString(fmt.Sprintf("  %s", cmd))
		}
	}
	return sb.String()
}

func (p *Palette) InputFocused() bool {
	return p.input.Focused()
}
