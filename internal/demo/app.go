// Package demo is an interactive showcase for the sheet component: a
// glamour-rendered document with an article sheet, a form sheet and a
// command palette layered over it.
package demo

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sheet/pkg/sheet"
	"github.com/marcus/sheet/pkg/sheet/snap"
)

const defaultStatus = "i article · f feedback · p palette · q quit"

var paletteCommands = []string{
	"open article",
	"open feedback form",
	"scroll to top",
	"quit",
}

// App is the demo's root Bubble Tea model.
type App struct {
	background *Background
	article    sheet.Model
	form       sheet.Model
	palette    sheet.Model

	status   string
	quitting bool
}

// New builds the demo. articleOpts come from the selected preset and
// shape the article sheet; the form and palette sheets keep fixed
// configurations so the three variants can be compared side by side.
func New(articleOpts []sheet.Option) App {
	bg := NewBackground(sampleDocument)

	articleOpts = append(articleOpts, sheet.WithBackground(bg))
	form := sheet.New(NewFeedbackForm(),
		sheet.WithBackground(bg),
		sheet.WithFixed(true),
		sheet.WithHeight(snap.Fraction(0.6)),
	)
	palette := sheet.New(NewPalette(paletteCommands),
		sheet.WithBackground(bg),
		sheet.WithModal(false),
		sheet.WithScaleBackground(false),
		sheet.WithHeight(snap.Fraction(0.4)),
	)

	return App{
		background: bg,
		article:    sheet.New(NewArticle(sampleArticle), articleOpts...),
		form:       form,
		palette:    palette,
		status:     defaultStatus,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.article.Init(), a.form.Init(), a.palette.Init())
}

func (a App) anyOpen() bool {
	return a.article.Visible() || a.form.Visible() || a.palette.Visible()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.background.Resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if cmd, handled := a.handleKey(msg); handled {
			return a, cmd
		}

	case tea.MouseMsg:
		if !a.anyOpen() {
			a.background.Scroll(msg)
		}

	case FormDoneMsg:
		a.status = fmt.Sprintf("thanks %s, noted: %s", msg.Name, msg.Mood)
		var cmd tea.Cmd
		a.form, cmd = a.form.Close()
		return a, cmd

	case PaletteChoiceMsg:
		return a.runCommand(msg.Command)
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.article, cmd = a.article.Update(msg)
	cmds = append(cmds, cmd)
	a.form, cmd = a.form.Update(msg)
	cmds = append(cmds, cmd)
	a.palette, cmd = a.palette.Update(msg)
	cmds = append(cmds, cmd)
	return a, tea.Batch(cmds...)
}

// handleKey intercepts global shortcuts; everything else falls through
// to the sheets. handled is false for keys the open sheet should see.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit, true
	}
	if a.anyOpen() {
		return nil, false
	}
	switch msg.String() {
	case "q":
		a.quitting = true
		return tea.Quit, true
	case "i":
		var cmd tea.Cmd
		a.article, cmd = a.article.Open()
		return cmd, true
	case "f":
		var cmd tea.Cmd
		a.form, cmd = a.form.Open()
		return cmd, true
	case "p":
		var cmd tea.Cmd
		a.palette, cmd = a.palette.Open()
		return cmd, true
	case "up", "k":
		a.background.vp.LineUp(1)
		return nil, true
	case "down", "j":
		a.background.vp.LineDown(1)
		return nil, true
	}
	return nil, true
}

func (a App) runCommand(command string) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd
	a.palette, cmd = a.palette.Close()
	cmds = append(cmds, cmd)

	switch command {
	case "open article":
		a.article, cmd = a.article.Open()
		cmds = append(cmds, cmd)
	case "open feedback form":
		a.form, cmd = a.form.Open()
		cmds = append(cmds, cmd)
	case "scroll to top":
		a.background.GotoTop()
		a.status = "scrolled to top"
	case "quit":
		a.quitting = true
		cmds = append(cmds, tea.Quit)
	}
	return a, tea.Batch(cmds...)
}

func (a App) View() string {
	if a.quitting {
		return ""
	}
	out := a.background.View(a.status)
	out = a.article.View(out)
	out = a.form.View(out)
	out = a.palette.View(out)
	return out
}

var sampleDocument = strings.TrimSpace(`
# The Reading Pane

This document scrolls behind the sheets. Open one and notice the pane
freeze; close it and scrolling resumes exactly where it stopped.

## Gestures

Drag a sheet down by its handle. A slow drag past a quarter of its
height dismisses it, a flick dismisses it from anywhere, and a short
drag springs back.

## Snap points

The article sheet can rest at several heights. Fling it upward to move
one step at a time, or drag slowly and it settles at the nearest stop.

` + strings.Repeat("Lorem ipsum dolor sit amet, consectetur adipiscing elit.\n", 40))

var sampleArticle = strings.TrimSpace(`
Scroll this body with the wheel. While it is scrolled away from the
top, dragging down scrolls it back instead of moving the sheet; once it
hits the top, the same drag grabs the sheet.
` + "\n\n" + strings.Repeat("The quick brown fox jumps over the lazy dog.\n", 60))
