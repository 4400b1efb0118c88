package ui

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

func newTestUI(t *testing.T, initialPage int) *UI {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Name = "Test Club"
	cfg.UI.FPS = 1000
	cfg.UI.SpringFrequency = 50
	cfg.UI.SpringDamping = 1
	ctx := config.WithContext(context.Background(), cfg)
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	return New(common.NewCommon(ctx, r, 80, 24), initialPage)
}

// run feeds cmd and every command it produces through the model until
// nothing is left to do. Quit commands are skipped.
func run(t *testing.T, m tea.Model, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		if i > 100000 {
			t.Fatal("model did not settle")
		}
		cmd, queue = queue[0], queue[1:]
		if cmd == nil {
			continue
		}
		switch msg := cmd().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, next := m.Update(msg)
			queue = append(queue, next)
		}
	}
}

func TestView(t *testing.T) {
	is := is.New(t)
	ui := newTestUI(t, -1)
	is.Equal(strings.TrimSpace(ansi.Strip(ui.View())), "Loading...")

	run(t, ui, ui.Init())
	view := ui.View()
	is.True(strings.Contains(view, "Test Club"))
	is.True(strings.Contains(view, "Connections"))
	is.True(strings.Contains(view, "next tab"))
	is.Equal(ui.Network().Pager().Selected(), 0)
}

func TestInitialPage(t *testing.T) {
	is := is.New(t)
	ui := newTestUI(t, 2)
	run(t, ui, ui.Init())
	is.Equal(ui.Network().Pager().Selected(), 2)
	is.Equal(ui.Network().Tabs().Highlighted(), 2)

	ui = newTestUI(t, 99) // out of range falls back to the config
	is.Equal(ui.Network().Pager().Selected(), 0)
}

func TestQuit(t *testing.T) {
	is := is.New(t)
	ui := newTestUI(t, -1)
	run(t, ui, ui.Init())
	_, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	is.True(cmd != nil)
	is.Equal(cmd(), tea.QuitMsg{})
}

func TestToggleHelp(t *testing.T) {
	is := is.New(t)
	ui := newTestUI(t, -1)
	run(t, ui, ui.Init())
	short := ui.footer.Height()
	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	is.True(ui.footer.ShowAll())
	is.True(ui.footer.Height() > short)
	ui.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	is.True(!ui.footer.ShowAll())
}

func TestErrorState(t *testing.T) {
	is := is.New(t)
	ui := newTestUI(t, -1)
	run(t, ui, ui.Init())

	ui.Update(common.ErrorMsg(errors.New("boom")))
	is.Equal(ui.state, errorState)
	is.True(strings.Contains(ui.View(), "boom"))

	ui.Update(tea.KeyMsg{Type: tea.KeyTab}) // dismisses without switching tabs
	is.Equal(ui.state, readyState)
	is.Equal(ui.Network().Pager().Selected(), 0)
}

func TestTabKeyMovesPager(t *testing.T) {
	is := is.New(t)
	ui := newTestUI(t, -1)
	run(t, ui, ui.Init())
	_, cmd := ui.Update(tea.KeyMsg{Type: tea.KeyTab})
	run(t, ui, cmd)
	is.Equal(ui.Network().Pager().Selected(), 1)
	is.Equal(ui.Network().Tabs().Highlighted(), 1)
	is.True(strings.Contains(ui.View(), "2/"))
}
