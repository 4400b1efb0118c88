// Package ui provides the root Bubble Tea model of clubterm.
package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/connectclub/clubterm/pkg/ui/components/footer"
	"github.com/connectclub/clubterm/pkg/ui/components/header"
	"github.com/connectclub/clubterm/pkg/ui/pages/network"
)

type sessionState int

const (
	loadingState sessionState = iota
	errorState
	readyState
)

// UI is the main UI model.
type UI struct {
	common     common.Common
	state      sessionState
	header     *header.Header
	network    *network.Network
	footer     *footer.Footer
	showFooter bool
	error      error
}

// New returns a new UI model. A negative initialPage opens the page set in
// the config.
func New(c common.Common, initialPage int) *UI {
	cfg := c.Config()
	if cfg == nil {
		cfg = config.DefaultConfig()
		c.SetValue(config.ContextKey, cfg)
	}
	if initialPage < 0 || initialPage >= len(cfg.Tabs) {
		initialPage = cfg.InitialPage
	}
	ui := &UI{
		common:     c,
		state:      loadingState,
		header:     header.New(c, cfg.Name),
		network:    network.New(c, cfg.Name, cfg.Tabs, initialPage),
		showFooter: true,
	}
	ui.footer = footer.New(c, ui)
	ui.SetSize(c.Width, c.Height)
	return ui
}

func (ui *UI) getMargins() (wm, hm int) {
	wm = ui.common.Styles.App.GetHorizontalFrameSize()
	hm = ui.common.Styles.App.GetVerticalFrameSize() +
		lipgloss.Height(ui.header.View())
	if ui.showFooter {
		hm += ui.footer.Height()
	}
	return
}

// ShortHelp implements help.KeyMap.
func (ui *UI) ShortHelp() []key.Binding {
	b := make([]key.Binding, 0)
	if ui.state == readyState {
		b = append(b, ui.network.ShortHelp()...)
	}
	b = append(b, ui.common.KeyMap.Help, ui.common.KeyMap.Quit)
	return b
}

// FullHelp implements help.KeyMap.
func (ui *UI) FullHelp() [][]key.Binding {
	b := make([][]key.Binding, 0)
	if ui.state == readyState {
		b = append(b, ui.network.FullHelp()...)
	}
	b = append(b, []key.Binding{ui.common.KeyMap.Help, ui.common.KeyMap.Quit})
	return b
}

// SetSize implements common.Component.
func (ui *UI) SetSize(width, height int) {
	ui.common.SetSize(width, height)
	ui.header.SetSize(width, height)
	ui.footer.SetSize(width, height)
	wm, hm := ui.getMargins()
	ui.network.SetSize(max(width-wm, 0), max(height-hm, 0))
}

// Init implements tea.Model.
func (ui *UI) Init() tea.Cmd {
	ui.state = readyState
	ui.SetSize(ui.common.Width, ui.common.Height)
	return ui.network.Init()
}

// Update implements tea.Model.
func (ui *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ui.common.Logger.Debugf("msg received: %T", msg)
	cmds := make([]tea.Cmd, 0)
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, ui.common.KeyMap.Quit):
			return ui, tea.Quit
		case key.Matches(msg, ui.common.KeyMap.Help):
			ui.footer.SetShowAll(!ui.footer.ShowAll())
			ui.SetSize(ui.common.Width, ui.common.Height)
			return ui, nil
		case ui.error != nil:
			// Any key dismisses the error.
			ui.error = nil
			ui.state = readyState
			return ui, nil
		}
	case common.ErrorMsg:
		ui.error = msg
		ui.state = errorState
		ui.common.Logger.Error("ui error", "err", msg)
		return ui, nil
	}
	// Animations keep running behind the error view.
	if ui.state != loadingState {
		m, cmd := ui.network.Update(msg)
		ui.network = m.(*network.Network)
		cmds = append(cmds, cmd)
	}
	return ui, tea.Batch(cmds...)
}

// View implements tea.Model.
func (ui *UI) View() string {
	var view string
	switch ui.state {
	case loadingState:
		view = "Loading..."
	case errorState:
		err := ui.common.Styles.ErrorTitle.Render("Bummer")
		err += ui.common.Styles.ErrorBody.Render(ui.error.Error())
		view = ui.common.Styles.Error.Render(err)
	case readyState:
		parts := []string{
			ui.header.View(),
			ui.network.View(),
		}
		if ui.showFooter {
			parts = append(parts, ui.footer.View())
		}
		view = lipgloss.JoinVertical(lipgloss.Left, parts...)
	default:
		view = "Unknown state :/ this is a bug!"
	}
	return ui.common.Zone.Scan(
		ui.common.Styles.App.Render(strings.TrimRight(view, "\n")),
	)
}

// Network returns the network screen.
func (ui *UI) Network() *network.Network {
	return ui.network
}
