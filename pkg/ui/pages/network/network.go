// Package network provides the tabbed "My Network" screen.
package network

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/connectclub/clubterm/pkg/ui/components/document"
	"github.com/connectclub/clubterm/pkg/ui/components/pager"
	"github.com/connectclub/clubterm/pkg/ui/components/statusbar"
	"github.com/connectclub/clubterm/pkg/ui/components/tabs"
)

// SetTabsMsg replaces the tabs and their pages.
type SetTabsMsg []config.TabConfig

// SetPageBodyMsg replaces the markdown of the page with the given tab ID.
type SetPageBodyMsg struct {
	ID   string
	Body string
}

// Network is the tabbed screen. The tab strip and the pager drive each
// other: tab presses move the pager and pager events move the strip.
type Network struct {
	common    common.Common
	title     string
	defs      []config.TabConfig
	tabs      *tabs.Tabs
	pager     *pager.Pager
	docs      []*document.Document
	statusbar *statusbar.Model
}

var _ pager.Listener = (*Network)(nil)

// New returns a new Network screen.
func New(c common.Common, title string, defs []config.TabConfig, initialPage int) *Network {
	c = c.WithLogger("network")
	n := &Network{
		common:    c,
		title:     title,
		defs:      append([]config.TabConfig(nil), defs...),
		statusbar: statusbar.New(c),
	}
	n.docs = newDocuments(c, n.defs)
	n.pager = pager.New(c, components(n.docs), initialPage)
	n.pager.SetListener(n)
	n.tabs = tabs.New(c, tabsFromConfig(n.defs), tabs.Options{
		InitialPage: initialPage,
		OnChange:    n.pager.SetPage,
	})
	n.updateStatus(n.pager.Selected())
	return n
}

func newDocuments(c common.Common, defs []config.TabConfig) []*document.Document {
	docs := make([]*document.Document, len(defs))
	for i, d := range defs {
		docs[i] = document.New(c, d.Body)
	}
	return docs
}

func components(docs []*document.Document) []common.Component {
	cs := make([]common.Component, len(docs))
	for i, d := range docs {
		cs[i] = d
	}
	return cs
}

func tabsFromConfig(defs []config.TabConfig) []tabs.Tab {
	ts := make([]tabs.Tab, len(defs))
	for i, d := range defs {
		ts[i] = tabs.Tab{
			ID:    d.ID,
			Title: d.Title,
			Count: int64(d.Count),
		}
	}
	return ts
}

func (n *Network) getMargins() (int, int) {
	hm := lipgloss.Height(n.tabs.View()) +
		n.common.Styles.Page.GetVerticalFrameSize() +
		1 // status bar
	return 0, hm
}

// SetSize implements common.Component.
func (n *Network) SetSize(width, height int) {
	n.common.SetSize(width, height)
	_, hm := n.getMargins()
	n.tabs.SetSize(width, 2)
	n.statusbar.SetSize(width, 1)
	n.pager.SetSize(width, max(height-hm, 0))
}

// ShortHelp implements help.KeyMap.
func (n *Network) ShortHelp() []key.Binding {
	b := n.tabs.ShortHelp()[:1]
	b = append(b, n.pager.ShortHelp()...)
	return b
}

// FullHelp implements help.KeyMap.
func (n *Network) FullHelp() [][]key.Binding {
	b := n.tabs.FullHelp()
	b = append(b, n.pager.FullHelp()...)
	return b
}

// Init implements tea.Model.
func (n *Network) Init() tea.Cmd {
	return tea.Batch(
		n.tabs.Init(),
		n.pager.Init(),
	)
}

// Update implements tea.Model.
func (n *Network) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)
	switch msg := msg.(type) {
	case tabs.ActiveTabMsg:
		n.updateStatus(int(msg))
		return n, nil
	case SetTabsMsg:
		cmds = append(cmds, n.SetTabs(msg))
		return n, tea.Batch(cmds...)
	case SetPageBodyMsg:
		for i, d := range n.defs {
			if d.ID == msg.ID {
				n.defs[i].Body = msg.Body
				cmds = append(cmds, n.docs[i].SetBody(msg.Body))
			}
		}
		return n, tea.Batch(cmds...)
	}
	t, cmd := n.tabs.Update(msg)
	n.tabs = t.(*tabs.Tabs)
	cmds = append(cmds, cmd)
	p, cmd := n.pager.Update(msg)
	n.pager = p.(*pager.Pager)
	cmds = append(cmds, cmd)
	return n, tea.Batch(cmds...)
}

// View implements tea.Model.
func (n *Network) View() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		n.tabs.View(),
		n.common.Styles.Page.Render(n.pager.View()),
		n.statusbar.View(),
	)
}

// SetTabs replaces the tabs and their pages.
func (n *Network) SetTabs(defs []config.TabConfig) tea.Cmd {
	n.defs = append([]config.TabConfig(nil), defs...)
	n.docs = newDocuments(n.common, n.defs)
	return tea.Batch(
		n.pager.SetPages(components(n.docs)),
		n.tabs.SetTabs(tabsFromConfig(n.defs)),
	)
}

// PageSelected implements pager.Listener.
func (n *Network) PageSelected(page int) tea.Cmd {
	return n.tabs.OnPageSelected(page)
}

// PageScroll implements pager.Listener.
func (n *Network) PageScroll(page int, offset float64) tea.Cmd {
	return n.tabs.OnPagerScroll(page, offset)
}

// PageScrollStateChanged implements pager.Listener.
func (n *Network) PageScrollStateChanged(state pager.State) tea.Cmd {
	return n.tabs.OnPagerScrollStateChanged(state == pager.Idle)
}

// Tabs returns the tab strip.
func (n *Network) Tabs() *tabs.Tabs {
	return n.tabs
}

// Pager returns the pager.
func (n *Network) Pager() *pager.Pager {
	return n.pager
}

func (n *Network) updateStatus(page int) {
	info := fmt.Sprintf("%d/%d", page+1, len(n.defs))
	var value string
	if page >= 0 && page < len(n.defs) {
		value = n.defs[page].Title
	}
	if len(n.defs) == 0 {
		info = "0/0"
	}
	n.statusbar.SetStatus(n.title, value, info)
}
