// Package document provides a scrollable markdown page.
package document

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/connectclub/clubterm/pkg/markdown"
	"github.com/connectclub/clubterm/pkg/ui/common"
	vp "github.com/connectclub/clubterm/pkg/ui/components/viewport"
)

// Document is a markdown page.
type Document struct {
	*vp.Viewport
	common         common.Common
	body           string
	renderer       *markdown.Renderer
	NoContentStyle lipgloss.Style
}

// New returns a new Document. Rendered output is cached by the markdown
// renderer found in the context, if any.
func New(c common.Common, body string) *Document {
	r := markdown.FromContext(c.Context())
	if r == nil {
		r, _ = markdown.NewRenderer(markdown.DefaultCacheSize)
	}
	d := &Document{
		Viewport:       vp.New(c),
		common:         c,
		body:           body,
		renderer:       r,
		NoContentStyle: c.Styles.PageNoBody.SetString("Nothing here yet."),
	}
	return d
}

// SetSize implements common.Component.
func (d *Document) SetSize(width, height int) {
	d.common.SetSize(width, height)
	d.Viewport.SetSize(width, height)
	d.render() //nolint:errcheck
}

// SetBody replaces the markdown of the document.
func (d *Document) SetBody(body string) tea.Cmd {
	d.body = body
	return d.Init()
}

// Body returns the markdown of the document.
func (d *Document) Body() string {
	return d.body
}

// Init implements tea.Model.
func (d *Document) Init() tea.Cmd {
	if err := d.render(); err != nil {
		return common.ErrorCmd(err)
	}
	return nil
}

// Update implements tea.Model.
func (d *Document) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v, cmd := d.Viewport.Update(msg)
	d.Viewport = v.(*vp.Viewport)
	return d, cmd
}

// View implements tea.Model.
func (d *Document) View() string {
	return d.Viewport.View()
}

// ShortHelp implements help.KeyMap.
func (d *Document) ShortHelp() []key.Binding {
	return []key.Binding{
		d.common.KeyMap.ScrollUp,
		d.common.KeyMap.ScrollDown,
	}
}

// FullHelp implements help.KeyMap.
func (d *Document) FullHelp() [][]key.Binding {
	return [][]key.Binding{d.ShortHelp()}
}

func (d *Document) render() error {
	if strings.TrimSpace(d.body) == "" {
		d.Viewport.SetContent(d.NoContentStyle.String())
		return nil
	}
	w := d.common.Width
	if w <= 0 {
		return nil
	}
	md, err := d.renderer.Render(d.body, w, d.common.Renderer.ColorProfile())
	if err != nil {
		d.common.Logger.Error("failed to render page", "err", err)
		return err //nolint:wrapcheck
	}
	// Fix styles after hard wrapping
	// https://github.com/muesli/reflow/issues/43
	md = d.common.Renderer.NewStyle().Width(w).Render(strings.TrimRight(md, "\n"))
	d.Viewport.SetContent(md)
	return nil
}
