package tabs

import tea "github.com/charmbracelet/bubbletea"

// ScrollPosition is a pager position: a page index plus the fraction of the
// way toward the next page, in [0, 1).
type ScrollPosition struct {
	Page   int
	Offset float64
}

// PagerListener receives the events of a paged view.
type PagerListener interface {
	// OnPageSelected is called when the pager commits to a page.
	OnPageSelected(page int) tea.Cmd
	// OnPagerScroll is called for every scroll frame of the pager.
	OnPagerScroll(page int, offset float64) tea.Cmd
	// OnPagerScrollStateChanged is called when the pager becomes idle or
	// starts moving.
	OnPagerScrollStateChanged(idle bool) tea.Cmd
}

var _ PagerListener = (*Tabs)(nil)
