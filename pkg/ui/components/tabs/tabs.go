package tabs

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/connectclub/clubterm/pkg/ui/common"
)

var lastID int64

func nextID() int64 {
	return atomic.AddInt64(&lastID, 1)
}

// SelectTabMsg is a message that requests the page of the tab at the given
// index.
type SelectTabMsg int

// ActiveTabMsg is a message that contains the index of the highlighted tab.
type ActiveTabMsg int

// SetTabValueMsg is a message that sets a tabs shown title.
type SetTabValueMsg struct {
	ID    string
	Value string
}

// SetTabCountMsg is a message that sets a tabs shown count.
type SetTabCountMsg struct {
	ID    string
	Count int64
}

// SetTabsMsg replaces every tab of the strip.
type SetTabsMsg []Tab

type frameMsg struct {
	id int64
}

// Options configures a Tabs component.
type Options struct {
	// InitialPage is the page the indicator sits under until the pager
	// reports a position.
	InitialPage int
	// OnChange is called with the index of a pressed tab. The host is
	// expected to move the pager, which reports back through the
	// PagerListener methods.
	OnChange func(index int) tea.Cmd
}

// Tabs is bubbletea component that displays a horizontally scrollable list
// of tabs with a sliding indicator kept in sync with a pager.
type Tabs struct {
	common      common.Common
	id          int64
	zonePrefix  string
	tabs        []Tab
	layout      layout
	store       *Store
	indicator   *Indicator
	gen         int
	highlighted int
	initialPage int
	onChange    func(int) tea.Cmd
	pos         ScrollPosition
	initialized bool
	idle        bool

	// launchScroll is set until the strip first scrolls to the initial
	// page.
	launchScroll bool

	spring    harmonica.Spring
	scroll    float64
	velocity  float64
	target    float64
	animating bool

	TabSeparator    lipgloss.Style
	TabInactive     lipgloss.Style
	TabActive       lipgloss.Style
	TabMargin       lipgloss.Style
	ShowSeparators  bool
	Margin          int
	MaxTitleWidth   int
	FPS             int
	SpringFrequency float64
	SpringDamping   float64
}

// New creates a new Tabs component.
func New(c common.Common, tabs []Tab, opts Options) *Tabs {
	store := NewStore(len(tabs))
	t := &Tabs{
		common:          c.WithLogger("tabs"),
		id:              nextID(),
		zonePrefix:      c.Zone.NewPrefix(),
		tabs:            append([]Tab(nil), tabs...),
		store:           store,
		indicator:       NewIndicator(store, c.Styles.Indicator),
		highlighted:     opts.InitialPage,
		initialPage:     opts.InitialPage,
		onChange:        opts.OnChange,
		idle:            true,
		TabSeparator:    c.Styles.TabSeparator,
		TabInactive:     c.Styles.TabInactive,
		TabActive:       c.Styles.TabActive,
		TabMargin:       c.Styles.TabMargin,
		ShowSeparators:  true,
		Margin:          2,
		FPS:             60,
		SpringFrequency: 7.0,
		SpringDamping:   0.9,
	}
	if cfg := c.Config(); cfg != nil {
		t.ShowSeparators = cfg.UI.ShowSeparators
		t.Margin = cfg.UI.TabMargin
		t.MaxTitleWidth = cfg.UI.MaxTitleWidth
		if cfg.UI.FPS > 0 {
			t.FPS = cfg.UI.FPS
		}
		if cfg.UI.SpringFrequency > 0 {
			t.SpringFrequency = cfg.UI.SpringFrequency
		}
		if cfg.UI.SpringDamping > 0 {
			t.SpringDamping = cfg.UI.SpringDamping
		}
	}
	return t
}

// SetSize implements common.Component.
func (t *Tabs) SetSize(width, height int) {
	t.common.SetSize(width, height)
}

// Init implements tea.Model. It starts measuring every tab.
func (t *Tabs) Init() tea.Cmd {
	return t.measure()
}

// Update implements tea.Model.
func (t *Tabs) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)
	switch msg := msg.(type) {
	case MeasuredMsg:
		if msg.id != t.id || msg.gen != t.gen {
			break
		}
		if t.store.Record(msg.Index, msg.Measurement) {
			cmds = append(cmds, t.measured())
		}
	case MeasureErrorMsg:
		if msg.id != t.id || msg.gen != t.gen {
			break
		}
		measureErrorCounter.Inc()
		t.common.Logger.Warn("tabs measurement error", "index", msg.Index, "err", msg.Err)
	case tea.WindowSizeMsg:
		cmds = append(cmds, t.scrollToInitialPage())
	case frameMsg:
		if msg.id != t.id {
			break
		}
		cmds = append(cmds, t.step())
	case tea.KeyMsg:
		if len(t.tabs) == 0 {
			break
		}
		switch {
		case key.Matches(msg, t.common.KeyMap.NextTab):
			cmds = append(cmds, t.OnTabPress((t.highlighted+1)%len(t.tabs)))
		case key.Matches(msg, t.common.KeyMap.PrevTab):
			cmds = append(cmds, t.OnTabPress((t.highlighted-1+len(t.tabs))%len(t.tabs)))
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			break
		}
		for i := range t.tabs {
			if t.common.Zone.Get(t.zoneID(i)).InBounds(msg) {
				cmds = append(cmds, t.OnTabPress(i))
				break
			}
		}
	case SelectTabMsg:
		cmds = append(cmds, t.OnTabPress(int(msg)))
	case SetTabValueMsg:
		for i, tab := range t.tabs {
			if tab.ID == msg.ID && tab.Title != msg.Value {
				t.tabs[i].Title = msg.Value
				cmds = append(cmds, t.measure())
				break
			}
		}
	case SetTabCountMsg:
		for i, tab := range t.tabs {
			if tab.ID == msg.ID && tab.Count != msg.Count {
				t.tabs[i].Count = msg.Count
				cmds = append(cmds, t.measure())
				break
			}
		}
	case SetTabsMsg:
		cmds = append(cmds, t.SetTabs(msg))
	}
	return t, tea.Batch(cmds...)
}

// View implements tea.Model.
func (t *Tabs) View() string {
	width := t.common.Width
	if width <= 0 {
		width = t.layout.width()
	}
	scrollX := t.ScrollOffset()
	row := render(t.segments(), scrollX, width, t.common.Zone.Mark)
	return lipgloss.JoinVertical(lipgloss.Left, row, t.indicator.View(scrollX, width))
}

// ShortHelp implements help.KeyMap.
func (t *Tabs) ShortHelp() []key.Binding {
	return []key.Binding{
		t.common.KeyMap.NextTab,
		t.common.KeyMap.PrevTab,
	}
}

// FullHelp implements help.KeyMap.
func (t *Tabs) FullHelp() [][]key.Binding {
	return [][]key.Binding{t.ShortHelp()}
}

// OnPageSelected implements PagerListener. It changes the highlighted tab.
func (t *Tabs) OnPageSelected(page int) tea.Cmd {
	t.highlighted = page
	return func() tea.Msg {
		return ActiveTabMsg(page)
	}
}

// OnPagerScroll implements PagerListener. It records the position and moves
// the indicator.
func (t *Tabs) OnPagerScroll(page int, offset float64) tea.Cmd {
	t.pos = ScrollPosition{Page: page, Offset: offset}
	t.indicator.OnPositionUpdate(page, offset)
	t.initialized = true
	return nil
}

// OnPagerScrollStateChanged implements PagerListener. Once the pager is
// idle the strip scrolls to center the last recorded position.
func (t *Tabs) OnPagerScrollStateChanged(idle bool) tea.Cmd {
	t.idle = idle
	if !idle {
		return nil
	}
	return t.autoScroll()
}

// OnTabPress reports a press on the tab at index to the host. The
// highlighted tab only changes once the pager selects the page.
func (t *Tabs) OnTabPress(index int) tea.Cmd {
	if index < 0 || index >= len(t.tabs) {
		t.common.Logger.Debug("ignoring press on unknown tab", "index", index)
		return nil
	}
	tabPressCounter.Inc()
	if t.onChange == nil {
		return nil
	}
	return t.onChange(index)
}

// SetTabs replaces the tabs and measures them again. Once every tab is
// measured the indicator returns to the last known position.
func (t *Tabs) SetTabs(tabs []Tab) tea.Cmd {
	t.tabs = append([]Tab(nil), tabs...)
	return t.measure()
}

// Tabs returns a copy of the tabs.
func (t *Tabs) Tabs() []Tab {
	return append([]Tab(nil), t.tabs...)
}

// Highlighted returns the index of the highlighted tab.
func (t *Tabs) Highlighted() int {
	return t.highlighted
}

// Position returns the last pager position.
func (t *Tabs) Position() ScrollPosition {
	return t.pos
}

// Initialized reports whether the indicator received a position.
func (t *Tabs) Initialized() bool {
	return t.initialized
}

// Store returns the tab measurements.
func (t *Tabs) Store() *Store {
	return t.store
}

// Indicator returns the tab indicator.
func (t *Tabs) Indicator() *Indicator {
	return t.indicator
}

// ScrollTarget returns the strip scroll position the animation is heading
// to.
func (t *Tabs) ScrollTarget() float64 {
	return t.target
}

// ScrollOffset returns the first visible cell of the strip.
func (t *Tabs) ScrollOffset() int {
	limit := max(t.layout.width()-t.common.Width, 0)
	return clampInt(int(math.Round(t.scroll)), 0, limit)
}

// Animating reports whether the strip is scrolling.
func (t *Tabs) Animating() bool {
	return t.animating
}

func (t *Tabs) zoneID(i int) string {
	return fmt.Sprintf("%stab-%d", t.zonePrefix, i)
}

// measure starts a new measurement pass. Results of earlier passes are
// dropped.
func (t *Tabs) measure() tea.Cmd {
	t.gen++
	t.layout = newLayout(t.tabs, t.Margin, t.ShowSeparators, t.MaxTitleWidth)
	t.store.Reset(len(t.tabs))
	t.indicator.Reset()
	cmds := make([]tea.Cmd, 0, len(t.tabs))
	for i := range t.tabs {
		cmds = append(cmds, t.layout.measureCmd(t.id, t.gen, i))
	}
	return tea.Batch(cmds...)
}

// measured runs once every tab has been measured.
func (t *Tabs) measured() tea.Cmd {
	if !t.initialized {
		t.common.Logger.Debug("tabs measured", "count", t.store.Count(), "page", t.initialPage)
		t.OnPagerScroll(t.initialPage, 0)
		t.launchScroll = true
		return t.scrollToInitialPage()
	}
	pos := t.pos
	if last := t.store.Count() - 1; pos.Page > last {
		pos = ScrollPosition{Page: last}
	}
	t.pos = pos
	t.indicator.OnPositionUpdate(pos.Page, pos.Offset)
	if t.idle {
		return t.autoScroll()
	}
	return nil
}

// scrollToInitialPage brings the initial page into view once the strip has
// a width. It only runs once.
func (t *Tabs) scrollToInitialPage() tea.Cmd {
	if !t.launchScroll || !t.idle {
		return nil
	}
	target, ok := t.autoScrollTarget(t.pos.Page, t.pos.Offset)
	if !ok {
		return nil
	}
	t.launchScroll = false
	if target == t.target {
		return nil
	}
	autoScrollCounter.Inc()
	return t.scrollTo(target)
}

func (t *Tabs) autoScroll() tea.Cmd {
	target, ok := t.autoScrollTarget(t.pos.Page, t.pos.Offset)
	if !ok {
		t.common.Logger.Debug("skipping auto scroll", "measured", t.store.Complete(), "width", t.common.Width)
		return nil
	}
	autoScrollCounter.Inc()
	return t.scrollTo(target)
}

// autoScrollTarget returns the strip scroll that centers the indicator for
// the given position. It reports false while tabs are being measured or
// before the strip has a width.
func (t *Tabs) autoScrollTarget(page int, offset float64) (float64, bool) {
	set := t.store.Measurements()
	if len(set) == 0 || t.common.Width == 0 {
		return 0, false
	}
	current, ok := t.store.At(page)
	if !ok {
		return 0, false
	}
	m := float64(set[0].X)
	currentHalf := float64(current.Width) / 2
	var nextHalf float64
	if next, ok := t.store.At(page + 1); ok {
		nextHalf = float64(next.Width) / 2
	}
	markerPos := float64(current.X) + currentHalf + (currentHalf+2*m+nextHalf)*offset
	return math.Max(0, markerPos-float64(t.common.Width)/2), true
}

// scrollTo retargets the strip animation.
func (t *Tabs) scrollTo(target float64) tea.Cmd {
	t.target = target
	if t.animating {
		return nil
	}
	t.animating = true
	t.spring = harmonica.NewSpring(harmonica.FPS(t.FPS), t.SpringFrequency, t.SpringDamping)
	return t.tick()
}

func (t *Tabs) tick() tea.Cmd {
	id := t.id
	return tea.Tick(time.Second/time.Duration(max(t.FPS, 1)), func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func (t *Tabs) step() tea.Cmd {
	if !t.animating {
		return nil
	}
	t.scroll, t.velocity = t.spring.Update(t.scroll, t.velocity, t.target)
	if math.Abs(t.scroll-t.target) < 0.01 && math.Abs(t.velocity) < 0.01 {
		t.scroll, t.velocity = t.target, 0
		t.animating = false
		return nil
	}
	return t.tick()
}

func (t *Tabs) segments() []segment {
	segs := make([]segment, 0, len(t.tabs)*4)
	margin := strings.Repeat(" ", t.layout.margin)
	for i, label := range t.layout.labels {
		if i > 0 && t.layout.sep > 0 {
			segs = append(segs, segment{text: separator, style: t.TabSeparator})
		}
		style := t.TabInactive
		if i == t.highlighted {
			style = t.TabActive
		}
		segs = append(segs,
			segment{text: margin, style: t.TabMargin},
			segment{text: label, style: style, zone: t.zoneID(i)},
			segment{text: margin, style: t.TabMargin},
		)
	}
	return segs
}
