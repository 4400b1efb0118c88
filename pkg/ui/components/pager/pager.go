package pager

import (
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pageSelectedCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clubterm",
		Subsystem: "pager",
		Name:      "page_selected_total",
		Help:      "The total number of page selections",
	})

	dragCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "clubterm",
		Subsystem: "pager",
		Name:      "drag_total",
		Help:      "The total number of drag gestures",
	})
)

// releaseThreshold is the fraction of a page a drag has to cover to move to
// the adjacent page.
const releaseThreshold = 0.25

// settleEpsilon is the distance and velocity below which a settling pager
// snaps onto its target page.
const settleEpsilon = 0.001

var lastID int64

func nextID() int64 {
	return atomic.AddInt64(&lastID, 1)
}

// State is the scroll state of the pager.
type State int

// Scroll states.
const (
	Idle State = iota
	Dragging
	Settling
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Settling:
		return "settling"
	default:
		return "unknown"
	}
}

// Listener receives pager events. Every method is called from Update, in
// the order the events happen.
type Listener interface {
	PageSelected(page int) tea.Cmd
	PageScroll(page int, offset float64) tea.Cmd
	PageScrollStateChanged(state State) tea.Cmd
}

// SetPageMsg is a message that moves the pager to a page.
type SetPageMsg int

type frameMsg struct {
	id  int64
	seq int
}

type releaseMsg struct {
	id  int64
	seq int
}

// Pager is a horizontally paged view. It animates between pages and reports
// its continuous position to a Listener.
type Pager struct {
	common   common.Common
	id       int64
	pages    []common.Component
	listener Listener

	position float64
	velocity float64
	target   float64
	selected int
	state    State

	spring    harmonica.Spring
	animating bool
	frameSeq  int
	dragSeq   int
	dragDir   float64

	FPS         int
	Frequency   float64
	Damping     float64
	DragStep    float64
	DragTimeout time.Duration
}

// New returns a new Pager showing initialPage.
func New(c common.Common, pages []common.Component, initialPage int) *Pager {
	if initialPage < 0 || initialPage >= len(pages) {
		initialPage = 0
	}
	p := &Pager{
		common:      c.WithLogger("pager"),
		id:          nextID(),
		pages:       pages,
		position:    float64(initialPage),
		target:      float64(initialPage),
		selected:    initialPage,
		state:       Idle,
		FPS:         60,
		Frequency:   7.0,
		Damping:     0.9,
		DragStep:    releaseThreshold,
		DragTimeout: 250 * time.Millisecond,
	}
	if cfg := c.Config(); cfg != nil {
		if cfg.UI.FPS > 0 {
			p.FPS = cfg.UI.FPS
		}
		if cfg.UI.SpringFrequency > 0 {
			p.Frequency = cfg.UI.SpringFrequency
		}
		if cfg.UI.SpringDamping > 0 {
			p.Damping = cfg.UI.SpringDamping
		}
		if cfg.UI.DragStep > 0 {
			p.DragStep = cfg.UI.DragStep
		}
		if cfg.UI.DragTimeoutMs > 0 {
			p.DragTimeout = cfg.UI.DragTimeout()
		}
	}
	return p
}

// SetListener sets the receiver of pager events.
func (p *Pager) SetListener(l Listener) {
	p.listener = l
}

// SetPages replaces the pages. A selection past the new last page moves to
// the last page without animation.
func (p *Pager) SetPages(pages []common.Component) tea.Cmd {
	p.pages = pages
	for _, page := range p.pages {
		page.SetSize(p.common.Width, p.common.Height)
	}
	last := len(pages) - 1
	if last < 0 || p.selected <= last {
		if p.position > float64(max(last, 0)) {
			p.position = float64(max(last, 0))
		}
		return p.Init()
	}
	p.animating = false
	p.frameSeq++
	p.selected, p.position, p.target, p.velocity = last, float64(last), float64(last), 0
	cmds := []tea.Cmd{p.Init()}
	if p.listener != nil {
		cmds = append(cmds, p.listener.PageSelected(last), p.emitScroll())
	}
	cmds = append(cmds, p.setState(Idle))
	return tea.Batch(cmds...)
}

// SetSize implements common.Component.
func (p *Pager) SetSize(width, height int) {
	p.common.SetSize(width, height)
	for _, page := range p.pages {
		page.SetSize(width, height)
	}
}

// Init implements tea.Model.
func (p *Pager) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(p.pages))
	for _, page := range p.pages {
		cmds = append(cmds, page.Init())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (p *Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id == p.id && msg.seq == p.frameSeq {
			cmds = append(cmds, p.step())
		}
		return p, tea.Batch(cmds...)
	case releaseMsg:
		if msg.id == p.id && msg.seq == p.dragSeq {
			cmds = append(cmds, p.release())
		}
		return p, tea.Batch(cmds...)
	case SetPageMsg:
		cmds = append(cmds, p.SetPage(int(msg)))
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.common.KeyMap.NextPage):
			cmds = append(cmds, p.SetPage(p.selected+1))
		case key.Matches(msg, p.common.KeyMap.PrevPage):
			cmds = append(cmds, p.SetPage(p.selected-1))
		case key.Matches(msg, p.common.KeyMap.DragRight):
			cmds = append(cmds, p.Drag(p.DragStep))
		case key.Matches(msg, p.common.KeyMap.DragLeft):
			cmds = append(cmds, p.Drag(-p.DragStep))
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelRight:
			cmds = append(cmds, p.Drag(p.DragStep))
		case tea.MouseButtonWheelLeft:
			cmds = append(cmds, p.Drag(-p.DragStep))
		}
	}
	if page := p.Current(); page >= 0 {
		m, cmd := p.pages[page].Update(msg)
		p.pages[page] = m.(common.Component)
		cmds = append(cmds, cmd)
	}
	return p, tea.Batch(cmds...)
}

// View implements tea.Model. Between pages the next page is wiped in from
// the right.
func (p *Pager) View() string {
	if len(p.pages) == 0 {
		return ""
	}
	page, offset := p.scrollPosition()
	if offset == 0 || p.common.Width <= 0 {
		return p.pages[p.Current()].View()
	}
	split := int(math.Round(float64(p.common.Width) * (1 - offset)))
	left := strings.Split(p.pages[page].View(), "\n")
	right := strings.Split(p.pages[page+1].View(), "\n")
	lines := make([]string, max(len(left), len(right)))
	for i := range lines {
		var l, r string
		if i < len(left) {
			l = truncate.String(left[i], uint(split)) //nolint:gosec
		}
		if i < len(right) {
			r = truncate.String(right[i], uint(p.common.Width-split)) //nolint:gosec
		}
		if pad := split - ansi.PrintableRuneWidth(l); pad > 0 {
			l += strings.Repeat(" ", pad)
		}
		lines[i] = l + termenv.CSI + termenv.ResetSeq + "m" + r
	}
	return strings.Join(lines, "\n")
}

// ShortHelp implements help.KeyMap.
func (p *Pager) ShortHelp() []key.Binding {
	b := []key.Binding{
		p.common.KeyMap.PrevPage,
		p.common.KeyMap.NextPage,
		p.common.KeyMap.DragLeft,
		p.common.KeyMap.DragRight,
	}
	if page := p.Current(); page >= 0 {
		b = append(b, p.pages[page].ShortHelp()...)
	}
	return b
}

// FullHelp implements help.KeyMap.
func (p *Pager) FullHelp() [][]key.Binding {
	b := [][]key.Binding{p.ShortHelp()[:4]}
	if page := p.Current(); page >= 0 {
		b = append(b, p.pages[page].FullHelp()...)
	}
	return b
}

// Current returns the page closest to the current position, or -1 when the
// pager has no pages.
func (p *Pager) Current() int {
	if len(p.pages) == 0 {
		return -1
	}
	return clamp(int(math.Round(p.position)), 0, len(p.pages)-1)
}

// Selected returns the last selected page.
func (p *Pager) Selected() int {
	return p.selected
}

// State returns the scroll state.
func (p *Pager) State() State {
	return p.state
}

// Position returns the continuous pager position in pages.
func (p *Pager) Position() float64 {
	return p.position
}

// Len returns the number of pages.
func (p *Pager) Len() int {
	return len(p.pages)
}

// SetPage moves the pager to the page at index. The move is animated and
// reported to the listener frame by frame.
func (p *Pager) SetPage(index int) tea.Cmd {
	if index < 0 || index >= len(p.pages) {
		return nil
	}
	if p.state == Idle && index == p.selected && p.position == float64(index) {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 3)
	cmds = append(cmds, p.setState(Settling))
	if index != p.selected {
		p.selected = index
		pageSelectedCounter.Inc()
		p.common.Logger.Debug("page selected", "page", index)
		if p.listener != nil {
			cmds = append(cmds, p.listener.PageSelected(index))
		}
	}
	p.target = float64(index)
	cmds = append(cmds, p.animate())
	return tea.Batch(cmds...)
}

// Drag moves the pager by delta pages as if the user dragged it. The pager
// settles on a page once no drag happened for DragTimeout.
func (p *Pager) Drag(delta float64) tea.Cmd {
	if len(p.pages) == 0 || delta == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 3)
	if p.state != Dragging {
		dragCounter.Inc()
		cmds = append(cmds, p.setState(Dragging))
	}
	// Stop any running animation; pending frames are dropped.
	p.animating = false
	p.frameSeq++
	p.velocity = 0
	p.dragDir = math.Copysign(1, delta)
	p.position = math.Max(0, math.Min(float64(len(p.pages)-1), p.position+delta))
	cmds = append(cmds, p.emitScroll())

	p.dragSeq++
	id, seq := p.id, p.dragSeq
	cmds = append(cmds, tea.Tick(p.DragTimeout, func(time.Time) tea.Msg {
		return releaseMsg{id: id, seq: seq}
	}))
	return tea.Batch(cmds...)
}

// release ends a drag and settles on the page the drag was heading to.
func (p *Pager) release() tea.Cmd {
	if p.state != Dragging {
		return nil
	}
	return p.SetPage(p.releaseTarget())
}

func (p *Pager) releaseTarget() int {
	base := math.Floor(p.position)
	frac := p.position - base
	target := base
	switch {
	case p.dragDir > 0 && frac >= releaseThreshold:
		target = base + 1
	case p.dragDir < 0 && frac > 1-releaseThreshold:
		target = base + 1
	}
	return clamp(int(target), 0, len(p.pages)-1)
}

func (p *Pager) setState(s State) tea.Cmd {
	if p.state == s {
		return nil
	}
	p.common.Logger.Debug("scroll state changed", "from", p.state, "to", s)
	p.state = s
	if p.listener == nil {
		return nil
	}
	return p.listener.PageScrollStateChanged(s)
}

func (p *Pager) animate() tea.Cmd {
	if p.animating {
		return nil
	}
	p.animating = true
	p.frameSeq++
	p.spring = harmonica.NewSpring(harmonica.FPS(p.FPS), p.Frequency, p.Damping)
	return p.tick()
}

func (p *Pager) tick() tea.Cmd {
	id, seq := p.id, p.frameSeq
	return tea.Tick(time.Second/time.Duration(max(p.FPS, 1)), func(time.Time) tea.Msg {
		return frameMsg{id: id, seq: seq}
	})
}

func (p *Pager) step() tea.Cmd {
	if !p.animating {
		return nil
	}
	p.position, p.velocity = p.spring.Update(p.position, p.velocity, p.target)
	p.position = math.Max(0, math.Min(float64(len(p.pages)-1), p.position))
	if math.Abs(p.position-p.target) < settleEpsilon && math.Abs(p.velocity) < settleEpsilon {
		p.position, p.velocity = p.target, 0
		p.animating = false
		return tea.Batch(p.emitScroll(), p.setState(Idle))
	}
	return tea.Batch(p.emitScroll(), p.tick())
}

// scrollPosition splits the position into a page and the offset toward the
// next page. The last page never has an offset.
func (p *Pager) scrollPosition() (int, float64) {
	last := len(p.pages) - 1
	page := int(math.Floor(p.position))
	if page >= last {
		return max(last, 0), 0
	}
	if page < 0 {
		return 0, 0
	}
	return page, p.position - float64(page)
}

func (p *Pager) emitScroll() tea.Cmd {
	if p.listener == nil {
		return nil
	}
	page, offset := p.scrollPosition()
	return p.listener.PageScroll(page, offset)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
