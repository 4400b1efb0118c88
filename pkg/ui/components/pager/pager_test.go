package pager

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

type testPage struct {
	name   string
	width  int
	height int
	msgs   int
}

func (p *testPage) Init() tea.Cmd { return nil }
func (p *testPage) Update(tea.Msg) (tea.Model, tea.Cmd) { p.msgs++; return p, nil }
func (p *testPage) View() string { return strings.Repeat(p.name, p.width) }
func (p *testPage) SetSize(width, height int) { p.width, p.height = width, height }
func (p *testPage) ShortHelp() []key.Binding { return nil }
func (p *testPage) FullHelp() [][]key.Binding { return nil }

type recorder struct {
	events []string
}

func (r *recorder) PageSelected(page int) tea.Cmd {
	r.events = append(r.events, fmt.Sprintf("selected:%d", page))
	return nil
}

func (r *recorder) PageScroll(page int, offset float64) tea.Cmd {
	r.events = append(r.events, fmt.Sprintf("scroll:%d:%.2f", page, offset))
	return nil
}

func (r *recorder) PageScrollStateChanged(state State) tea.Cmd {
	r.events = append(r.events, "state:"+state.String())
	return nil
}

func (r *recorder) reset() {
	r.events = nil
}

func newTestPager(n, initial int) (*Pager, *recorder) {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii))
	c := common.NewCommon(context.TODO(), r, 4, 1)
	pages := make([]common.Component, n)
	for i := range pages {
		pages[i] = &testPage{name: string(rune('a' + i))}
	}
	p := New(c, pages, initial)
	p.SetSize(4, 1)
	rec := &recorder{}
	p.SetListener(rec)
	return p, rec
}

func settle(p *Pager) {
	for i := 0; i < 10000 && p.animating; i++ {
		p.step()
	}
}

func TestSetPage(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(4, 0)

	cmd := p.SetPage(2)
	is.True(cmd != nil)
	is.Equal(p.State(), Settling)
	is.Equal(p.Selected(), 2)
	is.Equal(rec.events, []string{"state:settling", "selected:2"})

	settle(p)
	is.Equal(p.State(), Idle)
	is.Equal(p.Position(), 2.0)
	n := len(rec.events)
	is.True(n > 4)
	is.Equal(rec.events[n-2:], []string{"scroll:2:0.00", "state:idle"})
	for _, e := range rec.events[2 : n-1] {
		is.True(strings.HasPrefix(e, "scroll:"))
	}
}

func TestSetPageNoop(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(3, 1)
	is.True(p.SetPage(1) == nil)
	is.True(p.SetPage(3) == nil)
	is.True(p.SetPage(-1) == nil)
	is.Equal(len(rec.events), 0)
}

func TestSetPageRetargets(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(4, 0)
	p.SetPage(3)
	p.step()
	rec.reset()

	p.SetPage(1)
	is.Equal(rec.events, []string{"selected:1"}) // already settling
	settle(p)
	is.Equal(p.Position(), 1.0)
	is.Equal(rec.events[len(rec.events)-1], "state:idle")
}

func TestDragRelease(t *testing.T) {
	cases := []struct {
		name  string
		delta float64
		want  int
	}{
		{"forward past threshold", 0.25, 2},
		{"forward below threshold", 0.1, 1},
		{"backward past threshold", -0.25, 0},
		{"backward below threshold", -0.1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			p, rec := newTestPager(4, 1)
			p.Drag(c.delta)
			is.Equal(p.State(), Dragging)
			is.Equal(rec.events[0], "state:dragging")

			p.Update(releaseMsg{id: p.id, seq: p.dragSeq})
			settle(p)
			is.Equal(p.State(), Idle)
			is.Equal(p.Selected(), c.want)
			is.Equal(p.Position(), float64(c.want))
		})
	}
}

func TestDragReportsScroll(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(4, 1)
	p.Drag(0.25)
	p.Drag(0.25)
	is.Equal(rec.events, []string{"state:dragging", "scroll:1:0.25", "scroll:1:0.50"})
}

func TestStaleReleaseIgnored(t *testing.T) {
	is := is.New(t)
	p, _ := newTestPager(4, 1)
	p.Drag(0.25)
	stale := p.dragSeq
	p.Drag(0.25)
	p.Update(releaseMsg{id: p.id, seq: stale})
	is.Equal(p.State(), Dragging)
	p.Update(releaseMsg{id: p.id + 1, seq: p.dragSeq})
	is.Equal(p.State(), Dragging)
}

func TestDragClampsAtLastPage(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(3, 2)
	p.Drag(0.25)
	is.Equal(p.Position(), 2.0)
	is.Equal(rec.events[len(rec.events)-1], "scroll:2:0.00")
}

func TestDragInterruptsSettle(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(4, 0)
	p.SetPage(3)
	p.step()
	seq := p.frameSeq
	p.Drag(-0.25)
	is.Equal(p.State(), Dragging)
	is.True(!p.animating)

	rec.reset()
	p.Update(frameMsg{id: p.id, seq: seq})
	is.Equal(len(rec.events), 0) // frames of the interrupted animation are dropped
}

func TestKeys(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(3, 0)
	p.Update(tea.KeyMsg{Type: tea.KeyRight})
	is.Equal(p.Selected(), 1)
	settle(p)
	p.Update(tea.KeyMsg{Type: tea.KeyLeft})
	is.Equal(p.Selected(), 0)
	settle(p)
	rec.reset()
	p.Update(tea.KeyMsg{Type: tea.KeyLeft})
	is.Equal(len(rec.events), 0)

	p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("L")})
	is.Equal(p.State(), Dragging)
}

func TestUpdateForwardsToCurrentPage(t *testing.T) {
	is := is.New(t)
	p, _ := newTestPager(3, 1)
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	is.Equal(p.pages[1].(*testPage).msgs, 1)
	is.Equal(p.pages[0].(*testPage).msgs, 0)
}

func TestView(t *testing.T) {
	is := is.New(t)
	p, _ := newTestPager(3, 0)
	is.Equal(p.View(), "aaaa")

	p.position = 0.5
	is.Equal(ansi.Strip(p.View()), "aabb")

	p.position = 1.75
	is.Equal(ansi.Strip(p.View()), "bccc")

	p.position = 2
	is.Equal(p.View(), "cccc")
}

func TestStateString(t *testing.T) {
	is := is.New(t)
	is.Equal(Idle.String(), "idle")
	is.Equal(Dragging.String(), "dragging")
	is.Equal(Settling.String(), "settling")
	is.Equal(State(9).String(), "unknown")
}

func TestSetPagesClampsSelection(t *testing.T) {
	is := is.New(t)
	p, rec := newTestPager(4, 3)
	p.SetPages([]common.Component{&testPage{name: "x"}, &testPage{name: "y"}})
	is.Equal(p.Len(), 2)
	is.Equal(p.Selected(), 1)
	is.Equal(p.Position(), 1.0)
	is.Equal(rec.events, []string{"selected:1", "scroll:1:0.00"})
	is.Equal(p.View(), "yyyy")
}
