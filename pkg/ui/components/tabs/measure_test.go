package tabs

import (
	"io"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

func plainStyle() lipgloss.Style {
	return lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.Ascii)).NewStyle()
}

// scenario is a strip of four tabs with widths 40, 60, 50 and 70.
var scenario = []Measurement{
	{X: 0, Width: 40, Height: 1},
	{X: 44, Width: 60, Height: 1},
	{X: 108, Width: 50, Height: 1},
	{X: 162, Width: 70, Height: 1},
}

func completeStore(ms []Measurement) *Store {
	s := NewStore(len(ms))
	for i, m := range ms {
		s.Record(i, m)
	}
	return s
}

func TestStoreWriteOnce(t *testing.T) {
	is := is.New(t)
	s := NewStore(2)
	is.True(!s.Record(0, Measurement{X: 1, Width: 3}))
	is.True(!s.Record(0, Measurement{X: 9, Width: 9})) // second write ignored
	is.Equal(s.Len(), 1)
	is.True(!s.Complete())
	is.True(s.Measurements() == nil)
	_, ok := s.At(0)
	is.True(!ok) // partial sets are not readable

	is.True(s.Record(1, Measurement{X: 8, Width: 4}))
	is.True(s.Complete())
	m, ok := s.At(0)
	is.True(ok)
	is.Equal(m, Measurement{X: 1, Width: 3})
	is.True(!s.Record(1, Measurement{})) // already complete
}

func TestStoreOutOfOrder(t *testing.T) {
	is := is.New(t)
	s := NewStore(len(scenario))
	order := []int{2, 0, 3, 1}
	for n, i := range order {
		completed := s.Record(i, scenario[i])
		is.Equal(completed, n == len(order)-1)
	}
	is.Equal(s.Measurements(), scenario)
}

func TestStoreIgnoresOutOfRange(t *testing.T) {
	is := is.New(t)
	s := NewStore(1)
	is.True(!s.Record(-1, Measurement{}))
	is.True(!s.Record(1, Measurement{}))
	is.Equal(s.Len(), 0)
	is.Equal(s.Count(), 1)
}

func TestStoreReset(t *testing.T) {
	is := is.New(t)
	s := completeStore(scenario)
	is.True(s.Complete())
	s.Reset(2)
	is.True(!s.Complete())
	is.Equal(s.Count(), 2)
	is.Equal(s.Len(), 0)
}

func TestEmptyStoreNeverCompletes(t *testing.T) {
	is := is.New(t)
	s := NewStore(0)
	is.True(!s.Complete())
	is.True(!s.Record(0, Measurement{Width: 1}))
}

func TestIndicatorInterpolation(t *testing.T) {
	cases := []struct {
		name   string
		page   int
		offset float64
		want   Rect
	}{
		{"first page", 0, 0, Rect{Left: 0, Width: 40}},
		{"half way to second", 0, 0.5, Rect{Left: 22, Width: 50}},
		{"second page", 1, 0, Rect{Left: 44, Width: 60}},
		{"quarter way to fourth", 2, 0.25, Rect{Left: 121.5, Width: 55}},
		{"past the last page", 3, 0.5, Rect{Left: 162, Width: 70}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			ind := NewIndicator(completeStore(scenario), plainStyle())
			ind.OnPositionUpdate(c.page, c.offset)
			got, ok := ind.Bounds()
			is.True(ok)
			is.Equal(got, c.want)
		})
	}
}

func TestIndicatorNoopWhileIncomplete(t *testing.T) {
	is := is.New(t)
	s := NewStore(len(scenario))
	s.Record(0, scenario[0])
	ind := NewIndicator(s, plainStyle())
	ind.OnPositionUpdate(0, 0.5)
	_, ok := ind.Bounds()
	is.True(!ok)
}

func TestIndicatorIgnoresUnknownPage(t *testing.T) {
	is := is.New(t)
	ind := NewIndicator(completeStore(scenario), plainStyle())
	ind.OnPositionUpdate(1, 0)
	ind.OnPositionUpdate(7, 0)
	got, _ := ind.Bounds()
	is.Equal(got, Rect{Left: 44, Width: 60})
}

func TestIndicatorView(t *testing.T) {
	is := is.New(t)
	s := completeStore([]Measurement{
		{X: 2, Width: 3},
		{X: 9, Width: 4},
	})
	ind := NewIndicator(s, plainStyle())
	is.Equal(ind.View(0, 6), "      ") // hidden before the first update

	ind.OnPositionUpdate(0, 0)
	is.Equal(ind.View(0, 8), "  ━━━   ")
	is.Equal(ind.View(3, 4), "━━  ")

	ind.OnPositionUpdate(1, 0)
	is.Equal(ind.View(0, 12), "         ━━━")
	is.Equal(ind.View(0, 0), "")
}
