package tabs

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/mattn/go-runewidth"
)

// ErrNotMeasurable is returned when a tab has no visible label.
var ErrNotMeasurable = errors.New("tab is not measurable")

// separator is drawn before every tab but the first.
const separator = "│"

// Tab is an entry of the strip.
type Tab struct {
	ID    string
	Title string
	// Count is shown next to the title. A negative count is hidden.
	Count int64
}

// MeasuredMsg carries the measurement of a single tab.
type MeasuredMsg struct {
	id          int64
	gen         int
	Index       int
	Measurement Measurement
}

// MeasureErrorMsg is returned when a tab could not be measured.
type MeasureErrorMsg struct {
	id    int64
	gen   int
	Index int
	Err   error
}

// layout is an immutable snapshot of the strip geometry. Measurement
// commands read from it concurrently.
type layout struct {
	labels []string
	widths []int
	margin int
	sep    int
}

func newLayout(tabs []Tab, margin int, showSeparators bool, maxTitle int) layout {
	l := layout{
		labels: make([]string, len(tabs)),
		widths: make([]int, len(tabs)),
		margin: max(margin, 0),
	}
	if showSeparators {
		l.sep = runewidth.StringWidth(separator)
	}
	for i, t := range tabs {
		l.labels[i] = common.TabLabel(t.Title, t.Count, maxTitle)
		l.widths[i] = runewidth.StringWidth(l.labels[i])
	}
	return l
}

// measure returns the bounds of the label of tab i.
func (l layout) measure(i int) (Measurement, error) {
	if i < 0 || i >= len(l.labels) {
		return Measurement{}, fmt.Errorf("tab %d: %w", i, ErrNotMeasurable)
	}
	if l.widths[i] == 0 {
		return Measurement{}, fmt.Errorf("tab %d has an empty label: %w", i, ErrNotMeasurable)
	}
	x := l.margin
	for j := 0; j < i; j++ {
		x += l.widths[j] + 2*l.margin + l.sep
	}
	return Measurement{
		X:      x,
		Y:      0,
		Width:  l.widths[i],
		Height: 1,
	}, nil
}

func (l layout) measureCmd(id int64, gen, i int) tea.Cmd {
	return func() tea.Msg {
		m, err := l.measure(i)
		if err != nil {
			return MeasureErrorMsg{id: id, gen: gen, Index: i, Err: err}
		}
		return MeasuredMsg{id: id, gen: gen, Index: i, Measurement: m}
	}
}

// width returns the width of the whole unscrolled row.
func (l layout) width() int {
	var w int
	for i, lw := range l.widths {
		if i > 0 {
			w += l.sep
		}
		w += lw + 2*l.margin
	}
	return w
}

type segment struct {
	text  string
	style lipgloss.Style
	zone  string
}

// render draws the part of the row in [scrollX, scrollX+width).
func render(segs []segment, scrollX, width int, mark func(id, s string) string) string {
	var s strings.Builder
	var x, drawn int
	end := scrollX + width
	for _, seg := range segs {
		w := runewidth.StringWidth(seg.text)
		if x+w > scrollX && x < end {
			part := cut(seg.text, scrollX-x, end-x)
			drawn += runewidth.StringWidth(part)
			part = seg.style.Render(part)
			if seg.zone != "" && mark != nil {
				part = mark(seg.zone, part)
			}
			s.WriteString(part)
		}
		x += w
	}
	if drawn < width {
		s.WriteString(strings.Repeat(" ", width-drawn))
	}
	return s.String()
}

// cut returns the cells of s in [from, to). Wide runes split by the window
// are replaced by spaces.
func cut(s string, from, to int) string {
	var b strings.Builder
	var x int
	for _, r := range s {
		if x >= to {
			break
		}
		w := runewidth.RuneWidth(r)
		switch {
		case x >= from && x+w <= to:
			b.WriteRune(r)
		case x+w > from:
			for c := max(x, from); c < min(x+w, to); c++ {
				b.WriteByte(' ')
			}
		}
		x += w
	}
	return b.String()
}
