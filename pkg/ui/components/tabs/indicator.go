package tabs

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const indicatorGlyph = "━"

// Rect is the horizontal extent of the indicator in strip cells.
type Rect struct {
	Left  float64
	Width float64
}

// Right returns the right edge of the rect.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Indicator is the underline that slides below the tab strip. Its bounds
// are interpolated between the current and the next tab while the pager is
// between pages.
type Indicator struct {
	store  *Store
	rect   Rect
	active bool
	Style  lipgloss.Style
}

// NewIndicator returns an indicator reading bounds from store.
func NewIndicator(store *Store, style lipgloss.Style) *Indicator {
	return &Indicator{
		store: store,
		Style: style,
	}
}

// OnPositionUpdate moves the indicator to the given pager position. It does
// nothing until every tab has been measured or when page is out of range.
func (i *Indicator) OnPositionUpdate(page int, offset float64) {
	current, ok := i.store.At(page)
	if !ok {
		return
	}
	offset = math.Max(0, math.Min(1, offset))
	next := current
	if offset > 0 {
		if m, ok := i.store.At(page + 1); ok {
			next = m
		}
	}
	cw, cx := float64(current.Width), float64(current.X)
	i.rect = Rect{
		Width: cw + (float64(next.Width)-cw)*offset,
		Left:  cx + (float64(next.X)-cx)*offset,
	}
	i.active = true
}

// Bounds returns the current indicator bounds. It reports false until the
// first position update has been applied.
func (i *Indicator) Bounds() (Rect, bool) {
	return i.rect, i.active
}

// Reset hides the indicator until the next position update.
func (i *Indicator) Reset() {
	i.rect = Rect{}
	i.active = false
}

// View renders the indicator row for the strip window starting at scrollX
// and spanning width cells.
func (i *Indicator) View(scrollX, width int) string {
	if width <= 0 {
		return ""
	}
	if !i.active {
		return strings.Repeat(" ", width)
	}
	from := int(math.Round(i.rect.Left)) - scrollX
	to := int(math.Round(i.rect.Right())) - scrollX
	from = clampInt(from, 0, width)
	to = clampInt(to, from, width)

	var s strings.Builder
	s.WriteString(strings.Repeat(" ", from))
	if to > from {
		s.WriteString(i.Style.Render(strings.Repeat(indicatorGlyph, to-from)))
	}
	s.WriteString(strings.Repeat(" ", width-to))
	return s.String()
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
