package common

import (
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

// TruncateString is a convenient wrapper around truncate.TruncateString.
func TruncateString(s string, max int) string { //nolint:revive
	if max <= 0 {
		return ""
	}
	return truncate.StringWithTail(s, uint(max), "…") //nolint:gosec
}

// TabLabel formats a tab title with an optional item count. A negative count
// hides it. The title is truncated to max cells when max is positive.
func TabLabel(title string, count int64, max int) string { //nolint:revive
	if max > 0 {
		title = TruncateString(title, max)
	}
	if count < 0 {
		return title
	}
	return title + " " + humanize.Comma(count)
}
