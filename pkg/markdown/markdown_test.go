package markdown

import (
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/matryer/is"
	"github.com/muesli/termenv"
)

func TestRenderCaches(t *testing.T) {
	is := is.New(t)
	r, err := NewRenderer(2)
	is.NoErr(err)

	out, err := r.Render("# Clubs\n\nClubs you're a member of.", 40, termenv.Ascii)
	is.NoErr(err)
	is.True(strings.Contains(ansi.Strip(out), "Clubs you're a member of."))
	is.Equal(r.Len(), 1)

	again, err := r.Render("# Clubs\n\nClubs you're a member of.", 40, termenv.Ascii)
	is.NoErr(err)
	is.Equal(again, out)
	is.Equal(r.Len(), 1)

	_, err = r.Render("# Clubs\n\nClubs you're a member of.", 20, termenv.Ascii)
	is.NoErr(err)
	is.Equal(r.Len(), 2)

	_, err = r.Render("# Events", 20, termenv.Ascii)
	is.NoErr(err)
	is.Equal(r.Len(), 2) // evicted
}

func TestRenderWidthBounds(t *testing.T) {
	is := is.New(t)
	r, err := NewRenderer(0)
	is.NoErr(err)
	_, err = r.Render("text", 0, termenv.Ascii)
	is.NoErr(err)
	_, err = r.Render("text", 500, termenv.Ascii)
	is.NoErr(err)
}

func TestContext(t *testing.T) {
	is := is.New(t)
	is.True(FromContext(context.Background()) == nil)
	r, err := NewRenderer(1)
	is.NoErr(err)
	is.Equal(FromContext(WithContext(context.Background(), r)), r)
}
