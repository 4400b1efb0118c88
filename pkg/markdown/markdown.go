// Package markdown renders tab pages with Glamour.
package markdown

import (
	"context"
	"fmt"
	"hash/fnv"

	"github.com/charmbracelet/glamour"
	gansi "github.com/charmbracelet/glamour/ansi"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/muesli/termenv"
)

// DefaultCacheSize is the number of rendered documents kept when no size is
// given.
const DefaultCacheSize = 64

// Word wrap bounds for documents.
const (
	MinWidth = 10
	MaxWidth = 120
)

func strptr(s string) *string {
	return &s
}

// StyleConfig returns the default Glamour style configuration.
func StyleConfig() gansi.StyleConfig {
	noColor := strptr("")
	s := glamour.DarkStyleConfig
	s.H1.BackgroundColor = noColor
	s.H1.Prefix = "# "
	s.H1.Suffix = ""
	s.H1.Color = strptr("36")
	s.Document.StylePrimitive.Color = noColor
	return s
}

type cacheKey struct {
	profile termenv.Profile
	width   int
	sum     uint64
}

// Renderer renders markdown and caches the output per width and color
// profile. It is safe for concurrent use.
type Renderer struct {
	styles gansi.StyleConfig
	cache  *lru.Cache[cacheKey, string]
}

// NewRenderer returns a renderer caching up to size documents.
func NewRenderer(size int) (*Renderer, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, string](size)
	if err != nil {
		return nil, fmt.Errorf("markdown cache: %w", err)
	}
	return &Renderer{
		styles: StyleConfig(),
		cache:  cache,
	}, nil
}

// Render renders md wrapped at width for the given color profile.
func (r *Renderer) Render(md string, width int, profile termenv.Profile) (string, error) {
	width = max(MinWidth, min(MaxWidth, width))
	h := fnv.New64a()
	h.Write([]byte(md)) //nolint:errcheck
	key := cacheKey{profile: profile, width: width, sum: h.Sum64()}
	if s, ok := r.cache.Get(key); ok {
		return s, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(r.styles),
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	s, err := tr.Render(md)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	r.cache.Add(key, s)
	return s, nil
}

// Len returns the number of cached documents.
func (r *Renderer) Len() int {
	return r.cache.Len()
}

// ContextKey is the context key for the renderer.
var ContextKey = &struct{ string }{"markdown"}

// FromContext returns the renderer from the context, or nil.
func FromContext(ctx context.Context) *Renderer {
	if r, ok := ctx.Value(ContextKey).(*Renderer); ok {
		return r
	}
	return nil
}

// WithContext returns a new context with the renderer.
func WithContext(ctx context.Context, r *Renderer) context.Context {
	return context.WithValue(ctx, ContextKey, r)
}
