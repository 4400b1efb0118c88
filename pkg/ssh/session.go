package ssh

import (
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	"github.com/connectclub/clubterm/pkg/config"
	"github.com/connectclub/clubterm/pkg/ui"
	"github.com/connectclub/clubterm/pkg/ui/common"
	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ErrUnknownTab is returned when the session asks for a tab that doesn't
// exist.
var ErrUnknownTab = errors.New("unknown tab")

var tuiSessionCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "clubterm",
	Subsystem: "ssh",
	Name:      "tui_session_total",
	Help:      "The total number of TUI sessions",
}, []string{"tab", "term"})

var tuiSessionDuration = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "clubterm",
	Subsystem: "ssh",
	Name:      "tui_session_seconds_total",
	Help:      "The total duration of TUI sessions",
}, []string{"tab", "term"})

// tabIndex returns the index of the tab with the given ID.
func tabIndex(cfg *config.Config, id string) int {
	for i, t := range cfg.Tabs {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SessionHandler is the clubterm bubbletea ssh session handler. A single
// command argument names the tab to open.
// This middleware must be run after the ContextMiddleware.
func SessionHandler(s ssh.Session) *tea.Program {
	pty, _, active := s.Pty()
	if !active {
		return nil
	}

	ctx := s.Context()
	cfg := config.FromContext(ctx)
	if cfg == nil {
		wish.Fatalln(s, config.ErrNilConfig)
		return nil
	}

	initialPage := -1
	initialTab := ""
	if cmd := s.Command(); len(cmd) == 1 {
		initialTab = cmd[0]
		initialPage = tabIndex(cfg, initialTab)
		if initialPage < 0 {
			wish.Fatalf(s, "%s: %q\n", ErrUnknownTab, initialTab)
			return nil
		}
	}

	renderer := bm.MakeRenderer(s)
	if testrun, ok := os.LookupEnv("CLUBTERM_NO_COLOR"); ok && testrun == "1" {
		// Disable colors when running tests.
		renderer.SetColorProfile(termenv.Ascii)
	}

	c := common.NewCommon(ctx, renderer, pty.Window.Width, pty.Window.Height)
	m := ui.New(c, initialPage)
	opts := bm.MakeOptions(s)
	opts = append(opts,
		tea.WithAltScreen(),
		tea.WithoutCatchPanics(),
		tea.WithContext(ctx),
	)
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	tuiSessionCounter.WithLabelValues(initialTab, pty.Term).Inc()

	start := time.Now()
	go func() {
		<-ctx.Done()
		tuiSessionDuration.WithLabelValues(initialTab, pty.Term).Add(time.Since(start).Seconds())
	}()

	return p
}
