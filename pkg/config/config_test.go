package config

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestDefaultConfigIsValid(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	is.NoErr(cfg.Validate())
	is.True(filepath.IsAbs(cfg.SSH.KeyPath))
	is.Equal(len(cfg.Tabs), len(DefaultTabs()))
}

func TestParseEnv(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()
	t.Setenv("CLUBTERM_DATA_PATH", td)
	t.Setenv("CLUBTERM_NAME", "Env club")
	t.Setenv("CLUBTERM_INITIAL_PAGE", "2")
	t.Setenv("CLUBTERM_UI_SHOW_SEPARATORS", "false")
	t.Setenv("CLUBTERM_UI_DRAG_TIMEOUT_MS", "500")
	cfg := DefaultConfig()
	is.NoErr(cfg.ParseEnv())
	is.Equal(cfg.Name, "Env club")
	is.Equal(cfg.InitialPage, 2)
	is.True(!cfg.UI.ShowSeparators)
	is.Equal(cfg.UI.DragTimeout().Milliseconds(), int64(500))
	is.Equal(cfg.DataPath, td)
}

func TestParseMissingFile(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	is.True(!cfg.Exist())
	is.NoErr(cfg.Parse())
	is.Equal(cfg.Name, "ConnectClub")
}

func TestWriteAndParseConfig(t *testing.T) {
	is := is.New(t)
	cfg := &Config{
		Name:     "Written club",
		DataPath: t.TempDir(),
		Tabs: []TabConfig{
			{Title: "Only", Count: -1, Body: "# Only"},
		},
	}
	is.NoErr(cfg.WriteConfig())
	is.True(cfg.Exist())

	parsed := DefaultConfig()
	parsed.DataPath = cfg.DataPath
	is.NoErr(parsed.Parse())
	is.Equal(parsed.Name, "Written club")
	is.Equal(len(parsed.Tabs), 1)
	is.Equal(parsed.Tabs[0].ID, "Only") // id defaults to the title
}

func TestCustomConfigLocation(t *testing.T) {
	is := is.New(t)
	td := t.TempDir()

	// Test that we get data from the custom file location, and not from the data dir.
	t.Setenv("CLUBTERM_CONFIG_LOCATION", "testdata/config.yaml")
	t.Setenv("CLUBTERM_DATA_PATH", td)
	cfg := DefaultConfig()
	is.NoErr(cfg.Parse())
	is.Equal(cfg.Name, "Test club")
	is.Equal(cfg.InitialPage, 1)
	is.Equal(len(cfg.Tabs), 2)

	// Test that if the custom config location doesn't exist, default to datapath config.
	t.Setenv("CLUBTERM_CONFIG_LOCATION", "testdata/config_nonexistent.yaml")
	cfg = DefaultConfig()
	is.NoErr(cfg.Parse())
	is.Equal(cfg.Name, "ConnectClub")
}

func TestParseConfig(t *testing.T) {
	is := is.New(t)
	t.Setenv("CLUBTERM_NAME", "Override")
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	is.NoErr(ParseConfig(cfg, "testdata/config.yaml"))
	is.Equal(cfg.Name, "Override")
	is.Equal(cfg.Tabs[1].Count, 2)
	is.True(errors.Is(ParseConfig(nil, "testdata/config.yaml"), ErrNilConfig))
	is.True(ParseConfig(DefaultConfig(), filepath.Join(cfg.DataPath, "nope.yaml")) != nil)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  func(*Config)
		err  error
	}{
		{"no tabs", func(c *Config) { c.Tabs = nil }, ErrNoTabs},
		{"initial page too large", func(c *Config) { c.InitialPage = len(c.Tabs) }, ErrInvalidInitialPage},
		{"negative initial page", func(c *Config) { c.InitialPage = -1 }, ErrInvalidInitialPage},
		{"defaults filled", func(c *Config) { c.UI.FPS = 0; c.UI.DragStep = 3 }, nil},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			is := is.New(t)
			cfg := DefaultConfig()
			cfg.DataPath = t.TempDir()
			c.cfg(cfg)
			err := cfg.Validate()
			if c.err == nil {
				is.NoErr(err)
				is.Equal(cfg.UI.FPS, 60)
				is.Equal(cfg.UI.DragStep, 0.25)
				return
			}
			is.True(errors.Is(err, c.err))
		})
	}
}

func TestDuplicateTabIDs(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	cfg.DataPath = t.TempDir()
	cfg.Tabs = []TabConfig{{Title: "A"}, {ID: "A", Title: "B"}}
	is.True(cfg.Validate() != nil)
}

func TestEnviron(t *testing.T) {
	is := is.New(t)
	is.Equal(len((*Config)(nil).Environ()), 0)
	envs := DefaultConfig().Environ()
	is.True(len(envs) > 0)
	for _, e := range envs {
		k, _, ok := strings.Cut(e, "=")
		is.True(ok)
		is.True(strings.HasPrefix(k, "CLUBTERM_"))
	}
}
