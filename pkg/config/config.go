package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

var (
	// ErrNilConfig is returned when a nil config is passed to a function.
	ErrNilConfig = errors.New("nil config")

	// ErrNoTabs is returned when the configuration defines no tabs.
	ErrNoTabs = errors.New("no tabs configured")

	// ErrInvalidInitialPage is returned when the initial page doesn't point
	// to a configured tab.
	ErrInvalidInitialPage = errors.New("invalid initial page")
)

// TabConfig is the configuration of a single tab and its page.
type TabConfig struct {
	// ID identifies the tab. Defaults to the title.
	ID string `yaml:"id"`

	// Title is the label shown in the tab strip.
	Title string `yaml:"title"`

	// Count is appended to the title when it's zero or greater.
	Count int `yaml:"count"`

	// Body is the markdown content of the tab page.
	Body string `yaml:"body"`
}

// UIConfig is the configuration of the tab strip and pager.
type UIConfig struct {
	// ShowSeparators draws a separator between adjacent tabs.
	ShowSeparators bool `env:"SHOW_SEPARATORS" yaml:"show_separators"`

	// TabMargin is the number of cells on each side of a tab title.
	TabMargin int `env:"TAB_MARGIN" yaml:"tab_margin"`

	// MaxTitleWidth truncates longer tab titles.
	MaxTitleWidth int `env:"MAX_TITLE_WIDTH" yaml:"max_title_width"`

	// FPS is the number of animation frames per second.
	FPS int `env:"FPS" yaml:"fps"`

	// SpringFrequency is the angular frequency of the animation springs.
	SpringFrequency float64 `env:"SPRING_FREQUENCY" yaml:"spring_frequency"`

	// SpringDamping is the damping ratio of the animation springs.
	SpringDamping float64 `env:"SPRING_DAMPING" yaml:"spring_damping"`

	// DragStep is the fraction of a page moved by a single drag input.
	DragStep float64 `env:"DRAG_STEP" yaml:"drag_step"`

	// DragTimeoutMs is the number of milliseconds without drag input after
	// which the pager releases the drag and settles.
	DragTimeoutMs int `env:"DRAG_TIMEOUT_MS" yaml:"drag_timeout_ms"`

	// Mouse enables mouse support.
	Mouse bool `env:"MOUSE" yaml:"mouse"`
}

// DragTimeout returns the drag release timeout.
func (c UIConfig) DragTimeout() time.Duration {
	return time.Duration(c.DragTimeoutMs) * time.Millisecond
}

// SSHConfig is the configuration for the SSH server.
type SSHConfig struct {
	// Enabled toggles the SSH server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the SSH server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`

	// KeyPath is the path to the SSH server's private key.
	KeyPath string `env:"KEY_PATH" yaml:"key_path"`

	// MaxTimeout is the maximum number of seconds a connection can take.
	MaxTimeout int `env:"MAX_TIMEOUT" yaml:"max_timeout"`

	// IdleTimeout is the number of seconds a connection can be idle before it is closed.
	IdleTimeout int `env:"IDLE_TIMEOUT" yaml:"idle_timeout"`
}

// StatsConfig is the configuration for the stats server.
type StatsConfig struct {
	// Enabled toggles the stats server.
	Enabled bool `env:"ENABLED" yaml:"enabled"`

	// ListenAddr is the address on which the stats server will listen.
	ListenAddr string `env:"LISTEN_ADDR" yaml:"listen_addr"`
}

// LogConfig is the logger configuration.
type LogConfig struct {
	// Format is the format of the logs.
	// Valid values are "json", "logfmt", and "text".
	Format string `env:"FORMAT" yaml:"format"`

	// Time format for the log `ts` field.
	// Format must be described in Golang's time format.
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`

	// Path to a file to write logs to.
	// If not set, logs will be written to stderr.
	Path string `env:"PATH" yaml:"path"`
}

// CacheConfig is the configuration of the rendered page cache.
type CacheConfig struct {
	// Size is the number of rendered pages kept in memory.
	Size int `env:"SIZE" yaml:"size"`
}

// Config is the configuration for clubterm.
type Config struct {
	// Name is the name displayed in the header.
	Name string `env:"NAME" yaml:"name"`

	// InitialPage is the index of the tab shown at startup.
	InitialPage int `env:"INITIAL_PAGE" yaml:"initial_page"`

	// Tabs are the ordered tab definitions.
	Tabs []TabConfig `yaml:"tabs"`

	// UI is the tab strip and pager configuration.
	UI UIConfig `envPrefix:"UI_" yaml:"ui"`

	// SSH is the configuration for the SSH server.
	SSH SSHConfig `envPrefix:"SSH_" yaml:"ssh"`

	// Stats is the configuration for the stats server.
	Stats StatsConfig `envPrefix:"STATS_" yaml:"stats"`

	// Log is the logger configuration.
	Log LogConfig `envPrefix:"LOG_" yaml:"log"`

	// Cache is the rendered page cache configuration.
	Cache CacheConfig `envPrefix:"CACHE_" yaml:"cache"`

	// DataPath is the path to the directory where clubterm stores its data.
	DataPath string `env:"DATA_PATH" yaml:"-"`
}

// Environ returns the config as a list of environment variables.
func (c *Config) Environ() []string {
	envs := []string{}
	if c == nil {
		return envs
	}

	envs = append(envs, []string{
		fmt.Sprintf("CLUBTERM_DATA_PATH=%s", c.DataPath),
		fmt.Sprintf("CLUBTERM_NAME=%s", c.Name),
		fmt.Sprintf("CLUBTERM_INITIAL_PAGE=%d", c.InitialPage),
		fmt.Sprintf("CLUBTERM_UI_SHOW_SEPARATORS=%t", c.UI.ShowSeparators),
		fmt.Sprintf("CLUBTERM_UI_TAB_MARGIN=%d", c.UI.TabMargin),
		fmt.Sprintf("CLUBTERM_UI_MAX_TITLE_WIDTH=%d", c.UI.MaxTitleWidth),
		fmt.Sprintf("CLUBTERM_UI_FPS=%d", c.UI.FPS),
		fmt.Sprintf("CLUBTERM_UI_SPRING_FREQUENCY=%g", c.UI.SpringFrequency),
		fmt.Sprintf("CLUBTERM_UI_SPRING_DAMPING=%g", c.UI.SpringDamping),
		fmt.Sprintf("CLUBTERM_UI_DRAG_STEP=%g", c.UI.DragStep),
		fmt.Sprintf("CLUBTERM_UI_DRAG_TIMEOUT_MS=%d", c.UI.DragTimeoutMs),
		fmt.Sprintf("CLUBTERM_UI_MOUSE=%t", c.UI.Mouse),
		fmt.Sprintf("CLUBTERM_SSH_ENABLED=%t", c.SSH.Enabled),
		fmt.Sprintf("CLUBTERM_SSH_LISTEN_ADDR=%s", c.SSH.ListenAddr),
		fmt.Sprintf("CLUBTERM_SSH_KEY_PATH=%s", c.SSH.KeyPath),
		fmt.Sprintf("CLUBTERM_SSH_MAX_TIMEOUT=%d", c.SSH.MaxTimeout),
		fmt.Sprintf("CLUBTERM_SSH_IDLE_TIMEOUT=%d", c.SSH.IdleTimeout),
		fmt.Sprintf("CLUBTERM_STATS_ENABLED=%t", c.Stats.Enabled),
		fmt.Sprintf("CLUBTERM_STATS_LISTEN_ADDR=%s", c.Stats.ListenAddr),
		fmt.Sprintf("CLUBTERM_LOG_FORMAT=%s", c.Log.Format),
		fmt.Sprintf("CLUBTERM_LOG_TIME_FORMAT=%s", c.Log.TimeFormat),
		fmt.Sprintf("CLUBTERM_LOG_PATH=%s", c.Log.Path),
		fmt.Sprintf("CLUBTERM_CACHE_SIZE=%d", c.Cache.Size),
	}...)

	return envs
}

// IsDebug returns true if clubterm is running in debug mode.
func IsDebug() bool {
	debug, _ := strconv.ParseBool(os.Getenv("CLUBTERM_DEBUG"))
	return debug
}

// IsVerbose returns true if clubterm is running in verbose mode.
// Verbose mode is only enabled if debug mode is enabled.
func IsVerbose() bool {
	verbose, _ := strconv.ParseBool(os.Getenv("CLUBTERM_VERBOSE"))
	return IsDebug() && verbose
}

// parseFile parses the given file as a configuration file.
// The file must be in YAML format.
func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}

	defer f.Close() // nolint: errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return cfg.Validate()
}

// ParseFile parses the config from the default file path.
// A missing file is not an error.
// This also calls Validate() on the config.
func (c *Config) ParseFile() error {
	if !c.Exist() {
		return c.Validate()
	}
	return parseFile(c, c.ConfigPath())
}

// parseEnv parses the environment variables as a configuration file.
func parseEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{
		Prefix: "CLUBTERM_",
	}); err != nil {
		return fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg.Validate()
}

// ParseEnv parses the config from the environment variables.
// This also calls Validate() on the config.
func (c *Config) ParseEnv() error {
	return parseEnv(c)
}

// Parse parses the config from the default file path and environment variables.
// This also calls Validate() on the config.
func (c *Config) Parse() error {
	if err := c.ParseFile(); err != nil {
		return err
	}

	return c.ParseEnv()
}

// ParseConfig parses the config file at path, then the environment
// variables.
func ParseConfig(cfg *Config, path string) error {
	if cfg == nil {
		return ErrNilConfig
	}
	if err := parseFile(cfg, path); err != nil {
		return err
	}

	return parseEnv(cfg)
}

// writeConfig writes the configuration to the given file.
func writeConfig(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(newConfigFile(cfg)), 0o644) // nolint: errcheck, gosec
}

// WriteConfig writes the configuration to the default file.
func (c *Config) WriteConfig() error {
	return writeConfig(c, c.ConfigPath())
}

// String returns the configuration file contents.
func (c *Config) String() string {
	return newConfigFile(c)
}

// DefaultDataPath returns the path to the data directory.
// It uses the CLUBTERM_DATA_PATH environment variable if set, otherwise the
// user config directory.
func DefaultDataPath() string {
	dp := os.Getenv("CLUBTERM_DATA_PATH")
	if dp != "" {
		return dp
	}

	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "clubterm")
	}

	return "data"
}

// ConfigPath returns the path to the config file.
// CLUBTERM_CONFIG_LOCATION overrides the default location when the file it
// points to exists.
func (c *Config) ConfigPath() string { // nolint:revive
	if path := os.Getenv("CLUBTERM_CONFIG_LOCATION"); path != "" && exist(path) {
		return path
	}

	return filepath.Join(c.DataPath, "config.yaml")
}

func exist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Exist returns true if the config file exists.
func (c *Config) Exist() bool {
	return exist(c.ConfigPath())
}

// DefaultConfig returns the default Config. All the path values are relative
// to the data directory.
// Use Validate() to validate the config and ensure absolute paths.
func DefaultConfig() *Config {
	return &Config{
		Name:        "ConnectClub",
		DataPath:    DefaultDataPath(),
		InitialPage: 0,
		Tabs:        DefaultTabs(),
		UI: UIConfig{
			ShowSeparators:  true,
			TabMargin:       2,
			MaxTitleWidth:   24,
			FPS:             60,
			SpringFrequency: 7.0,
			SpringDamping:   0.9,
			DragStep:        0.25,
			DragTimeoutMs:   250,
			Mouse:           true,
		},
		SSH: SSHConfig{
			Enabled:     true,
			ListenAddr:  ":23240",
			KeyPath:     filepath.Join("ssh", "clubterm_host_ed25519"),
			MaxTimeout:  0,
			IdleTimeout: 10 * 60, // 10 minutes
		},
		Stats: StatsConfig{
			Enabled:    true,
			ListenAddr: "localhost:23241",
		},
		Log: LogConfig{
			Format:     "text",
			TimeFormat: time.DateTime,
		},
		Cache: CacheConfig{
			Size: 64,
		},
	}
}

// Validate validates the configuration.
// It updates the configuration with absolute paths and fills in defaults
// for zero values.
func (c *Config) Validate() error {
	// Use absolute paths
	if !filepath.IsAbs(c.DataPath) {
		dp, err := filepath.Abs(c.DataPath)
		if err != nil {
			return err
		}
		c.DataPath = dp
	}

	if c.SSH.KeyPath != "" && !filepath.IsAbs(c.SSH.KeyPath) {
		c.SSH.KeyPath = filepath.Join(c.DataPath, c.SSH.KeyPath)
	}

	if c.Log.Path != "" && !filepath.IsAbs(c.Log.Path) {
		c.Log.Path = filepath.Join(c.DataPath, c.Log.Path)
	}

	if len(c.Tabs) == 0 {
		return ErrNoTabs
	}

	seen := make(map[string]struct{}, len(c.Tabs))
	for i, t := range c.Tabs {
		t.Title = strings.TrimSpace(t.Title)
		if t.ID == "" {
			t.ID = t.Title
		}
		if t.ID == "" {
			return fmt.Errorf("tab %d: missing id and title", i)
		}
		if _, ok := seen[t.ID]; ok {
			return fmt.Errorf("tab %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
		c.Tabs[i] = t
	}

	if c.InitialPage < 0 || c.InitialPage >= len(c.Tabs) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidInitialPage, c.InitialPage, len(c.Tabs))
	}

	if c.UI.TabMargin < 0 {
		c.UI.TabMargin = 0
	}
	if c.UI.FPS <= 0 {
		c.UI.FPS = 60
	}
	if c.UI.SpringFrequency <= 0 {
		c.UI.SpringFrequency = 7.0
	}
	if c.UI.SpringDamping <= 0 {
		c.UI.SpringDamping = 0.9
	}
	if c.UI.DragStep <= 0 || c.UI.DragStep > 1 {
		c.UI.DragStep = 0.25
	}
	if c.UI.DragTimeoutMs <= 0 {
		c.UI.DragTimeoutMs = 250
	}
	if c.Cache.Size <= 0 {
		c.Cache.Size = 1
	}

	return nil
}
