package config

import (
	"bytes"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

var configFileTmpl = template.Must(template.New("config").Funcs(template.FuncMap{
	"tabs": tabsYAML,
}).Parse(`# clubterm configuration

# The name displayed in the header.
name: "{{ .Name }}"

# The index of the tab shown at startup.
initial_page: {{ .InitialPage }}

# Tab strip and pager configuration.
ui:
  # Draw a separator between adjacent tabs.
  show_separators: {{ .UI.ShowSeparators }}
  # Number of cells on each side of a tab title.
  tab_margin: {{ .UI.TabMargin }}
  # Longer tab titles are truncated.
  max_title_width: {{ .UI.MaxTitleWidth }}
  # Animation frames per second.
  fps: {{ .UI.FPS }}
  # Spring parameters used by the tab strip and pager animations.
  spring_frequency: {{ .UI.SpringFrequency }}
  spring_damping: {{ .UI.SpringDamping }}
  # Fraction of a page moved by one drag input.
  drag_step: {{ .UI.DragStep }}
  # Milliseconds without drag input before the pager settles.
  drag_timeout_ms: {{ .UI.DragTimeoutMs }}
  # Enable mouse support.
  mouse: {{ .UI.Mouse }}

# The SSH server configuration.
ssh:
  # Serve the UI over SSH.
  enabled: {{ .SSH.Enabled }}

  # The address on which the SSH server will listen.
  listen_addr: "{{ .SSH.ListenAddr }}"

  # The path to the SSH server's private key.
  key_path: "{{ .SSH.KeyPath }}"

  # The maximum number of seconds a connection can take.
  # A value of 0 means no timeout.
  max_timeout: {{ .SSH.MaxTimeout }}

  # The number of seconds a connection can be idle before it is closed.
  # A value of 0 means no timeout.
  idle_timeout: {{ .SSH.IdleTimeout }}

# The stats server configuration.
stats:
  # Expose prometheus metrics.
  enabled: {{ .Stats.Enabled }}

  # The address on which the stats server will listen.
  listen_addr: "{{ .Stats.ListenAddr }}"

# Logging configuration.
log:
  # Log format to use. Valid values are "json", "logfmt", and "text".
  format: "{{ .Log.Format }}"
  # Time format for the log "timestamp" field.
  # Should be described in Golang's time format.
  time_format: "{{ .Log.TimeFormat }}"
  # Path to the log file. Leave empty to write to stderr.
  #path: "{{ .Log.Path }}"

# Rendered page cache.
cache:
  # Number of rendered pages kept in memory.
  size: {{ .Cache.Size }}

# The ordered tabs and their markdown pages.
{{ tabs .Tabs }}`))

func tabsYAML(tabs []TabConfig) string {
	bts, err := yaml.Marshal(struct {
		Tabs []TabConfig `yaml:"tabs"`
	}{tabs})
	if err != nil {
		return "tabs: []\n"
	}
	return strings.TrimRight(string(bts), "\n") + "\n"
}

func newConfigFile(cfg *Config) string {
	if cfg == nil {
		cfg = &Config{}
	}
	var b bytes.Buffer
	configFileTmpl.Execute(&b, cfg) // nolint: errcheck
	return b.String()
}
