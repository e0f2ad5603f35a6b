// Package config loads pitboard settings from a file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"

	"github.com/AnyUserName/pitboard/internal/display"
)

// EnvPrefix prefixes environment overrides, e.g. PITBOARD_SERVER_ADDR.
const EnvPrefix = "PITBOARD"

// FileName is the config file searched for when no path is given.
const FileName = "pitboard.yaml"

// Config holds all settings.
type Config struct {
	Server  Server  `fig:"server"`
	Ergast  Ergast  `fig:"ergast"`
	Display Display `fig:"display"`
	Output  Output  `fig:"output"`
	Log     Log     `fig:"log"`
}

// Server configures the HTTP interface.
type Server struct {
	Addr            string        `fig:"addr" default:":3137"`
	ReadTimeout     time.Duration `fig:"read_timeout" default:"10s"`
	WriteTimeout    time.Duration `fig:"write_timeout" default:"60s"`
	ShutdownTimeout time.Duration `fig:"shutdown_timeout" default:"5s"`
	Metrics         bool          `fig:"metrics"`
}

// Ergast configures the race data API.
type Ergast struct {
	BaseURL string        `fig:"base_url" default:"https://api.jolpi.ca/ergast/f1"`
	Timeout time.Duration `fig:"timeout" default:"15s"`
}

// Display selects the panel.
type Display struct {
	Profile  string `fig:"profile" default:"waveshare-4in2"`
	Rotation int    `fig:"rotation"`
}

// Output configures encoded files.
type Output struct {
	ArrayName  string `fig:"array_name" default:"gImage_pitboard"`
	BufferSize int    `fig:"buffer_size" default:"1048576"`
}

// Log configures logging. Output is human readable unless JSON is set.
type Log struct {
	Debug bool `fig:"debug"`
	JSON  bool `fig:"json"`
}

// Load reads the config file at path, or searches for FileName in the
// working directory, ./configs and ~/.pitboard when path is empty. A
// missing file is only an error when path was given. Environment
// variables prefixed with EnvPrefix override file values.
func Load(path string) (*Config, error) {
	var c Config

	opts := []fig.Option{fig.UseEnv(EnvPrefix)}
	if path != "" {
		opts = append(opts, fig.File(filepath.Base(path)), fig.Dirs(filepath.Dir(path)))
	} else {
		dirs := []string{".", "configs"}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".pitboard"))
		}
		opts = append(opts, fig.File(FileName), fig.Dirs(dirs...))
	}

	err := fig.Load(&c, opts...)
	if path == "" && errors.Is(err, fig.ErrFileNotFound) {
		c = Config{}
		err = fig.Load(&c, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks values fig cannot check on its own.
func (c *Config) Validate() error {
	if _, err := display.ParseRotation(c.Display.Rotation); err != nil {
		return fmt.Errorf("display.rotation: %w", err)
	}
	if c.Output.BufferSize <= 0 {
		return fmt.Errorf("output.buffer_size must be positive, got %d", c.Output.BufferSize)
	}
	if c.Output.ArrayName == "" {
		return errors.New("output.array_name must not be empty")
	}
	return nil
}
