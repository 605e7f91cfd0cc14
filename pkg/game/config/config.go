// Package config holds viewer configuration and persisted preferences.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero values are replaced by defaults
// on load.
type Config struct {
	WindowWidth  int `yaml:"window_width"`
	WindowHeight int `yaml:"window_height"`

	// Frame projection
	InsetFactor float64 `yaml:"inset_factor"`
	MaxDepth    int     `yaml:"max_depth"`

	// Transitions
	MoveDuration   time.Duration `yaml:"move_duration"`
	TurnDuration   time.Duration `yaml:"turn_duration"`
	MoveCooldown   time.Duration `yaml:"move_cooldown"`
	ParallaxZoom   float64       `yaml:"parallax_zoom"`
	ParallaxShift  float64       `yaml:"parallax_shift"`
	ShowMinimap    bool          `yaml:"show_minimap"`
	TextureDir     string        `yaml:"texture_dir"`
	ScreenshotPath string        `yaml:"screenshot_path"`

	SSHAddr    string `yaml:"ssh_addr"`
	SSHHostKey string `yaml:"ssh_host_key"`

	LogLevel string `yaml:"log_level"`
	Locale   string `yaml:"locale"`

	path string
	mu   sync.Mutex
}

// Defaults returns a configuration populated with the built-in defaults.
func Defaults() *Config {
	return &Config{
		WindowWidth:    960,
		WindowHeight:   640,
		InsetFactor:    0.07,
		MaxDepth:       5,
		MoveDuration:   120 * time.Millisecond,
		TurnDuration:   100 * time.Millisecond,
		MoveCooldown:   120 * time.Millisecond,
		ParallaxZoom:   0.04,
		ParallaxShift:  0.08,
		ShowMinimap:    true,
		ScreenshotPath: "screenshot.png",
		SSHAddr:        ":2222",
		LogLevel:       "info",
		Locale:         "en_GB",
	}
}

var (
	current   *Config
	currentMu sync.Mutex
)

// Current returns the process configuration, loading it from the default
// path on first use. A missing or unreadable file yields the defaults.
func Current() *Config {
	currentMu.Lock()
	defer currentMu.Unlock()

	if current == nil {
		cfg, err := Load(DefaultPath())
		if err != nil {
			slog.Warn("could not load config, using defaults", "err", err)
			cfg = Defaults()
			cfg.path = DefaultPath()
		}
		current = cfg
	}
	return current
}

// SetCurrent replaces the process configuration.
func SetCurrent(cfg *Config) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = cfg
}

// DefaultPath returns the preferences file under the user config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "crawlview.yaml"
	}
	return filepath.Join(dir, "crawlview", "config.yaml")
}

// Load reads a configuration file. A file that does not exist is not an
// error; the defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (c *Config) fillDefaults() {
	d := Defaults()
	if c.WindowWidth <= 0 {
		c.WindowWidth = d.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = d.WindowHeight
	}
	if c.InsetFactor <= 0 || c.InsetFactor >= 0.2 {
		c.InsetFactor = d.InsetFactor
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	if c.MoveDuration <= 0 {
		c.MoveDuration = d.MoveDuration
	}
	if c.TurnDuration <= 0 {
		c.TurnDuration = d.TurnDuration
	}
	if c.MoveCooldown < 0 {
		c.MoveCooldown = d.MoveCooldown
	}
	if c.ParallaxZoom < 0 {
		c.ParallaxZoom = d.ParallaxZoom
	}
	if c.ParallaxShift < 0 {
		c.ParallaxShift = d.ParallaxShift
	}
	if c.ScreenshotPath == "" {
		c.ScreenshotPath = d.ScreenshotPath
	}
	if c.SSHAddr == "" {
		c.SSHAddr = d.SSHAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Locale == "" {
		c.Locale = d.Locale
	}
}

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// SetWindowSize records the window size preference and saves it.
func (c *Config) SetWindowSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	c.mu.Lock()
	changed := c.WindowWidth != w || c.WindowHeight != h
	c.WindowWidth, c.WindowHeight = w, h
	c.mu.Unlock()

	if !changed {
		return nil
	}
	return c.Save()
}

// SlogLevel maps LogLevel to a slog level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
