// Package config loads game settings and the initial spawn waves from YAML
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-runner/log"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Viewport Viewport     `yaml:"viewport"`
	TickRate int          `yaml:"tick_rate"` // simulation ticks per second
	CellSize float64      `yaml:"cell_size"` // collision grid cell, 0 tests all pairs
	Log      LogConfig    `yaml:"log"`
	Audio    AudioConfig  `yaml:"audio"`
	Player   PlayerConfig `yaml:"player"`
	Waves    []Wave       `yaml:"waves"`
}

// Viewport is the visible world rectangle anchored at the origin, in world units
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"` // empty discards logs; the terminal belongs to the renderer
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // base-2 exponent, 0 is unchanged, -1 is half
}

type PlayerConfig struct {
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	Speed       float64 `yaml:"speed"`
	Cooldown    float64 `yaml:"cooldown"` // seconds
	BulletSpeed float64 `yaml:"bullet_speed"`
	Lives       int     `yaml:"lives"`
}

// Wave spawns one type, optionally as a grid formation, some time after the session starts.
// The origin comes from File when set, otherwise from X and Y; Fields are added last.
type Wave struct {
	Type      string         `yaml:"type"`
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	File      string         `yaml:"file,omitempty"` // kv spawn data, relative to the config file
	Fields    map[string]any `yaml:"fields,omitempty"`
	Formation *Formation     `yaml:"formation,omitempty"`
	Delay     float64        `yaml:"delay"` // seconds after start
}

// Formation lays a wave out on a Columns x Rows grid from the wave origin
type Formation struct {
	Columns  int     `yaml:"columns"`
	Rows     int     `yaml:"rows"`
	SpacingX float64 `yaml:"spacing_x"`
	SpacingY float64 `yaml:"spacing_y"`
}

// Default returns a playable configuration with a single enemy wave
func Default() *Config {
	return &Config{
		Viewport: Viewport{Width: 800, Height: 600},
		TickRate: 60,
		CellSize: 64,
		Log:      LogConfig{Level: "info"},
		Audio:    AudioConfig{Enabled: true},
		Player: PlayerConfig{
			X: 40, Y: 300,
			Speed:       240,
			Cooldown:    0.25,
			BulletSpeed: 480,
			Lives:       3,
		},
		Waves: []Wave{
			{Type: "Enemy1", X: 760, Y: 120, Formation: &Formation{Columns: 2, Rows: 4, SpacingX: 60, SpacingY: 100}},
		},
	}
}

// Load reads a YAML file over the defaults and resolves wave files against its directory
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i := range c.Waves {
		if file := c.Waves[i].File; file != "" && !filepath.IsAbs(file) {
			c.Waves[i].File = filepath.Join(dir, file)
		}
	}
	return c, nil
}

// Parse decodes YAML over the defaults and validates the result; unknown keys are errors
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem found, joined
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		bad("viewport %gx%g must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if c.TickRate < 1 || c.TickRate > 1000 {
		bad("tick_rate %d out of range 1..1000", c.TickRate)
	}
	if c.CellSize < 0 {
		bad("cell_size %g is negative", c.CellSize)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		bad("log level: %v", err)
	}
	if c.Audio.Volume < -10 || c.Audio.Volume > 2 {
		bad("audio volume %g out of range -10..2", c.Audio.Volume)
	}

	p := c.Player
	if p.Speed <= 0 || p.BulletSpeed <= 0 {
		bad("player speed and bullet_speed must be positive")
	}
	if p.Cooldown < 0 {
		bad("player cooldown %g is negative", p.Cooldown)
	}
	if p.Lives < 1 {
		bad("player lives %d must be at least 1", p.Lives)
	}

	for i, w := range c.Waves {
		if w.Type == "" {
			bad("wave %d: missing type", i)
		}
		if w.Delay < 0 {
			bad("wave %d: negative delay", i)
		}
		if f := w.Formation; f != nil && (f.Columns < 1 || f.Rows < 1) {
			bad("wave %d: formation %dx%d needs at least one cell", i, f.Columns, f.Rows)
		}
	}
	return errors.Join(errs...)
}

// TickInterval returns the fixed simulation step
func (c *Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}
