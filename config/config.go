// Package config loads the engine configuration from YAML. All
// validation happens up front so bad setup fails before the first tick
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/framecore/core"
	"github.com/lixenwraith/framecore/physics"
)

// Duration wraps time.Duration so YAML carries human-readable values
// ("16ms"); yaml.v3 has no native duration support
type Duration time.Duration

// Std returns the wrapped time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Seconds returns the duration in seconds
func (d Duration) Seconds() float64 { return time.Duration(d).Seconds() }

func (d Duration) String() string { return time.Duration(d).String() }

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}

// Config is the root engine configuration
type Config struct {
	TickInterval Duration `yaml:"tick_interval"`
	LogLevel     string   `yaml:"log_level"`

	// Categories names the collision categories in index order
	Categories []string `yaml:"categories"`

	Tile    TileConfig   `yaml:"tile"`
	Culling CullConfig   `yaml:"culling"`
	Pools   []PoolConfig `yaml:"pools"`
}

// TileConfig describes the tile grid
type TileConfig struct {
	Columns     int     `yaml:"columns"`
	Rows        int     `yaml:"rows"`
	TileSize    float64 `yaml:"tile_size"`
	Automapping bool    `yaml:"automapping"`
}

// CullConfig describes viewport culling
type CullConfig struct {
	Padding float64 `yaml:"padding"`
}

// PoolConfig sizes one named object pool. Cap of zero means unbounded
type PoolConfig struct {
	Name            string `yaml:"name"`
	InitialCapacity int    `yaml:"initial_capacity"`
	Cap             int    `yaml:"cap"`
}

// Default returns a runnable configuration
func Default() Config {
	return Config{
		TickInterval: Duration(16 * time.Millisecond),
		LogLevel:     "info",
		Tile: TileConfig{
			Columns:     64,
			Rows:        64,
			TileSize:    16,
			Automapping: true,
		},
		Culling: CullConfig{
			Padding: 32,
		},
	}
}

// Load reads and validates a configuration file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration bytes
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setup invariant
func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return core.Configf("tick_interval", "%v is not positive", c.TickInterval)
	}
	if len(c.Categories) > physics.MaxCategories {
		return core.Configf("categories", "%d exceeds limit of %d", len(c.Categories), physics.MaxCategories)
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for _, name := range c.Categories {
		if name == "" {
			return core.Configf("categories", "empty category name")
		}
		if _, dup := seen[name]; dup {
			return core.Configf("categories", "duplicate category %q", name)
		}
		seen[name] = struct{}{}
	}

	if c.Tile.Columns <= 0 {
		return core.Configf("tile.columns", "%d is not positive", c.Tile.Columns)
	}
	if c.Tile.Rows <= 0 {
		return core.Configf("tile.rows", "%d is not positive", c.Tile.Rows)
	}
	if c.Tile.TileSize <= 0 {
		return core.Configf("tile.tile_size", "%v is not positive", c.Tile.TileSize)
	}

	if c.Culling.Padding < 0 {
		return core.Configf("culling.padding", "%v is negative", c.Culling.Padding)
	}

	for _, p := range c.Pools {
		if p.Name == "" {
			return core.Configf("pools", "pool without a name")
		}
		if p.InitialCapacity < 0 {
			return core.Configf("pools", "pool %q initial capacity %d is negative", p.Name, p.InitialCapacity)
		}
		if p.Cap < 0 {
			return core.Configf("pools", "pool %q cap %d is negative", p.Name, p.Cap)
		}
		if p.Cap > 0 && p.InitialCapacity > p.Cap {
			return core.Configf("pools", "pool %q initial capacity %d exceeds cap %d", p.Name, p.InitialCapacity, p.Cap)
		}
	}
	return nil
}
