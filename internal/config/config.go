package config

import (
	"os"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/geom"
	"github.com/san-kum/gamesim/internal/sim"
	"github.com/san-kum/gamesim/internal/world"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDuration = 10.0
	DefaultFPS      = 60
	DefaultWidth    = 40.0
	DefaultHeight   = 20.0
)

var ErrInvalid = eris.New("config: invalid scenario")

// Config is a scenario: timing, collision rules, templates and the initial
// spawn list.
type Config struct {
	Name       string                    `yaml:"name,omitempty"`
	FixedStep  float64                   `yaml:"fixed_step"`
	MaxDelta   float64                   `yaml:"max_delta"`
	Duration   float64                   `yaml:"duration"`
	FPS        int                       `yaml:"fps"`
	Arena      ArenaConfig               `yaml:"arena"`
	Collisions [][]string                `yaml:"collisions"`
	Templates  map[string]TemplateConfig `yaml:"templates"`
	Spawns     []SpawnConfig             `yaml:"spawns"`
}

// ArenaConfig is the visible area, centered on the origin.
type ArenaConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type TemplateConfig struct {
	Colliders []ColliderConfig `yaml:"colliders"`
	Glyph     string           `yaml:"glyph,omitempty"`
	Behavior  string           `yaml:"behavior,omitempty"`
}

type ColliderConfig struct {
	Left    float64 `yaml:"left"`
	Right   float64 `yaml:"right"`
	Bottom  float64 `yaml:"bottom"`
	Top     float64 `yaml:"top"`
	Layer   string  `yaml:"layer"`
	Physics bool    `yaml:"physics"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpawnConfig struct {
	Template string  `yaml:"template"`
	Position Point   `yaml:"position"`
	Velocity Point   `yaml:"velocity,omitempty"`
	Parent   *int    `yaml:"parent,omitempty"`
	Health   float64 `yaml:"health,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		FixedStep: sim.DefaultFixedStep,
		MaxDelta:  sim.DefaultMaxDelta,
		Duration:  DefaultDuration,
		FPS:       DefaultFPS,
		Arena: ArenaConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Templates: make(map[string]TemplateConfig),
	}
}

// Load reads a YAML (or JSON) scenario on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, eris.Wrapf(err, "parse %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return eris.Wrap(err, "encode scenario")
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the structure of the scenario. Malformed collider bounds
// are left to the world, which spawns such templates without colliders.
func (c *Config) Validate() error {
	if err := c.Sim().Validate(); err != nil {
		return eris.Wrap(ErrInvalid, err.Error())
	}
	if c.Duration < 0 {
		return eris.Wrapf(ErrInvalid, "negative duration %f", c.Duration)
	}
	if c.FPS <= 0 {
		return eris.Wrapf(ErrInvalid, "fps must be positive, got %d", c.FPS)
	}
	for i, pair := range c.Collisions {
		if len(pair) != 2 {
			return eris.Wrapf(ErrInvalid, "collision rule %d has %d layers, want 2", i, len(pair))
		}
	}
	for i, s := range c.Spawns {
		if s.Template == "" {
			return eris.Wrapf(ErrInvalid, "spawn %d has no template", i)
		}
		if s.Parent != nil && (*s.Parent < 0 || *s.Parent >= i) {
			return eris.Wrapf(ErrInvalid, "spawn %d: parent %d must be an earlier spawn", i, *s.Parent)
		}
	}
	return nil
}

func (c *Config) Sim() sim.Config {
	return sim.Config{FixedStep: c.FixedStep, MaxDelta: c.MaxDelta}
}

// Rules returns the collision rules in file order.
func (c *Config) Rules() []collision.Rule {
	rules := make([]collision.Rule, 0, len(c.Collisions))
	for _, pair := range c.Collisions {
		if len(pair) != 2 {
			continue
		}
		rules = append(rules, collision.Rule{A: pair[0], B: pair[1]})
	}
	return rules
}

// WorldTemplates converts the template table, sorted by name.
func (c *Config) WorldTemplates() []world.Template {
	names := make([]string, 0, len(c.Templates))
	for name := range c.Templates {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]world.Template, 0, len(names))
	for _, name := range names {
		tc := c.Templates[name]
		shapes := make([]entity.Shape, 0, len(tc.Colliders))
		for _, cc := range tc.Colliders {
			shapes = append(shapes, entity.Shape{
				Bounds:  geom.NewRect(cc.Left, cc.Bottom, cc.Right, cc.Top),
				Layer:   cc.Layer,
				Physics: cc.Physics,
			})
		}
		out = append(out, world.Template{Name: name, Shapes: shapes, Glyph: tc.Glyph})
	}
	return out
}

// Behaviors maps template names to behavior names for templates that have
// one.
func (c *Config) Behaviors() map[string]string {
	out := make(map[string]string)
	for name, tc := range c.Templates {
		if tc.Behavior != "" {
			out[name] = tc.Behavior
		}
	}
	return out
}
