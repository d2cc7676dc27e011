package config

import "sort"

func box(half float64, layer string, physics bool) []ColliderConfig {
	return []ColliderConfig{{Left: -half, Right: half, Bottom: -half, Top: half, Layer: layer, Physics: physics}}
}

func wall(left, right, bottom, top float64) []ColliderConfig {
	return []ColliderConfig{{Left: left, Right: right, Bottom: bottom, Top: top, Layer: "wall", Physics: true}}
}

func intp(i int) *int { return &i }

func arena() *Config {
	cfg := DefaultConfig()
	cfg.Name = "arena"
	cfg.Duration = 20
	cfg.Collisions = [][]string{
		{"player", "wall"},
		{"player", "coin"},
		{"player", "hazard"},
	}
	cfg.Templates = map[string]TemplateConfig{
		"hero":   {Colliders: box(0.5, "player", true), Glyph: "@", Behavior: "humanoid"},
		"coin":   {Colliders: box(0.4, "coin", false), Glyph: "o", Behavior: "pickup"},
		"spikes": {Colliders: box(0.5, "hazard", false), Glyph: "^", Behavior: "hazard"},
		"hwall":  {Colliders: wall(-20, 20, -0.5, 0.5), Glyph: "="},
		"vwall":  {Colliders: wall(-0.5, 0.5, -10, 10), Glyph: "|"},
	}
	cfg.Spawns = []SpawnConfig{
		{Template: "hwall", Position: Point{0, 10}},
		{Template: "hwall", Position: Point{0, -10}},
		{Template: "vwall", Position: Point{-20, 0}},
		{Template: "vwall", Position: Point{20, 0}},
		{Template: "hero", Velocity: Point{0.2, 0.05}},
		{Template: "coin", Position: Point{6, 0}},
		{Template: "coin", Position: Point{-8, 4}},
		{Template: "coin", Position: Point{12, -6}},
		{Template: "spikes", Position: Point{-4, -4}},
		{Template: "spikes", Position: Point{10, 5}},
	}
	return cfg
}

func convoy() *Config {
	cfg := DefaultConfig()
	cfg.Name = "convoy"
	cfg.Collisions = [][]string{
		{"vehicle", "wall"},
		{"cargo", "hazard"},
	}
	cfg.Templates = map[string]TemplateConfig{
		"truck":  {Colliders: box(1, "vehicle", true), Glyph: "T", Behavior: "convoy"},
		"cargo":  {Colliders: box(0.5, "cargo", false), Glyph: "c"},
		"spikes": {Colliders: box(0.5, "hazard", false), Glyph: "^", Behavior: "hazard"},
		"vwall":  {Colliders: wall(-0.5, 0.5, -10, 10), Glyph: "|"},
	}
	cfg.Spawns = []SpawnConfig{
		{Template: "vwall", Position: Point{18, 0}},
		{Template: "truck", Position: Point{-10, 0}, Velocity: Point{0.25, 0}},
		{Template: "spikes", Position: Point{0, 0}},
	}
	return cfg
}

func pileup() *Config {
	cfg := DefaultConfig()
	cfg.Name = "pileup"
	cfg.Duration = 5
	cfg.Collisions = [][]string{{"crate", "crate"}}
	cfg.Templates = map[string]TemplateConfig{
		"crate": {Colliders: box(0.5, "crate", true), Glyph: "#"},
		"tag":   {Glyph: "*"},
	}
	for i := 0; i < 6; i++ {
		x := float64(i*3 - 15)
		cfg.Spawns = append(cfg.Spawns,
			SpawnConfig{Template: "crate", Position: Point{x, 3}, Velocity: Point{0.1, -0.05}},
			SpawnConfig{Template: "crate", Position: Point{-x, -3}, Velocity: Point{-0.1, 0.05}},
		)
	}
	cfg.Spawns = append(cfg.Spawns, SpawnConfig{Template: "tag", Position: Point{-15, 4}, Parent: intp(0)})
	return cfg
}

// Presets are the built-in scenarios by name.
var Presets = map[string]func() *Config{
	"arena":  arena,
	"convoy": convoy,
	"pileup": pileup,
}

// GetPreset returns a fresh copy of the named scenario, or nil.
func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
