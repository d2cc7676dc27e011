package sim

import (
	"github.com/rotisserie/eris"
	"github.com/san-kum/gamesim/internal/entity"
)

const (
	DefaultFixedStep = 0.0416
	DefaultMaxDelta  = 0.1
)

// ErrInvalidConfig indicates a non-positive step or delta limit.
var ErrInvalidConfig = eris.New("sim: invalid config")

type Config struct {
	FixedStep float64 // seconds per physics tick
	MaxDelta  float64 // frame delta clamp in seconds
}

func DefaultConfig() Config {
	return Config{
		FixedStep: DefaultFixedStep,
		MaxDelta:  DefaultMaxDelta,
	}
}

func (c Config) Validate() error {
	if c.FixedStep <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "fixed step must be positive, got %f", c.FixedStep)
	}
	if c.MaxDelta <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "max delta must be positive, got %f", c.MaxDelta)
	}
	return nil
}

// FrameStats describes one scheduler frame.
type FrameStats struct {
	Frame      uint64
	Dt         float64 // clamped frame delta
	Steps      int     // fixed ticks run
	Collisions int
	Destroyed  int
	Alpha      float64 // interpolation fraction of a step
	Entities   int
}

type Metric interface {
	Name() string
	Observe(stats FrameStats, entities []*entity.Entity)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(stats FrameStats)
}
