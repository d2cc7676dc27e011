package sim

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/world"
)

type Scheduler struct {
	world    *world.Manager
	detector *collision.Detector
	clock    Clock
	cfg      Config
	log      zerolog.Logger

	started     bool
	last        time.Time
	accumulator float64
	frames      uint64
	steps       uint64

	metrics   []Metric
	observers []Observer
}

type Option func(*Scheduler)

func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = l.With().Str("component", "scheduler").Logger() }
}

// New builds a scheduler over w. rules are copied and fixed for the life of
// the scheduler.
func New(w *world.Manager, rules []collision.Rule, cfg Config, opts ...Option) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scheduler{
		world:     w,
		detector:  collision.NewDetector(w.Index(), rules),
		clock:     SystemClock{},
		cfg:       cfg,
		log:       zerolog.Nop(),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Scheduler) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Scheduler) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Scheduler) Config() Config       { return s.cfg }
func (s *Scheduler) Running() bool        { return s.started }
func (s *Scheduler) Frames() uint64       { return s.frames }
func (s *Scheduler) Steps() uint64        { return s.steps }
func (s *Scheduler) Accumulator() float64 { return s.accumulator }

// Metrics returns the current value of every metric by name.
func (s *Scheduler) Metrics() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

// Start marks the current clock reading as the previous frame time.
func (s *Scheduler) Start() {
	s.started = true
	s.last = s.clock.Now()
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Tick runs one frame using the time elapsed on the clock since the previous
// frame. The first Tick of an idle scheduler starts it with a zero delta.
func (s *Scheduler) Tick() FrameStats {
	if !s.started {
		s.Start()
	}
	now := s.clock.Now()
	dt := now.Sub(s.last).Seconds()
	s.last = now
	return s.Advance(dt)
}

// Advance runs one frame with an explicit frame delta in seconds.
func (s *Scheduler) Advance(dt float64) FrameStats {
	stats := FrameStats{Frame: s.frames}
	stats.Destroyed = s.world.Drain()

	if dt < 0 {
		dt = 0
	}
	if dt > s.cfg.MaxDelta {
		s.log.Debug().Float64("dt", dt).Float64("max", s.cfg.MaxDelta).Msg("frame delta clamped")
		dt = s.cfg.MaxDelta
	}
	stats.Dt = dt

	s.accumulator += dt
	for s.accumulator > s.cfg.FixedStep {
		s.accumulator -= s.cfg.FixedStep
		stats.Collisions += s.fixedStep()
		stats.Steps++
	}
	s.steps += uint64(stats.Steps)

	stats.Alpha = s.accumulator / s.cfg.FixedStep
	entities := s.world.Entities()
	for _, e := range entities {
		e.InterpolatePosition(stats.Alpha)
	}
	for _, e := range entities {
		e.Update(dt)
	}
	stats.Entities = s.world.Len()

	for _, m := range s.metrics {
		m.Observe(stats, entities)
	}
	for _, o := range s.observers {
		o.OnFrame(stats)
	}

	s.frames++
	return stats
}

// fixedStep integrates every active entity once, then runs all collision
// rules, and returns the number of hits.
func (s *Scheduler) fixedStep() int {
	for _, e := range s.world.Entities() {
		e.FixedStep()
	}
	return s.detector.Step()
}

// Run ticks the scheduler every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Tick()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Tick()
		}
	}
}
