package experiment

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/san-kum/gamesim/internal/behavior"
	"github.com/san-kum/gamesim/internal/config"
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/input"
	"github.com/san-kum/gamesim/internal/render"
	"github.com/san-kum/gamesim/internal/sim"
	"github.com/san-kum/gamesim/internal/world"
)

// Sample is the position of one entity at the end of a frame.
type Sample struct {
	Frame    uint64
	Time     float64
	Entity   uint64
	Template string
	X        float64
	Y        float64
}

type Result struct {
	Scenario string
	FPS      int
	Frames   uint64
	Steps    uint64
	Duration float64
	Samples  []Sample
	Metrics  map[string]float64
	Score    behavior.Score
}

type Experiment struct {
	cfg      *config.Config
	registry *Registry
	input    input.Source
	log      zerolog.Logger
}

type Option func(*Experiment)

func WithLogger(l zerolog.Logger) Option {
	return func(e *Experiment) { e.log = l }
}

// WithInput feeds behaviors that read keys. Headless runs have none.
func WithInput(src input.Source) Option {
	return func(e *Experiment) { e.input = src }
}

func WithRegistry(r *Registry) Option {
	return func(e *Experiment) { e.registry = r }
}

func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Session is one live instance of a scenario.
type Session struct {
	World     *world.Manager
	Scheduler *sim.Scheduler
	Recorder  *render.Recorder
	Env       behavior.Env

	spawns []config.SpawnConfig
	log    zerolog.Logger
}

// Setup builds a world from the scenario, binds behaviors, spawns the
// initial entities and returns a scheduler reading clock.
func (e *Experiment) Setup(clock sim.Clock) (*Session, error) {
	rec := render.NewRecorder()
	w := world.New(rec, world.WithLogger(e.log))
	for _, t := range e.cfg.WorldTemplates() {
		w.RegisterTemplate(t)
	}

	env := behavior.NewEnv(w, e.input)
	for tmpl, name := range e.cfg.Behaviors() {
		c, err := e.registry.GetBehavior(name)
		if err != nil {
			return nil, eris.Wrapf(err, "template %s", tmpl)
		}
		w.RegisterFactory(tmpl, c(env))
	}

	sched, err := sim.New(w, e.cfg.Rules(), e.cfg.Sim(), sim.WithClock(clock), sim.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	for _, m := range e.registry.DefaultMetrics() {
		sched.AddMetric(m)
	}

	s := &Session{
		World:     w,
		Scheduler: sched,
		Recorder:  rec,
		Env:       env,
		spawns:    e.cfg.Spawns,
		log:       e.log,
	}
	s.spawn()
	return s, nil
}

// spawn creates the scenario's initial entities. Spawn diagnostics are
// logged and do not stop the scenario.
func (s *Session) spawn() {
	spawned := make([]*entity.Entity, len(s.spawns))
	for i, sc := range s.spawns {
		ent, err := s.World.Spawn(sc.Template)
		if err != nil {
			s.log.Warn().Err(err).Int("spawn", i).Msg("spawn diagnostic")
		}
		if ent == nil {
			continue
		}
		spawned[i] = ent
		ent.SetPosition(sc.Position.X, sc.Position.Y)
		ent.SetVelocity(sc.Velocity.X, sc.Velocity.Y)
		if sc.Health > 0 {
			ent.EnableHealth(sc.Health)
		}
		if sc.Parent != nil && spawned[*sc.Parent] != nil {
			if err := s.World.Attach(spawned[*sc.Parent], ent); err != nil {
				s.log.Warn().Err(err).Int("spawn", i).Msg("attach failed")
			}
		}
	}
}

// Reset quietly clears the world, zeroes the score and respawns the
// scenario.
func (s *Session) Reset() {
	s.World.DestroyAll()
	s.World.Drain()
	if s.Env.Score != nil {
		*s.Env.Score = behavior.Score{}
	}
	s.spawn()
}

func (s *Session) samples(frame uint64, t float64) []Sample {
	entities := s.World.Entities()
	out := make([]Sample, 0, len(entities))
	for _, ent := range entities {
		p := ent.Position()
		out = append(out, Sample{
			Frame:    frame,
			Time:     t,
			Entity:   ent.ID(),
			Template: ent.Template(),
			X:        p.X(),
			Y:        p.Y(),
		})
	}
	return out
}

// Run plays the scenario headless at its configured frame rate for its
// configured duration on a manual clock.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	return e.RunAt(ctx, e.cfg.FPS)
}

// RunAt is Run with an explicit frame rate.
func (e *Experiment) RunAt(ctx context.Context, fps int) (*Result, error) {
	if fps <= 0 {
		return nil, eris.Wrapf(config.ErrInvalid, "fps must be positive, got %d", fps)
	}
	clock := sim.NewManualClock(time.Unix(0, 0))
	s, err := e.Setup(clock)
	if err != nil {
		return nil, err
	}

	frame := time.Second / time.Duration(fps)
	frames := uint64(e.cfg.Duration * float64(fps))

	res := &Result{Scenario: e.cfg.Name, FPS: fps}
	s.Scheduler.Start()
	elapsed := 0.0
	for i := uint64(0); i < frames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		clock.Advance(frame)
		stats := s.Scheduler.Tick()
		elapsed += stats.Dt
		res.Samples = append(res.Samples, s.samples(stats.Frame, elapsed)...)
	}

	res.Frames = s.Scheduler.Frames()
	res.Steps = s.Scheduler.Steps()
	res.Duration = elapsed
	res.Metrics = s.Scheduler.Metrics()
	res.Score = *s.Env.Score

	e.log.Info().
		Str("scenario", e.cfg.Name).
		Int("fps", fps).
		Uint64("frames", res.Frames).
		Uint64("steps", res.Steps).
		Msg("run complete")
	return res, nil
}
