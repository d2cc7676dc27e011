package experiment

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/san-kum/gamesim/internal/behavior"
	"github.com/san-kum/gamesim/internal/metrics"
	"github.com/san-kum/gamesim/internal/sim"
)

var ErrUnknownMetric = eris.New("experiment: unknown metric")

type Registry struct {
	behaviors map[string]behavior.Constructor
	metrics   map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		behaviors: make(map[string]behavior.Constructor),
		metrics:   make(map[string]func() sim.Metric),
	}

	for _, name := range behavior.Names() {
		c, _ := behavior.Lookup(name)
		r.behaviors[name] = c
	}

	r.metrics["collisions"] = func() sim.Metric { return metrics.NewCollisions() }
	r.metrics["mean_speed"] = func() sim.Metric { return metrics.NewMeanSpeed() }
	r.metrics["peak_entities"] = func() sim.Metric { return metrics.NewPeakEntities() }
	r.metrics["destroyed"] = func() sim.Metric { return metrics.NewDestroyed() }

	return r
}

// RegisterBehavior adds or replaces a behavior constructor.
func (r *Registry) RegisterBehavior(name string, c behavior.Constructor) {
	r.behaviors[name] = c
}

func (r *Registry) GetBehavior(name string) (behavior.Constructor, error) {
	c, ok := r.behaviors[name]
	if !ok {
		return nil, eris.Wrapf(behavior.ErrUnknownBehavior, "%q", name)
	}
	return c, nil
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownMetric, "%q", name)
	}
	return fn(), nil
}

func (r *Registry) ListBehaviors() []string { return sortedKeys(r.behaviors) }
func (r *Registry) ListMetrics() []string   { return sortedKeys(r.metrics) }

// DefaultMetrics returns one fresh instance of every registered metric.
func (r *Registry) DefaultMetrics() []sim.Metric {
	names := r.ListMetrics()
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		out = append(out, r.metrics[name]())
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
