package metrics

import (
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/sim"
)

// Collisions counts shape hits across all fixed ticks.
type Collisions struct {
	name  string
	total int
}

func NewCollisions() *Collisions {
	return &Collisions{name: "collisions"}
}

func (c *Collisions) Name() string { return c.name }

func (c *Collisions) Observe(stats sim.FrameStats, _ []*entity.Entity) {
	c.total += stats.Collisions
}

func (c *Collisions) Value() float64 { return float64(c.total) }
func (c *Collisions) Reset()         { c.total = 0 }

// PeakEntities tracks the largest active set seen at the end of a frame.
type PeakEntities struct {
	name string
	peak int
}

func NewPeakEntities() *PeakEntities {
	return &PeakEntities{name: "peak_entities"}
}

func (p *PeakEntities) Name() string { return p.name }

func (p *PeakEntities) Observe(stats sim.FrameStats, _ []*entity.Entity) {
	if stats.Entities > p.peak {
		p.peak = stats.Entities
	}
}

func (p *PeakEntities) Value() float64 { return float64(p.peak) }
func (p *PeakEntities) Reset()         { p.peak = 0 }

// Destroyed counts entities removed by the destroy queue, cascades included.
type Destroyed struct {
	name  string
	total int
}

func NewDestroyed() *Destroyed {
	return &Destroyed{name: "destroyed"}
}

func (d *Destroyed) Name() string { return d.name }

func (d *Destroyed) Observe(stats sim.FrameStats, _ []*entity.Entity) {
	d.total += stats.Destroyed
}

func (d *Destroyed) Value() float64 { return float64(d.total) }
func (d *Destroyed) Reset()         { d.total = 0 }

// Defaults returns a fresh set of the built-in metrics.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewCollisions(),
		NewMeanSpeed(),
		NewPeakEntities(),
		NewDestroyed(),
	}
}
