package metrics

import (
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/sim"
)

// MeanSpeed is the mean per-tick displacement of the active entities in the
// most recent frame.
type MeanSpeed struct {
	name    string
	current float64
	peak    float64
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string { return m.name }

func (m *MeanSpeed) Observe(_ sim.FrameStats, entities []*entity.Entity) {
	if len(entities) == 0 {
		m.current = 0
		return
	}
	total := 0.0
	for _, e := range entities {
		total += e.Velocity().Len()
	}
	m.current = total / float64(len(entities))
	if m.current > m.peak {
		m.peak = m.current
	}
}

func (m *MeanSpeed) Value() float64 { return m.current }

// Peak is the highest frame mean seen since the last reset.
func (m *MeanSpeed) Peak() float64 { return m.peak }

func (m *MeanSpeed) Reset() {
	m.current = 0
	m.peak = 0
}
