package collision_test

import (
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/geom"
)

// box builds an entity at (x, y) with a single square shape of the given
// half extent.
func box(layer string, physics bool, x, y, half float64) *entity.Entity {
	e := entity.New(layer, []entity.Shape{{
		Bounds:  geom.NewRect(-half, -half, half, half),
		Layer:   layer,
		Physics: physics,
	}}, nil)
	e.SetPosition(x, y)
	return e
}

type hitLog struct {
	hits []entity.Collider
}

func (h *hitLog) watch(e *entity.Entity) {
	e.OnCollision(func(_ *entity.Entity, other entity.Collider) {
		h.hits = append(h.hits, other)
	})
}
