package entity

import "github.com/go-gl/mathgl/mgl64"

// FixedStep advances the entity by one fixed tick. The implicit velocity
// (current - previous) is carried forward unchanged.
func (e *Entity) FixedStep() {
	next := e.curr.Mul(2).Sub(e.prev)
	e.prev = e.curr
	e.curr = next
}

func (e *Entity) Position() mgl64.Vec2 {
	return e.curr
}

func (e *Entity) PreviousPosition() mgl64.Vec2 {
	return e.prev
}

// Velocity is the positional delta of the last tick.
func (e *Entity) Velocity() mgl64.Vec2 {
	return e.curr.Sub(e.prev)
}

// SetPosition teleports the entity and zeroes its velocity. The render handle
// is moved immediately.
func (e *Entity) SetPosition(x, y float64) {
	e.curr = mgl64.Vec2{x, y}
	e.prev = e.curr
	e.pushPosition(e.curr)
}

// SetVelocity makes the next FixedStep move the entity by exactly (vx, vy).
func (e *Entity) SetVelocity(vx, vy float64) {
	e.prev = e.curr.Sub(mgl64.Vec2{vx, vy})
}

// AddVelocity adds (vx, vy) to the implicit velocity.
func (e *Entity) AddVelocity(vx, vy float64) {
	e.prev = e.prev.Sub(mgl64.Vec2{vx, vy})
}

// AddVelocityCapped adds (vx, vy) and then limits the speed to limit. Used by
// per-frame input that would otherwise accumulate without bound.
func (e *Entity) AddVelocityCapped(vx, vy, limit float64) {
	e.AddVelocity(vx, vy)

	limit = abs(limit)
	back := e.prev.Sub(e.curr)
	if l := back.Len(); l > limit {
		e.prev = e.curr.Add(back.Mul(limit / l))
	}
}

// ShiftPosition translates the current position only. The previous position
// is left alone, so the displacement folds into the implicit velocity of the
// next tick instead of being set explicitly.
func (e *Entity) ShiftPosition(dx, dy float64) {
	e.curr = e.curr.Add(mgl64.Vec2{dx, dy})
}

// InterpolatePosition pushes current + velocity*alpha to the render handle.
// Simulation state is not touched.
func (e *Entity) InterpolatePosition(alpha float64) {
	e.pushPosition(e.curr.Add(e.Velocity().Mul(alpha)))
}

func (e *Entity) pushPosition(p mgl64.Vec2) {
	if e.handle != nil {
		e.handle.SetPosition(p.X(), p.Y())
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
