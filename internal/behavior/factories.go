package behavior

import (
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/input"
	"github.com/san-kum/gamesim/internal/world"
)

const (
	HumanoidAccel  = 20.0 // units per second, applied per frame
	HumanoidMax    = 1.0  // per-tick speed cap
	HumanoidHealth = 3.0

	HazardDamage = 1.0
	// Invulnerability is the time after a hit during which hazards are
	// ignored.
	Invulnerability = 1.0

	ConvoyCars    = 3
	ConvoySpacing = 2.5
)

// Humanoid steers with the arrow keys and jumps to the pointer when one is
// set.
func Humanoid(env Env) world.Factory {
	return func(e *entity.Entity, _ entity.RenderHandle) *entity.Entity {
		e.EnableHealth(HumanoidHealth)
		e.OnUpdate(func(e *entity.Entity, dt float64) {
			if env.Input == nil {
				return
			}
			step := HumanoidAccel * dt
			if env.Input.IsDown(input.KeyLeft) {
				e.AddVelocityCapped(-step, 0, HumanoidMax)
			}
			if env.Input.IsDown(input.KeyUp) {
				e.AddVelocityCapped(0, step, HumanoidMax)
			}
			if env.Input.IsDown(input.KeyRight) {
				e.AddVelocityCapped(step, 0, HumanoidMax)
			}
			if env.Input.IsDown(input.KeyDown) {
				e.AddVelocityCapped(0, -step, HumanoidMax)
			}
			if p, ok := env.Input.Touch(); ok {
				e.SetPosition(p.X, p.Y)
			}
		})
		return e
	}
}

// Pickup removes itself when a player shape touches it.
func Pickup(env Env) world.Factory {
	return func(e *entity.Entity, _ entity.RenderHandle) *entity.Entity {
		e.OnCollision(func(e *entity.Entity, other entity.Collider) {
			if other.Layer == PlayerLayer {
				env.World.Destroy(e, false)
			}
		})
		e.OnDestroy(func(*entity.Entity) {
			env.Score.collect()
		})
		return e
	}
}

// Hazard damages whatever it touches, at most once per Invulnerability
// window per victim.
func Hazard(env Env) world.Factory {
	return func(e *entity.Entity, _ entity.RenderHandle) *entity.Entity {
		e.OnCollision(func(_ *entity.Entity, other entity.Collider) {
			victim := other.Owner
			if _, ok := victim.Health(); !ok {
				return
			}
			if victim.TimeSinceDamage() < Invulnerability {
				return
			}
			victim.Damage(HazardDamage)
			env.Score.hit()
		})
		return e
	}
}

// Convoy spawns a line of cargo children on its first frame and drags them
// along behind it. Destroying the convoy takes the cargo with it.
func Convoy(env Env) world.Factory {
	return func(e *entity.Entity, _ entity.RenderHandle) *entity.Entity {
		spawned := false
		e.OnUpdate(func(e *entity.Entity, _ float64) {
			if !spawned {
				spawned = true
				for i := 0; i < ConvoyCars; i++ {
					car, _ := env.World.Spawn(CargoTemplate)
					if car == nil {
						continue
					}
					if err := env.World.Attach(e, car); err != nil {
						env.World.Destroy(car, true)
					}
				}
			}

			pos := e.Position()
			for i, car := range e.Children() {
				car.SetPosition(pos.X()-ConvoySpacing*float64(i+1), pos.Y())
			}
		})
		return e
	}
}
