package behavior

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/geom"
	"github.com/san-kum/gamesim/internal/input"
	"github.com/san-kum/gamesim/internal/sim"
	"github.com/san-kum/gamesim/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shape(layer string, physics bool) []entity.Shape {
	return []entity.Shape{{Bounds: geom.NewRect(-0.5, -0.5, 0.5, 0.5), Layer: layer, Physics: physics}}
}

func newEnv(t *testing.T) (Env, *input.Keys) {
	t.Helper()
	now := time.Unix(0, 0)
	keys := input.NewKeys(func() time.Time { return now }, time.Second)
	w := world.New(nil)
	w.RegisterTemplate(world.Template{Name: "hero", Shapes: shape(PlayerLayer, true)})
	w.RegisterTemplate(world.Template{Name: "coin", Shapes: shape("coin", false)})
	w.RegisterTemplate(world.Template{Name: "spikes", Shapes: shape("hazard", false)})
	w.RegisterTemplate(world.Template{Name: "truck"})
	w.RegisterTemplate(world.Template{Name: CargoTemplate})

	env := NewEnv(w, keys)
	require.NoError(t, Bind(env, "hero", "humanoid"))
	require.NoError(t, Bind(env, "coin", "pickup"))
	require.NoError(t, Bind(env, "spikes", "hazard"))
	require.NoError(t, Bind(env, "truck", "convoy"))
	return env, keys
}

func spawn(t *testing.T, env Env, name string, x, y float64) *entity.Entity {
	t.Helper()
	e, err := env.World.Spawn(name)
	require.NoError(t, err)
	e.SetPosition(x, y)
	return e
}

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"convoy", "hazard", "humanoid", "pickup"}, Names())

	_, err := Lookup("dragon")
	assert.ErrorIs(t, err, ErrUnknownBehavior)

	err = Bind(NewEnv(world.New(nil), nil), "x", "dragon")
	assert.ErrorIs(t, err, ErrUnknownBehavior)
}

func TestHumanoid_ArrowKeysCapped(t *testing.T) {
	env, keys := newEnv(t)
	hero := spawn(t, env, "hero", 0, 0)

	keys.Press(input.KeyRight)
	hero.Update(0.1)
	assert.InDelta(t, HumanoidMax, hero.Velocity().X(), 1e-12, "20*0.1 is capped")
	assert.Equal(t, 0.0, hero.Velocity().Y())

	keys.Release(input.KeyRight)
	keys.Press(input.KeyUp)
	hero.SetVelocity(0, 0)
	hero.Update(0.01)
	assert.InDelta(t, 0.2, hero.Velocity().Y(), 1e-12)
	assert.Equal(t, 0.0, hero.Velocity().X())

	health, ok := hero.Health()
	assert.True(t, ok)
	assert.Equal(t, HumanoidHealth, health)
}

func TestHumanoid_Touch(t *testing.T) {
	env, keys := newEnv(t)
	hero := spawn(t, env, "hero", 0, 0)
	hero.SetVelocity(0.5, 0.5)

	keys.SetTouch(input.Point{X: 4, Y: -2})
	hero.Update(0.016)

	assert.Equal(t, mgl64.Vec2{4, -2}, hero.Position())
	assert.Equal(t, mgl64.Vec2{0, 0}, hero.Velocity())
}

func TestHumanoid_NoInput(t *testing.T) {
	w := world.New(nil)
	w.RegisterTemplate(world.Template{Name: "hero"})
	require.NoError(t, Bind(Env{World: w}, "hero", "humanoid"))

	hero, err := w.Spawn("hero")
	require.NoError(t, err)
	assert.NotPanics(t, func() { hero.Update(0.1) })
}

func TestPickup_CollectedByPlayer(t *testing.T) {
	env, _ := newEnv(t)
	spawn(t, env, "hero", 0, 0)
	coin := spawn(t, env, "coin", 0.5, 0)
	other := spawn(t, env, "coin", 10, 0)

	s, err := sim.New(env.World, []collision.Rule{{A: PlayerLayer, B: "coin"}}, sim.Config{FixedStep: 0.25, MaxDelta: 1})
	require.NoError(t, err)

	s.Start()
	s.Advance(0.5)
	assert.Equal(t, entity.StateQueued, coin.State())

	s.Advance(0)
	assert.Equal(t, entity.StateDestroyed, coin.State())
	assert.Equal(t, entity.StateActive, other.State())
	assert.Equal(t, 1, env.Score.Collected)
}

func TestPickup_IgnoresOtherLayers(t *testing.T) {
	env, _ := newEnv(t)
	coin := spawn(t, env, "coin", 0, 0)
	spikes := spawn(t, env, "spikes", 0, 0)

	c, ok := spikes.Collider(0)
	require.True(t, ok)
	coin.Collide(c)

	assert.Equal(t, entity.StateActive, coin.State())
}

func TestPickup_QuietDestroyNotCounted(t *testing.T) {
	env, _ := newEnv(t)
	spawn(t, env, "coin", 0, 0)

	env.World.DestroyAll()
	env.World.Drain()
	assert.Equal(t, 0, env.Score.Collected)
}

func TestHazard_DamageWithInvulnerability(t *testing.T) {
	env, _ := newEnv(t)
	hero := spawn(t, env, "hero", 0, 0)
	spikes := spawn(t, env, "spikes", 0, 0)
	heroShape, ok := hero.Collider(0)
	require.True(t, ok)

	spikes.Collide(heroShape)
	spikes.Collide(heroShape)
	health, _ := hero.Health()
	assert.Equal(t, HumanoidHealth-HazardDamage, health)
	assert.Equal(t, 1, env.Score.Hits)

	hero.Update(Invulnerability)
	spikes.Collide(heroShape)
	hero.Update(Invulnerability)
	spikes.Collide(heroShape)

	health, _ = hero.Health()
	assert.Equal(t, 0.0, health)
	assert.Equal(t, entity.StateQueued, hero.State())
	assert.Equal(t, 3, env.Score.Hits)
}

func TestHazard_IgnoresEntitiesWithoutHealth(t *testing.T) {
	env, _ := newEnv(t)
	coin := spawn(t, env, "coin", 0, 0)
	spikes := spawn(t, env, "spikes", 0, 0)
	c, ok := coin.Collider(0)
	require.True(t, ok)

	spikes.Collide(c)
	assert.Equal(t, 0, env.Score.Hits)
}

func TestConvoy_SpawnsAndDragsCargo(t *testing.T) {
	env, _ := newEnv(t)
	truck := spawn(t, env, "truck", 10, 1)

	truck.Update(0.016)
	cars := truck.Children()
	require.Len(t, cars, ConvoyCars)
	for i, car := range cars {
		assert.Equal(t, CargoTemplate, car.Template())
		assert.Equal(t, mgl64.Vec2{10 - ConvoySpacing*float64(i+1), 1}, car.Position())
	}

	truck.SetPosition(20, 1)
	truck.Update(0.016)
	assert.Len(t, truck.Children(), ConvoyCars, "cargo is spawned once")
	assert.Equal(t, mgl64.Vec2{20 - ConvoySpacing, 1}, cars[0].Position())

	env.World.Destroy(truck, false)
	assert.Equal(t, 1+ConvoyCars, env.World.Drain())
	assert.Equal(t, 0, env.World.Len())
}
