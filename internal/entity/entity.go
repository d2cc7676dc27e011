package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/gamesim/internal/geom"
)

// initialDamageAge is the damage timer value of an entity that was never hit.
const initialDamageAge = 60.0

// State is the lifecycle stage of an entity.
type State uint8

const (
	StateDetached State = iota // constructed, not spawned
	StateActive
	StateQueued
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateQueued:
		return "queued"
	case StateDestroyed:
		return "destroyed"
	default:
		return "detached"
	}
}

// Shape is a local-space collision rectangle.
type Shape struct {
	Bounds  geom.Rect
	Layer   string
	Physics bool // false marks a trigger: reported, never displaced
}

// Collider is a shape moved into world space and tagged with its owner.
type Collider struct {
	Bounds  geom.Rect
	Layer   string
	Physics bool
	Owner   *Entity
	Index   int
}

// RenderHandle is the opaque visual counterpart of an entity. The core only
// pushes positions into it.
type RenderHandle interface {
	SetPosition(x, y float64)
}

// Destroyer queues an entity for destruction.
type Destroyer interface {
	Destroy(e *Entity, quiet bool)
}

type (
	UpdateFunc    func(e *Entity, dt float64)
	CollisionFunc func(e *Entity, other Collider)
	DestroyFunc   func(e *Entity)
)

type Entity struct {
	id       uint64
	template string

	curr mgl64.Vec2
	prev mgl64.Vec2

	shapes []Shape

	parent   *Entity
	children []*Entity

	onUpdate    []UpdateFunc
	onCollision []CollisionFunc
	onDestroy   []DestroyFunc

	health       float64
	tracksHealth bool
	sinceDamage  float64

	handle RenderHandle
	owner  Destroyer
	state  State
	quiet  bool
}

// New builds a detached entity at the origin. Shapes are copied.
func New(template string, shapes []Shape, handle RenderHandle) *Entity {
	e := &Entity{
		template:    template,
		handle:      handle,
		sinceDamage: initialDamageAge,
	}
	if len(shapes) > 0 {
		e.shapes = make([]Shape, len(shapes))
		copy(e.shapes, shapes)
	}
	return e
}

// Bind assigns the id and the destroyer. Called by the lifecycle manager at
// spawn time.
func (e *Entity) Bind(id uint64, owner Destroyer) {
	e.id = id
	e.owner = owner
}

func (e *Entity) ID() uint64                   { return e.id }
func (e *Entity) Template() string             { return e.template }
func (e *Entity) Handle() RenderHandle         { return e.handle }
func (e *Entity) SetHandle(h RenderHandle)     { e.handle = h }
func (e *Entity) State() State                 { return e.state }
func (e *Entity) SetState(s State)             { e.state = s }
func (e *Entity) Quiet() bool                  { return e.quiet }
func (e *Entity) SetQuiet(quiet bool)          { e.quiet = quiet }
func (e *Entity) Alive() bool                  { return e.state == StateActive || e.state == StateQueued }
func (e *Entity) ShapeCount() int              { return len(e.shapes) }
func (e *Entity) Shape(i int) Shape            { return e.shapes[i] }
func (e *Entity) OnUpdate(fn UpdateFunc)       { e.onUpdate = append(e.onUpdate, fn) }
func (e *Entity) OnCollision(fn CollisionFunc) { e.onCollision = append(e.onCollision, fn) }
func (e *Entity) OnDestroy(fn DestroyFunc)     { e.onDestroy = append(e.onDestroy, fn) }

// AddShape appends a local-space shape. Shapes added after spawn are not
// registered in any collision layer.
func (e *Entity) AddShape(s Shape) {
	e.shapes = append(e.shapes, s)
}

// Collider returns shape i in world space. The second result is false when
// i is out of range.
func (e *Entity) Collider(i int) (Collider, bool) {
	if i < 0 || i >= len(e.shapes) {
		return Collider{}, false
	}
	s := e.shapes[i]
	return Collider{
		Bounds:  s.Bounds.Translate(e.curr),
		Layer:   s.Layer,
		Physics: s.Physics,
		Owner:   e,
		Index:   i,
	}, true
}

// Update advances the damage timer and runs the update hooks with the frame
// delta.
func (e *Entity) Update(dt float64) {
	if e.tracksHealth {
		e.sinceDamage += dt
	}
	for _, fn := range e.onUpdate {
		fn(e, dt)
	}
}

// Collide runs the collision hooks. other is the shape that was hit.
func (e *Entity) Collide(other Collider) {
	for _, fn := range e.onCollision {
		fn(e, other)
	}
}

// NotifyDestroy runs the destroy hooks.
func (e *Entity) NotifyDestroy() {
	for _, fn := range e.onDestroy {
		fn(e)
	}
}

// EnableHealth starts health tracking with the given amount.
func (e *Entity) EnableHealth(amount float64) {
	e.health = amount
	e.tracksHealth = true
}

// Health returns the current health and whether it is tracked.
func (e *Entity) Health() (float64, bool) {
	return e.health, e.tracksHealth
}

// TimeSinceDamage is the frame time accumulated since the last Damage call.
func (e *Entity) TimeSinceDamage() float64 {
	return e.sinceDamage
}

// Damage lowers health and queues destruction once it reaches zero. It is a
// no-op for entities without health.
func (e *Entity) Damage(amount float64) {
	if !e.tracksHealth {
		return
	}
	e.health -= amount
	e.sinceDamage = 0
	if e.health <= 0 && e.owner != nil {
		e.owner.Destroy(e, false)
	}
}
