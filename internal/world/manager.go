package world

import (
	"github.com/rs/zerolog"
	"github.com/san-kum/gamesim/internal/collision"
	"github.com/san-kum/gamesim/internal/entity"
)

// Manager owns the active entity set, the collider layer index and the
// destroy queue. All three are mutated only through its methods.
type Manager struct {
	renderer  Renderer
	templates map[string]Template
	factories map[string]Factory

	index  *collision.Index
	active []*entity.Entity
	queue  []*entity.Entity
	nextID uint64

	log zerolog.Logger
}

type Option func(*Manager)

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l.With().Str("component", "world").Logger() }
}

// New creates an empty world. A nil renderer disables render handles.
func New(renderer Renderer, opts ...Option) *Manager {
	if renderer == nil {
		renderer = nopRenderer{}
	}
	m := &Manager{
		renderer:  renderer,
		templates: make(map[string]Template),
		factories: make(map[string]Factory),
		index:     collision.NewIndex(),
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Index() *collision.Index { return m.index }
func (m *Manager) Len() int                { return len(m.active) }
func (m *Manager) Pending() int            { return len(m.queue) }

// Entities returns a snapshot of the active set in spawn order.
func (m *Manager) Entities() []*entity.Entity {
	out := make([]*entity.Entity, len(m.active))
	copy(out, m.active)
	return out
}

// Entity looks up an active entity by id.
func (m *Manager) Entity(id uint64) (*entity.Entity, bool) {
	for _, e := range m.active {
		if e.ID() == id {
			return e, true
		}
	}
	return nil, false
}

// Spawn builds an entity from a template, runs its factory if one is
// registered, and adds it to the active set and the layer index.
//
// An unknown template still spawns a bare entity; the entity is returned
// together with a *SpawnError wrapping ErrTemplateNotFound. A factory that
// returns nil yields a nil entity and ErrCreationFailed.
func (m *Manager) Spawn(name string) (*entity.Entity, error) {
	var (
		handle entity.RenderHandle
		diag   error
	)

	tmpl, found := m.templates[name]
	if found {
		handle = m.renderer.CreateHandle(tmpl)
	} else {
		diag = &SpawnError{Template: name, Err: ErrTemplateNotFound}
		m.log.Warn().Str("template", name).Msg("no template found")
	}

	base := entity.New(name, m.colliders(tmpl), handle)
	e := base

	if factory, ok := m.factories[name]; ok {
		e = factory(base, handle)
		if e == nil || e.State() != entity.StateDetached {
			if handle != nil {
				m.renderer.Release(handle)
			}
			m.log.Error().Str("template", name).Msg("factory did not return a new entity")
			return nil, &SpawnError{Template: name, Err: ErrCreationFailed}
		}
		if e != base && handle != nil && e.Handle() != handle {
			m.renderer.Release(handle)
		}
	}

	m.nextID++
	e.Bind(m.nextID, m)
	e.SetState(entity.StateActive)
	m.index.Register(e)
	m.active = append(m.active, e)

	m.log.Debug().Str("template", name).Uint64("entity", e.ID()).Int("shapes", e.ShapeCount()).Msg("spawned")
	return e, diag
}

// Attach makes child a child of parent. Both must be alive in this world.
func (m *Manager) Attach(parent, child *entity.Entity) error {
	if parent == nil || child == nil || !parent.Alive() || !child.Alive() {
		return ErrNotActive
	}
	return parent.AddChild(child)
}

// Detach removes child from its parent, if any.
func (m *Manager) Detach(child *entity.Entity) {
	if p := child.Parent(); p != nil {
		p.RemoveChild(child)
	}
}
