package world

import (
	"sort"

	"github.com/san-kum/gamesim/internal/entity"
)

// Template is the static description of a spawnable entity.
type Template struct {
	Name   string
	Shapes []entity.Shape
	Glyph  string // render data, opaque to the core
}

// Factory decorates or replaces the base entity built from a template.
// Returning nil aborts the spawn with ErrCreationFailed.
type Factory func(base *entity.Entity, handle entity.RenderHandle) *entity.Entity

// Renderer is the visual collaborator. It creates one handle per spawned
// entity whose template is known and releases it on destruction.
type Renderer interface {
	CreateHandle(t Template) entity.RenderHandle
	Release(h entity.RenderHandle)
}

type nopRenderer struct{}

func (nopRenderer) CreateHandle(Template) entity.RenderHandle { return nil }
func (nopRenderer) Release(entity.RenderHandle)               {}

func (m *Manager) RegisterTemplate(t Template) {
	shapes := make([]entity.Shape, len(t.Shapes))
	copy(shapes, t.Shapes)
	t.Shapes = shapes
	m.templates[t.Name] = t
}

func (m *Manager) RegisterFactory(name string, f Factory) {
	m.factories[name] = f
}

func (m *Manager) Template(name string) (Template, bool) {
	t, ok := m.templates[name]
	return t, ok
}

// Templates lists registered template names in order.
func (m *Manager) Templates() []string {
	names := make([]string, 0, len(m.templates))
	for name := range m.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// colliders returns the template's shapes, or nil when any of them is
// unusable.
func (m *Manager) colliders(t Template) []entity.Shape {
	for i, s := range t.Shapes {
		if s.Layer == "" || !s.Bounds.Valid() {
			m.log.Warn().
				Err(ErrMalformedColliders).
				Str("template", t.Name).
				Int("collider", i).
				Msg("entity spawns without colliders")
			return nil
		}
	}
	return t.Shapes
}
