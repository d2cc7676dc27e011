package world

import "github.com/san-kum/gamesim/internal/entity"

// Destroy queues e for removal at the next Drain. Queuing an entity twice,
// or one that is not active, is a no-op. quiet suppresses destroy hooks.
func (m *Manager) Destroy(e *entity.Entity, quiet bool) {
	if e == nil || e.State() != entity.StateActive {
		return
	}
	if quiet {
		e.SetQuiet(true)
	}
	e.SetState(entity.StateQueued)
	m.queue = append(m.queue, e)
}

// DestroyAll queues every active entity as a quiet destroy. Entities that
// are already queued keep their pending destroy as it is.
func (m *Manager) DestroyAll() {
	for _, e := range m.active {
		m.Destroy(e, true)
	}
}

// Drain processes the destroy queue in FIFO order until it is empty,
// including entities queued by destroy hooks while draining. It returns the
// number of entities removed, cascaded children included.
func (m *Manager) Drain() int {
	removed := 0
	for len(m.queue) > 0 {
		e := m.queue[0]
		m.queue[0] = nil
		m.queue = m.queue[1:]
		removed += m.remove(e, false)
	}
	return removed
}

// remove takes e out of the world and cascades to its children. Every
// removed entity gets its destroy hooks (unless it or the entity that
// started the cascade is quiet) and releases its render handle.
func (m *Manager) remove(e *entity.Entity, quiet bool) int {
	if !e.Alive() {
		return 0
	}
	if e.State() == entity.StateQueued {
		m.dequeue(e)
	}
	e.SetState(entity.StateDestroyed)
	quiet = quiet || e.Quiet()

	if !quiet {
		e.NotifyDestroy()
	}
	if h := e.Handle(); h != nil {
		m.renderer.Release(h)
	}

	m.index.Unregister(e)
	for i, a := range m.active {
		if a == e {
			m.active = append(m.active[:i], m.active[i+1:]...)
			break
		}
	}
	if p := e.Parent(); p != nil {
		p.RemoveChild(e)
	}

	m.log.Debug().Str("template", e.Template()).Uint64("entity", e.ID()).Bool("quiet", quiet).Msg("destroyed")

	removed := 1
	for _, child := range e.Children() {
		removed += m.remove(child, quiet)
	}
	return removed
}

// dequeue drops e from the destroy queue. Drain pops the head before removing
// it, so this only finds entities reached through a cascade.
func (m *Manager) dequeue(e *entity.Entity) {
	for i, q := range m.queue {
		if q == e {
			m.queue = append(m.queue[:i], m.queue[i+1:]...)
			return
		}
	}
}
