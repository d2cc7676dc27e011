// Package render provides a headless renderer that records where each
// entity was last drawn.
package render

import (
	"sort"

	"github.com/san-kum/gamesim/internal/entity"
	"github.com/san-kum/gamesim/internal/world"
)

// Handle is the recorded visual state of one entity.
type Handle struct {
	id       uint64
	template string
	glyph    string
	x, y     float64
	released bool
}

func (h *Handle) SetPosition(x, y float64) { h.x, h.y = x, y }

func (h *Handle) ID() uint64               { return h.id }
func (h *Handle) Template() string         { return h.template }
func (h *Handle) Glyph() string            { return h.glyph }
func (h *Handle) Position() (x, y float64) { return h.x, h.y }
func (h *Handle) Released() bool           { return h.released }

// Recorder implements world.Renderer.
type Recorder struct {
	handles map[uint64]*Handle
	nextID  uint64
	created int
}

var _ world.Renderer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{handles: make(map[uint64]*Handle)}
}

func (r *Recorder) CreateHandle(t world.Template) entity.RenderHandle {
	r.nextID++
	r.created++
	glyph := t.Glyph
	if glyph == "" {
		glyph = "#"
	}
	h := &Handle{id: r.nextID, template: t.Name, glyph: glyph}
	r.handles[h.id] = h
	return h
}

// Release forgets h. Handles that did not come from this recorder are
// ignored.
func (r *Recorder) Release(h entity.RenderHandle) {
	rh, ok := h.(*Handle)
	if !ok {
		return
	}
	if _, live := r.handles[rh.id]; !live {
		return
	}
	rh.released = true
	delete(r.handles, rh.id)
}

// Live is the number of handles not yet released.
func (r *Recorder) Live() int { return len(r.handles) }

// Created is the number of handles handed out since construction.
func (r *Recorder) Created() int { return r.created }

// Snapshot returns the live handles ordered by id.
func (r *Recorder) Snapshot() []*Handle {
	out := make([]*Handle, 0, len(r.handles))
	for _, h := range r.handles {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
