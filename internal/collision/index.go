package collision

import (
	"sort"

	"github.com/san-kum/gamesim/internal/entity"
)

// Entry identifies one shape of one entity.
type Entry struct {
	Entity *entity.Entity
	Shape  int
}

// Index maps layer names to the shapes registered on them, in registration
// order. Each (entity, shape) pair appears at most once.
type Index struct {
	layers map[string][]Entry
}

func NewIndex() *Index {
	return &Index{layers: make(map[string][]Entry)}
}

// Register appends every shape of e to its layer.
func (x *Index) Register(e *entity.Entity) {
	for i := 0; i < e.ShapeCount(); i++ {
		layer := e.Shape(i).Layer
		x.layers[layer] = append(x.layers[layer], Entry{Entity: e, Shape: i})
	}
}

// Unregister removes every entry of e and reports how many were removed.
func (x *Index) Unregister(e *entity.Entity) int {
	removed := 0
	for i := 0; i < e.ShapeCount(); i++ {
		layer := e.Shape(i).Layer
		entries := x.layers[layer]
		for j, en := range entries {
			if en.Entity == e && en.Shape == i {
				entries = append(entries[:j], entries[j+1:]...)
				removed++
				break
			}
		}
		if len(entries) == 0 {
			delete(x.layers, layer)
		} else {
			x.layers[layer] = entries
		}
	}
	return removed
}

// Layer returns a snapshot of the entries on a layer.
func (x *Index) Layer(name string) []Entry {
	entries := x.layers[name]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

func (x *Index) Len(name string) int {
	return len(x.layers[name])
}

// Layers lists the non-empty layers in name order.
func (x *Index) Layers() []string {
	names := make([]string, 0, len(x.layers))
	for name := range x.layers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns how many entries e owns across all layers.
func (x *Index) Count(e *entity.Entity) int {
	n := 0
	for _, entries := range x.layers {
		for _, en := range entries {
			if en.Entity == e {
				n++
			}
		}
	}
	return n
}
