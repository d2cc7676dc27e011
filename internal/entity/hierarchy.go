package entity

import "github.com/rotisserie/eris"

func (e *Entity) Parent() *Entity {
	return e.parent
}

// Children returns a copy of the child list in attach order.
func (e *Entity) Children() []*Entity {
	out := make([]*Entity, len(e.children))
	copy(out, e.children)
	return out
}

// IsAncestorOf reports whether e appears on the parent chain of other.
func (e *Entity) IsAncestorOf(other *Entity) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == e {
			return true
		}
	}
	return false
}

// AddChild attaches child to e. A child that already has a parent is moved.
// Attaching e to itself or to one of its descendants fails with
// ErrHierarchyCycle.
func (e *Entity) AddChild(child *Entity) error {
	if child == nil {
		return ErrNilChild
	}
	if child == e || child.IsAncestorOf(e) {
		return eris.Wrapf(ErrHierarchyCycle, "attach %d to %d", child.id, e.id)
	}
	if child.parent == e {
		return nil
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	e.children = append(e.children, child)
	child.parent = e
	return nil
}

// RemoveChild detaches child if it belongs to e.
func (e *Entity) RemoveChild(child *Entity) bool {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}
