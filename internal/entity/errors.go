package entity

import "github.com/rotisserie/eris"

var (
	// ErrHierarchyCycle is returned when an attachment would make an entity
	// its own ancestor.
	ErrHierarchyCycle = eris.New("entity: attachment would create a hierarchy cycle")

	// ErrNilChild is returned when a nil entity is attached.
	ErrNilChild = eris.New("entity: nil child")
)
