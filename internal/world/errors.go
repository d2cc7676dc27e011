package world

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// Spawn diagnostics. None of them stops the simulation.
var (
	// ErrCreationFailed indicates a registered factory returned no entity.
	// Nothing is registered for that request.
	ErrCreationFailed = eris.New("world: factory returned no entity")

	// ErrTemplateNotFound indicates a spawn for an unknown template. The
	// spawn still produces a bare entity.
	ErrTemplateNotFound = eris.New("world: template not found")

	// ErrMalformedColliders indicates collider data that could not be used.
	// The entity gets no colliders.
	ErrMalformedColliders = eris.New("world: malformed collider data")

	// ErrNotActive indicates a hierarchy change on an entity that is not
	// alive in this world.
	ErrNotActive = eris.New("world: entity is not active")
)

// SpawnError wraps a spawn diagnostic with the requested template.
type SpawnError struct {
	Template string
	Err      error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %q: %v", e.Template, e.Err)
}

func (e *SpawnError) Unwrap() error {
	return e.Err
}
