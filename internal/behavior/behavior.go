// Package behavior holds the built-in entity factories. Each one decorates
// the base entity of a template with update, collision and destroy hooks.
package behavior

import (
	"sort"

	"github.com/rotisserie/eris"
	"github.com/san-kum/gamesim/internal/input"
	"github.com/san-kum/gamesim/internal/world"
)

var ErrUnknownBehavior = eris.New("behavior: unknown behavior")

// Names the built-in behaviors depend on.
const (
	PlayerLayer   = "player"
	CargoTemplate = "cargo"
)

// Score is shared by every behavior built from the same Env.
type Score struct {
	Collected int
	Hits      int
}

func (s *Score) collect() {
	if s != nil {
		s.Collected++
	}
}

func (s *Score) hit() {
	if s != nil {
		s.Hits++
	}
}

// Env is what a behavior may touch besides its own entity. Input and Score
// may be nil.
type Env struct {
	World *world.Manager
	Input input.Source
	Score *Score
}

func NewEnv(w *world.Manager, in input.Source) Env {
	return Env{World: w, Input: in, Score: &Score{}}
}

// Constructor builds a factory bound to env.
type Constructor func(env Env) world.Factory

var builtin = map[string]Constructor{
	"humanoid": Humanoid,
	"pickup":   Pickup,
	"hazard":   Hazard,
	"convoy":   Convoy,
}

func Lookup(name string) (Constructor, error) {
	c, ok := builtin[name]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownBehavior, "%q", name)
	}
	return c, nil
}

func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bind registers the named behavior as the factory of template.
func Bind(env Env, template, name string) error {
	c, err := Lookup(name)
	if err != nil {
		return err
	}
	env.World.RegisterFactory(template, c(env))
	return nil
}
