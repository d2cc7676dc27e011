package render

import (
	"testing"

	"github.com/san-kum/gamesim/internal/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Lifecycle(t *testing.T) {
	r := NewRecorder()
	w := world.New(r)
	w.RegisterTemplate(world.Template{Name: "coin", Glyph: "o"})
	w.RegisterTemplate(world.Template{Name: "wall"})

	coin, err := w.Spawn("coin")
	require.NoError(t, err)
	wall, err := w.Spawn("wall")
	require.NoError(t, err)
	coin.SetPosition(3, 4)

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "coin", snap[0].Template())
	assert.Equal(t, "o", snap[0].Glyph())
	assert.Equal(t, "#", snap[1].Glyph(), "default glyph")
	x, y := snap[0].Position()
	assert.Equal(t, 3.0, x)
	assert.Equal(t, 4.0, y)

	w.Destroy(wall, false)
	w.Drain()

	assert.Equal(t, 1, r.Live())
	assert.Equal(t, 2, r.Created())
	assert.True(t, snap[1].Released())
	assert.False(t, snap[0].Released())
}

func TestRecorder_UnknownTemplateGetsNoHandle(t *testing.T) {
	r := NewRecorder()
	w := world.New(r)

	e, err := w.Spawn("missing")
	require.Error(t, err)
	assert.Nil(t, e.Handle())
	assert.Equal(t, 0, r.Created())
}

func TestRecorder_ReleaseForeignHandle(t *testing.T) {
	r := NewRecorder()
	r.CreateHandle(world.Template{Name: "a"})

	r.Release(nil)
	r.Release(&Handle{id: 99})
	assert.Equal(t, 1, r.Live())
}

func TestSnapshot_OrderedByID(t *testing.T) {
	r := NewRecorder()
	for i := 0; i < 20; i++ {
		r.CreateHandle(world.Template{Name: "x"})
	}
	snap := r.Snapshot()
	for i := 1; i < len(snap); i++ {
		assert.Less(t, snap[i-1].ID(), snap[i].ID())
	}
}
