package entity

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddChild(t *testing.T) {
	parent := New("parent", nil, nil)
	child := New("child", nil, nil)

	require.NoError(t, parent.AddChild(child))
	require.NoError(t, parent.AddChild(child), "reattaching is a no-op")

	assert.Equal(t, []*Entity{child}, parent.Children())
	assert.Same(t, parent, child.Parent())
	assert.True(t, parent.IsAncestorOf(child))
}

func TestAddChild_RejectsCycles(t *testing.T) {
	a := New("a", nil, nil)
	b := New("b", nil, nil)
	c := New("c", nil, nil)
	require.NoError(t, a.AddChild(b))
	require.NoError(t, b.AddChild(c))

	err := c.AddChild(a)
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrHierarchyCycle))

	err = a.AddChild(a)
	assert.True(t, eris.Is(err, ErrHierarchyCycle))

	assert.Nil(t, a.Parent())
	assert.Empty(t, c.Children())
}

func TestAddChild_Nil(t *testing.T) {
	a := New("a", nil, nil)
	assert.True(t, eris.Is(a.AddChild(nil), ErrNilChild))
}

func TestAddChild_MovesBetweenParents(t *testing.T) {
	first := New("first", nil, nil)
	second := New("second", nil, nil)
	child := New("child", nil, nil)

	require.NoError(t, first.AddChild(child))
	require.NoError(t, second.AddChild(child))

	assert.Empty(t, first.Children())
	assert.Equal(t, []*Entity{child}, second.Children())
	assert.Same(t, second, child.Parent())
}

func TestRemoveChild(t *testing.T) {
	parent := New("parent", nil, nil)
	a := New("a", nil, nil)
	b := New("b", nil, nil)
	require.NoError(t, parent.AddChild(a))
	require.NoError(t, parent.AddChild(b))

	assert.True(t, parent.RemoveChild(a))
	assert.False(t, parent.RemoveChild(a))

	assert.Nil(t, a.Parent())
	assert.Equal(t, []*Entity{b}, parent.Children())
}

func TestChildren_ReturnsCopy(t *testing.T) {
	parent := New("parent", nil, nil)
	child := New("child", nil, nil)
	require.NoError(t, parent.AddChild(child))

	list := parent.Children()
	list[0] = nil

	assert.Same(t, child, parent.Children()[0])
}
