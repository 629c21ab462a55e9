package engine2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSceneMembership(t *testing.T) {
	geometry := NewGeometry(2, 100)
	hidden, visible := NewScene("hidden"), NewScene("visible")

	a := NewDrawable("a", geometry, Material{})
	b := NewDrawable("b", geometry, Material{})

	require.NoError(t, hidden.Add(a))
	require.NoError(t, hidden.Add(a), "re-adding to the owner is a no-op")
	assert.Equal(t, 1, hidden.Len())

	err := visible.Add(a)
	assert.ErrorIs(t, err, ErrForeignDrawable)
	assert.False(t, visible.Contains(a))

	require.NoError(t, visible.Add(b))
	assert.True(t, hidden.Remove(a))
	assert.False(t, hidden.Remove(a))
	assert.Nil(t, a.Scene())

	require.NoError(t, visible.Add(a), "a detached drawable can move scenes")
	assert.Equal(t, []*Drawable{b, a}, visible.Drawables())
}

func TestSceneRemoveExcept(t *testing.T) {
	geometry := NewGeometry(2, 100)
	s := NewScene("visible")
	keep := NewDrawable("keep", geometry, Material{})

	extras := []*Drawable{
		NewDrawable("x", geometry, Material{}),
		NewDrawable("y", geometry, Material{}),
	}
	require.NoError(t, s.Add(extras[0]))
	require.NoError(t, s.Add(keep))
	require.NoError(t, s.Add(extras[1]))

	assert.Equal(t, 2, s.RemoveExcept(keep))
	assert.Equal(t, []*Drawable{keep}, s.Drawables())
	for _, d := range extras {
		assert.Nil(t, d.Scene())
	}

	assert.Equal(t, 0, s.RemoveExcept(keep))
}

func TestCloneDrawable(t *testing.T) {
	geometry := NewGeometry(2, 100)
	src := NewDrawable("wave", geometry, Material{Params: Params{Time: 3, Resolution: Vec2{X: 1, Y: 1}}})
	src.Scale = Vec2{X: 1.4, Y: 1.4}
	require.NoError(t, NewScene("hidden").Add(src))

	clone := CloneDrawable(src, "copy")

	assert.Same(t, geometry, clone.Geometry)
	assert.Equal(t, src.Material, clone.Material)
	assert.Equal(t, src.Scale, clone.Scale)
	assert.Nil(t, clone.Scene(), "clones start detached")

	clone.Material.Params.Time = 99
	assert.Equal(t, 3.0, src.Material.Params.Time)
}
