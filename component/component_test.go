package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-runner/engine"
)

func TestCollidable_IndexedByWorld(t *testing.T) {
	w := engine.NewWorld()
	o := engine.NewTestObject("A", 0, 0, 1, 1, NewCollidable())
	_, err := w.Attach(o)
	require.NoError(t, err)
	assert.Equal(t, []*engine.Object{o}, w.Collidables())

	require.NoError(t, w.SetCollidable(o, false))
	c, err := engine.GetAs[*Collidable](o.Components(), KindCollidable)
	require.NoError(t, err)
	assert.False(t, c.Enabled())
	assert.Empty(t, w.Collidables())
}

func TestHighlighted(t *testing.T) {
	w := engine.NewWorld()
	lit := &Highlightable{Lit: true}
	dim := &Highlightable{}
	a := engine.NewTestObject("BLOCK", 0, 0, 1, 1, lit)
	b := engine.NewTestObject("BLOCK", 1, 0, 1, 1, dim)
	c := engine.NewTestObject("BLOCK", 2, 0, 1, 1)
	for _, o := range []*engine.Object{a, b, c} {
		_, _ = w.Attach(o)
	}

	assert.Equal(t, []*engine.Object{a}, Highlighted(w))
	assert.True(t, dim.Toggle())
	assert.Equal(t, []*engine.Object{a, b}, Highlighted(w))
	assert.False(t, IsHighlighted(c))
}

func TestUserValue(t *testing.T) {
	o := engine.NewTestObject("BULLET", 0, 0, 1, 1, &UserData{Value: engine.Tag("PLAYER")})

	owner, ok := UserValue[engine.Tag](o)
	require.True(t, ok)
	assert.Equal(t, engine.Tag("PLAYER"), owner)

	_, ok = UserValue[int](o)
	assert.False(t, ok)

	_, ok = UserValue[engine.Tag](engine.NewTestObject("X", 0, 0, 1, 1))
	assert.False(t, ok)
}

func TestDuplicateKindRejected(t *testing.T) {
	_, err := engine.NewEntity().Type("A").At(0, 0).View(engine.Box{}).
		With(NewCollidable()).With(&Collidable{}).Build()
	assert.ErrorIs(t, err, engine.ErrDuplicateKind)
}
