package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vi-runner/vmath"
)

func TestSpatialGrid_Pairs(t *testing.T) {
	g := NewSpatialGrid(10)
	g.Insert(0, vmath.RectAt(vmath.V2(1, 1), vmath.V2(5, 5)))
	g.Insert(1, vmath.RectAt(vmath.V2(4, 4), vmath.V2(20, 20))) // spans cells 0..2
	g.Insert(2, vmath.RectAt(vmath.V2(21, 21), vmath.V2(2, 2)))
	g.Insert(3, vmath.RectAt(vmath.V2(100, 100), vmath.V2(2, 2)))

	assert.Equal(t, [][2]int{{0, 1}, {1, 2}}, g.Pairs(nil))
}

func TestSpatialGrid_NegativeCoordinates(t *testing.T) {
	g := NewSpatialGrid(10)
	g.Insert(0, vmath.RectAt(vmath.V2(-5, -5), vmath.V2(3, 3)))
	g.Insert(1, vmath.RectAt(vmath.V2(5, 5), vmath.V2(3, 3)))
	g.Insert(2, vmath.RectAt(vmath.V2(-9, -9), vmath.V2(2, 2)))

	assert.Equal(t, [][2]int{{0, 2}}, g.Pairs(nil))
}

func TestSpatialGrid_SkipsEmptyAndClears(t *testing.T) {
	g := NewSpatialGrid(10)
	g.Insert(0, vmath.RectAt(vmath.V2(1, 1), vmath.V2(0, 5)))
	g.Insert(1, vmath.RectAt(vmath.V2(1, 1), vmath.V2(5, 5)))
	assert.Empty(t, g.Pairs(nil))

	g.Insert(2, vmath.RectAt(vmath.V2(2, 2), vmath.V2(5, 5)))
	assert.Equal(t, [][2]int{{1, 2}}, g.Pairs(nil))

	g.Clear()
	assert.Empty(t, g.Pairs(nil))
}

func TestSpatialGrid_OversizedBoxesOverflow(t *testing.T) {
	g := NewSpatialGrid(64)
	g.Insert(0, vmath.RectAt(vmath.V2(0, 0), vmath.V2(1e9, 1e9)))
	g.Insert(1, vmath.RectAt(vmath.V2(5000, 5000), vmath.V2(4, 4)))
	g.Insert(2, vmath.RectAt(vmath.V2(-100, -100), vmath.V2(4, 4)))

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}}, g.Pairs(nil))
	assert.Empty(t, g.cells, "oversized box must not be spread over cells")
}

func TestSpatialGrid_NonFiniteBoxesOverflow(t *testing.T) {
	g := NewSpatialGrid(10)
	g.Insert(0, vmath.RectAt(vmath.V2(math.NaN(), 0), vmath.V2(5, 5)))
	g.Insert(1, vmath.RectAt(vmath.V2(0, 0), vmath.V2(math.Inf(1), 5)))
	g.Insert(2, vmath.RectAt(vmath.V2(1, 1), vmath.V2(2, 2)))

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {1, 2}}, g.Pairs(nil))

	g.Clear()
	assert.Empty(t, g.Pairs(nil))
}
