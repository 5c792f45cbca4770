package engine

import (
	"cmp"
	"math"
	"slices"

	"github.com/lixenwraith/vi-runner/vmath"
)

// maxCellSpan is the widest box, in cells per axis, the grid indexes cell by cell.
// Wider or non-finite boxes go to the overflow list and pair with every member.
const maxCellSpan = 32

type cellKey struct {
	x, y int
}

// SpatialGrid is a sparse uniform grid used as the collision broad phase.
// Entries are indices into the caller's candidate slice; boxes spanning several cells
// are stored in each of them.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
	members  []int
	overflow []int
	seen     map[[2]int]struct{}
}

// NewSpatialGrid creates a grid with square cells of the given size
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int),
		seen:     make(map[[2]int]struct{}),
	}
}

// Clear empties all cells, keeping allocations for reuse
func (g *SpatialGrid) Clear() {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.members = g.members[:0]
	g.overflow = g.overflow[:0]
	clear(g.seen)
}

// Insert adds idx to every cell r covers; empty boxes are skipped since they never overlap
func (g *SpatialGrid) Insert(idx int, r vmath.Rect) {
	if r.Empty() {
		return
	}
	g.members = append(g.members, idx)
	if !g.indexable(r) {
		g.overflow = append(g.overflow, idx)
		return
	}

	x0, y0 := g.cellOf(r.Min)
	x1, y1 := g.cellOf(r.Max)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			k := cellKey{x, y}
			g.cells[k] = append(g.cells[k], idx)
		}
	}
}

// indexable reports whether r is finite and spans at most maxCellSpan cells per axis
func (g *SpatialGrid) indexable(r vmath.Rect) bool {
	for _, v := range [4]float64{r.Min.X(), r.Min.Y(), r.Max.X(), r.Max.Y()} {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v/g.cellSize) > math.MaxInt32 {
			return false
		}
	}
	span := func(lo, hi float64) float64 {
		return math.Floor(hi/g.cellSize) - math.Floor(lo/g.cellSize) + 1
	}
	return span(r.Min.X(), r.Max.X()) <= maxCellSpan && span(r.Min.Y(), r.Max.Y()) <= maxCellSpan
}

func (g *SpatialGrid) cellOf(p vmath.Vec2) (int, int) {
	return int(math.Floor(p.X() / g.cellSize)), int(math.Floor(p.Y() / g.cellSize))
}

// Pairs appends every distinct (i, j), i < j, sharing at least one cell, sorted ascending.
// Overflow boxes are paired with every other member.
func (g *SpatialGrid) Pairs(dst [][2]int) [][2]int {
	for _, members := range g.cells {
		for a := 0; a < len(members); a++ {
			for b := a + 1; b < len(members); b++ {
				dst = g.appendPair(dst, members[a], members[b])
			}
		}
	}
	for _, o := range g.overflow {
		for _, m := range g.members {
			if m != o {
				dst = g.appendPair(dst, o, m)
			}
		}
	}
	slices.SortFunc(dst, func(a, b [2]int) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	return dst
}

func (g *SpatialGrid) appendPair(dst [][2]int, i, j int) [][2]int {
	if i > j {
		i, j = j, i
	}
	p := [2]int{i, j}
	if _, dup := g.seen[p]; dup {
		return dst
	}
	g.seen[p] = struct{}{}
	return append(dst, p)
}
