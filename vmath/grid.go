package vmath

// Cell addresses a tile of a Grid
type Cell struct {
	X, Y int
}

// Grid is a fixed-size tile grid used to lay out formations
type Grid struct {
	Width  int
	Height int
}

// NewGrid creates a grid, negative sizes are treated as zero
func NewGrid(width, height int) Grid {
	return Grid{Width: max(width, 0), Height: max(height, 0)}
}

// Cells returns every cell in row-major order
func (g Grid) Cells() []Cell {
	out := make([]Cell, 0, g.Width*g.Height)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			out = append(out, Cell{x, y})
		}
	}
	return out
}

// Layout maps every cell to a world position, origin plus cell index times spacing
func (g Grid) Layout(origin, spacing Vec2) []Vec2 {
	cells := g.Cells()
	out := make([]Vec2, len(cells))
	for i, c := range cells {
		out[i] = origin.Add(Vec2{float64(c.X) * spacing.X(), float64(c.Y) * spacing.Y()})
	}
	return out
}
