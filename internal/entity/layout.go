package entity

import "github.com/gogpu/gg"

// Grid lays entities out row by row, starting at Origin
type Grid struct {
	Rows, Cols int
	Spacing    float64
	Origin     gg.Point
}

// At returns the position of the i-th cell
func (g Grid) At(i int) gg.Point {
	row, col := i/g.Cols, i%g.Cols
	return gg.Pt(g.Origin.X+float64(col)*g.Spacing, g.Origin.Y+float64(row)*g.Spacing)
}

func (g Grid) Len() int { return g.Rows * g.Cols }

// RowsLayout centers rows of the given lengths around cx, one row every
// RowSpacing starting at Y.
type RowsLayout struct {
	Lengths    []int
	CX, Y      float64
	Spacing    float64
	RowSpacing float64
}

// Points returns one position per slot, row by row
func (r RowsLayout) Points() []gg.Point {
	var out []gg.Point
	for row, n := range r.Lengths {
		width := float64(n-1) * r.Spacing
		for i := 0; i < n; i++ {
			out = append(out, gg.Pt(r.CX-width/2+float64(i)*r.Spacing, r.Y+float64(row)*r.RowSpacing))
		}
	}
	return out
}

// Row centers n positions spaced s around (cx, y)
func Row(n int, cx, y, s float64) []gg.Point {
	return RowsLayout{Lengths: []int{n}, CX: cx, Y: y, Spacing: s}.Points()
}
