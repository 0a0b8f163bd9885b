package render

import "math"

// Viewport maps world units onto terminal cells. Rows above Top are left
// for the HUD.
type Viewport struct {
	Width, Height float64
	Columns, Rows int
	Top           int
}

// Cell is the 1-based column and row of a world position.
func (v Viewport) Cell(x, y float64) (int, int) {
	usable := v.Rows - v.Top
	if v.Width <= 0 || v.Height <= 0 || v.Columns <= 0 || usable <= 0 {
		return 0, 0
	}
	col := 1 + int(math.Round(x/v.Width*float64(v.Columns-1)))
	row := v.Top + 1 + int(math.Round(y/v.Height*float64(usable-1)))
	return col, row
}

// Visible reports whether a world position lands on screen.
func (v Viewport) Visible(x, y float64) bool {
	col, row := v.Cell(x, y)
	return col >= 1 && col <= v.Columns && row > v.Top && row <= v.Rows
}
