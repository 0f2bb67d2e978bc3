package render

import (
	"math"
)

// WorldHeight is the visible world height, independent of the terminal size
const WorldHeight = 10.0

// CellAspect is the height of a terminal cell over its width
const CellAspect = 2.0

// Viewport maps the world, centered on the origin with y up, onto terminal
// cells, 1 based with rows down.
type Viewport struct {
	Cols, Rows    int
	Width, Height float64
}

func NewViewport(cols, rows int) *Viewport {
	return &Viewport{
		Cols:   cols,
		Rows:   rows,
		Width:  WorldHeight * float64(cols) / (float64(rows) * CellAspect),
		Height: WorldHeight,
	}
}

func (v *Viewport) Cell(x, y float64) (col, row int) {
	col = 1 + int(math.Floor((x+v.Width/2)/v.Width*float64(v.Cols)))
	row = 1 + int(math.Floor((v.Height/2-y)/v.Height*float64(v.Rows)))
	return col, row
}

// World is the center of a cell
func (v *Viewport) World(col, row int) (x, y float64) {
	x = (float64(col)-0.5)/float64(v.Cols)*v.Width - v.Width/2
	y = v.Height/2 - (float64(row)-0.5)/float64(v.Rows)*v.Height
	return x, y
}

func (v *Viewport) Contains(col, row int) bool {
	return col >= 1 && col <= v.Cols && row >= 1 && row <= v.Rows
}

// Columns is the number of cells spanning a world width
func (v *Viewport) Columns(width float64) int {
	return int(width / v.Width * float64(v.Cols))
}
