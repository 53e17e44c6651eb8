package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Field dimensions in cells. Row 0 is the bottom of the stack.
const (
	Width  = 10
	Height = 18
)

var bounds = core.NewRect(0, 0, Width, Height)

// Field is the playfield grid stored row-major, bottom row first.
// A cell holds 0 when empty or the id of the shape that filled it.
type Field struct {
	cells [Width * Height]uint8
}

// Clear empties every cell.
func (f *Field) Clear() {
	f.cells = [Width * Height]uint8{}
}

// Cell returns the value at col, row. Coordinates outside the grid read as 0.
func (f *Field) Cell(col, row int) uint8 {
	if !inside(col, row) {
		return 0
	}
	return f.cells[row*Width+col]
}

// SetCell stores v at col, row. Coordinates outside the grid are ignored.
func (f *Field) SetCell(col, row int, v uint8) {
	if !inside(col, row) {
		return
	}
	f.cells[row*Width+col] = v
}

func inside(col, row int) bool {
	return bounds.Contains(col, row)
}

// maskCell maps mask cell (i, j), j counted from the top, to field coordinates
// for a bounding box whose bottom-left corner sits at x, y.
func maskCell(i, j, x, y int) (col, row int) {
	return x + i, y + (ShapeSize - 1 - j)
}

// Cells returns the field coordinates m covers when its bounding box sits at
// x, y, including any above the ceiling.
func (m Mask) Cells(x, y int) []Point {
	pts := make([]Point, 0, m.Count())
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if m.At(i, j) {
				col, row := maskCell(i, j, x, y)
				pts = append(pts, Point{X: col, Y: row})
			}
		}
	}
	return pts
}

// CheckCollision reports whether m placed at x, y overlaps a wall, the floor
// or a filled cell. Cells above the top row never collide, so pieces may
// extend past the ceiling.
func (f *Field) CheckCollision(m Mask, x, y int) bool {
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if !m.At(i, j) {
				continue
			}
			col, row := maskCell(i, j, x, y)
			if col < 0 || col >= Width || row < 0 {
				return true
			}
			if row < Height && f.cells[row*Width+col] != 0 {
				return true
			}
		}
	}
	return false
}

// PlaceShape writes id into every field cell covered by m at x, y.
// Cells above the top row are dropped. The caller must have checked the
// position with CheckCollision; a cell outside the walls or below the floor
// panics.
func (f *Field) PlaceShape(m Mask, id uint8, x, y int) {
	for j := 0; j < ShapeSize; j++ {
		for i := 0; i < ShapeSize; i++ {
			if !m.At(i, j) {
				continue
			}
			col, row := maskCell(i, j, x, y)
			if col < 0 || col >= Width || row < 0 {
				panic(fmt.Sprintf("tetris: PlaceShape cell (%d, %d) outside field", col, row))
			}
			if row >= Height {
				continue
			}
			f.cells[row*Width+col] = id
		}
	}
}

// IsRowFull reports whether every cell in row is filled.
func (f *Field) IsRowFull(row int) bool {
	if row < 0 || row >= Height {
		return false
	}
	for col := 0; col < Width; col++ {
		if f.cells[row*Width+col] == 0 {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row, shifting the rows above down and
// emptying the top row each time. It returns the number of rows removed.
func (f *Field) ClearFullLines() int {
	cleared := 0
	for row := 0; row < Height; {
		if !f.IsRowFull(row) {
			row++
			continue
		}
		// Re-check the same index: the row above has slid into it.
		copy(f.cells[row*Width:], f.cells[(row+1)*Width:])
		top := f.cells[(Height-1)*Width:]
		for i := range top {
			top[i] = 0
		}
		cleared++
	}
	return cleared
}

// FillFactor returns the fraction of filled cells in [0, 1].
func (f *Field) FillFactor() float64 {
	filled := 0
	for _, v := range f.cells {
		if v != 0 {
			filled++
		}
	}
	return float64(filled) / float64(len(f.cells))
}

// Cells returns a copy of the raw grid, bottom row first.
func (f *Field) Cells() [Width * Height]uint8 {
	return f.cells
}
