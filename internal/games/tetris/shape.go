package tetris

import "github.com/vovakirdan/tui-tetris/internal/core"

// ShapeSize is the side length of a shape's bounding box.
const ShapeSize = 4

// Mask is a 4x4 occupancy grid stored row-major, top row first.
// Cell (col, row) lives at index row*ShapeSize + col.
type Mask [ShapeSize * ShapeSize]bool

// At reports whether the mask cell at column col, row row is set.
// Row 0 is the top of the mask.
func (m Mask) At(col, row int) bool {
	return m[row*ShapeSize+col]
}

// Count returns the number of set cells.
func (m Mask) Count() int {
	n := 0
	for _, set := range m {
		if set {
			n++
		}
	}
	return n
}

// Shape is a tetromino: its mask, display color and catalog id.
// Shapes are values; every operation returns or writes a copy.
type Shape struct {
	ID    uint8
	Mask  Mask
	Color core.Color
}

// Empty reports whether this is the "no piece" sentinel.
func (s Shape) Empty() bool {
	return s.ID == 0
}

// ShapeCount is the number of playable shapes. Valid ids are 1..ShapeCount.
const ShapeCount = 7

func mask(rows ...string) Mask {
	var m Mask
	for r, row := range rows {
		for c, ch := range row {
			m[r*ShapeSize+c] = ch == '#'
		}
	}
	return m
}

var catalog = [ShapeCount + 1]Shape{
	{ID: 0, Color: core.ColorWhite},
	{ID: 1, Color: core.ColorRed, Mask: mask(
		"####",
		"....",
		"....",
		"....",
	)},
	{ID: 2, Color: core.ColorPink, Mask: mask(
		"....",
		".##.",
		".##.",
		"....",
	)},
	{ID: 3, Color: core.ColorOrange, Mask: mask(
		"....",
		".#..",
		".###",
		"....",
	)},
	{ID: 4, Color: core.ColorYellow, Mask: mask(
		"....",
		".###",
		".#..",
		"....",
	)},
	{ID: 5, Color: core.ColorBlue, Mask: mask(
		"....",
		"..#.",
		".###",
		"....",
	)},
	{ID: 6, Color: core.ColorGreen, Mask: mask(
		"....",
		"..##",
		".##.",
		"....",
	)},
	{ID: 7, Color: core.ColorPurple, Mask: mask(
		"....",
		".##.",
		"..##",
		"....",
	)},
}

// GetShape returns a copy of the catalog shape with the given id.
// Ids outside [0, ShapeCount] yield the empty shape.
func GetShape(id uint8) Shape {
	if int(id) >= len(catalog) {
		return catalog[0]
	}
	return catalog[id]
}

// ColorOf returns the display color for a field cell value.
func ColorOf(id uint8) core.Color {
	return GetShape(id).Color
}

// Rotate returns the shape turned 90 degrees clockwise.
// The top row of the source becomes the rightmost column.
func Rotate(s Shape) Shape {
	out := s
	out.Mask = Mask{}
	for row := 0; row < ShapeSize; row++ {
		for col := 0; col < ShapeSize; col++ {
			out.Mask[col*ShapeSize+(ShapeSize-1-row)] = s.Mask[row*ShapeSize+col]
		}
	}
	return out
}

// Swap exchanges two shapes in place.
func Swap(a, b *Shape) {
	*a, *b = *b, *a
}
