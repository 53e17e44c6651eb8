package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorPink
	ColorOrange
	ColorYellow
	ColorBlue
	ColorGreen
	ColorPurple
	ColorCyan
	ColorWhite
	ColorGray
	ColorDarkGray
	ColorBrightWhite
	ColorBrightRed
)

// rgb holds the truecolor equivalent of each palette entry, used by
// pixel-based adapters. Values follow the terminal palette closely enough
// that both frontends look alike.
var rgb = [...][3]uint8{
	ColorDefault:     {230, 230, 230},
	ColorRed:         {254, 1, 0},
	ColorPink:        {253, 153, 203},
	ColorOrange:      {255, 101, 3},
	ColorYellow:      {255, 255, 0},
	ColorBlue:        {0, 0, 254},
	ColorGreen:       {0, 128, 1},
	ColorPurple:      {129, 1, 127},
	ColorCyan:        {0, 205, 205},
	ColorWhite:       {229, 229, 229},
	ColorGray:        {138, 138, 138},
	ColorDarkGray:    {68, 68, 68},
	ColorBrightWhite: {255, 255, 255},
	ColorBrightRed:   {255, 85, 85},
}

// RGB returns the 8-bit red, green and blue components of the color.
// Unknown colors map to the default foreground.
func (c Color) RGB() (r, g, b uint8) {
	if int(c) >= len(rgb) {
		c = ColorDefault
	}
	v := rgb[c]
	return v[0], v[1], v[2]
}
