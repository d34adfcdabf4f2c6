package render

import "image/color"

// Palette holds the 16 marker colors, cycled in row order.
var Palette = []color.Color{
	color.RGBA{R: 255, A: 255},                   // red
	color.RGBA{B: 255, A: 255},                   // blue
	color.RGBA{G: 128, A: 255},                   // green
	color.RGBA{R: 128, B: 128, A: 255},           // purple
	color.RGBA{R: 255, G: 165, A: 255},           // orange
	color.RGBA{G: 255, B: 255, A: 255},           // cyan
	color.RGBA{R: 255, B: 255, A: 255},           // magenta
	color.RGBA{G: 255, A: 255},                   // lime
	color.RGBA{R: 165, G: 42, B: 42, A: 255},     // brown
	color.RGBA{R: 255, G: 192, B: 203, A: 255},   // pink
	color.RGBA{R: 128, G: 128, B: 128, A: 255},   // gray
	color.RGBA{R: 128, G: 128, A: 255},           // olive
	color.RGBA{G: 128, B: 128, A: 255},           // teal
	color.RGBA{B: 128, A: 255},                   // navy
	color.RGBA{R: 128, A: 255},                   // maroon
	color.RGBA{R: 255, G: 215, A: 255},           // gold
}

// MarkerColor returns the palette color for the given row index,
// wrapping around when the row count exceeds the palette size.
func MarkerColor(index int) color.Color {
	return Palette[index%len(Palette)]
}
