package commands

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Terminal cells are roughly twice as tall as wide, so flags are scaled
// to flagCols x flagRows*2 pixels and drawn two pixel rows per text row
// with the half-block glyph.
const (
	flagCols = 40
	flagRows = 12
)

// renderANSI draws an image as truecolor terminal output, one character
// per pixel column using U+2580 (upper half block): the foreground
// carries the top pixel, the background the bottom one.
func renderANSI(img image.Image) string {
	b := img.Bounds()
	var sb strings.Builder

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.At(x, y)
			bottom := color.Color(color.Black)
			if y+1 < b.Max.Y {
				bottom = img.At(x, y+1)
			}
			tr, tg, tb := rgb8(top)
			br, bg, bb := rgb8(bottom)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", tr, tg, tb, br, bg, bb)
		}
		sb.WriteString("\x1b[0m\n")
	}
	return sb.String()
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
