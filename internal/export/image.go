// FilePath: internal/export/image.go
package export

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cellPadding = 8
	rowHeight   = 20
	titleHeight = 28
)

// EncodeImage renders a display grid to a PNG bitmap: title line,
// header row on a shaded band, then one line per row. Layout mirrors
// what the on-screen table shows.
func EncodeImage(title string, grid [][]string) ([]byte, error) {
	face := basicfont.Face7x13
	charW := face.Advance

	widths := make([]int, 0)
	if len(grid) > 0 {
		widths = make([]int, len(grid[0]))
	}
	for _, row := range grid {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	imgW := cellPadding
	for _, w := range widths {
		imgW += w*charW + 2*cellPadding
	}
	if tw := len(title)*charW + 2*cellPadding; tw > imgW {
		imgW = tw
	}
	imgH := titleHeight + (len(grid))*rowHeight + cellPadding

	img := image.NewRGBA(image.Rect(0, 0, imgW, imgH))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawText := func(x, y int, s string, c color.Color) {
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(c),
			Face: face,
			Dot:  fixed.P(x, y),
		}
		d.DrawString(s)
	}

	drawText(cellPadding, titleHeight-10, title, color.Black)

	// Header band.
	headerTop := titleHeight
	draw.Draw(img,
		image.Rect(0, headerTop, imgW, headerTop+rowHeight),
		image.NewUniform(color.RGBA{R: 0xE6, G: 0xEC, B: 0xF5, A: 0xFF}),
		image.Point{}, draw.Src)

	for rowIdx, row := range grid {
		y := headerTop + rowIdx*rowHeight + 14
		x := cellPadding
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			drawText(x, y, cell, color.Black)
			x += widths[i]*charW + 2*cellPadding
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
