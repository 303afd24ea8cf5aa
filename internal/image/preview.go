package image

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/yanmxa/lumina/internal/message"
)

// Cell is one terminal character of a preview: the upper and lower half
// pixels drawn with a half-block glyph.
type Cell struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// Grid is a preview as rows of cells.
type Grid [][]Cell

// Decode decodes an image payload.
func Decode(img message.Image) (image.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(img.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return src, nil
}

// Rasterize scales img to cover a cols x rows cell grid, cropping the
// overflow around the centre. Two source pixel rows map to one cell.
func Rasterize(img message.Image, cols, rows int) (Grid, error) {
	if cols <= 0 || rows <= 0 {
		return Grid{}, nil
	}
	src, err := Decode(img)
	if err != nil {
		return nil, err
	}

	w, h := cols, rows*2
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, coverRect(src.Bounds(), w, h), xdraw.Src, nil)

	grid := make(Grid, rows)
	for y := 0; y < rows; y++ {
		row := make([]Cell, cols)
		for x := 0; x < cols; x++ {
			row[x] = Cell{
				Top:    dst.RGBAAt(x, 2*y),
				Bottom: dst.RGBAAt(x, 2*y+1),
			}
		}
		grid[y] = row
	}
	return grid, nil
}

// coverRect returns the centred sub-rectangle of b with the aspect ratio w:h.
func coverRect(b image.Rectangle, w, h int) image.Rectangle {
	bw, bh := b.Dx(), b.Dy()
	if bw == 0 || bh == 0 {
		return b
	}

	// Compare bw/bh with w/h without floating point.
	if bw*h > bh*w {
		cw := bh * w / h
		x0 := b.Min.X + (bw-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := bw * h / w
	y0 := b.Min.Y + (bh-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}
