package tui

import (
	"image"
	"image/color"
	"math"

	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/core"
	"github.com/vovakirdan/board-runner/internal/runner"
)

// Each terminal cell shows two pixels: the upper half block is drawn in the
// top pixel's color over a background of the bottom pixel's color.
const (
	upperHalf = '▀'
	lowerHalf = '▄'
)

// Canvas is a runner.Surface backed by a pixel grid of cols x rows*2.
// The logical surface is scaled uniformly to fit and centered; pixels
// outside it stay transparent.
type Canvas struct {
	logicalW, logicalH float64

	cols, rows int
	pw, ph     int
	scale      float64
	offX, offY float64
	pix        []core.Color
}

// NewCanvas creates a canvas for a logicalW x logicalH surface drawn into
// cols x rows terminal cells.
func NewCanvas(logicalW, logicalH float64, cols, rows int) *Canvas {
	c := &Canvas{logicalW: logicalW, logicalH: logicalH}
	c.Resize(cols, rows)
	return c
}

// Resize changes the terminal area. The logical size is unchanged.
func (c *Canvas) Resize(cols, rows int) {
	c.cols = max(cols, 1)
	c.rows = max(rows, 1)
	c.pw = c.cols
	c.ph = c.rows * 2
	c.pix = make([]core.Color, c.pw*c.ph)

	c.scale = 1
	if c.logicalW > 0 && c.logicalH > 0 {
		c.scale = min(float64(c.pw)/c.logicalW, float64(c.ph)/c.logicalH)
	}
	c.offX = (float64(c.pw) - c.logicalW*c.scale) / 2
	c.offY = (float64(c.ph) - c.logicalH*c.scale) / 2
}

// Size implements runner.Surface.
func (c *Canvas) Size() (float64, float64) {
	return c.logicalW, c.logicalH
}

// Cols returns the width in terminal cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height in terminal cells.
func (c *Canvas) Rows() int { return c.rows }

// Clear implements runner.Surface.
func (c *Canvas) Clear() {
	for i := range c.pix {
		c.pix[i] = core.ColorDefault
	}
}

// span returns the pixel range [p0, p1) whose centers fall inside
// [lo, hi) in logical units, clipped to the logical surface.
func (c *Canvas) span(lo, hi, off float64, limit int, logicalMax float64) (int, int) {
	lo = max(lo, 0)
	hi = min(hi, logicalMax)
	p0 := int(math.Ceil(lo*c.scale + off - 0.5))
	p1 := int(math.Ceil(hi*c.scale + off - 0.5))
	return max(p0, 0), min(p1, limit)
}

func (c *Canvas) pixelRect(r core.RectF) (x0, y0, x1, y1 int) {
	x0, x1 = c.span(r.X, r.Right(), c.offX, c.pw, c.logicalW)
	y0, y1 = c.span(r.Y, r.Bottom(), c.offY, c.ph, c.logicalH)
	return
}

// logical returns the logical coordinates of a pixel center.
func (c *Canvas) logical(px, py int) (float64, float64) {
	return (float64(px) + 0.5 - c.offX) / c.scale, (float64(py) + 0.5 - c.offY) / c.scale
}

// FillRect implements runner.Surface.
func (c *Canvas) FillRect(r core.RectF, col core.Color) {
	x0, y0, x1, y1 := c.pixelRect(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.pix[y*c.pw+x] = col
		}
	}
}

// FillGradient implements runner.Surface.
func (c *Canvas) FillGradient(r core.RectF, g runner.Gradient) {
	x0, y0, x1, y1 := c.pixelRect(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			lx, ly := c.logical(x, y)
			c.pix[y*c.pw+x] = g.At(g.Offset(r, lx, ly))
		}
	}
}

// DrawSprite implements runner.Surface with nearest-neighbour sampling.
// Transparent sprite pixels leave the canvas untouched.
func (c *Canvas) DrawSprite(sp *assets.Sprite, dst core.RectF) {
	if sp == nil || dst.W <= 0 || dst.H <= 0 {
		return
	}
	x0, y0, x1, y1 := c.pixelRect(dst)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			lx, ly := c.logical(x, y)
			sx := int((lx - dst.X) / dst.W * float64(sp.Width))
			sy := int((ly - dst.Y) / dst.H * float64(sp.Height))
			if col := sp.At(sx, sy); col != core.ColorDefault {
				c.pix[y*c.pw+x] = col
			}
		}
	}
}

// Pixel returns the color of pixel (x, y).
func (c *Canvas) Pixel(x, y int) core.Color {
	if x < 0 || x >= c.pw || y < 0 || y >= c.ph {
		return core.ColorDefault
	}
	return c.pix[y*c.pw+x]
}

// PixelSize returns the pixel grid size.
func (c *Canvas) PixelSize() (int, int) {
	return c.pw, c.ph
}

// Paint copies the canvas onto dst at cell (x0, y0) as half blocks.
func (c *Canvas) Paint(dst *core.Screen, x0, y0 int) {
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			dst.SetCell(x0+col, y0+row, halfCell(c.Pixel(col, row*2), c.Pixel(col, row*2+1)))
		}
	}
}

// halfCell packs two vertically stacked pixels into one cell. A transparent
// pixel must never end up in the foreground, where it would show the
// terminal's text color.
func halfCell(top, bottom core.Color) core.Cell {
	switch {
	case top == core.ColorDefault && bottom == core.ColorDefault:
		return core.Cell{Rune: ' '}
	case top == core.ColorDefault:
		return core.Cell{Rune: lowerHalf, Color: bottom}
	default:
		return core.Cell{Rune: upperHalf, Color: top, Bg: bottom}
	}
}

// Image returns the pixel grid as an image, transparent where nothing was
// drawn.
func (c *Canvas) Image() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, c.pw, c.ph))
	for y := 0; y < c.ph; y++ {
		for x := 0; x < c.pw; x++ {
			col := c.pix[y*c.pw+x]
			if col == core.ColorDefault {
				continue
			}
			rgb := col.RGB()
			img.SetNRGBA(x, y, color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 0xff})
		}
	}
	return img
}

var _ runner.Surface = (*Canvas)(nil)
