package runner

import (
	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/core"
)

// Surface is the drawing target owned by the host.
// Coordinates are logical units with the origin at the top-left corner;
// the host decides how they map onto pixels or terminal cells.
type Surface interface {
	Size() (w, h float64)
	Clear()
	FillRect(r core.RectF, c core.Color)
	FillGradient(r core.RectF, g Gradient)
	// DrawSprite scales sp into dst. The engine only passes boxes that
	// already have the sprite's declared aspect ratio.
	DrawSprite(sp *assets.Sprite, dst core.RectF)
}

// Display is a text slot the engine writes to.
type Display interface {
	SetText(text string)
}

// Overlay is a display that can be shown or hidden.
type Overlay interface {
	Display
	SetVisible(visible bool)
}

// Scheduler fires fn on the host's next frame.
// At most one frame is outstanding per engine.
type Scheduler interface {
	RequestFrame(fn func())
}

// RandomSource returns uniform values in [0, 1).
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// GradientStop is one color of a gradient at a relative offset in [0, 1].
type GradientStop struct {
	Offset float64
	Color  core.Color
}

// Gradient describes a linear gradient across a rectangle.
type Gradient struct {
	Stops []GradientStop
	// Diagonal runs the gradient from the top-left to the bottom-right
	// corner. Otherwise it runs top to bottom.
	Diagonal bool
}

// At returns the palette color at offset t, interpolating between the
// surrounding stops in RGB and snapping to the nearest palette entry.
func (g Gradient) At(t float64) core.Color {
	n := len(g.Stops)
	if n == 0 {
		return core.ColorDefault
	}
	t = core.ClampF(t, 0, 1)
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < n; i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		ca, cb := a.Color.RGB(), b.Color.RGB()
		return core.Nearest(core.RGB{
			R: lerp8(ca.R, cb.R, f),
			G: lerp8(ca.G, cb.G, f),
			B: lerp8(ca.B, cb.B, f),
		})
	}
	return g.Stops[n-1].Color
}

// Offset returns the gradient offset of point (x, y) inside r.
func (g Gradient) Offset(r core.RectF, x, y float64) float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	ty := (y - r.Y) / r.H
	if !g.Diagonal {
		return ty
	}
	tx := (x - r.X) / r.W
	return (tx + ty) / 2
}

func lerp8(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}
