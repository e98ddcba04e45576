package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/board-runner/internal/assets"
	"github.com/vovakirdan/board-runner/internal/core"
	"github.com/vovakirdan/board-runner/internal/runner"
)

func TestCanvasFillRectMapsLogicalUnits(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)

	if pw, ph := c.PixelSize(); pw != 80 || ph != 20 {
		t.Fatalf("PixelSize() = (%d, %d), expected (80, 20)", pw, ph)
	}

	c.FillRect(core.NewRectF(0, 0, 100, 100), core.ColorRed)

	tests := []struct {
		x, y     int
		expected core.Color
	}{
		{0, 0, core.ColorRed},
		{9, 9, core.ColorRed},
		{10, 0, core.ColorDefault},
		{0, 10, core.ColorDefault},
	}
	for _, tc := range tests {
		if got := c.Pixel(tc.x, tc.y); got != tc.expected {
			t.Errorf("Pixel(%d, %d) = %d, expected %d", tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestCanvasLetterbox(t *testing.T) {
	// 80x40 pixels for an 800x200 surface: scale 0.1, 10 pixel bars above and below
	c := NewCanvas(800, 200, 80, 20)
	c.FillRect(core.NewRectF(0, 0, 800, 200), core.ColorGreen)

	tests := []struct {
		y        int
		expected core.Color
	}{
		{9, core.ColorDefault},
		{10, core.ColorGreen},
		{29, core.ColorGreen},
		{30, core.ColorDefault},
	}
	for _, tc := range tests {
		if got := c.Pixel(0, tc.y); got != tc.expected {
			t.Errorf("Pixel(0, %d) = %d, expected %d", tc.y, got, tc.expected)
		}
	}
}

func TestCanvasClipsToSurface(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)
	c.FillRect(core.NewRectF(-100, 0, 150, 200), core.ColorBlue)

	if c.Pixel(4, 0) != core.ColorBlue {
		t.Error("visible part of the rect should be drawn")
	}
	if c.Pixel(5, 0) != core.ColorDefault {
		t.Error("rect should end at logical x 50")
	}

	// Entirely off surface
	c.Clear()
	c.FillRect(core.NewRectF(900, 0, 100, 100), core.ColorBlue)
	for x := 0; x < 80; x++ {
		if c.Pixel(x, 0) != core.ColorDefault {
			t.Fatalf("off-surface rect drew pixel %d", x)
		}
	}
}

func TestCanvasDrawSpriteSkipsTransparent(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)
	c.FillRect(core.NewRectF(0, 0, 800, 200), core.ColorBlue)

	sp := assets.NewSprite(2, 1)
	sp.Set(0, 0, core.ColorRed)
	c.DrawSprite(sp, core.NewRectF(0, 0, 20, 10))

	if c.Pixel(0, 0) != core.ColorRed {
		t.Errorf("Pixel(0, 0) = %d, expected red", c.Pixel(0, 0))
	}
	if c.Pixel(1, 0) != core.ColorBlue {
		t.Errorf("Pixel(1, 0) = %d, transparent sprite pixel should keep blue", c.Pixel(1, 0))
	}

	// Nil sprite is a no-op
	c.DrawSprite(nil, core.NewRectF(0, 0, 20, 10))
}

func TestCanvasFillGradient(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)
	c.FillGradient(core.NewRectF(0, 0, 800, 200), runner.SkyGradient())

	top, bottom := c.Pixel(0, 0), c.Pixel(0, 19)
	if top == core.ColorDefault || bottom == core.ColorDefault {
		t.Fatal("gradient should cover the surface")
	}
	if top == bottom {
		t.Errorf("vertical gradient should differ top to bottom, both %d", top)
	}
}

func TestHalfCell(t *testing.T) {
	tests := []struct {
		name        string
		top, bottom core.Color
		expected    core.Cell
	}{
		{"both transparent", core.ColorDefault, core.ColorDefault, core.Cell{Rune: ' '}},
		{"top only", core.ColorRed, core.ColorDefault, core.Cell{Rune: upperHalf, Color: core.ColorRed}},
		{"bottom only", core.ColorDefault, core.ColorRed, core.Cell{Rune: lowerHalf, Color: core.ColorRed}},
		{"both", core.ColorRed, core.ColorBlue, core.Cell{Rune: upperHalf, Color: core.ColorRed, Bg: core.ColorBlue}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := halfCell(tc.top, tc.bottom); got != tc.expected {
				t.Errorf("halfCell(%d, %d) = %+v, expected %+v", tc.top, tc.bottom, got, tc.expected)
			}
		})
	}
}

func TestCanvasPaint(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)
	c.FillRect(core.NewRectF(0, 0, 100, 100), core.ColorRed)

	s := core.NewScreen(80, 10)
	c.Paint(s, 0, 0)

	if got := s.GetCell(0, 0); got.Rune != upperHalf || got.Color != core.ColorRed || got.Bg != core.ColorRed {
		t.Errorf("cell (0, 0) = %+v, expected red upper half on red", got)
	}
	// Pixel rows 8 and 9 are red, row 10 is not: cell row 4 is solid, row 5 empty
	if got := s.GetCell(0, 5); got.Rune != ' ' {
		t.Errorf("cell (0, 5) = %+v, expected blank", got)
	}
	if got := s.GetCell(10, 0); got.Rune != ' ' {
		t.Errorf("cell (10, 0) = %+v, expected blank", got)
	}
}

func TestCanvasResizeKeepsLogicalSize(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)
	c.Resize(40, 5)

	if w, h := c.Size(); w != 800 || h != 200 {
		t.Errorf("Size() = (%v, %v), expected (800, 200)", w, h)
	}
	if c.Cols() != 40 || c.Rows() != 5 {
		t.Errorf("Cols/Rows = %d/%d, expected 40/5", c.Cols(), c.Rows())
	}

	// Degenerate sizes are clamped
	c.Resize(0, -3)
	if c.Cols() != 1 || c.Rows() != 1 {
		t.Errorf("Cols/Rows = %d/%d, expected 1/1", c.Cols(), c.Rows())
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(800, 200, 80, 10)
	c.FillRect(core.NewRectF(0, 0, 10, 10), core.ColorCoral)

	img := c.Image()
	if b := img.Bounds(); b.Dx() != 80 || b.Dy() != 20 {
		t.Fatalf("image bounds = %v, expected 80x20", b)
	}
	r, g, b, a := img.At(0, 0).RGBA()
	coral := core.ColorCoral.RGB()
	if uint8(r>>8) != coral.R || uint8(g>>8) != coral.G || uint8(b>>8) != coral.B || a != 0xffff {
		t.Errorf("pixel (0, 0) = %d %d %d %d, expected opaque coral", r>>8, g>>8, b>>8, a)
	}
	if _, _, _, a := img.At(5, 5).RGBA(); a != 0 {
		t.Errorf("undrawn pixel alpha = %d, expected 0", a)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "plain")
	s.FillCells(core.NewRect(0, 1, 4, 1), core.Cell{Rune: upperHalf, Color: core.ColorRed, Bg: core.ColorBlue})

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "plain") {
		t.Errorf("uncolored row = %q, expected raw text", lines[0])
	}
	if !strings.Contains(lines[1], strings.Repeat(string(upperHalf), 4)) {
		t.Errorf("colored run should stay contiguous, got %q", lines[1])
	}
}
