package core

import (
	"fmt"
	"math"
	"strings"
)

// Color is an entry of the runner palette.
// Every entry has a fixed RGB value so that both the terminal renderer and
// the PNG quantizer agree on what a color looks like.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota // Transparent / terminal default
	ColorBlack
	ColorWhite
	ColorGray
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorOrange
	ColorBrown
	ColorPink
	ColorSkyTop    // #87CEEB
	ColorSkyMid    // blend
	ColorSkyLow    // blend
	ColorMeadow    // #98FB98
	ColorDirt      // #8B4513
	ColorCoral     // #FF6B6B
	ColorHue0      // first of 12 celebration hues, 30 degrees apart
	ColorHue11 = ColorHue0 + HueSteps - 1
	ColorCount = ColorHue11 + 1
)

// HueSteps is the number of quantized hues used for cycling gradients.
const HueSteps = 12

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var paletteRGB = func() [ColorCount]RGB {
	p := [ColorCount]RGB{
		ColorDefault: {0, 0, 0},
		ColorBlack:   {0x1c, 0x1c, 0x1c},
		ColorWhite:   {0xf5, 0xf5, 0xf5},
		ColorGray:    {0x8a, 0x8a, 0x8a},
		ColorRed:     {0xd7, 0x26, 0x38},
		ColorGreen:   {0x2e, 0xa0, 0x43},
		ColorYellow:  {0xf4, 0xd0, 0x3f},
		ColorBlue:    {0x1e, 0x6f, 0xd9},
		ColorOrange:  {0xff, 0x8c, 0x1a},
		ColorBrown:   {0x6b, 0x3e, 0x1e},
		ColorPink:    {0xff, 0x9e, 0xc7},
		ColorSkyTop:  {0x87, 0xce, 0xeb},
		ColorSkyMid:  {0x8c, 0xd8, 0xd0},
		ColorSkyLow:  {0x92, 0xe9, 0xb4},
		ColorMeadow:  {0x98, 0xfb, 0x98},
		ColorDirt:    {0x8b, 0x45, 0x13},
		ColorCoral:   {0xff, 0x6b, 0x6b},
	}
	for i := 0; i < HueSteps; i++ {
		p[ColorHue0+Color(i)] = HSL(float64(i)*360/HueSteps, 0.7, 0.6)
	}
	return p
}()

var colorNames = map[string]Color{
	"default":     ColorDefault,
	"transparent": ColorDefault,
	"black":       ColorBlack,
	"white":       ColorWhite,
	"gray":        ColorGray,
	"grey":        ColorGray,
	"red":         ColorRed,
	"green":       ColorGreen,
	"yellow":      ColorYellow,
	"blue":        ColorBlue,
	"orange":      ColorOrange,
	"brown":       ColorBrown,
	"pink":        ColorPink,
	"sky":         ColorSkyTop,
	"meadow":      ColorMeadow,
	"dirt":        ColorDirt,
	"coral":       ColorCoral,
}

// RGB returns the palette value of the color.
func (c Color) RGB() RGB {
	if c >= ColorCount {
		return paletteRGB[ColorDefault]
	}
	return paletteRGB[c]
}

// Hex returns the palette value as "#rrggbb".
func (c Color) Hex() string {
	return c.RGB().Hex()
}

// ParseColor converts a palette name to a Color.
// Returns ColorDefault and false if the name is not recognized.
func ParseColor(s string) (Color, bool) {
	c, ok := colorNames[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// HueColor returns the palette entry closest to the given hue in degrees.
func HueColor(hue float64) Color {
	hue = math.Mod(hue, 360)
	if hue < 0 {
		hue += 360
	}
	step := int(math.Round(hue/(360.0/HueSteps))) % HueSteps
	return ColorHue0 + Color(step)
}

// Nearest returns the opaque palette entry closest to rgb.
func Nearest(rgb RGB) Color {
	best := ColorBlack
	bestDist := math.MaxInt
	for c := ColorBlack; c < ColorCount; c++ {
		p := paletteRGB[c]
		dr := int(p.R) - int(rgb.R)
		dg := int(p.G) - int(rgb.G)
		db := int(p.B) - int(rgb.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// HSL converts hue (degrees), saturation and lightness (0..1) to RGB.
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGB{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
	}
}
