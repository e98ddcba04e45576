package assets

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/board-runner/internal/core"
)

// Sprite is a small image made of palette colors.
// core.ColorDefault marks a transparent pixel.
type Sprite struct {
	Width  int
	Height int
	Pix    []core.Color // Row-major, Width*Height entries
}

// NewSprite creates a fully transparent sprite.
func NewSprite(w, h int) *Sprite {
	return &Sprite{
		Width:  w,
		Height: h,
		Pix:    make([]core.Color, w*h),
	}
}

// At returns the color at (x, y), or transparent if out of bounds.
func (s *Sprite) At(x, y int) core.Color {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return core.ColorDefault
	}
	return s.Pix[y*s.Width+x]
}

// Set sets the color at (x, y). Out-of-bounds writes are ignored.
func (s *Sprite) Set(x, y int, c core.Color) {
	if x < 0 || x >= s.Width || y < 0 || y >= s.Height {
		return
	}
	s.Pix[y*s.Width+x] = c
}

// Opaque returns the number of non-transparent pixels.
func (s *Sprite) Opaque() int {
	n := 0
	for _, c := range s.Pix {
		if c != core.ColorDefault {
			n++
		}
	}
	return n
}

var (
	ErrEmptySprite  = errors.New("sprite has no pixels")
	ErrRaggedSprite = errors.New("sprite rows differ in length")
)

// spriteSheet is the YAML form of a sprite.
//
//	palette:
//	  o: orange
//	  w: white
//	rows:
//	  - "..oo.."
//	  - ".owwo."
//
// '.' and ' ' are transparent.
type spriteSheet struct {
	Palette map[string]string `yaml:"palette"`
	Rows    []string          `yaml:"rows"`
}

// DecodeYAML decodes a YAML sprite sheet.
func DecodeYAML(data []byte) (*Sprite, error) {
	var sheet spriteSheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("assets: parse sprite sheet: %w", err)
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrEmptySprite
	}

	palette := make(map[rune]core.Color, len(sheet.Palette))
	for key, name := range sheet.Palette {
		r := []rune(key)
		if len(r) != 1 {
			return nil, fmt.Errorf("assets: palette key %q must be a single character", key)
		}
		c, ok := core.ParseColor(name)
		if !ok {
			return nil, fmt.Errorf("assets: unknown color %q for key %q", name, key)
		}
		palette[r[0]] = c
	}

	width := len([]rune(sheet.Rows[0]))
	if width == 0 {
		return nil, ErrEmptySprite
	}
	sp := NewSprite(width, len(sheet.Rows))
	for y, row := range sheet.Rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("assets: row %d: %w", y, ErrRaggedSprite)
		}
		for x, ch := range runes {
			if ch == '.' || ch == ' ' {
				continue
			}
			c, ok := palette[ch]
			if !ok {
				return nil, fmt.Errorf("assets: row %d: character %q not in palette", y, ch)
			}
			sp.Set(x, y, c)
		}
	}
	return sp, nil
}

// maxDecodeSide bounds PNG images so that a huge remote file cannot be
// quantized into a huge sprite.
const maxDecodeSide = 256

// DecodePNG decodes a PNG image and quantizes it onto the palette.
// Pixels with alpha below one half become transparent. Images larger than
// maxDecodeSide are downsampled with nearest-neighbour sampling.
func DecodePNG(r io.Reader) (*Sprite, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode png: %w", err)
	}
	return FromImage(img)
}

// FromImage quantizes an image onto the palette.
func FromImage(img image.Image) (*Sprite, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptySprite
	}

	w, h := b.Dx(), b.Dy()
	if w > maxDecodeSide || h > maxDecodeSide {
		scale := float64(maxDecodeSide) / float64(max(w, h))
		w = max(1, int(float64(w)*scale))
		h = max(1, int(float64(h)*scale))
	}

	sp := NewSprite(w, h)
	for y := 0; y < h; y++ {
		sy := b.Min.Y + y*b.Dy()/h
		for x := 0; x < w; x++ {
			sx := b.Min.X + x*b.Dx()/w
			r, g, bl, a := img.At(sx, sy).RGBA()
			if a < 0x8000 {
				continue
			}
			// Undo premultiplication
			rgb := core.RGB{
				R: uint8(r * 0xffff / a >> 8),
				G: uint8(g * 0xffff / a >> 8),
				B: uint8(bl * 0xffff / a >> 8),
			}
			sp.Set(x, y, core.Nearest(rgb))
		}
	}
	return sp, nil
}

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// Decode picks the codec from the content: PNG by signature, YAML otherwise.
func Decode(data []byte) (*Sprite, error) {
	if bytes.HasPrefix(data, pngSignature) {
		return DecodePNG(bytes.NewReader(data))
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, ErrEmptySprite
	}
	return DecodeYAML(data)
}
