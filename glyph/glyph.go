package glyph

import (
	"image"
	"image/color"
)

// Glyph dimensions in dots.
const (
	Width  = 5
	Height = 8
)

// Dot is the color of one dot: lit (true) or unlit.
type Dot bool

// Lit and unlit dots.
const (
	Off Dot = false
	On  Dot = true
)

// RGBA implements color.Color. A lit dot is white.
func (d Dot) RGBA() (r, g, b, a uint32) {
	if d {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func toDot(c color.Color) color.Color {
	if d, ok := c.(Dot); ok {
		return d
	}
	r, g, b, _ := c.RGBA()
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Dot(y >= 0x8000)
}

// DotModel converts colors to Dot, lighting anything at least half as bright
// as white.
var DotModel = color.ModelFunc(toDot)

// Image is a single CGRAM glyph. The zero value is a blank glyph.
type Image struct {
	Pix [Height]byte
}

// New returns a blank glyph.
func New() *Image {
	return &Image{}
}

// FromPattern returns the glyph described by p. The high 3 bits of each row
// are ignored.
func FromPattern(p [Height]byte) *Image {
	img := &Image{}
	for i, row := range p {
		img.Pix[i] = row & 0x1F
	}
	return img
}

// Pattern returns the 8 CGRAM row bytes.
func (p *Image) Pattern() [Height]byte {
	var out [Height]byte
	for i, row := range p.Pix {
		out[i] = row & 0x1F
	}
	return out
}

// ColorModel implements image.Image.
func (p *Image) ColorModel() color.Model {
	return DotModel
}

// Bounds implements image.Image. It is always (0,0)-(5,8).
func (p *Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	return p.DotAt(x, y)
}

// DotAt returns the dot at (x, y). Points outside the glyph are unlit.
func (p *Image) DotAt(x, y int) Dot {
	if !(image.Point{X: x, Y: y}.In(p.Bounds())) {
		return Off
	}
	return p.Pix[y]&mask(x) != 0
}

// Set implements draw.Image.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetDot(x, y, DotModel.Convert(c).(Dot))
}

// SetDot lights or clears the dot at (x, y). Points outside the glyph are
// ignored.
func (p *Image) SetDot(x, y int, d Dot) {
	if !(image.Point{X: x, Y: y}.In(p.Bounds())) {
		return
	}
	if d {
		p.Pix[y] |= mask(x)
	} else {
		p.Pix[y] &^= mask(x)
	}
}

// mask returns the row bit for column x; column 0 is bit 4.
func mask(x int) byte {
	return 0x10 >> uint(x)
}
