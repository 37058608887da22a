// Package glyph provides the 5x8 one-bit image format of a custom character
// in the controller's CGRAM.
//
// Each of the 8 rows is one byte. Only the low 5 bits are used, bit 4 being
// the leftmost dot:
//
//	Dots:  x0 x1 x2 x3 x4
//	Row 0:  .  #  .  #  .   -> 0x0A
//	Row 1:  #  #  #  #  #   -> 0x1F
//
// This package provides:
//
// - Dot: a color type for a lit or unlit dot
// - DotModel: a color model converting standard Go colors to Dot
// - Image: a draw.Image whose Pattern method returns the 8 bytes expected by
// ws0010.Dev.CreateChar
//
// Example usage:
//
//	img := glyph.New()
//	draw.Draw(img, image.Rect(0, 7, 5, 8), image.NewUniform(glyph.On), image.Point{}, draw.Src)
//	dev.CreateChar(0, img.Pattern())
package glyph
