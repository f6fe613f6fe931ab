package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is a drawing surface with a bulk clear and fill.
type Image interface {
	draw.Image

	// Clear turns all pixels off.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image stored in pages
// of 8 rows, one byte per column, with the top row of a page in bit 0.
//
// This is the un-rotated DDRAM layout of PCD8544 and SSD1xxx style controllers.
type MonoVerticalLSBImage struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	pages := (h + 7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, pages*w),
		Stride: w,
	}
}

func (p *MonoVerticalLSBImage) Bounds() image.Rectangle {
	return p.Rect
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the byte holding (x, y) and the bit within it.
func (p *MonoVerticalLSBImage) PixOffset(x, y int) (int, byte) {
	return y/8*p.Stride + x, byte(1) << uint(y&7)
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	pos, bit := p.PixOffset(x, y)
	return Mono{On: p.Pix[pos]&bit != 0}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	pos, bit := p.PixOffset(x, y)
	if IsOn(c) {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) Clear() {
	p.Fill(Off)
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if IsOn(c) {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Interface checks.
var _ Image = (*MonoVerticalLSBImage)(nil)
