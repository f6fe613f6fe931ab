// Package framebuffer provides an in-memory mirror of the PCD8544 display RAM.
//
// The [FrameBuffer] is byte-for-byte identical to what the controller expects
// when its DDRAM is written from the origin in horizontal addressing mode:
// byte i of [FrameBuffer.Bytes] lands in DDRAM cell i. The logical image is
// rotated by 180° relative to storage order, because the common Nokia 5110
// modules mount the glass upside down relative to the controller's origin.
//
// A FrameBuffer implements [image/draw.Image], so any renderer that targets
// the standard image interfaces can draw on it.
package framebuffer

import (
	"image"
	"image/color"
	"io"

	"github.com/BeatGlow/pcd8544/pixel"
)

// Display geometry.
const (
	Width  = 84            // columns
	Height = 48            // rows
	Banks  = Height / 8    // pages of 8 rows
	Size   = Width * Banks // bytes of display RAM
)

// Bounds is the drawable area of every FrameBuffer.
var Bounds = image.Rect(0, 0, Width, Height)

// FrameBuffer is a 1 bit per pixel bitmap in the controller's native layout.
type FrameBuffer struct {
	pix [Size]byte
}

// New returns a FrameBuffer with all pixels off.
func New() *FrameBuffer {
	return new(FrameBuffer)
}

// offset maps a logical pixel to its storage byte and bit.
//
// Un-rotated, (x, y) lives in byte y/8*Width+x at bit y%8. The 180° rotation
// reverses the byte order and the bit order within each byte.
func offset(x, y int) (int, byte) {
	return Size - 1 - (y/8*Width + x), 0x80 >> uint(y&7)
}

func inside(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Height
}

// SetPixel turns the pixel at (x, y) on or off. Coordinates outside the
// display are ignored.
func (b *FrameBuffer) SetPixel(x, y int, on bool) {
	if !inside(x, y) {
		return
	}
	i, mask := offset(x, y)
	if on {
		b.pix[i] |= mask
	} else {
		b.pix[i] &^= mask
	}
}

// Pixel reports whether the pixel at (x, y) is on. Coordinates outside the
// display read as off.
func (b *FrameBuffer) Pixel(x, y int) bool {
	if !inside(x, y) {
		return false
	}
	i, mask := offset(x, y)
	return b.pix[i]&mask != 0
}

// SetAll turns every pixel on or off.
func (b *FrameBuffer) SetAll(on bool) {
	var value byte
	if on {
		value = 0xff
	}
	for i := range b.pix {
		b.pix[i] = value
	}
}

// Bytes returns a copy of the raw display RAM image.
func (b *FrameBuffer) Bytes() [Size]byte {
	return b.pix
}

// WriteTo writes the raw display RAM image to w in a single call.
func (b *FrameBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.pix[:])
	return int64(n), err
}

func (b *FrameBuffer) Bounds() image.Rectangle {
	return Bounds
}

func (b *FrameBuffer) ColorModel() color.Model {
	return pixel.MonoModel
}

func (b *FrameBuffer) At(x, y int) color.Color {
	if !inside(x, y) {
		return color.Transparent
	}
	return pixel.Mono{On: b.Pixel(x, y)}
}

func (b *FrameBuffer) Set(x, y int, c color.Color) {
	b.SetPixel(x, y, pixel.IsOn(c))
}

// Clear turns all pixels off.
func (b *FrameBuffer) Clear() {
	b.SetAll(false)
}

// Fill sets all pixels to c.
func (b *FrameBuffer) Fill(c color.Color) {
	b.SetAll(pixel.IsOn(c))
}

// Interface checks.
var (
	_ pixel.Image = (*FrameBuffer)(nil)
	_ io.WriterTo = (*FrameBuffer)(nil)
)
