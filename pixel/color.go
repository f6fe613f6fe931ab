package pixel

import "image/color"

// MonoModel converts any color to a 1-bit [Mono] color.
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
//
// On is the bit value that fills display RAM with 0xff. Whether that shows as a
// dark or a light pixel depends on the display mode (normal or inverse).
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

// IsOn reports whether c maps to a set pixel.
func IsOn(c color.Color) bool {
	return monoModel(c).(Mono).On
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		// Mostly transparent colors leave pixels off.
		return Off
	}

	// JFIF luma coefficients, as in color.RGBToYCbCr; 19595 + 38470 + 7471 = 65536.
	// The 31 is 16 + 15: a 16 bit scale down plus a threshold at half intensity.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}
