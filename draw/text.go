package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Text draws s with the 7x13 bitmap face. pt is the left end of the baseline;
// the returned point is where the next glyph would go.
func Text(dst Image, pt image.Point, s string, c color.Color) image.Point {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(pt.X, pt.Y),
	}
	d.DrawString(s)
	return image.Pt(d.Dot.X.Round(), d.Dot.Y.Round())
}

// Font renders TrueType text.
type Font struct {
	ctx  *freetype.Context
	face font.Face
}

// NewFont parses a TrueType font for rendering at size points (at 72 DPI,
// one point is one pixel).
func NewFont(ttf []byte, size float64) (*Font, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, err
	}

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(f)
	ctx.SetFontSize(size)
	// Full hinting snaps stems to whole pixels, which matters at 1 bit depth.
	ctx.SetHinting(font.HintingFull)

	return &Font{
		ctx: ctx,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// DefaultFont returns Go Regular at size points.
func DefaultFont(size float64) (*Font, error) {
	return NewFont(goregular.TTF, size)
}

// Draw renders s on dst with its baseline starting at pt, clipped to the
// bounds of dst.
func (f *Font) Draw(dst Image, pt image.Point, s string, c color.Color) (image.Point, error) {
	f.ctx.SetDst(dst)
	f.ctx.SetClip(dst.Bounds())
	f.ctx.SetSrc(image.NewUniform(c))

	next, err := f.ctx.DrawString(s, freetype.Pt(pt.X, pt.Y))
	if err != nil {
		return pt, err
	}
	return image.Pt(next.X.Round(), next.Y.Round()), nil
}

// Width returns the advance of s in pixels.
func (f *Font) Width(s string) int {
	return font.MeasureString(f.face, s).Round()
}

// Height returns the line height in pixels.
func (f *Font) Height() int {
	return f.face.Metrics().Height.Ceil()
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Font) Ascent() int {
	return f.face.Metrics().Ascent.Ceil()
}
