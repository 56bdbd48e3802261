package facecrop

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// BorderGray is the color used for the canvas regions left uncovered by the
// rotated source. A mid gray does not introduce a strong edge at the border.
var BorderGray = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// RotationMatrix returns the source to destination affine transform which
// rotates around center by angle degrees and scales by scale.
//
// The matrix uses the arithmetic convention: a positive angle rotates
// counter-clockwise in y-up space, which appears clockwise on screen.
func RotationMatrix(center Point, angle, scale float64) f64.Aff3 {
	sin, cos := math.Sincos(angle * math.Pi / 180)
	sin, cos = sin*scale, cos*scale

	return f64.Aff3{
		cos, -sin, center.X - cos*center.X + sin*center.Y,
		sin, cos, center.Y - sin*center.X - cos*center.Y,
	}
}

// Apply maps p through the affine transform m.
func Apply(m f64.Aff3, p Point) Point {
	return Point{
		X: m[0]*p.X + m[1]*p.Y + m[2],
		Y: m[3]*p.X + m[4]*p.Y + m[5],
	}
}

// WarpAffine resamples src through m onto a new canvas of the given size.
// Destination pixels whose pre-image falls outside of src are set to fill.
// When interp is nil bilinear interpolation is used.
func WarpAffine(src image.Image, m f64.Aff3, size image.Point, fill color.Color, interp draw.Transformer) *image.NRGBA {
	if interp == nil {
		interp = draw.BiLinear
	}
	dst := image.NewNRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	sr := src.Bounds()
	interp.Transform(dst, toPixelCenters(m, sr.Min), src, sr, draw.Src, nil)

	return dst
}

// toPixelCenters adapts m, which addresses pixels by their integer index
// relative to origin, to the continuous space of x/image/draw where the
// center of pixel i lies at i+0.5.
func toPixelCenters(m f64.Aff3, origin image.Point) f64.Aff3 {
	ox, oy := float64(origin.X)+0.5, float64(origin.Y)+0.5

	return f64.Aff3{
		m[0], m[1], m[2] + 0.5 - m[0]*ox - m[1]*oy,
		m[3], m[4], m[5] + 0.5 - m[3]*ox - m[4]*oy,
	}
}
