package facecrop

import (
	"errors"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/esimov/facecrop/utils"
	"golang.org/x/image/draw"
)

// warpAngleSign converts the eye line angle to the angle handed to
// RotationMatrix. The eye line angle follows the on-screen (y down)
// orientation while the matrix follows the arithmetic one, so leveling the
// eyes needs the opposite sign. RotateCoords applies the same flip
// internally, which keeps the warped image and the rotated landmarks in one
// coordinate frame.
const warpAngleSign = -1

// ErrDegenerateCrop is returned when the crop window derived from the
// landmarks has no area inside the straightened image.
var ErrDegenerateCrop = errors.New("degenerate crop window")

// CropWindow is a rectangle in the straightened image space.
type CropWindow struct {
	MinX, MinY    float64
	Width, Height float64
}

// Rect converts the window to integer pixel bounds, truncating toward zero.
func (cw CropWindow) Rect() image.Rectangle {
	// image.Rect would swap inverted bounds, which must stay empty instead.
	return image.Rectangle{
		Min: image.Point{X: int(cw.MinX), Y: int(cw.MinY)},
		Max: image.Point{X: int(cw.MinX + cw.Width), Y: int(cw.MinY + cw.Height)},
	}
}

// Normalizer straightens a face so that the eye line is horizontal and
// crops a square window anchored to the eyes and the ear bases.
// A Normalizer holds no state between calls and is safe for concurrent use.
type Normalizer struct {
	// Fill is the color of the canvas regions exposed by the rotation.
	Fill color.Color
	// Interpolator resamples the rotated image. Defaults to bilinear.
	Interpolator draw.Transformer
	// EyeAnchor is the relative position of the eyes center inside the crop.
	EyeAnchor Point
}

// NewNormalizer returns a Normalizer with the default settings.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		Fill:         BorderGray,
		Interpolator: draw.BiLinear,
		EyeAnchor:    Point{X: 0.5, Y: 0.4},
	}
}

var defaultNormalizer = NewNormalizer()

// Normalize straightens and crops img using the default Normalizer.
func Normalize(coords []float64, img image.Image) (*image.NRGBA, error) {
	return defaultNormalizer.Normalize(coords, img)
}

// ComputeCropWindow returns the default crop window for a face whose eyes
// center is at center and whose ear bases are width pixels apart.
func ComputeCropWindow(center Point, width float64) CropWindow {
	return defaultNormalizer.CropWindow(center, width)
}

// Normalize straightens img around the eye line described by coords and
// returns the face crop. The source image is not modified.
//
// coords holds at least 18 values, the interleaved x,y pairs of the
// landmarks. ErrDegenerateCrop is returned when no pixel is left to crop;
// callers processing a batch should skip such samples.
func (n *Normalizer) Normalize(coords []float64, img image.Image) (*image.NRGBA, error) {
	lm, err := NewLandmarks(coords)
	if err != nil {
		return nil, err
	}
	straight, rotated, center := n.Straighten(lm, img)

	width := utils.Abs(rotated.RightEarBase.X - rotated.LeftEarBase.X)
	cw := n.CropWindow(center, width)

	return Crop(straight, cw)
}

// Straighten rotates the image and the landmarks around the eyes center so
// that the eye line becomes horizontal. It returns the straightened image,
// the landmarks in the straightened space and the rotation pivot.
func (n *Normalizer) Straighten(lm Landmarks, img image.Image) (*image.NRGBA, Landmarks, Point) {
	left, right := lm.Eyes()
	center := left.Midpoint(right)
	angle := math.Atan2(right.Y-left.Y, right.X-left.X)

	fill := n.Fill
	if fill == nil {
		fill = BorderGray
	}
	src := imgToNRGBA(img)
	m := RotationMatrix(center, warpAngleSign*angle*180/math.Pi, 1.0)
	straight := WarpAffine(src, m, src.Bounds().Size(), fill, n.Interpolator)

	rotated := landmarksFrom(RotateCoords(lm.Flatten(), center, angle))

	return straight, rotated, center
}

// CropWindow places a square of the given width so that center sits at the
// EyeAnchor position. A window reaching past the top or left image edge is
// shrunk rather than shifted, keeping the distance between center and the
// opposite edges. The result may therefore no longer be square.
func (n *Normalizer) CropWindow(center Point, width float64) CropWindow {
	w, h := width, width
	minX := center.X - w*n.EyeAnchor.X
	minY := center.Y - h*n.EyeAnchor.Y

	if minX < 0 {
		w += minX
		minX = 0
	}
	if minY < 0 {
		h += minY
		minY = 0
	}
	return CropWindow{MinX: minX, MinY: minY, Width: w, Height: h}
}

// Crop copies the part of img covered by cw into a new image.
// Bounds reaching past the right or bottom edge are clipped.
func Crop(img *image.NRGBA, cw CropWindow) (*image.NRGBA, error) {
	for _, v := range []float64{cw.MinX, cw.MinY, cw.Width, cw.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrDegenerateCrop
		}
	}
	r := cw.Rect()
	if r.Empty() {
		return nil, ErrDegenerateCrop
	}
	r = r.Add(img.Bounds().Min).Intersect(img.Bounds())
	if r.Empty() {
		return nil, ErrDegenerateCrop
	}
	return imaging.Crop(img, r), nil
}
