package facecrop

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/require"
)

func uniformImage(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// pad extends coords with the last pair up to a full landmark set.
func pad(t *testing.T, coords ...float64) []float64 {
	t.Helper()
	require.True(t, len(coords) >= 2 && len(coords)%2 == 0)

	res := append([]float64(nil), coords...)
	for len(res) < 2*numLandmarks {
		res = append(res, coords[len(coords)-2], coords[len(coords)-1])
	}
	return res
}

// brightCentroid returns the centroid of the pixels whose red channel is at
// least min.
func brightCentroid(img *image.NRGBA, min uint8) (Point, int) {
	var sx, sy float64
	var n int
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).R >= min {
				sx += float64(x)
				sy += float64(y)
				n++
			}
		}
	}
	if n == 0 {
		return Point{}, 0
	}
	return Point{X: sx / float64(n), Y: sy / float64(n)}, n
}
