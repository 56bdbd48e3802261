package facecrop

import "math"

// yDownAngleSign converts an angle measured in image space, where the y axis
// grows downward, to the y-up convention of the rotation formula below.
const yDownAngleSign = -1

// RotateCoords rotates an interleaved x,y coordinate sequence about center
// by angle radians, measured in image space.
//
// The result is a new slice. Only complete pairs are rotated: when the
// sequence has an odd length the trailing value is dropped.
func RotateCoords(coords []float64, center Point, angle float64) []float64 {
	n := len(coords) / 2
	res := make([]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		p := RotatePoint(Point{X: coords[2*i], Y: coords[2*i+1]}, center, angle)
		res = append(res, p.X, p.Y)
	}
	return res
}

// RotatePoint rotates a single point about center by angle radians,
// measured in image space.
func RotatePoint(p, center Point, angle float64) Point {
	sin, cos := math.Sincos(yDownAngleSign * angle)
	dx, dy := p.X-center.X, p.Y-center.Y

	return Point{
		X: dx*cos - dy*sin + center.X,
		Y: dx*sin + dy*cos + center.Y,
	}
}
