package facecrop

import (
	"errors"
	"fmt"
)

// numLandmarks is the number of (x, y) pairs in an annotation.
const numLandmarks = 9

// ErrMalformedLandmarks is returned when the flattened coordinate sequence
// does not hold all the landmarks needed by the normalizer.
var ErrMalformedLandmarks = errors.New("malformed landmarks")

// Point is a 2D coordinate in image pixel space.
type Point struct {
	X float64
	Y float64
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{
		X: 0.5 * (p.X + q.X),
		Y: 0.5 * (p.Y + q.Y),
	}
}

// Landmarks holds the nine annotated facial features in the order
// they appear in the flattened annotation.
type Landmarks struct {
	LeftEye      Point
	RightEye     Point
	Mouth        Point
	LeftEarBase  Point
	LeftEarTip   Point
	LeftEarEdge  Point
	RightEarEdge Point
	RightEarTip  Point
	RightEarBase Point
}

// NewLandmarks builds the landmark set from a flattened x,y sequence.
// Values beyond the ninth pair are ignored.
func NewLandmarks(coords []float64) (Landmarks, error) {
	var lm Landmarks
	if len(coords) < 2*numLandmarks {
		return lm, fmt.Errorf("%w: got %d values, want %d", ErrMalformedLandmarks, len(coords), 2*numLandmarks)
	}
	return landmarksFrom(coords), nil
}

// Flatten returns the landmarks as an interleaved x,y sequence.
func (lm Landmarks) Flatten() []float64 {
	coords := make([]float64, 0, 2*numLandmarks)
	for _, p := range lm.points() {
		coords = append(coords, p.X, p.Y)
	}
	return coords
}

// points returns pointers to the landmark fields in annotation order.
func (lm *Landmarks) points() []*Point {
	return []*Point{
		&lm.LeftEye,
		&lm.RightEye,
		&lm.Mouth,
		&lm.LeftEarBase,
		&lm.LeftEarTip,
		&lm.LeftEarEdge,
		&lm.RightEarEdge,
		&lm.RightEarTip,
		&lm.RightEarBase,
	}
}

// Eyes returns the eye landmarks ordered as the viewer sees them.
//
// Some annotations label the eyes the other way round, e.g. when the head is
// rolled far enough that the anatomical right eye ends up on the left of the
// screen. Only one inversion signature is recognized: the "left" eye lies to
// the right of and above the "right" eye while the mouth is to the right of
// the "right" eye. Other patterns are returned unchanged.
func (lm Landmarks) Eyes() (left, right Point) {
	left, right = lm.LeftEye, lm.RightEye
	if left.X > right.X && left.Y < right.Y && lm.Mouth.X > right.X {
		left, right = right, left
	}
	return left, right
}

// landmarksFrom fills the landmark set from a sequence already known to
// hold all the pairs.
func landmarksFrom(coords []float64) Landmarks {
	var lm Landmarks
	for i, p := range lm.points() {
		*p = Point{X: coords[2*i], Y: coords[2*i+1]}
	}
	return lm
}
