package geom

import (
	"errors"
	"math"
)

var ErrNoCandidates = errors.New("geom: empty candidate list")

// Box is an axis-aligned bounding box in canvas pixels. (X1,Y1) is the top-left corner.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Square returns a size x size box with its top-left corner at (x, y).
func Square(x, y, size float64) Box {
	return Box{X1: x, Y1: y, X2: x + size, Y2: y + size}
}

func (b Box) Width() float64  { return b.X2 - b.X1 }
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

func (b Box) Center() (float64, float64) {
	return (b.X1 + b.X2) / 2, (b.Y1 + b.Y2) / 2
}

func (b Box) Translate(dx, dy float64) Box {
	return Box{X1: b.X1 + dx, Y1: b.Y1 + dy, X2: b.X2 + dx, Y2: b.Y2 + dy}
}

// MoveTo keeps the size and puts the top-left corner at (x, y).
func (b Box) MoveTo(x, y float64) Box {
	return Box{X1: x, Y1: y, X2: x + b.Width(), Y2: y + b.Height()}
}

func (b Box) Array() [4]float64 { return [4]float64{b.X1, b.Y1, b.X2, b.Y2} }

func FromArray(a [4]float64) Box { return Box{X1: a[0], Y1: a[1], X2: a[2], Y2: a[3]} }

// Intersects reports whether a corner of one box lies inside the other box's span on both
// axes. Spans are closed, so touching boxes intersect.
func Intersects(a, b Box) bool {
	return spanTouches(a.X1, a.X2, b.X1, b.X2) && spanTouches(a.Y1, a.Y2, b.Y1, b.Y2)
}

func spanTouches(a1, a2, b1, b2 float64) bool {
	return within(a1, b1, b2) || within(a2, b1, b2) || within(b1, a1, a2) || within(b2, a1, a2)
}

func within(v, lo, hi float64) bool { return lo <= v && v <= hi }

// Distance is the Euclidean distance between the two box centroids.
func Distance(a, b Box) float64 {
	ax, ay := a.Center()
	bx, by := b.Center()
	return math.Hypot(ax-bx, ay-by)
}

// Nearest returns the index of the candidate closest to ref. Ties keep the earliest index.
func Nearest(ref Box, candidates []Box) (int, error) {
	if len(candidates) == 0 {
		return -1, ErrNoCandidates
	}
	best := 0
	bestDist := Distance(ref, candidates[0])
	for i := 1; i < len(candidates); i++ {
		if d := Distance(ref, candidates[i]); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, nil
}
