package colortrack

import "image"

// Moments holds the zeroth and first order raw moments of a pixel set.
type Moments struct {
	M00, M10, M01 float64
}

// ComputeMoments sums the pixel coordinates of the set. Every pixel has unit weight,
// so M00 equals the area.
func ComputeMoments(pixels []image.Point) Moments {
	var m Moments
	for _, p := range pixels {
		m.M00++
		m.M10 += float64(p.X)
		m.M01 += float64(p.Y)
	}
	return m
}

// Centroid returns (M10/M00, M01/M00). It fails on an empty set.
func (m Moments) Centroid() (Point, bool) {
	if m.M00 == 0 {
		return Point{}, false
	}
	return Point{X: m.M10 / m.M00, Y: m.M01 / m.M00}, true
}

// Detection is the object found in a single frame.
type Detection struct {
	// Center is the moment centroid, the position reported downstream.
	Center Point
	// Radius is the radius of the minimum enclosing circle.
	Radius float64
	// Circle is the minimum enclosing circle itself, used for drawing.
	Circle Circle
	Area   int
}

// Visible reports whether the detection is large enough to be highlighted.
// Smaller detections are still tracked.
func (d Detection) Visible(minRadius float64) bool {
	return d.Radius > minRadius
}

// Estimate computes the centroid and the enclosing circle of the region.
// A degenerate region produces no detection.
func Estimate(r Region) (Detection, bool) {
	center, ok := ComputeMoments(r.Pixels).Centroid()
	if !ok {
		return Detection{}, false
	}

	edge := r.boundary()
	pts := make([]Point, len(edge))
	for i, p := range edge {
		pts[i] = Point{X: float64(p.X), Y: float64(p.Y)}
	}
	circle := MinEnclosingCircle(pts)

	return Detection{
		Center: center,
		Radius: circle.Radius,
		Circle: circle,
		Area:   r.Area(),
	}, true
}
