package colortrack

import (
	"math"
	"math/rand"
)

// Circle is a circle in frame coordinates.
type Circle struct {
	Center Point
	Radius float64
}

// Contains reports whether p lies inside or on the circle, with a small tolerance
// for floating point error.
func (c Circle) Contains(p Point) bool {
	return c.Center.Dist(p) <= c.Radius+1e-7*math.Max(1, c.Radius)
}

// MinEnclosingCircle returns the smallest circle containing all points, using the
// randomized incremental form of Welzl's algorithm (expected linear time).
// The points are shuffled with a fixed seed, so the result is deterministic.
// An empty input yields the zero circle.
func MinEnclosingCircle(points []Point) Circle {
	if len(points) == 0 {
		return Circle{}
	}
	pts := make([]Point, len(points))
	copy(pts, points)
	rnd := rand.New(rand.NewSource(1))
	rnd.Shuffle(len(pts), func(i, j int) { pts[i], pts[j] = pts[j], pts[i] })

	c := Circle{Center: pts[0]}
	for i := 1; i < len(pts); i++ {
		if c.Contains(pts[i]) {
			continue
		}
		c = Circle{Center: pts[i]}
		for j := 0; j < i; j++ {
			if c.Contains(pts[j]) {
				continue
			}
			c = circleFrom2(pts[i], pts[j])
			for k := 0; k < j; k++ {
				if c.Contains(pts[k]) {
					continue
				}
				c = circleFrom3(pts[i], pts[j], pts[k])
			}
		}
	}
	return c
}

// circleFrom2 returns the circle having a and b as diameter endpoints.
func circleFrom2(a, b Point) Circle {
	center := Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return Circle{Center: center, Radius: a.Dist(b) / 2}
}

// circleFrom3 returns the circumcircle of the triangle abc. Collinear points fall back
// to the circle spanned by the two points farthest apart.
func circleFrom3(a, b, c Point) Circle {
	bx, by := b.X-a.X, b.Y-a.Y
	cx, cy := c.X-a.X, c.Y-a.Y
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		best := circleFrom2(a, b)
		if alt := circleFrom2(a, c); alt.Radius > best.Radius {
			best = alt
		}
		if alt := circleFrom2(b, c); alt.Radius > best.Radius {
			best = alt
		}
		return best
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d

	center := Point{X: a.X + ux, Y: a.Y + uy}
	return Circle{Center: center, Radius: math.Hypot(ux, uy)}
}
