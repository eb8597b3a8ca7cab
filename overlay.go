package colortrack

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// kappa is the control point distance used to approximate a quarter circle with a cubic Bézier.
const kappa = 0.5522847498

// Overlay draws the detection circle and the trajectory polyline onto the frames.
type Overlay struct {
	CircleColor     color.NRGBA
	LineColor       color.NRGBA
	CircleThickness float64
	LineThickness   float64
	// MinRadius suppresses the circle of detections that are too small to highlight.
	MinRadius float64
}

// DefaultOverlay mirrors the reference look: a black circle of width 2
// and a black trajectory line of width 1.
func DefaultOverlay() Overlay {
	return Overlay{
		CircleColor:     color.NRGBA{A: 0xff},
		LineColor:       color.NRGBA{A: 0xff},
		CircleThickness: 2,
		LineThickness:   1,
		MinRadius:       10,
	}
}

// Draw renders the overlay in place. The circle is drawn only for a visible detection,
// and the trajectory is redrawn in full: one segment between every pair of consecutive
// frames that both have a position. Gaps are skipped.
func (o Overlay) Draw(frame *image.NRGBA, det *Detection, traj *Trajectory) {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	if det != nil && det.Visible(o.MinRadius) {
		z := vector.NewRasterizer(w, h)
		ring(z, det.Circle, o.CircleThickness)
		z.Draw(frame, b, image.NewUniform(o.CircleColor), image.Point{})
	}

	if traj == nil || traj.Len() < 2 {
		return
	}
	z := vector.NewRasterizer(w, h)
	var segments int
	for i := 1; i < traj.Len(); i++ {
		prev, cur := traj.At(i-1).Position, traj.At(i).Position
		if prev == nil || cur == nil {
			continue
		}
		if segment(z, *prev, *cur, o.LineThickness) {
			segments++
		}
	}
	if segments > 0 {
		z.Draw(frame, b, image.NewUniform(o.LineColor), image.Point{})
	}
}

// ring adds an annulus of the given thickness centered on the circle outline.
// The inner contour runs in the opposite direction, so it is subtracted from the outer disc.
func ring(z *vector.Rasterizer, c Circle, thickness float64) {
	if thickness <= 0 {
		thickness = 1
	}
	// Pixel (x, y) covers [x, x+1) in raster space, so its center sits at x+0.5.
	cx, cy := float32(c.Center.X+0.5), float32(c.Center.Y+0.5)
	outer := float32(c.Radius + thickness/2)
	inner := float32(math.Max(c.Radius-thickness/2, 0))

	circlePath(z, cx, cy, outer, 1)
	if inner > 0 {
		circlePath(z, cx, cy, inner, -1)
	}
}

// circlePath appends a closed circle approximated by four cubic Béziers.
// dir selects the winding: 1 or -1.
func circlePath(z *vector.Rasterizer, cx, cy, r float32, dir float32) {
	k := kappa * r
	s := dir
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+s*k, cx+k, cy+s*r, cx, cy+s*r)
	z.CubeTo(cx-k, cy+s*r, cx-r, cy+s*k, cx-r, cy)
	z.CubeTo(cx-r, cy-s*k, cx-k, cy-s*r, cx, cy-s*r)
	z.CubeTo(cx+k, cy-s*r, cx+r, cy-s*k, cx+r, cy)
	z.ClosePath()
}

// segment adds a line of the given thickness between a and b as a quad.
// It returns false when the endpoints coincide.
func segment(z *vector.Rasterizer, a, b Point, thickness float64) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return false
	}
	if thickness <= 0 {
		thickness = 1
	}
	nx, ny := -dy/l*thickness/2, dx/l*thickness/2
	ax, ay := a.X+0.5, a.Y+0.5
	bx, by := b.X+0.5, b.Y+0.5

	z.MoveTo(float32(ax+nx), float32(ay+ny))
	z.LineTo(float32(bx+nx), float32(by+ny))
	z.LineTo(float32(bx-nx), float32(by-ny))
	z.LineTo(float32(ax-nx), float32(ay-ny))
	z.ClosePath()
	return true
}
