package colortrack

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	black  = color.NRGBA{A: 0xff}
	white  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	gray   = color.NRGBA{R: 100, G: 100, B: 100, A: 0xff}
	target = color.NRGBA{R: 200, G: 255, B: 50, A: 0xff} // HSV (38,205,255), inside the default range
)

// newFrame returns a w×h frame filled with bg.
func newFrame(w, h int, bg color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, bg)
}

// fillDisc paints every pixel whose center lies within r of (cx, cy).
func fillDisc(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r && image.Pt(x, y).In(img.Bounds()) {
				img.SetNRGBA(x, y, c)
			}
		}
	}
}

// maskRect sets the rectangle r of the mask to foreground.
func maskRect(m *Mask, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Set(x, y, true)
		}
	}
}

// discMask returns a mask holding a single disc.
func discMask(w, h, cx, cy, r int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
