package imop

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/esimov/colortrack/utils"
)

// Porter-Duff composition operators.
const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// NewBitmap allocates a transparent bitmap of the given size.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// Composite holds the currently active composition operator.
type Composite struct {
	current string
	ops     []string
}

// InitOp returns a Composite using the source-over operator.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear, Copy, Dst,
			SrcOver, DstOver,
			SrcIn, DstIn,
			SrcOut, DstOut,
			SrcAtop, DstAtop,
			Xor,
		},
	}
}

// Set activates one of the supported composition operators.
func (op *Composite) Set(cop string) error {
	if !utils.Contains(op.ops, cop) {
		return fmt.Errorf("unsupported composite operation: %q", cop)
	}
	op.current = cop
	return nil
}

// Get returns the active composition operator.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff weights of the source and the backdrop.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composes src over the dst backdrop into the bitmap. When blend is not nil the
// source colors are first mixed with the backdrop using the selected blend mode.
// The images must share the same bounds; a nil bitmap is allocated on the fly and returned.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA, blend *Blend) *Bitmap {
	b := src.Bounds().Intersect(dst.Bounds())
	if bitmap == nil {
		bitmap = NewBitmap(src.Bounds())
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cs := src.NRGBAAt(x, y)
			cb := dst.NRGBAAt(x, y)

			as := float64(cs.A) / 255
			ab := float64(cb.A) / 255

			s := Color{R: float64(cs.R), G: float64(cs.G), B: float64(cs.B)}
			d := Color{R: float64(cb.R), G: float64(cb.G), B: float64(cb.B)}
			if blend != nil && blend.Get() != "" {
				mixed := blend.Apply(s, d)
				s = Color{
					R: (1-ab)*s.R + ab*mixed.R,
					G: (1-ab)*s.G + ab*mixed.G,
					B: (1-ab)*s.B + ab*mixed.B,
				}
			}

			fa, fb := op.factors(as, ab)
			ao := as*fa + ab*fb
			if ao <= 0 {
				bitmap.Img.SetNRGBA(x, y, color.NRGBA{})
				continue
			}
			mix := func(cs, cb float64) uint8 {
				return uint8(utils.Clamp(math.Round((as*fa*cs+ab*fb*cb)/ao), 0, 255))
			}
			bitmap.Img.SetNRGBA(x, y, color.NRGBA{
				R: mix(s.R, d.R),
				G: mix(s.G, d.G),
				B: mix(s.B, d.B),
				A: uint8(utils.Clamp(math.Round(ao*255), 0, 255)),
			})
		}
	}
	return bitmap
}
