package colortrack

import "image"

// StructElem is the structuring element used by the morphological operators,
// expressed as the offsets it covers around the anchor pixel.
type StructElem []image.Point

var (
	// Square3 is the 3×3 square element, the default of most vision libraries.
	Square3 = StructElem{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
	// Cross3 is the 3×3 cross (4-neighbourhood) element.
	Cross3 = StructElem{
		{0, -1},
		{-1, 0}, {0, 0}, {1, 0},
		{0, 1},
	}
)

// StructElemByName maps the configuration names to the built-in elements.
var StructElemByName = map[string]StructElem{
	"square": Square3,
	"cross":  Cross3,
}

// Erode applies n erosion passes. A pixel survives a pass only when every pixel under
// the element is foreground. Pixels outside the mask are ignored, so regions touching
// the frame edge are not eaten away from that side.
func Erode(m *Mask, se StructElem, n int) *Mask {
	return morph(m, se, n, true)
}

// Dilate applies n dilation passes. A pixel becomes foreground when any pixel under
// the element is foreground.
func Dilate(m *Mask, se StructElem, n int) *Mask {
	return morph(m, se, n, false)
}

// Open erodes the mask n times and then dilates it n times. Regions that do not
// survive the erosion are removed, the others grow back to roughly their original size.
func Open(m *Mask, se StructElem, n int) *Mask {
	return Dilate(Erode(m, se, n), se, n)
}

// Close dilates the mask n times and then erodes it n times, filling small gaps.
func Close(m *Mask, se StructElem, n int) *Mask {
	return Erode(Dilate(m, se, n), se, n)
}

func morph(m *Mask, se StructElem, n int, erode bool) *Mask {
	if len(se) == 0 {
		se = Square3
	}
	src := m.Clone()
	if n <= 0 {
		return src
	}
	dst := NewMask(m.Width, m.Height)

	for pass := 0; pass < n; pass++ {
		for y := 0; y < src.Height; y++ {
			for x := 0; x < src.Width; x++ {
				fg := erode
				for _, o := range se {
					nx, ny := x+o.X, y+o.Y
					if !src.In(nx, ny) {
						continue
					}
					on := src.Pix[ny*src.Width+nx] != Background
					if erode && !on {
						fg = false
						break
					}
					if !erode && on {
						fg = true
						break
					}
				}
				if fg {
					dst.Pix[y*dst.Width+x] = Foreground
				} else {
					dst.Pix[y*dst.Width+x] = Background
				}
			}
		}
		src, dst = dst, src
	}
	return src
}
