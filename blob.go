package colortrack

import "image"

// Region is one connected foreground component of a mask, holes included.
type Region struct {
	// Label is the 1-based index of the region in raster order.
	Label  int
	Pixels []image.Point
	Bounds image.Rectangle
}

// Area returns the pixel count of the region.
func (r Region) Area() int {
	return len(r.Pixels)
}

var (
	neighbors4 = [...]image.Point{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	neighbors8 = [...]image.Point{
		{-1, -1}, {0, -1}, {1, -1},
		{-1, 0}, {1, 0},
		{-1, 1}, {0, 1}, {1, 1},
	}
)

// ExtractRegions returns the outermost 8-connected foreground components of the mask.
// Holes are filled before labelling, so a ring counts its inner area and anything
// lying inside a hole becomes part of the enclosing region.
// Regions are ordered by their first pixel in raster order (top-to-bottom, left-to-right).
func ExtractRegions(m *Mask) []Region {
	filled := FillHoles(m)
	w, h := filled.Width, filled.Height

	labels := make([]int32, w*h)
	var (
		regions []Region
		stack   []int
	)

	for i, p := range filled.Pix {
		if p == Background || labels[i] != 0 {
			continue
		}
		label := int32(len(regions) + 1)
		region := Region{Label: int(label)}
		minX, minY, maxX, maxY := w, h, -1, -1

		labels[i] = label
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := idx%w, idx/w
			region.Pixels = append(region.Pixels, image.Pt(x, y))
			minX, minY = min(minX, x), min(minY, y)
			maxX, maxY = max(maxX, x), max(maxY, y)

			for _, o := range neighbors8 {
				nx, ny := x+o.X, y+o.Y
				if !filled.In(nx, ny) {
					continue
				}
				ni := ny*w + nx
				if filled.Pix[ni] != Background && labels[ni] == 0 {
					labels[ni] = label
					stack = append(stack, ni)
				}
			}
		}
		region.Bounds = image.Rect(minX, minY, maxX+1, maxY+1)
		regions = append(regions, region)
	}
	return regions
}

// FillHoles returns a copy of the mask where every background pixel that cannot
// be reached from the frame border through 4-connected background is set to foreground.
func FillHoles(m *Mask) *Mask {
	w, h := m.Width, m.Height
	out := m.Clone()
	if w == 0 || h == 0 {
		return out
	}

	outside := make([]bool, w*h)
	var stack []int
	seed := func(x, y int) {
		i := y*w + x
		if m.Pix[i] == Background && !outside[i] {
			outside[i] = true
			stack = append(stack, i)
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := idx%w, idx/w
		for _, o := range neighbors4 {
			nx, ny := x+o.X, y+o.Y
			if !m.In(nx, ny) {
				continue
			}
			seed(nx, ny)
		}
	}

	for i, p := range out.Pix {
		if p == Background && !outside[i] {
			out.Pix[i] = Foreground
		}
	}
	return out
}

// Largest returns the region with the greatest area. Ties are resolved in favour of
// the region found first. The boolean is false when there are no regions.
func Largest(regions []Region) (Region, bool) {
	if len(regions) == 0 {
		return Region{}, false
	}
	best := 0
	for i := 1; i < len(regions); i++ {
		if regions[i].Area() > regions[best].Area() {
			best = i
		}
	}
	return regions[best], true
}

// boundary returns the region pixels that have at least one 4-neighbour outside the region.
// Interior pixels can never lie on the enclosing circle, so they are skipped.
func (r Region) boundary() []image.Point {
	if len(r.Pixels) == 0 {
		return nil
	}
	b := r.Bounds
	w := b.Dx()
	in := make([]bool, w*b.Dy())
	for _, p := range r.Pixels {
		in[(p.Y-b.Min.Y)*w+(p.X-b.Min.X)] = true
	}
	member := func(x, y int) bool {
		if x < b.Min.X || y < b.Min.Y || x >= b.Max.X || y >= b.Max.Y {
			return false
		}
		return in[(y-b.Min.Y)*w+(x-b.Min.X)]
	}

	var edge []image.Point
	for _, p := range r.Pixels {
		for _, o := range neighbors4 {
			if !member(p.X+o.X, p.Y+o.Y) {
				edge = append(edge, p)
				break
			}
		}
	}
	return edge
}
