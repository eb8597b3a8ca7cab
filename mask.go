package colortrack

import "image"

// Mask pixel values.
const (
	Background uint8 = 0x00
	Foreground uint8 = 0xff
)

// Mask is a binary foreground/background classification of a frame, one byte per pixel.
type Mask struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewMask returns an all-background mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Mask{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h),
	}
}

// Bounds returns the mask rectangle, anchored at the origin.
func (m *Mask) Bounds() image.Rectangle {
	return image.Rect(0, 0, m.Width, m.Height)
}

// In reports whether (x, y) lies inside the mask.
func (m *Mask) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// At reports whether (x, y) is foreground. Coordinates outside the mask are background.
func (m *Mask) At(x, y int) bool {
	if !m.In(x, y) {
		return false
	}
	return m.Pix[y*m.Width+x] != Background
}

// Set marks (x, y) as foreground or background.
func (m *Mask) Set(x, y int, fg bool) {
	if !m.In(x, y) {
		return
	}
	if fg {
		m.Pix[y*m.Width+x] = Foreground
	} else {
		m.Pix[y*m.Width+x] = Background
	}
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, p := range m.Pix {
		if p != Background {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Width, m.Height)
	copy(c.Pix, m.Pix)
	return c
}

// Equal reports whether both masks have the same size and foreground pixels.
func (m *Mask) Equal(o *Mask) bool {
	if m.Width != o.Width || m.Height != o.Height {
		return false
	}
	for i := range m.Pix {
		if (m.Pix[i] != Background) != (o.Pix[i] != Background) {
			return false
		}
	}
	return true
}

// Gray exposes the mask as a grayscale image, e.g. for saving it to disk.
func (m *Mask) Gray() *image.Gray {
	return &image.Gray{
		Pix:    append([]uint8(nil), m.Pix...),
		Stride: m.Width,
		Rect:   m.Bounds(),
	}
}
