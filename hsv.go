package colortrack

import (
	"fmt"
	"math"
)

// HSV is a pixel in the 8-bit hue-saturation-value space used by most vision tooling:
// the hue is halved so it fits into a byte (0-179), saturation and value span 0-255.
type HSV struct {
	H, S, V uint8
}

// MaxHue is the exclusive upper limit of the 8-bit hue channel.
const MaxHue = 180

// HSVRange holds the inclusive lower and upper bounds of the target color.
type HSVRange struct {
	Lower HSV
	Upper HSV
}

// Contains reports whether c falls within all three channel bounds.
func (r HSVRange) Contains(c HSV) bool {
	return c.H >= r.Lower.H && c.H <= r.Upper.H &&
		c.S >= r.Lower.S && c.S <= r.Upper.S &&
		c.V >= r.Lower.V && c.V <= r.Upper.V
}

// Validate checks that the bounds describe a non-empty range.
func (r HSVRange) Validate() error {
	if r.Lower.H > r.Upper.H || r.Lower.S > r.Upper.S || r.Lower.V > r.Upper.V {
		return fmt.Errorf("lower bound %v exceeds upper bound %v", r.Lower, r.Upper)
	}
	if r.Upper.H >= MaxHue {
		return fmt.Errorf("hue upper bound %d out of range [0,%d)", r.Upper.H, MaxHue)
	}
	return nil
}

func (c HSV) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.H, c.S, c.V)
}

// RGBToHSV converts an RGB triplet to HSV.
func RGBToHSV(r, g, b uint8) HSV {
	hi := max(r, g, b)
	lo := min(r, g, b)
	delta := int(hi) - int(lo)

	var s uint8
	if hi != 0 {
		s = uint8((255*delta + int(hi)/2) / int(hi))
	}
	if delta == 0 {
		return HSV{H: 0, S: s, V: hi}
	}

	var h float64
	switch hi {
	case r:
		h = 60 * float64(int(g)-int(b)) / float64(delta)
	case g:
		h = 120 + 60*float64(int(b)-int(r))/float64(delta)
	default:
		h = 240 + 60*float64(int(r)-int(g))/float64(delta)
	}
	if h < 0 {
		h += 360
	}
	hh := int(math.Round(h / 2))
	if hh >= MaxHue {
		hh -= MaxHue
	}
	return HSV{H: uint8(hh), S: s, V: hi}
}
