// Package imop implements the Porter-Duff composition operations
// and a few separable blend modes used for mixing a graphic element with its backdrop.
// The image/draw core package implements only the source-over-destination and source operators.
//
// It is used to debug the color segmentation: when the debug option is activated
// the mask of the target color is tinted over the output frames.
package imop

import (
	"fmt"

	"github.com/esimov/colortrack/utils"
)

// Supported blend modes.
const (
	Normal   = "normal"
	Darken   = "darken"
	Lighten  = "lighten"
	Multiply = "multiply"
	Screen   = "screen"
	Overlay  = "overlay"
)

// Color is an RGB triplet in the 0-255 range, kept as floats to avoid rounding
// between the blending steps.
type Color struct {
	R, G, B float64
}

// Blend holds the currently active blend mode.
type Blend struct {
	OpType string
}

// NewBlend initializes a new Blend.
func NewBlend() *Blend {
	return &Blend{}
}

// Set activates one of the supported blend modes.
func (o *Blend) Set(opType string) error {
	bModes := []string{Normal, Darken, Lighten, Multiply, Screen, Overlay}

	if !utils.Contains(bModes, opType) {
		return fmt.Errorf("unsupported blend mode: %q", opType)
	}
	o.OpType = opType
	return nil
}

// Get returns the currently active blend mode.
func (o *Blend) Get() string {
	return o.OpType
}

// Apply mixes the source color s with the backdrop b.
func (o *Blend) Apply(s, b Color) Color {
	return Color{
		R: o.channel(s.R/255, b.R/255) * 255,
		G: o.channel(s.G/255, b.G/255) * 255,
		B: o.channel(s.B/255, b.B/255) * 255,
	}
}

func (o *Blend) channel(cs, cb float64) float64 {
	switch o.OpType {
	case Darken:
		return utils.Min(cs, cb)
	case Lighten:
		return utils.Max(cs, cb)
	case Multiply:
		return cs * cb
	case Screen:
		return 1 - (1-cs)*(1-cb)
	case Overlay:
		if cb <= 0.5 {
			return 2 * cs * cb
		}
		return 1 - 2*(1-cs)*(1-cb)
	}
	return cs
}
