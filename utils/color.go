package utils

import (
	"fmt"
	"image/color"
	"strings"
)

// HexToRGBA converts a hex color string (#rgb, #rrggbb or #rrggbbaa) to color.NRGBA.
func HexToRGBA(hex string) (color.NRGBA, error) {
	c := color.NRGBA{A: 0xff}
	hex = strings.TrimPrefix(hex, "#")

	var err error
	switch len(hex) {
	case 8:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	case 6:
		_, err = fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B)
	case 3:
		_, err = fmt.Sscanf(hex, "%1x%1x%1x", &c.R, &c.G, &c.B)
		// Expand the short form: 0xf -> 0xff.
		c.R *= 17
		c.G *= 17
		c.B *= 17
	default:
		err = fmt.Errorf("invalid length, must be 3, 6 or 8")
	}
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return c, nil
}

// RGBAToHex is the inverse of HexToRGBA. The alpha component is omitted when opaque.
func RGBAToHex(c color.NRGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Contains returns true if the slice contains the value v.
func Contains[T comparable](slice []T, v T) bool {
	for _, s := range slice {
		if s == v {
			return true
		}
	}
	return false
}
