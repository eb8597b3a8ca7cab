package colortrack

import (
	"image"

	"github.com/disintegration/imaging"
)

// KernelSigma returns the Gaussian standard deviation matching a k×k kernel
// whose variance is left for the library to choose.
func KernelSigma(k int) float64 {
	if k <= 1 {
		return 0
	}
	return 0.3*(float64(k-1)*0.5-1) + 0.8
}

// Segment smooths the frame with a Gaussian blur and marks every pixel whose HSV
// value lies inside rng as foreground. A non-positive sigma skips the blur.
// The returned mask always has the dimensions of the frame.
func Segment(frame *image.NRGBA, rng HSVRange, sigma float64) *Mask {
	src := frame
	if sigma > 0 {
		src = imaging.Blur(frame, sigma)
	}
	b := src.Bounds()
	mask := NewMask(b.Dx(), b.Dy())

	for y := 0; y < mask.Height; y++ {
		si := src.PixOffset(b.Min.X, b.Min.Y+y)
		mi := y * mask.Width
		for x := 0; x < mask.Width; x++ {
			c := RGBToHSV(src.Pix[si], src.Pix[si+1], src.Pix[si+2])
			if rng.Contains(c) {
				mask.Pix[mi] = Foreground
			}
			si += 4
			mi++
		}
	}
	return mask
}
