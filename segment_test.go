package colortrack

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHSV_RGBToHSV(t *testing.T) {
	testCases := []struct {
		name    string
		r, g, b uint8
		want    HSV
	}{
		{"black", 0, 0, 0, HSV{0, 0, 0}},
		{"white", 255, 255, 255, HSV{0, 0, 255}},
		{"red", 255, 0, 0, HSV{0, 255, 255}},
		{"green", 0, 255, 0, HSV{60, 255, 255}},
		{"blue", 0, 0, 255, HSV{120, 255, 255}},
		{"yellow", 255, 255, 0, HSV{30, 255, 255}},
		{"gray", 128, 128, 128, HSV{0, 0, 128}},
		{"target", 200, 255, 50, HSV{38, 205, 255}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RGBToHSV(tc.r, tc.g, tc.b))
		})
	}
}

func TestHSV_RangeContainsIsInclusive(t *testing.T) {
	rng := DefaultProcessor().Range
	assert.True(t, rng.Contains(rng.Lower))
	assert.True(t, rng.Contains(rng.Upper))
	assert.False(t, rng.Contains(HSV{H: 9, S: 100, V: 250}))
	assert.False(t, rng.Contains(HSV{H: 50, S: 20, V: 250}))
	assert.False(t, rng.Contains(HSV{H: 50, S: 100, V: 247}))
	assert.NoError(t, rng.Validate())

	assert.Error(t, HSVRange{Lower: HSV{H: 90}, Upper: HSV{H: 80, S: 255, V: 255}}.Validate())
	assert.Error(t, HSVRange{Upper: HSV{H: 200}}.Validate())
}

func TestSegment_KernelSigma(t *testing.T) {
	assert.InDelta(t, 2.0, KernelSigma(11), 1e-9)
	assert.InDelta(t, 0.8, KernelSigma(3), 1e-9)
	assert.Zero(t, KernelSigma(1))
}

func TestSegment_MaskMatchesFrameSize(t *testing.T) {
	rng := DefaultProcessor().Range
	for _, size := range []image.Point{{1, 1}, {7, 3}, {64, 48}, {3, 90}} {
		frame := newFrame(size.X, size.Y, target)
		for _, sigma := range []float64{0, KernelSigma(11)} {
			m := Segment(frame, rng, sigma)
			assert.Equal(t, size.X, m.Width)
			assert.Equal(t, size.Y, m.Height)
			assert.Len(t, m.Pix, size.X*size.Y)
			assert.Equal(t, size.X*size.Y, m.Count())
		}
	}
}

func TestSegment_NoQualifyingPixels(t *testing.T) {
	m := Segment(newFrame(40, 30, gray), DefaultProcessor().Range, KernelSigma(11))
	assert.Zero(t, m.Count())
	assert.Equal(t, image.Rect(0, 0, 40, 30), m.Bounds())
}

func TestSegment_BlurShrinksTheBlob(t *testing.T) {
	frame := newFrame(100, 100, black)
	fillDisc(frame, 50, 50, 20, target)
	rng := DefaultProcessor().Range

	sharp := Segment(frame, rng, 0)
	blurred := Segment(frame, rng, KernelSigma(11))

	assert.True(t, sharp.At(50, 50))
	assert.True(t, blurred.At(50, 50))
	assert.True(t, sharp.At(70, 50))
	assert.False(t, blurred.At(70, 50))
	assert.Less(t, blurred.Count(), sharp.Count())
}
