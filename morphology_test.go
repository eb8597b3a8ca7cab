package colortrack

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMorphology_OpenRemovesNoise(t *testing.T) {
	m := NewMask(60, 40)
	maskRect(m, image.Rect(10, 10, 30, 30))
	m.Set(45, 5, true)
	m.Set(50, 30, true)
	maskRect(m, image.Rect(40, 20, 42, 22))

	opened := Open(m, Square3, 2)
	assert.False(t, opened.At(45, 5))
	assert.False(t, opened.At(50, 30))
	assert.False(t, opened.At(40, 20))
	assert.Equal(t, 400, opened.Count())
	assert.True(t, opened.At(10, 10))
	assert.True(t, opened.At(29, 29))
}

func TestMorphology_OpenIsIdempotent(t *testing.T) {
	m := discMask(80, 80, 40, 40, 15)
	maskRect(m, image.Rect(2, 60, 20, 75))
	m.Set(70, 5, true)
	m.Set(71, 6, true)

	for _, se := range []StructElem{Square3, Cross3} {
		for n := 1; n <= 3; n++ {
			once := Open(m, se, n)
			twice := Open(once, se, n)
			assert.True(t, once.Equal(twice), "opening with %d iterations is not stable", n)
		}
	}
}

func TestMorphology_DoesNotMutateInput(t *testing.T) {
	m := discMask(30, 30, 15, 15, 6)
	orig := m.Clone()

	Erode(m, Square3, 2)
	Dilate(m, Square3, 2)
	Close(m, Cross3, 1)
	assert.True(t, orig.Equal(m))
}

func TestMorphology_BorderIsNeutral(t *testing.T) {
	m := NewMask(10, 10)
	maskRect(m, image.Rect(0, 0, 5, 10))

	eroded := Erode(m, Square3, 1)
	// The left column touches the frame edge and survives.
	assert.True(t, eroded.At(0, 5))
	// The right column touches the background and is removed.
	assert.False(t, eroded.At(4, 5))

	dilated := Dilate(m, Square3, 1)
	assert.True(t, dilated.At(5, 0))
	assert.False(t, dilated.At(6, 0))
}

func TestMorphology_ZeroIterations(t *testing.T) {
	m := discMask(20, 20, 10, 10, 1)
	assert.True(t, Open(m, Square3, 0).Equal(m))
	assert.NotSame(t, m, Open(m, Square3, 0))
}
