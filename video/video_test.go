package video

import (
	"errors"
	"image"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

// stubReader yields n gray frames, then runs dry.
type stubReader struct {
	n int
}

func (r *stubReader) Read(m *gocv.Mat) bool {
	if r.n <= 0 {
		return false
	}
	r.n--
	frame := gocv.NewMatWithSize(4, 6, gocv.MatTypeCV8UC3)
	defer frame.Close()
	frame.SetTo(gocv.NewScalar(100, 100, 100, 0))
	frame.CopyTo(m)
	return true
}

func newStubCapture(frames int) *Capture {
	return &Capture{
		src:  &stubReader{n: frames},
		path: "stub.mp4",
		buf:  gocv.NewMat(),
		fps:  25,
		size: image.Pt(6, 4),
	}
}

func TestCapture_ReadsUntilExhausted(t *testing.T) {
	c := newStubCapture(2)
	defer c.Close()

	for i := 0; i < 2; i++ {
		img, err := c.Next()
		require.NoError(t, err)
		assert.Equal(t, image.Pt(6, 4), img.Bounds().Size())
	}
	_, err := c.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCapture_UnreadableFirstFrame(t *testing.T) {
	c := newStubCapture(0)
	defer c.Close()

	_, err := c.Next()
	require.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))
	assert.Contains(t, err.Error(), "first frame")
}
