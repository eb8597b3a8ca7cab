package imgseq

import (
	"errors"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	return imaging.New(w, h, c)
}

func TestSink_WritesNumberedFrames(t *testing.T) {
	for _, ext := range []string{".png", ".bmp"} {
		t.Run(ext, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "out")
			sink, err := NewSink(dir, ext)
			require.NoError(t, err)

			for i := 0; i < 3; i++ {
				require.NoError(t, sink.Write(solid(8, 6, color.NRGBA{R: uint8(i * 50), A: 255})))
			}
			require.NoError(t, sink.Close())
			assert.Equal(t, 3, sink.Count())

			for _, name := range []string{"frame_00000", "frame_00001", "frame_00002"} {
				_, err := os.Stat(filepath.Join(dir, name+ext))
				assert.NoError(t, err)
			}
		})
	}
}

func TestSink_UnsupportedExtension(t *testing.T) {
	_, err := NewSink(t.TempDir(), ".webp")
	assert.Error(t, err)
}

func TestSource_ReadsSortedSequence(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewSink(dir, ".png")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		require.NoError(t, sink.Write(solid(10, 4, color.NRGBA{R: uint8(i * 100), A: 255})))
	}
	// Not an image, must be skipped.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	src, err := NewSource(dir, 25)
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, 3, src.Len())
	assert.Equal(t, 25.0, src.FPS())
	assert.Equal(t, image.Pt(10, 4), src.Size())

	for i := 0; i < 3; i++ {
		img, err := src.Next()
		require.NoError(t, err)
		r, _, _, _ := img.At(0, 0).RGBA()
		assert.Equal(t, uint32(i*100), r>>8)
	}
	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_CorruptFileIsReportedButNotFatal(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, imaging.Save(solid(4, 4, color.NRGBA{A: 255}), filepath.Join(dir, "a.png")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), []byte("garbage"), 0644))
	require.NoError(t, imaging.Save(solid(4, 4, color.NRGBA{A: 255}), filepath.Join(dir, "c.png")))

	src, err := NewSource(dir, 10)
	require.NoError(t, err)

	_, err = src.Next()
	assert.NoError(t, err)
	_, err = src.Next()
	assert.Error(t, err)
	assert.False(t, errors.Is(err, io.EOF))
	_, err = src.Next()
	assert.NoError(t, err)
	_, err = src.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSource_Errors(t *testing.T) {
	_, err := NewSource(t.TempDir(), 30)
	assert.ErrorIs(t, err, ErrEmptyDir)

	_, err = NewSource(t.TempDir(), 0)
	assert.Error(t, err)

	_, err = NewSource(filepath.Join(t.TempDir(), "missing"), 30)
	assert.Error(t, err)
}
