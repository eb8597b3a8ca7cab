// Package video adapts OpenCV video capture, encoding and display
// to the frame source and sink contracts of the tracker.
package video

import (
	"fmt"
	"image"
	"io"

	"gocv.io/x/gocv"
)

// matReader grabs and decodes the next frame into the matrix.
type matReader interface {
	Read(m *gocv.Mat) bool
}

// Capture is a frame source reading a video file or a stream URL.
type Capture struct {
	vc   *gocv.VideoCapture
	src  matReader
	path string
	buf  gocv.Mat
	read int
	fps  float64
	size image.Point
}

// Open opens the video and reads its frame rate and dimensions.
func Open(path string) (*Capture, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open the video %q: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("could not open the video %q", path)
	}

	return &Capture{
		vc:   vc,
		src:  vc,
		path: path,
		buf:  gocv.NewMat(),
		fps:  vc.Get(gocv.VideoCaptureFPS),
		size: image.Pt(
			int(vc.Get(gocv.VideoCaptureFrameWidth)),
			int(vc.Get(gocv.VideoCaptureFrameHeight)),
		),
	}, nil
}

// Next decodes the next frame. It returns io.EOF once the capture runs dry.
// A video whose first frame cannot be read is reported as an error instead,
// since an opened container yielding no frame at all is broken, not exhausted.
func (c *Capture) Next() (image.Image, error) {
	if ok := c.src.Read(&c.buf); !ok || c.buf.Empty() {
		if c.read == 0 {
			return nil, fmt.Errorf("could not read the first frame of %q", c.path)
		}
		return nil, io.EOF
	}
	c.read++

	img, err := c.buf.ToImage()
	if err != nil {
		return nil, fmt.Errorf("could not decode the frame: %w", err)
	}
	return img, nil
}

// FPS returns the frame rate reported by the container.
func (c *Capture) FPS() float64 { return c.fps }

// Size returns the frame dimensions.
func (c *Capture) Size() image.Point { return c.size }

// Close releases the capture.
func (c *Capture) Close() error {
	if err := c.buf.Close(); err != nil {
		return err
	}
	if c.vc == nil {
		return nil
	}
	return c.vc.Close()
}

// Writer encodes the annotated frames into a video file.
type Writer struct {
	vw *gocv.VideoWriter
}

// Codec is the FourCC of the encoded output.
const Codec = "mp4v"

// Create opens the output video with the given frame rate and dimensions.
func Create(path string, fps float64, size image.Point) (*Writer, error) {
	vw, err := gocv.VideoWriterFile(path, Codec, fps, size.X, size.Y, true)
	if err != nil {
		return nil, fmt.Errorf("could not create the video %q: %w", path, err)
	}
	return &Writer{vw: vw}, nil
}

// Write encodes a single frame.
func (w *Writer) Write(frame *image.NRGBA) error {
	mat, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return fmt.Errorf("could not convert the frame: %w", err)
	}
	defer mat.Close()

	return w.vw.Write(mat)
}

// Close flushes and closes the video file.
func (w *Writer) Close() error {
	return w.vw.Close()
}
