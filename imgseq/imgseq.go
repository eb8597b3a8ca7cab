// Package imgseq reads and writes frame sequences stored as still images in a directory.
package imgseq

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/esimov/colortrack/utils"
	"golang.org/x/image/bmp"
)

// Extensions lists the supported image file extensions.
var Extensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tif", ".tiff"}

// ErrEmptyDir is returned when the directory holds no supported image.
var ErrEmptyDir = errors.New("no image files found")

// Source delivers the images of a directory in lexical order of their names.
type Source struct {
	paths []string
	next  int
	fps   float64
	size  image.Point
}

// NewSource lists the images of dir. The size of the sequence is read from the first image;
// the frame rate is supplied by the caller since still images carry none.
func NewSource(dir string, fps float64) (*Source, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("invalid frame rate: %v", fps)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read the directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if utils.Contains(Extensions, strings.ToLower(filepath.Ext(e.Name()))) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrEmptyDir)
	}
	sort.Strings(paths)

	s := &Source{paths: paths, fps: fps}
	if f, err := os.Open(paths[0]); err == nil {
		if cfg, _, err := image.DecodeConfig(f); err == nil {
			s.size = image.Pt(cfg.Width, cfg.Height)
		}
		f.Close()
	}
	return s, nil
}

// Next decodes the next image. A file that cannot be decoded is reported with its
// error but does not stop the sequence.
func (s *Source) Next() (image.Image, error) {
	if s.next >= len(s.paths) {
		return nil, io.EOF
	}
	path := s.paths[s.next]
	s.next++

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

// Len returns the number of images in the sequence.
func (s *Source) Len() int { return len(s.paths) }

// FPS returns the frame rate of the sequence.
func (s *Source) FPS() float64 { return s.fps }

// Size returns the dimensions of the first image.
func (s *Source) Size() image.Point { return s.size }

// Close is a no-op; files are closed as soon as they are decoded.
func (s *Source) Close() error { return nil }

// Sink writes every frame as a numbered image file.
type Sink struct {
	dir   string
	ext   string
	count int
}

// NewSink creates the destination directory if needed. The format is
// selected by ext: ".png", ".jpg" or ".bmp".
func NewSink(dir, ext string) (*Sink, error) {
	ext = strings.ToLower(ext)
	if !utils.Contains([]string{".png", ".jpg", ".jpeg", ".bmp"}, ext) {
		return nil, fmt.Errorf("%v file type not supported", ext)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the destination directory: %w", err)
	}
	return &Sink{dir: dir, ext: ext}, nil
}

// Write stores the frame as frame_00000<ext>, numbering from zero.
func (s *Sink) Write(frame *image.NRGBA) error {
	name := filepath.Join(s.dir, fmt.Sprintf("frame_%05d%s", s.count, s.ext))
	s.count++

	if s.ext == ".bmp" {
		f, err := os.Create(name)
		if err != nil {
			return fmt.Errorf("unable to create the frame file: %w", err)
		}
		if err := bmp.Encode(f, frame); err != nil {
			f.Close()
			return fmt.Errorf("could not encode %s: %w", filepath.Base(name), err)
		}
		return f.Close()
	}
	if err := imaging.Save(frame, name); err != nil {
		return fmt.Errorf("could not save %s: %w", filepath.Base(name), err)
	}
	return nil
}

// Count returns the number of frames written so far.
func (s *Sink) Count() int { return s.count }

// Close is a no-op.
func (s *Sink) Close() error { return nil }
