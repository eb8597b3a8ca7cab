package colortrack

import (
	"errors"
	"image"
)

var (
	// ErrUnreadableSource is returned when not even the first frame can be decoded.
	ErrUnreadableSource = errors.New("unreadable frame source")
	// ErrStalledSource is returned when the source keeps failing to decode frames.
	ErrStalledSource = errors.New("frame source stalled")
	// ErrInterrupted is returned when the run was stopped before the source was exhausted.
	// The trajectory accumulated until then is still returned alongside it.
	ErrInterrupted = errors.New("tracking interrupted")
)

// FrameSource delivers the frames of a finite, non-restartable stream.
// Next returns io.EOF once the stream is exhausted. Frame rate and size are
// known before the first call to Next.
type FrameSource interface {
	Next() (image.Image, error)
	FPS() float64
	Size() image.Point
	Close() error
}

// FrameSink consumes the annotated frames in the order they were produced.
type FrameSink interface {
	Write(frame *image.NRGBA) error
	Close() error
}

// Discard is a FrameSink dropping every frame.
var Discard FrameSink = discard{}

type discard struct{}

func (discard) Write(*image.NRGBA) error { return nil }
func (discard) Close() error             { return nil }

type multiSink []FrameSink

// MultiSink duplicates the frames to all the provided sinks, like io.MultiWriter.
// Nil sinks are skipped.
func MultiSink(sinks ...FrameSink) FrameSink {
	var ms multiSink
	for _, s := range sinks {
		if s != nil {
			ms = append(ms, s)
		}
	}
	return ms
}

func (ms multiSink) Write(frame *image.NRGBA) error {
	for _, s := range ms {
		if err := s.Write(frame); err != nil {
			return err
		}
	}
	return nil
}

func (ms multiSink) Close() error {
	var errs []error
	for _, s := range ms {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LazySink defers opening the sink until the first frame is written, so that
// a source failing on its first frame leaves no output behind.
// Close is a no-op when no frame was ever written.
func LazySink(open func() (FrameSink, error)) FrameSink {
	return &lazySink{open: open}
}

type lazySink struct {
	open func() (FrameSink, error)
	sink FrameSink
}

func (ls *lazySink) Write(frame *image.NRGBA) error {
	if ls.sink == nil {
		s, err := ls.open()
		if err != nil {
			return err
		}
		ls.sink = s
	}
	return ls.sink.Write(frame)
}

func (ls *lazySink) Close() error {
	if ls.sink == nil {
		return nil
	}
	return ls.sink.Close()
}
