package colortrack

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/esimov/colortrack/imop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource replays prepared frames; a nil frame yields a decoding error.
type fakeSource struct {
	frames []image.Image
	next   int
}

var errDecode = errors.New("corrupt frame")

func (s *fakeSource) Next() (image.Image, error) {
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	f := s.frames[s.next]
	s.next++
	if f == nil {
		return nil, errDecode
	}
	return f, nil
}

func (s *fakeSource) FPS() float64      { return 30 }
func (s *fakeSource) Size() image.Point { return image.Pt(200, 100) }
func (s *fakeSource) Close() error      { return nil }

type recordSink struct {
	frames []*image.NRGBA
}

func (s *recordSink) Write(frame *image.NRGBA) error {
	s.frames = append(s.frames, frame)
	return nil
}

func (s *recordSink) Close() error { return nil }

// movingBall returns n frames with a ball of radius 20 moving +5px per frame.
func movingBall(n int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		f := newFrame(200, 100, black)
		fillDisc(f, 50+5*i, 50, 20, target)
		frames[i] = f
	}
	return frames
}

func TestProcessor_MovingBall(t *testing.T) {
	p := DefaultProcessor()
	sink := &recordSink{}

	traj, err := p.Track(context.Background(), &fakeSource{frames: movingBall(5)}, sink)
	require.NoError(t, err)
	require.Equal(t, 5, traj.Len())
	assert.Len(t, sink.frames, 5)

	for i := 0; i < traj.Len(); i++ {
		tp := traj.At(i)
		require.NotNil(t, tp.Position, "frame %d", i)
		assert.InDelta(t, 50, tp.Position.Y, 1e-6)
		if i > 0 {
			assert.Greater(t, tp.Position.X, traj.At(i-1).Position.X)
			assert.InDelta(t, 150, tp.VelocityX, 1e-6)
			assert.InDelta(t, 0, tp.VelocityY, 1e-6)
		}
	}
	assert.Zero(t, traj.At(0).VelocityX)
}

func TestProcessor_Detect(t *testing.T) {
	p := DefaultProcessor()

	frame := newFrame(200, 100, black)
	fillDisc(frame, 60, 40, 20, target)
	fillDisc(frame, 150, 60, 12, target)

	det, mask := p.Detect(frame)
	require.NotNil(t, det)
	assert.Equal(t, 200, mask.Width)
	assert.Equal(t, 100, mask.Height)
	assert.InDelta(t, 60, det.Center.X, 1e-6)
	assert.InDelta(t, 40, det.Center.Y, 1e-6)
	assert.True(t, det.Visible(p.Overlay.MinRadius))

	// Specks smaller than the opening kernel are filtered out.
	noise := newFrame(50, 50, black)
	noise.SetNRGBA(10, 10, target)
	det, mask = p.Detect(noise)
	assert.Nil(t, det)
	assert.Zero(t, mask.Count())
}

func TestProcessor_NoDetectionLeavesFrameUntouched(t *testing.T) {
	p := DefaultProcessor()
	frame := newFrame(80, 60, gray)
	orig := bytes.Clone(frame.Pix)

	traj := NewTrajectory(30)
	det, tp := p.ProcessFrame(frame, traj)
	assert.Nil(t, det)
	assert.Nil(t, tp.Position)
	assert.Zero(t, tp.VelocityX)
	assert.Zero(t, tp.VelocityY)
	assert.Equal(t, 1, traj.Len())
	assert.Equal(t, orig, frame.Pix)
}

func TestProcessor_DebugTintsTheMask(t *testing.T) {
	p := DefaultProcessor()
	p.Debug = true
	require.NoError(t, imop.NewBlend().Set(p.BlendMode))

	frame := newFrame(100, 100, black)
	fillDisc(frame, 50, 50, 20, target)
	p.ProcessFrame(frame, NewTrajectory(30))

	c := frame.NRGBAAt(50, 50)
	assert.Greater(t, c.R, target.R)
	assert.Less(t, c.G, target.G)
	assert.Equal(t, black, frame.NRGBAAt(5, 5))
}

func TestProcessor_UnreadableFirstFrame(t *testing.T) {
	sink := &recordSink{}
	src := &fakeSource{frames: append([]image.Image{nil}, movingBall(2)...)}

	traj, err := DefaultProcessor().Track(context.Background(), src, sink)
	assert.ErrorIs(t, err, ErrUnreadableSource)
	assert.Nil(t, traj)
	assert.Empty(t, sink.frames)
}

func TestProcessor_LaterDecodeErrorIsNoDetection(t *testing.T) {
	frames := movingBall(4)
	frames[2] = nil

	var seen []int
	p := DefaultProcessor()
	p.OnFrame = func(i int, _ TrackPoint) { seen = append(seen, i) }

	sink := &recordSink{}
	traj, err := p.Track(context.Background(), &fakeSource{frames: frames}, sink)
	require.NoError(t, err)
	require.Equal(t, 4, traj.Len())
	assert.Len(t, sink.frames, 3)
	assert.Equal(t, []int{0, 1, 2, 3}, seen)

	assert.Nil(t, traj.At(2).Position)
	require.NotNil(t, traj.At(3).Position)
	assert.Zero(t, traj.At(3).VelocityX)
}

func TestProcessor_EmptySource(t *testing.T) {
	traj, err := DefaultProcessor().Track(context.Background(), &fakeSource{}, nil)
	require.NoError(t, err)
	assert.Zero(t, traj.Len())
}

func TestProcessor_Interrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := DefaultProcessor()
	p.OnFrame = func(i int, _ TrackPoint) {
		if i == 1 {
			cancel()
		}
	}

	traj, err := p.Track(ctx, &fakeSource{frames: movingBall(5)}, Discard)
	assert.ErrorIs(t, err, ErrInterrupted)
	require.NotNil(t, traj)
	assert.Equal(t, 2, traj.Len())
}

func TestProcessor_MultiSink(t *testing.T) {
	a, b := &recordSink{}, &recordSink{}
	sink := MultiSink(a, nil, b)

	_, err := DefaultProcessor().Track(context.Background(), &fakeSource{frames: movingBall(3)}, sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Len(t, a.frames, 3)
	assert.Len(t, b.frames, 3)
}

func TestProcessor_InvalidBlendMode(t *testing.T) {
	p := DefaultProcessor()
	p.Debug = true
	p.BlendMode = "dodge"

	_, err := p.Track(context.Background(), &fakeSource{frames: movingBall(1)}, nil)
	assert.Error(t, err)

	// A single frame is still tinted, the configuration is left as it is.
	frame := newFrame(100, 100, black)
	fillDisc(frame, 50, 50, 20, target)
	p.ProcessFrame(frame, NewTrajectory(30))
	assert.Equal(t, "dodge", p.BlendMode)
	assert.NotEqual(t, target, frame.NRGBAAt(50, 50))
}

func TestProcessor_StalledSource(t *testing.T) {
	frames := movingBall(1)
	for i := 0; i < 2*MaxDecodeErrors; i++ {
		frames = append(frames, nil)
	}

	traj, err := DefaultProcessor().Track(context.Background(), &fakeSource{frames: frames}, nil)
	assert.ErrorIs(t, err, ErrStalledSource)
	require.NotNil(t, traj)
	assert.Equal(t, MaxDecodeErrors, traj.Len())
	assert.NotNil(t, traj.At(0).Position)
}

func TestProcessor_DecodeErrorsResetOnSuccess(t *testing.T) {
	var frames []image.Image
	for i := 0; i < 3; i++ {
		frames = append(frames, movingBall(1)...)
		for j := 0; j < MaxDecodeErrors-1; j++ {
			frames = append(frames, nil)
		}
	}

	traj, err := DefaultProcessor().Track(context.Background(), &fakeSource{frames: frames}, nil)
	require.NoError(t, err)
	assert.Equal(t, len(frames), traj.Len())
}

func TestProcessor_LazySink(t *testing.T) {
	var opened int
	rec := &recordSink{}
	open := func() (FrameSink, error) {
		opened++
		return rec, nil
	}

	sink := LazySink(open)
	src := &fakeSource{frames: append([]image.Image{nil}, movingBall(2)...)}
	_, err := DefaultProcessor().Track(context.Background(), src, sink)
	assert.ErrorIs(t, err, ErrUnreadableSource)
	require.NoError(t, sink.Close())
	assert.Zero(t, opened)

	sink = LazySink(open)
	_, err = DefaultProcessor().Track(context.Background(), &fakeSource{frames: movingBall(3)}, sink)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.Equal(t, 1, opened)
	assert.Len(t, rec.frames, 3)

	failing := LazySink(func() (FrameSink, error) { return nil, io.ErrClosedPipe })
	_, err = DefaultProcessor().Track(context.Background(), &fakeSource{frames: movingBall(1)}, failing)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
