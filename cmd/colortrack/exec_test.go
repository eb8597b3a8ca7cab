package main

import (
	"bytes"
	"context"
	"image"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/esimov/colortrack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptySource struct{}

func (emptySource) Next() (image.Image, error) { return nil, io.EOF }
func (emptySource) FPS() float64               { return 25 }
func (emptySource) Size() image.Point          { return image.Pt(8, 6) }
func (emptySource) Close() error               { return nil }

func TestExec_SinkCreatedOnFirstFrame(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "frames")
	op := &Ops{Dst: dst}

	_, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	sink, err := op.openSink(emptySource{}, cancel)
	require.NoError(t, err)
	assert.NoDirExists(t, dst)

	require.NoError(t, sink.Write(image.NewNRGBA(image.Rect(0, 0, 8, 6))))
	require.NoError(t, sink.Close())
	assert.FileExists(t, filepath.Join(dst, "frame_00000.png"))
}

func TestExec_UnreadableSourceLeavesNoOutput(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "frames")
	op := &Ops{Dst: dst}

	_, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	sink, err := op.openSink(emptySource{}, cancel)
	require.NoError(t, err)
	require.NoError(t, sink.Close())
	assert.NoDirExists(t, dst)
}

func TestExec_RejectsImageDestination(t *testing.T) {
	op := &Ops{Dst: filepath.Join(t.TempDir(), "out.png")}
	_, err := op.openSink(emptySource{}, func(error) {})
	assert.Error(t, err)
}

func TestExec_PrintSummary(t *testing.T) {
	p := colortrack.DefaultProcessor()
	p.Debug = true
	p.BlendMode = "screen"

	var buf bytes.Buffer
	printSummary(&buf, p, colortrack.NewTrajectory(30), time.Second)

	out := buf.String()
	assert.Contains(t, out, "(10,21,248) - (85,255,255)")
	assert.Contains(t, out, "circle #000000")
	assert.Contains(t, out, "Debug mask tint: #ff00007f")
	assert.Contains(t, out, `"screen"`)
}
