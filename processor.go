package colortrack

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/esimov/colortrack/imop"
)

var _ Tracker = (*Processor)(nil)

// MaxDecodeErrors is the number of consecutive undecodable frames after which Track gives up.
const MaxDecodeErrors = 25

// Tracker is the interface implemented by the frame processing pipeline.
type Tracker interface {
	Detect(*image.NRGBA) (*Detection, *Mask)
	Track(context.Context, FrameSource, FrameSink) (*Trajectory, error)
}

// Processor options
type Processor struct {
	Range      HSVRange
	KernelSize int
	Iterations int
	StructElem StructElem
	Overlay    Overlay

	// Debug tints the segmentation mask over the output frames.
	Debug      bool
	DebugColor color.NRGBA
	BlendMode  string

	// OnFrame, when set, is called after every processed frame with its index.
	OnFrame func(frame int, tp TrackPoint)
}

// DefaultProcessor returns the reference configuration tuned for a bright yellow-green ball.
func DefaultProcessor() *Processor {
	return &Processor{
		Range: HSVRange{
			Lower: HSV{H: 10, S: 21, V: 248},
			Upper: HSV{H: 85, S: 255, V: 255},
		},
		KernelSize: 11,
		Iterations: 2,
		StructElem: Square3,
		Overlay:    DefaultOverlay(),
		DebugColor: color.NRGBA{R: 0xff, A: 0x7f},
		BlendMode:  imop.Normal,
	}
}

// Detect runs the detection stages over a single frame: segmentation, opening,
// blob extraction and estimation. The filtered mask is returned even when
// nothing was detected.
func (p *Processor) Detect(frame *image.NRGBA) (*Detection, *Mask) {
	se := p.StructElem
	if len(se) == 0 {
		se = Square3
	}
	mask := Segment(frame, p.Range, KernelSigma(p.KernelSize))
	mask = Open(mask, se, p.Iterations)

	region, ok := Largest(ExtractRegions(mask))
	if !ok {
		return nil, mask
	}
	det, ok := Estimate(region)
	if !ok {
		return nil, mask
	}
	return &det, mask
}

// ProcessFrame detects the object, appends the result to the trajectory
// and draws the overlay onto the frame in place.
func (p *Processor) ProcessFrame(frame *image.NRGBA, traj *Trajectory) (*Detection, TrackPoint) {
	det, mask := p.Detect(frame)
	tp := traj.Record(det)

	if p.Debug {
		// An unknown blend mode is rejected by Track; here the mask is tinted without blending.
		blend, _ := p.blend()
		p.tintMask(frame, mask, blend)
	}
	p.Overlay.Draw(frame, det, traj)
	return det, tp
}

// Track consumes the frame source until it is exhausted or ctx is cancelled,
// handing every annotated frame to the sink. The interrupt is polled once per frame.
//
// When not even the first frame can be decoded ErrUnreadableSource is returned and nothing
// is written. A later decoding error is recorded as a frame without detection, unless
// MaxDecodeErrors frames in a row fail: the run then stops with ErrStalledSource.
// On cancellation the trajectory accumulated so far is returned together with ErrInterrupted.
func (p *Processor) Track(ctx context.Context, src FrameSource, sink FrameSink) (*Trajectory, error) {
	if p.Debug {
		if _, err := p.blend(); err != nil {
			return nil, err
		}
	}
	if sink == nil {
		sink = Discard
	}
	traj := NewTrajectory(src.FPS())
	var failed int

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return traj, fmt.Errorf("%w after %d frames: %v", ErrInterrupted, traj.Len(), context.Cause(ctx))
		default:
		}

		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			return traj, nil
		}
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("%w: %v", ErrUnreadableSource, err)
			}
			if failed++; failed >= MaxDecodeErrors {
				return traj, fmt.Errorf("%w: %d frames in a row: %v", ErrStalledSource, failed, err)
			}
			p.notify(i, traj.Record(nil))
			continue
		}
		failed = 0

		frame := ToNRGBA(img)
		_, tp := p.ProcessFrame(frame, traj)
		if err := sink.Write(frame); err != nil {
			return traj, fmt.Errorf("could not write frame %d: %w", i, err)
		}
		p.notify(i, tp)
	}
}

func (p *Processor) notify(i int, tp TrackPoint) {
	if p.OnFrame != nil {
		p.OnFrame(i, tp)
	}
}

// blend returns the blend mode used for the debug tint.
func (p *Processor) blend() (*imop.Blend, error) {
	if p.BlendMode == "" {
		return nil, nil
	}
	blend := imop.NewBlend()
	if err := blend.Set(p.BlendMode); err != nil {
		return nil, err
	}
	return blend, nil
}

// tintMask composites the foreground pixels of the mask over the frame
// using the debug color and the blend mode. A nil blend composites the plain color.
func (p *Processor) tintMask(frame *image.NRGBA, mask *Mask, blend *imop.Blend) {
	b := frame.Bounds()
	tint := image.NewNRGBA(b)
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.At(x, y) {
				tint.SetNRGBA(b.Min.X+x, b.Min.Y+y, p.DebugColor)
			}
		}
	}

	bmp := imop.InitOp().Draw(nil, tint, frame, blend)
	draw.Draw(frame, b, bmp.Img, b.Min, draw.Src)
}
