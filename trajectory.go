package colortrack

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Point is a real-valued position in frame pixel coordinates.
type Point struct {
	X, Y float64
}

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// TrackPoint is the state recorded for one processed frame.
// Position is nil when nothing was detected in that frame.
type TrackPoint struct {
	Position  *Point
	VelocityX float64
	VelocityY float64
}

// clone returns a copy not sharing the position with tp.
func (tp TrackPoint) clone() TrackPoint {
	if tp.Position != nil {
		pos := *tp.Position
		tp.Position = &pos
	}
	return tp
}

// Speed returns the velocity magnitude in pixels per second.
func (tp TrackPoint) Speed() float64 {
	return math.Hypot(tp.VelocityX, tp.VelocityY)
}

// Trajectory is the append-only sequence of track points, one per processed frame.
// Entries are never modified once recorded.
type Trajectory struct {
	fps    float64
	points []TrackPoint
}

// NewTrajectory creates an empty trajectory for a stream with the given frame rate.
func NewTrajectory(fps float64) *Trajectory {
	return &Trajectory{fps: fps}
}

// FPS returns the frame rate used for the velocity estimation.
func (t *Trajectory) FPS() float64 {
	return t.fps
}

// Len returns the number of frames recorded so far.
func (t *Trajectory) Len() int {
	return len(t.points)
}

// At returns a copy of the track point of frame i.
func (t *Trajectory) At(i int) TrackPoint {
	return t.points[i].clone()
}

// Record appends the result of the current frame. The velocity is the forward
// difference to the previous frame scaled by the frame rate, and is zero
// whenever this or the previous frame has no position.
func (t *Trajectory) Record(det *Detection) TrackPoint {
	var tp TrackPoint
	if det != nil {
		pos := det.Center
		tp.Position = &pos
		if n := len(t.points); n > 0 {
			if prev := t.points[n-1].Position; prev != nil {
				tp.VelocityX = (pos.X - prev.X) * t.fps
				tp.VelocityY = (pos.Y - prev.Y) * t.fps
			}
		}
	}
	t.points = append(t.points, tp)
	return tp.clone()
}

// Points returns a copy of the recorded track points.
func (t *Trajectory) Points() []TrackPoint {
	out := make([]TrackPoint, len(t.points))
	for i, tp := range t.points {
		out[i] = tp.clone()
	}
	return out
}

// Last returns the position of the most recent frame, false when that frame has none.
func (t *Trajectory) Last() (Point, bool) {
	if n := len(t.points); n > 0 && t.points[n-1].Position != nil {
		return *t.points[n-1].Position, true
	}
	return Point{}, false
}

// Summary aggregates a trajectory into a handful of figures.
type Summary struct {
	Frames      int
	Detected    int
	PathLength  float64 // pixels, summed over consecutive detected frames
	MeanSpeed   float64 // pixels per second
	MaxSpeed    float64
	SpeedStdDev float64
}

// Summary computes the trajectory statistics. Only frames whose velocity is defined,
// i.e. detected frames following a detected frame, contribute to the speed figures.
func (t *Trajectory) Summary() Summary {
	s := Summary{Frames: len(t.points)}

	var (
		speeds   []float64
		segments []float64
	)
	for i, tp := range t.points {
		if tp.Position == nil {
			continue
		}
		s.Detected++
		if i == 0 || t.points[i-1].Position == nil {
			continue
		}
		segments = append(segments, tp.Position.Dist(*t.points[i-1].Position))
		speeds = append(speeds, tp.Speed())
	}

	if len(segments) > 0 {
		s.PathLength = floats.Sum(segments)
	}
	if len(speeds) > 0 {
		s.MeanSpeed = stat.Mean(speeds, nil)
		s.MaxSpeed = floats.Max(speeds)
	}
	if len(speeds) > 1 {
		s.SpeedStdDev = stat.StdDev(speeds, nil)
	}
	return s
}
