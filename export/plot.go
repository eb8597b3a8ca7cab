package export

import (
	"fmt"
	"image/color"

	"github.com/esimov/colortrack"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	pathColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	vxColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	vyColor   = color.RGBA{R: 44, G: 160, B: 44, A: 255}
)

// SavePlot renders the path of the object in image coordinates. The y axis grows
// downwards like in the video. The format follows the file extension (png, svg, pdf).
func SavePlot(path string, traj *colortrack.Trajectory) error {
	p := plot.New()
	p.Title.Text = "Trajectory"
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	// A separate line for every run of consecutive detections, so gaps stay visible.
	for _, pts := range pathRuns(traj) {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("could not create the path line: %w", err)
		}
		line.Color = pathColor
		line.Width = vg.Points(1)
		p.Add(line)
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("could not save the plot: %w", err)
	}
	return nil
}

// SaveVelocityPlot renders both velocity components against the frame index.
func SaveVelocityPlot(path string, traj *colortrack.Trajectory) error {
	p := plot.New()
	p.Title.Text = "Velocity"
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = "Velocity (px/s)"
	p.Add(plotter.NewGrid())

	vx := make(plotter.XYs, traj.Len())
	vy := make(plotter.XYs, traj.Len())
	for i := 0; i < traj.Len(); i++ {
		tp := traj.At(i)
		vx[i] = plotter.XY{X: float64(i), Y: tp.VelocityX}
		vy[i] = plotter.XY{X: float64(i), Y: tp.VelocityY}
	}

	for _, s := range []struct {
		name  string
		pts   plotter.XYs
		color color.Color
	}{
		{"Velocity-x", vx, vxColor},
		{"Velocity-y", vy, vyColor},
	} {
		line, err := plotter.NewLine(s.pts)
		if err != nil {
			return fmt.Errorf("could not create the %s line: %w", s.name, err)
		}
		line.Color = s.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(s.name, line)
	}
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("could not save the plot: %w", err)
	}
	return nil
}

// pathRuns splits the positions into runs of consecutive detected frames.
// Runs of a single point are kept so isolated detections are still drawn.
func pathRuns(traj *colortrack.Trajectory) []plotter.XYs {
	var (
		runs []plotter.XYs
		cur  plotter.XYs
	)
	for i := 0; i < traj.Len(); i++ {
		pos := traj.At(i).Position
		if pos == nil {
			if len(cur) > 0 {
				runs = append(runs, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, plotter.XY{X: pos.X, Y: pos.Y})
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}
