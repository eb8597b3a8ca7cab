package export

import (
	"fmt"
	"io"

	"github.com/esimov/colortrack"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteChart renders an interactive HTML page with the path of the object
// and its velocity over time.
func WriteChart(w io.Writer, title string, traj *colortrack.Trajectory) error {
	sum := traj.Summary()
	subtitle := fmt.Sprintf("frames=%d detected=%d fps=%g", sum.Frames, sum.Detected, traj.FPS())

	path := make([]opts.ScatterData, 0, sum.Detected)
	frames := make([]int, traj.Len())
	vx := make([]opts.LineData, traj.Len())
	vy := make([]opts.LineData, traj.Len())
	for i := 0; i < traj.Len(); i++ {
		tp := traj.At(i)
		frames[i] = i
		vx[i] = opts.LineData{Value: tp.VelocityX}
		vy[i] = opts.LineData{Value: tp.VelocityY}
		if tp.Position != nil {
			path = append(path, opts.ScatterData{Value: []interface{}{tp.Position.X, tp.Position.Y, i}})
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "900px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (px)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("position", path, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Velocity",
			Subtitle: fmt.Sprintf("mean=%.1f px/s max=%.1f px/s", sum.MeanSpeed, sum.MaxSpeed),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)
	line.SetXAxis(frames).
		AddSeries("Velocity-x", vx).
		AddSeries("Velocity-y", vy)

	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(scatter, line)

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}
