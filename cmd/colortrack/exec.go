package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/esimov/colortrack"
	"github.com/esimov/colortrack/export"
	"github.com/esimov/colortrack/imgseq"
	"github.com/esimov/colortrack/utils"
	"github.com/esimov/colortrack/video"
	"golang.org/x/term"
)

// defaultFPS is used when neither the source nor the user supply a frame rate.
const defaultFPS = 30

// Ops holds the input and output locations of a tracking run.
type Ops struct {
	Src, Dst string
	CSV, DB  string
	Plot     string
	Chart    string
	PipeName string
	FPS      float64
	Preview  bool
}

// withFPS overrides the frame rate reported by a source.
type withFPS struct {
	colortrack.FrameSource
	fps float64
}

func (s withFPS) FPS() float64 { return s.fps }

// Execute runs the tracker over the source and exports the resulting trajectory.
// An interrupted run still exports everything tracked until the interruption.
func Execute(p *colortrack.Processor, op *Ops) error {
	spinner := utils.NewSpinner(fmt.Sprintf("%s %s",
		utils.DecorateText("⚡ COLORTRACK", utils.StatusMessage),
		utils.DecorateText("⇢ tracking the object...", utils.DefaultMessage),
	), time.Millisecond*80, true)

	srcPath := op.Src
	// Check if the source path is a local file or URL.
	if utils.IsValidUrl(srcPath) {
		f, err := utils.DownloadFile(srcPath)
		if f != nil {
			defer os.Remove(f.Name())
			f.Close()
		}
		if err != nil {
			return fmt.Errorf("failed to download the source: %w", err)
		}
		srcPath = f.Name()
	}

	src, err := openSource(srcPath, op.FPS)
	if err != nil {
		return err
	}
	defer src.Close()

	// CTRL-C stops the tracking, the frames processed so far are still exported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	sink, err := op.openSink(src, cancel)
	if err != nil {
		return err
	}

	now := time.Now()
	p.OnFrame = func(i int, tp colortrack.TrackPoint) {
		state := utils.DecorateText("lost", utils.LostMessage)
		if tp.Position != nil {
			state = utils.DecorateText(fmt.Sprintf("at (%.0f, %.0f)", tp.Position.X, tp.Position.Y), utils.DetectedMessage)
		}
		spinner.Message(fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ COLORTRACK", utils.StatusMessage),
			utils.DecorateText(fmt.Sprintf("⇢ frame %d, object", i+1), utils.DefaultMessage),
			state,
		))
	}

	spinner.Start()
	traj, err := p.Track(ctx, src, sink)
	if cerr := sink.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("could not close the output: %w", cerr)
	}

	switch {
	case errors.Is(err, colortrack.ErrUnreadableSource):
		spinner.StopMsg = utils.DecorateText("tracking failed ✘", utils.ErrorMessage)
		spinner.Stop()
		return err
	case errors.Is(err, colortrack.ErrStalledSource):
		spinner.StopMsg = utils.DecorateText("the source stopped decoding, exporting the partial trajectory...", utils.ErrorMessage)
	case errors.Is(err, colortrack.ErrInterrupted):
		spinner.StopMsg = utils.DecorateText("tracking interrupted, exporting the partial trajectory...", utils.StatusMessage)
		err = nil
	case err != nil:
		spinner.StopMsg = utils.DecorateText("tracking stopped on error, exporting the partial trajectory...", utils.ErrorMessage)
	default:
		spinner.StopMsg = fmt.Sprintf("%s %s %s",
			utils.DecorateText("⚡ COLORTRACK", utils.StatusMessage),
			utils.DecorateText("⇢", utils.DefaultMessage),
			utils.DecorateText("the video has been processed successfully ✔", utils.SuccessMessage),
		)
	}
	spinner.Stop()

	elapsed := time.Since(now)
	if xerr := op.export(traj); xerr != nil {
		return errors.Join(err, xerr)
	}
	printSummary(os.Stderr, p, traj, elapsed)

	return err
}

// openSource selects the frame source: a directory of images or a video.
func openSource(path string, fps float64) (colortrack.FrameSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load the source: %w", err)
	}

	if fi.IsDir() {
		if fps <= 0 {
			fps = defaultFPS
		}
		return imgseq.NewSource(path, fps)
	}

	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the source: %w", err)
	}
	// Some containers (e.g. mkv) are not sniffed, only reject what is certainly not a video.
	if strings.HasPrefix(ctype, "text/") {
		return nil, fmt.Errorf("%s: unsupported content type %s", filepath.Base(path), ctype)
	}

	capture, err := video.Open(path)
	if err != nil {
		return nil, err
	}
	if capture.FPS() <= 0 {
		if fps <= 0 {
			fps = defaultFPS
		}
		return withFPS{FrameSource: capture, fps: fps}, nil
	}
	return capture, nil
}

// openSink assembles the outputs: the annotated video or frame directory and the preview window.
// The destination is validated up front but only created once the first frame is written.
func (op *Ops) openSink(src colortrack.FrameSource, cancel context.CancelCauseFunc) (colortrack.FrameSink, error) {
	var sinks []colortrack.FrameSink

	if op.Dst != "" {
		fps := src.FPS()
		if op.FPS > 0 {
			fps = op.FPS
		}
		switch ext := strings.ToLower(filepath.Ext(op.Dst)); ext {
		case "":
			sinks = append(sinks, colortrack.LazySink(func() (colortrack.FrameSink, error) {
				s, err := imgseq.NewSink(op.Dst, ".png")
				if err != nil {
					return nil, err
				}
				return s, nil
			}))
		case ".png", ".jpg", ".jpeg", ".bmp":
			return nil, fmt.Errorf("%v: use a directory to export the frames as images", op.Dst)
		default:
			size := src.Size()
			if size == (image.Point{}) {
				return nil, errors.New("unknown frame size, cannot create the output video")
			}
			sinks = append(sinks, colortrack.LazySink(func() (colortrack.FrameSink, error) {
				w, err := video.Create(op.Dst, fps, size)
				if err != nil {
					return nil, err
				}
				return w, nil
			}))
		}
	}
	if op.Preview {
		sinks = append(sinks, colortrack.LazySink(func() (colortrack.FrameSink, error) {
			return video.NewWindow("Frame", cancel), nil
		}))
	}
	if len(sinks) == 0 {
		return colortrack.Discard, nil
	}
	return colortrack.MultiSink(sinks...), nil
}

// export writes the trajectory to every requested destination.
func (op *Ops) export(traj *colortrack.Trajectory) error {
	if op.CSV != "" {
		if err := op.exportCSV(traj); err != nil {
			return fmt.Errorf("could not export the CSV: %w", err)
		}
	}
	if op.DB != "" {
		store, err := export.OpenStore(op.DB)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.SaveRun(context.Background(), op.Src, traj)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Run stored as: %s\n", utils.DecorateText(id, utils.SuccessMessage))
	}
	if op.Plot != "" {
		if err := export.SavePlot(op.Plot, traj); err != nil {
			return err
		}
		ext := filepath.Ext(op.Plot)
		velPath := strings.TrimSuffix(op.Plot, ext) + "_velocity" + ext
		if err := export.SaveVelocityPlot(velPath, traj); err != nil {
			return err
		}
	}
	if op.Chart != "" {
		f, err := os.Create(op.Chart)
		if err != nil {
			return fmt.Errorf("unable to create the chart file: %w", err)
		}
		if err := export.WriteChart(f, filepath.Base(op.Src), traj); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func (op *Ops) exportCSV(traj *colortrack.Trajectory) error {
	// Check if the destination is a pipe name or a regular file.
	if op.CSV == op.PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return export.WriteCSV(os.Stdout, traj)
	}

	f, err := os.Create(op.CSV)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("could not close the opened file: %v", err)
		}
	}()
	return export.WriteCSV(f, traj)
}

// printSummary displays the relevant information about the tracking process.
func printSummary(w io.Writer, p *colortrack.Processor, traj *colortrack.Trajectory, elapsed time.Duration) {
	s := traj.Summary()
	fmt.Fprintf(w, "\nTracked HSV range: %v - %v, circle %s, path %s\n",
		p.Range.Lower, p.Range.Upper,
		utils.RGBAToHex(p.Overlay.CircleColor),
		utils.RGBAToHex(p.Overlay.LineColor),
	)
	if p.Debug {
		fmt.Fprintf(w, "Debug mask tint: %s, blend mode: %q\n", utils.RGBAToHex(p.DebugColor), p.BlendMode)
	}
	fmt.Fprintf(w, "Frames: %s, object detected in %s\n",
		utils.DecorateText(fmt.Sprint(s.Frames), utils.SuccessMessage),
		utils.DecorateText(fmt.Sprint(s.Detected), utils.SuccessMessage),
	)
	if s.Detected > 1 {
		fmt.Fprintf(w, "Path length: %.1f px, mean speed: %.1f px/s, max speed: %.1f px/s\n",
			s.PathLength, s.MeanSpeed, s.MaxSpeed)
	}
	fmt.Fprintf(w, "\nExecution time: %s (%s)\n",
		utils.DecorateText(utils.FormatTime(elapsed), utils.SuccessMessage),
		utils.FormatRate(s.Frames, elapsed),
	)
}
