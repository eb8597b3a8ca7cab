package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/esimov/colortrack"
	"github.com/esimov/colortrack/utils"
)

const HelpBanner = `
┌─┐┌─┐┬  ┌─┐┬─┐┌┬┐┬─┐┌─┐┌─┐┬┌─
│  │ ││  │ │├┬┘ │ ├┬┘├─┤│  ├┴┐
└─┘└─┘┴─┘└─┘┴└─ ┴ ┴└─┴ ┴└─┘┴ ┴

Colored object tracker.
    Version: %s

`

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	// Flags
	source      = flag.String("in", "", "Source video, stream URL or directory of frames")
	destination = flag.String("out", "", "Annotated video, or directory for the annotated frames")
	csvFile     = flag.String("csv", "output.csv", "Trajectory CSV (- for stdout)")
	dbFile      = flag.String("db", "", "SQLite database storing the runs")
	plotFile    = flag.String("plot", "", "Trajectory plot (png, svg or pdf)")
	chartFile   = flag.String("chart", "", "Interactive HTML chart of the trajectory")
	configFile  = flag.String("config", "", "JSON configuration file")
	fps         = flag.Float64("fps", 0, "Frame rate of an image directory source or of the output video")
	preview     = flag.Bool("preview", false, "Show the annotated frames (press q or ESC to stop)")
	debug       = flag.Bool("debug", false, "Tint the segmentation mask over the frames")
	lower       = flag.String("lower", "", "Lower HSV bound as h,s,v (default 10,21,248)")
	upper       = flag.String("upper", "", "Upper HSV bound as h,s,v (default 85,255,255)")
	iterations  = flag.Int("iter", -1, "Erosion and dilation iterations (default 2)")
	minRadius   = flag.Float64("radius", -1, "Minimum radius for drawing the circle (default 10)")
)

func init() {
	// The preview window must be driven from the main OS thread.
	runtime.LockOSThread()
}

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *source == "" {
		flag.Usage()
		log.Fatal(utils.DecorateText("\nPlease provide a source video with the -in flag!", utils.ErrorMessage))
	}

	proc := colortrack.DefaultProcessor()
	if *configFile != "" {
		cfg, err := colortrack.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf(
				utils.DecorateText("Failed to load the configuration: %v", utils.ErrorMessage),
				utils.DecorateText(err.Error(), utils.DefaultMessage),
			)
		}
		cfg.Apply(proc)
	}

	// Command line flags override the configuration file.
	if *lower != "" {
		c, err := colortrack.ParseHSV(*lower)
		if err != nil {
			log.Fatalf(utils.DecorateText("Invalid -lower value: %v", utils.ErrorMessage), err)
		}
		proc.Range.Lower = c
	}
	if *upper != "" {
		c, err := colortrack.ParseHSV(*upper)
		if err != nil {
			log.Fatalf(utils.DecorateText("Invalid -upper value: %v", utils.ErrorMessage), err)
		}
		proc.Range.Upper = c
	}
	if err := proc.Range.Validate(); err != nil {
		log.Fatalf(utils.DecorateText("Invalid color range: %v", utils.ErrorMessage), err)
	}
	if *iterations >= 0 {
		proc.Iterations = *iterations
	}
	if *minRadius >= 0 {
		proc.Overlay.MinRadius = *minRadius
	}
	if *debug {
		proc.Debug = true
	}

	op := &Ops{
		Src:      *source,
		Dst:      *destination,
		CSV:      *csvFile,
		DB:       *dbFile,
		Plot:     *plotFile,
		Chart:    *chartFile,
		PipeName: pipeName,
		FPS:      *fps,
		Preview:  *preview,
	}

	if err := Execute(proc, op); err != nil {
		log.Fatalf(
			utils.DecorateText("\nError tracking the object: %s", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\n\tReason: %v\n", err.Error()), utils.DefaultMessage),
		)
	}
	if op.CSV != "" && op.CSV != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe trajectory has been saved as: %s %s\n\n",
			utils.DecorateText(op.CSV, utils.SuccessMessage),
			utils.DefaultColor,
		)
	}
}
