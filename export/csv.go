// Package export persists and visualizes the trajectory of a tracking run.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/esimov/colortrack"
)

// Header is the first row of the exported CSV.
var Header = []string{"Position-x", "Position-y", "Velocity-x", "Velocity-y"}

// WriteCSV writes one row per processed frame. Frames without a detection
// have empty position cells and a zero velocity.
func WriteCSV(w io.Writer, traj *colortrack.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}

	row := make([]string, len(Header))
	for i := 0; i < traj.Len(); i++ {
		tp := traj.At(i)
		row[0], row[1] = "", ""
		if tp.Position != nil {
			row[0] = formatFloat(tp.Position.X)
			row[1] = formatFloat(tp.Position.Y)
		}
		row[2] = formatFloat(tp.VelocityX)
		row[3] = formatFloat(tp.VelocityY)

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("could not write row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV.
func ReadCSV(r io.Reader) ([]colortrack.TrackPoint, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty CSV")
		}
		return nil, err
	}
	for i, h := range Header {
		if head[i] != h {
			return nil, fmt.Errorf("unexpected column %q, want %q", head[i], h)
		}
	}

	var points []colortrack.TrackPoint
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return points, nil
		}
		if err != nil {
			return nil, err
		}

		var tp colortrack.TrackPoint
		if rec[0] != "" || rec[1] != "" {
			x, err := strconv.ParseFloat(rec[0], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			y, err := strconv.ParseFloat(rec[1], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			tp.Position = &colortrack.Point{X: x, Y: y}
		}
		if tp.VelocityX, err = strconv.ParseFloat(rec[2], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if tp.VelocityY, err = strconv.ParseFloat(rec[3], 64); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, tp)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
