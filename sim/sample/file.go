package sample

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/swarmpack/sim"
)

// Load reads "x,y" rows. A first row that does not parse is taken as a
// header; lines starting with '#' are comments.
func Load(r io.Reader) ([]sim.Point2D, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var points []sim.Point2D
	for row := 0; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read points: %w", err)
		}
		x, errX := strconv.ParseFloat(record[0], 64)
		y, errY := strconv.ParseFloat(record[1], 64)
		if errX != nil || errY != nil {
			if row == 0 {
				logrus.Debugf("sample: skipping header %v", record)
				continue
			}
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: bad point %v: %w", line, record, sim.ErrInvalidArgument)
		}
		p := sim.Point2D{X: x, Y: y}
		if !sim.IsFinite(p) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: non-finite point %v: %w", line, record, sim.ErrInvalidArgument)
		}
		points = append(points, p)
	}
	return points, nil
}

// LoadFile opens path and reads it with Load.
func LoadFile(path string) ([]sim.Point2D, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	points, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logrus.Infof("sample: loaded %d points from %s", len(points), path)
	return points, nil
}

// Write emits points as "x,y" rows under a header that Load skips.
func Write(w io.Writer, points []sim.Point2D) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"x", "y"}); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			strconv.FormatFloat(p.X, 'g', -1, 64),
			strconv.FormatFloat(p.Y, 'g', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
