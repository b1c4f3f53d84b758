// Package telemetry records one CSV row per simulation step for
// post-run analysis. Each recorder carries a run ID so log lines and CSV
// output from the same run can be correlated.
package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/opd-ai/go-dotsim/pkg/physics"
)

// header is the column layout of every telemetry file.
var header = []string{"t", "mode", "dist", "speed", "cmd_speed", "x", "y"}

// Recorder writes per-step telemetry rows to a CSV stream.
type Recorder struct {
	w      *csv.Writer
	closer io.Closer
	runID  string
}

// NewRecorder creates a recorder on an arbitrary writer and emits the
// header row.
func NewRecorder(w io.Writer) (*Recorder, error) {
	r := &Recorder{
		w:     csv.NewWriter(w),
		runID: uuid.NewString(),
	}
	if err := r.w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write telemetry header: %w", err)
	}
	return r, nil
}

// NewFileRecorder creates the telemetry file (and any missing parent
// directories) and returns a recorder that owns it.
func NewFileRecorder(path string) (*Recorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create telemetry directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create telemetry file: %w", err)
	}

	r, err := NewRecorder(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// RunID returns the unique identifier of this recording.
func (r *Recorder) RunID() string {
	return r.runID
}

// Record appends one telemetry row. mode is the numeric control-law id;
// dist is the nearest signed obstacle distance; speed and cmdSpeed are the
// actual and commanded speeds.
func (r *Recorder) Record(t float64, mode int, dist, speed, cmdSpeed float64, pos physics.Vector2D) error {
	row := []string{
		strconv.FormatFloat(t, 'f', 3, 64),
		strconv.Itoa(mode),
		strconv.FormatFloat(dist, 'f', 3, 64),
		strconv.FormatFloat(speed, 'f', 3, 64),
		strconv.FormatFloat(cmdSpeed, 'f', 3, 64),
		strconv.FormatFloat(pos.X, 'f', 2, 64),
		strconv.FormatFloat(pos.Y, 'f', 2, 64),
	}
	if err := r.w.Write(row); err != nil {
		return fmt.Errorf("failed to write telemetry row: %w", err)
	}
	return nil
}

// Close flushes buffered rows and closes the underlying file, if any.
func (r *Recorder) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return fmt.Errorf("failed to flush telemetry: %w", err)
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
