package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// FrameRecord is one CSV row describing a frame.
type FrameRecord struct {
	Frame     int     `csv:"frame"`
	DT        float32 `csv:"dt"`
	Splats    int     `csv:"splats"`
	Bullets   int     `csv:"bullets"`
	Curl      float32 `csv:"curl"`
	Energy    float64 `csv:"density_energy"`
	Mass      float64 `csv:"density_mass"`
	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`
}

// Recorder appends FrameRecords to a CSV stream, writing the header once.
// A nil *Recorder discards everything.
type Recorder struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
}

// NewRecorder creates the CSV file at path. It returns nil when path is
// empty (output disabled).
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &Recorder{w: f, closer: f}, nil
}

// NewWriterRecorder records into w. The caller owns w.
func NewWriterRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

func (r *Recorder) Write(rec FrameRecord) error {
	if r == nil {
		return nil
	}
	records := []FrameRecord{rec}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.w); err != nil {
			return fmt.Errorf("writing frame record: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.w); err != nil {
		return fmt.Errorf("writing frame record: %w", err)
	}
	return nil
}

func (r *Recorder) Close() error {
	if r == nil || r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}
