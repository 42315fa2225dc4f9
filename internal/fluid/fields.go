package fluid

import "fmt"

// Fields holds every quantity the solver works on, all at the same grid size.
type Fields struct {
	Width, Height int

	Velocity *DoubleBuffer
	Density  *DoubleBuffer
	Pressure *DoubleBuffer

	Divergence Field
	Curl       Field
}

// gridSize maps a viewport size onto the simulation grid.
func gridSize(viewW, viewH, downsample int) (int, int) {
	w := viewW >> downsample
	h := viewH >> downsample
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

func createField(dev Device, w, h int, format Format, filter Filter) (Field, error) {
	f, err := dev.NewField(w, h, format, filter)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d field: %w", w, h, err)
	}
	return f, nil
}

func createDoubleField(dev Device, w, h int, format Format, filter Filter) (*DoubleBuffer, error) {
	first, err := createField(dev, w, h, format, filter)
	if err != nil {
		return nil, err
	}
	second, err := createField(dev, w, h, format, filter)
	if err != nil {
		dev.ReleaseField(first)
		return nil, err
	}
	return NewDoubleBuffer(first, second), nil
}

// newFields allocates all five quantities. Velocity and density use the
// advection filter; the solver-only fields are always nearest.
func newFields(dev Device, w, h int, filter Filter) (*Fields, error) {
	fs := &Fields{Width: w, Height: h}
	var err error

	if fs.Density, err = createDoubleField(dev, w, h, FormatRGBA, filter); err != nil {
		return nil, fmt.Errorf("density: %w", err)
	}
	if fs.Velocity, err = createDoubleField(dev, w, h, FormatRG, filter); err != nil {
		fs.release(dev)
		return nil, fmt.Errorf("velocity: %w", err)
	}
	if fs.Divergence, err = createField(dev, w, h, FormatRG, FilterNearest); err != nil {
		fs.release(dev)
		return nil, fmt.Errorf("divergence: %w", err)
	}
	if fs.Curl, err = createField(dev, w, h, FormatRG, FilterNearest); err != nil {
		fs.release(dev)
		return nil, fmt.Errorf("curl: %w", err)
	}
	if fs.Pressure, err = createDoubleField(dev, w, h, FormatRG, FilterNearest); err != nil {
		fs.release(dev)
		return nil, fmt.Errorf("pressure: %w", err)
	}
	return fs, nil
}

func (fs *Fields) release(dev Device) {
	if fs == nil {
		return
	}
	for _, d := range []*DoubleBuffer{fs.Density, fs.Velocity, fs.Pressure} {
		if d != nil {
			d.release(dev)
		}
	}
	for _, f := range []Field{fs.Divergence, fs.Curl} {
		if f != nil {
			dev.ReleaseField(f)
		}
	}
}
