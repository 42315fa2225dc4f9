package fluid

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Stats summarises the colour channels of a field.
type Stats struct {
	// Energy is the sum of squares over the colour channels.
	Energy float64
	// Mass is the plain sum over the colour channels.
	Mass float64
	// CentroidX, CentroidY are the mass-weighted texel position. They are
	// zero when Mass is zero.
	CentroidX, CentroidY float64
}

// Measure computes Stats over at most the first three channels of d.
func Measure(d FieldData) Stats {
	n := d.Width * d.Height
	colors := d.Channels
	if colors > 3 {
		colors = 3
	}
	vals := make([]float64, 0, n*colors)
	mass := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	for y := 0; y < d.Height; y++ {
		for x := 0; x < d.Width; x++ {
			i := y*d.Width + x
			for c := 0; c < colors; c++ {
				v := float64(d.Pix[i*d.Channels+c])
				vals = append(vals, v)
				mass[i] += v
			}
			xs[i] = float64(x) + 0.5
			ys[i] = float64(y) + 0.5
		}
	}
	st := Stats{
		Energy: floats.Dot(vals, vals),
		Mass:   floats.Sum(mass),
	}
	if st.Mass != 0 {
		st.CentroidX = floats.Dot(mass, xs) / st.Mass
		st.CentroidY = floats.Dot(mass, ys) / st.Mass
	}
	return st
}

// MeasureDensity reads the current density field back and measures it. The
// device must implement Reader.
func (s *Simulation) MeasureDensity() (Stats, error) {
	r, ok := s.dev.(Reader)
	if !ok {
		return Stats{}, fmt.Errorf("device %T cannot read fields back", s.dev)
	}
	d, err := r.ReadField(s.fields.Density.Read())
	if err != nil {
		return Stats{}, fmt.Errorf("read density: %w", err)
	}
	return Measure(d), nil
}
