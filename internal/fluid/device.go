package fluid

// Format is the channel layout of a field texture.
type Format uint8

const (
	// FormatRG stores two channels (velocity, pressure, divergence, curl).
	FormatRG Format = iota
	// FormatRGBA stores four channels (density colour).
	FormatRGBA
)

// Channels returns the number of stored channels.
func (f Format) Channels() int {
	if f == FormatRGBA {
		return 4
	}
	return 2
}

// Filter is the sampling mode a field is created with.
type Filter uint8

const (
	FilterNearest Filter = iota
	FilterLinear
)

func (f Filter) String() string {
	if f == FilterLinear {
		return "linear"
	}
	return "nearest"
}

// Field is one grid of floating-point texels owned by a Device.
type Field interface {
	Size() (width, height int)
}

// AdvectParams configures one advection pass.
type AdvectParams struct {
	DT          float32
	Dissipation float32
	// Manual selects the manual-bilinear kernel used when the device cannot
	// filter float textures in hardware.
	Manual bool
}

// SplatParams configures one Gaussian injection.
type SplatParams struct {
	Point  [2]float32 // texture space, y up
	Color  [3]float32
	Radius float32
	Aspect float32 // viewport width / height
}

// Device executes the solver kernels. Every pass names its destination and
// sources explicitly; implementations must not rely on state left by a
// previous call. dst must never alias a source.
type Device interface {
	// LinearFloatFiltering reports whether float fields can use FilterLinear.
	LinearFloatFiltering() bool

	NewField(width, height int, format Format, filter Filter) (Field, error)
	ReleaseField(f Field)

	Advect(dst, velocity, source Field, p AdvectParams)
	Curl(dst, velocity Field)
	Vorticity(dst, velocity, curl Field, strength, dt float32)
	Divergence(dst, velocity Field)
	// Clear writes value * src into dst.
	Clear(dst, src Field, value float32)
	Jacobi(dst, pressure, divergence Field)
	SubtractGradient(dst, pressure, velocity Field)
	Splat(dst, target Field, p SplatParams)

	// Display draws src stretched over a width x height viewport of the
	// presentation surface.
	Display(src Field, width, height int)
}

// FieldData is a host copy of a field, row 0 at the bottom.
type FieldData struct {
	Width, Height, Channels int
	Pix                     []float32
}

// At returns channel c of texel (x, y).
func (d FieldData) At(x, y, c int) float32 {
	return d.Pix[(y*d.Width+x)*d.Channels+c]
}

// Reader is implemented by devices that can copy a field back to the host.
type Reader interface {
	ReadField(f Field) (FieldData, error)
}
