package fluid

// DoubleBuffer is a read/write pair for one physical quantity. Swap toggles
// an index over the two fields; no texel data is copied.
type DoubleBuffer struct {
	fields [2]Field
	read   int
}

func NewDoubleBuffer(first, second Field) *DoubleBuffer {
	return &DoubleBuffer{fields: [2]Field{first, second}}
}

// Read returns the field holding the current state.
func (d *DoubleBuffer) Read() Field { return d.fields[d.read] }

// Write returns the field the next pass renders into.
func (d *DoubleBuffer) Write() Field { return d.fields[d.read^1] }

// Swap makes the last written field current. A pass that wrote Write()
// must Swap before anything reads the quantity again.
func (d *DoubleBuffer) Swap() { d.read ^= 1 }

func (d *DoubleBuffer) release(dev Device) {
	for _, f := range d.fields {
		dev.ReleaseField(f)
	}
}
