package telemetry

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"smokerocket/internal/fluid"
)

// WritePNG encodes the first three channels of d as an 8-bit RGB image.
// Row 0 of a field is the bottom of the screen, so rows are flipped.
// Values are clamped to [0, 1].
func WritePNG(w io.Writer, d fluid.FieldData) error {
	if d.Width <= 0 || d.Height <= 0 || d.Channels <= 0 {
		return fmt.Errorf("empty field %dx%dx%d", d.Width, d.Height, d.Channels)
	}
	img := image.NewNRGBA(image.Rect(0, 0, d.Width, d.Height))
	for y := 0; y < d.Height; y++ {
		row := d.Height - 1 - y
		for x := 0; x < d.Width; x++ {
			var rgb [3]uint8
			for c := 0; c < 3 && c < d.Channels; c++ {
				rgb[c] = to8(d.At(x, row, c))
			}
			img.SetNRGBA(x, y, color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return png.Encode(w, img)
}

// SavePNG writes d to path, creating the parent directory.
func SavePNG(path string, d fluid.FieldData) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating snapshot directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WritePNG(f, d); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

func to8(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v*255 + 0.5)
}
