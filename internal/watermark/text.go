package watermark

import (
	"image"
	"image/color"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// loadFont parses the TrueType/OpenType font at path, or the embedded Go
// Regular face when path is empty.
func loadFont(path string) (*opentype.Font, error) {
	data := goregular.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fontErr(path, err)
		}
		data = b
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fontErr(path, err)
	}
	return f, nil
}

// label is one line of text drawn onto the text layer.
type label struct {
	Text  string
	Color color.Color
	X, Y  float64 // left edge and vertical middle, in pixels
}

// drawLabels renders labels onto dst with a face sized to px pixels. Each
// label is anchored middle-left: Y is halfway between the ascender and
// descender lines.
func drawLabels(dst *image.NRGBA, f *opentype.Font, px float64, labels []label) error {
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return err
	}
	defer face.Close()

	m := face.Metrics()
	// baseline = middle + (ascent - descent) / 2
	shift := (m.Ascent - m.Descent) / 2

	for _, l := range labels {
		d := &font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(l.Color),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6(l.X * 64),
				Y: fixed.Int26_6(l.Y*64) + shift,
			},
		}
		d.DrawString(l.Text)
	}
	return nil
}
