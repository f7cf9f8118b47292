package watermark

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/opentype"
)

const (
	// logoWidthDivisor sets the logo height to target width / 7.5.
	logoWidthDivisor = 7.5
	// label offsets as multiples of the resized logo width.
	text1Offset = 1.3
	text2Offset = 4.8
)

type Options struct {
	LogoPath    string // transparent logo produced by PrepareLogo
	FontPath    string
	Text1       string
	Text2       string
	Color1      color.Color
	Color2      color.Color
	JPEGQuality int
}

// Compositor stamps the logo and two labels onto images. The logo and font
// are decoded once at construction.
type Compositor struct {
	opts Options
	logo *image.NRGBA
	font *opentype.Font
}

func New(opts Options) (*Compositor, error) {
	logo, err := loadImage(opts.LogoPath)
	if err != nil {
		return nil, err
	}
	f, err := loadFont(opts.FontPath)
	if err != nil {
		return nil, err
	}
	if opts.Color1 == nil {
		opts.Color1 = color.White
	}
	if opts.Color2 == nil {
		opts.Color2 = color.White
	}
	return &Compositor{opts: opts, logo: logo, font: f}, nil
}

// LogoSize returns the resized logo dimensions for a target of the given
// width. The height is always targetWidth/7.5 and the width follows the
// logo's own aspect ratio from that height.
func LogoSize(targetWidth, logoWidth, logoHeight int) (w, h int) {
	base := float64(targetWidth) / logoWidthDivisor
	w = int(base * (float64(logoWidth) / float64(logoHeight)))
	h = int(base)
	return max(w, 1), max(h, 1)
}

// LogoPosition returns the top-left corner for a logo of height logoHeight:
// 1% in from the left edge, vertically centered.
func LogoPosition(targetWidth, targetHeight, logoHeight int) image.Point {
	return image.Pt(targetWidth/100, targetHeight/2-logoHeight/2)
}

// Apply watermarks inputPath and writes the result to outputPath in the
// format implied by its extension.
func (c *Compositor) Apply(ctx context.Context, inputPath, outputPath string) error {
	im, err := loadImage(inputPath)
	if err != nil {
		return err
	}

	out, err := c.Composite(im)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return saveImage(out, outputPath, c.opts.JPEGQuality)
}

// Composite returns a new image with the logo pasted and the labels drawn
// over im. im is not modified.
func (c *Compositor) Composite(im *image.NRGBA) (*image.NRGBA, error) {
	width, height := im.Bounds().Dx(), im.Bounds().Dy()

	lw, lh := LogoSize(width, c.logo.Bounds().Dx(), c.logo.Bounds().Dy())
	wm := imaging.Resize(c.logo, lw, lh, imaging.Lanczos)
	out := imaging.Overlay(im, wm, LogoPosition(width, height, lh), 1.0)

	txt := image.NewNRGBA(image.Rect(0, 0, width, height))
	mid := float64(height) / 2
	err := drawLabels(txt, c.font, float64(lh), []label{
		{Text: c.opts.Text1, Color: c.opts.Color1, X: float64(lw) * text1Offset, Y: mid},
		{Text: c.opts.Text2, Color: c.opts.Color2, X: float64(lw) * text2Offset, Y: mid},
	})
	if err != nil {
		return nil, fontErr(c.opts.FontPath, err)
	}

	return imaging.Overlay(out, txt, image.Pt(0, 0), 1.0), nil
}
