package watermark

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// loadImage decodes any registered format (JPEG, PNG, GIF, BMP, TIFF, WebP)
// and returns it as *image.NRGBA with EXIF orientation applied.
func loadImage(path string) (*image.NRGBA, error) {
	decoded, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, loadErr(path, err)
	}
	return imaging.Clone(decoded), nil
}

// saveImage encodes img to outputPath. The format is determined by the
// outputPath extension. A partially written file is removed on failure.
func saveImage(img image.Image, outputPath string, jpegQuality int) error {
	ext := strings.ToLower(filepath.Ext(outputPath))

	var encode func(f *os.File) error
	if ext == ".webp" {
		encode = func(f *os.File) error {
			return nativewebp.Encode(f, img, nil)
		}
	} else {
		format, err := imaging.FormatFromFilename(outputPath)
		if err != nil {
			return encodeErr(outputPath, fmt.Errorf("unsupported output format %q: %w", ext, err))
		}
		encode = func(f *os.File) error {
			return imaging.Encode(f, img, format, imaging.JPEGQuality(jpegQuality))
		}
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return encodeErr(outputPath, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		os.Remove(outputPath)
		return encodeErr(outputPath, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(outputPath)
		return encodeErr(outputPath, err)
	}
	return nil
}
