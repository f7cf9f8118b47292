package watermark

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// ColorKey returns a copy of src in which white pixels are fully transparent
// and every other pixel keeps its RGB with alpha set to opacity. A pixel is
// white when each of R, G and B is at least 255-tolerance; tolerance 0 keys
// only exact (255,255,255), which leaves anti-aliased near-white edges opaque.
// The source alpha channel is ignored.
func ColorKey(src image.Image, opacity, tolerance uint8) *image.NRGBA {
	out := imaging.Clone(src)
	floor := 255 - tolerance
	for i := 0; i+3 < len(out.Pix); i += 4 {
		px := out.Pix[i : i+4 : i+4]
		if px[0] >= floor && px[1] >= floor && px[2] >= floor {
			px[0], px[1], px[2], px[3] = 255, 255, 255, 0
			continue
		}
		px[3] = opacity
	}
	return out
}

// PrepareLogo color-keys the logo at srcPath and writes it to dstPath as PNG,
// replacing any existing file.
func PrepareLogo(srcPath, dstPath string, opacity, tolerance uint8) error {
	logo, err := imaging.Open(srcPath)
	if err != nil {
		return loadErr(srcPath, err)
	}

	if !strings.EqualFold(filepath.Ext(dstPath), ".png") {
		return encodeErr(dstPath, errors.New("transparent logo must be a .png file"))
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return encodeErr(dstPath, fmt.Errorf("create logo dir: %w", err))
	}
	return saveImage(ColorKey(logo, opacity, tolerance), dstPath, 100)
}
