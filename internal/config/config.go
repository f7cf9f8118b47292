package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	Text1               string
	Text2               string
	Color1              color.NRGBA
	Color2              color.NRGBA
	Opacity             uint8
	WhiteTolerance      uint8
	InputDir            string
	OutputDir           string
	LogoPath            string
	TransparentLogoPath string
	FontPath            string // empty selects the embedded Go Regular face
	Extension           string
	JPEGQuality         int
	LogLevel            string
}

// Load reads the configuration from the environment. Every invalid or
// missing value is reported in the returned error, not just the first one.
func Load() (*Config, error) {
	var errs []error
	cfg := &Config{
		Text1:               os.Getenv("WM_TEXT1"),
		Text2:               os.Getenv("WM_TEXT2"),
		InputDir:            envOr("INPUT_DIR", "./input"),
		OutputDir:           envOr("OUTPUT_DIR", "./output"),
		LogoPath:            envOr("LOGO_PATH", "./logo/logo.jpg"),
		TransparentLogoPath: envOr("TRANSPARENT_LOGO_PATH", "./logo/transparent_logo.png"),
		FontPath:            os.Getenv("FONT_PATH"),
		Extension:           envOr("WM_EXTENSION", ".webp"),
		LogLevel:            envOr("LOG_LEVEL", "info"),
	}

	if cfg.Text1 == "" {
		errs = append(errs, errors.New("WM_TEXT1 is required"))
	}
	if cfg.Text2 == "" {
		errs = append(errs, errors.New("WM_TEXT2 is required"))
	}

	var err error
	if cfg.Color1, err = ParseColor(envOr("WM_COLOR1", "#FFFFFF")); err != nil {
		errs = append(errs, fmt.Errorf("WM_COLOR1: %w", err))
	}
	if cfg.Color2, err = ParseColor(envOr("WM_COLOR2", "#E30613")); err != nil {
		errs = append(errs, fmt.Errorf("WM_COLOR2: %w", err))
	}
	if cfg.Opacity, err = envByteOr("WM_OPACITY", 128); err != nil {
		errs = append(errs, err)
	}
	if cfg.WhiteTolerance, err = envByteOr("WM_WHITE_TOLERANCE", 0); err != nil {
		errs = append(errs, err)
	}

	if cfg.JPEGQuality, err = envIntOr("JPEG_QUALITY", 92); err != nil {
		errs = append(errs, err)
	} else if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("JPEG_QUALITY must be between 1 and 100, got %d", cfg.JPEGQuality))
	}

	if !strings.HasPrefix(cfg.Extension, ".") || len(cfg.Extension) < 2 {
		errs = append(errs, fmt.Errorf("WM_EXTENSION must look like \".webp\", got %q", cfg.Extension))
	}
	if filepath.Clean(cfg.InputDir) == filepath.Clean(cfg.OutputDir) {
		errs = append(errs, errors.New("INPUT_DIR and OUTPUT_DIR must differ"))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

// ParseColor accepts "#RRGGBB", "#RRGGBBAA" or "r,g,b[,a]".
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		b, err := hex.DecodeString(s[1:])
		if err != nil || (len(b) != 3 && len(b) != 4) {
			return color.NRGBA{}, fmt.Errorf("bad hex color %q", s)
		}
		c := color.NRGBA{R: b[0], G: b[1], B: b[2], A: 255}
		if len(b) == 4 {
			c.A = b[3]
		}
		return c, nil
	}

	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, fmt.Errorf("bad color %q", s)
	}
	vals := []uint8{0, 0, 0, 255}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return color.NRGBA{}, fmt.Errorf("bad color component %q in %q", p, s)
		}
		vals[i] = uint8(n)
	}
	return color.NRGBA{R: vals[0], G: vals[1], B: vals[2], A: vals[3]}, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, nil
}

func envByteOr(key string, fallback uint8) (uint8, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("%s must be an integer between 0 and 255, got %q", key, v)
	}
	return uint8(n), nil
}
