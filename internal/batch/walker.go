package batch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Marker watermarks a single file.
type Marker interface {
	Apply(ctx context.Context, inputPath, outputPath string) error
}

// Walker mirrors InputDir into OutputDir, watermarking every file whose name
// ends in Extension and copying the original when watermarking fails.
type Walker struct {
	Marker    Marker
	InputDir  string
	OutputDir string
	Extension string // case-sensitive literal suffix, e.g. ".webp"
	Logger    *slog.Logger
}

// Run walks InputDir once. Per-file failures are counted in Stats and never
// returned; the error is non-nil only when the walk itself cannot proceed.
func (w *Walker) Run(ctx context.Context) (Stats, error) {
	var stats Stats
	log := w.Logger
	if log == nil {
		log = slog.Default()
	}

	info, err := os.Stat(w.InputDir)
	if err != nil {
		return stats, fmt.Errorf("input dir: %w", err)
	}
	if !info.IsDir() {
		return stats, fmt.Errorf("input dir %s is not a directory", w.InputDir)
	}

	outAbs, err := filepath.Abs(w.OutputDir)
	if err != nil {
		return stats, fmt.Errorf("output dir: %w", err)
	}

	err = filepath.WalkDir(w.InputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// Results written inside the input tree must not be walked again.
			if abs, err := filepath.Abs(path); err == nil && abs == outAbs {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), w.Extension) || !isRegular(path, d) {
			return nil
		}

		rel, err := filepath.Rel(w.InputDir, filepath.Dir(path))
		if err != nil {
			return err
		}
		outDir := filepath.Join(w.OutputDir, rel)
		if err := os.MkdirAll(outDir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}

		return w.processFile(ctx, log, path, filepath.Join(outDir, d.Name()), &stats)
	})
	return stats, err
}

// isRegular reports whether d is a regular file or a symlink to one.
// Symlinked directories are not followed.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// processFile returns an error only when ctx was canceled during Apply; the
// interrupted file is neither counted nor copied.
func (w *Walker) processFile(ctx context.Context, log *slog.Logger, inputPath, outputPath string, stats *Stats) error {
	markErr := w.Marker.Apply(ctx, inputPath, outputPath)
	if markErr == nil {
		stats.Succeeded++
		log.Info("watermarked", "output", outputPath)
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(markErr, ctxErr) {
		os.Remove(outputPath)
		log.Warn("interrupted", "input", inputPath)
		return ctxErr
	}

	stats.Failed++
	if err := CopyFile(inputPath, outputPath); err != nil {
		log.Error("copy failed", "input", inputPath, "output", outputPath, "watermark_error", markErr, "error", err)
		return nil
	}
	log.Warn("fallback copy", "copied", outputPath, "input", inputPath, "error", markErr)
	return nil
}
