package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/YannKr/batchmark/internal/batch"
	"github.com/YannKr/batchmark/internal/config"
	"github.com/YannKr/batchmark/internal/watermark"
)

// Run prepares the transparent logo, watermarks the input tree and writes the
// summary line to stdout. Only setup failures are returned; files that could
// not be watermarked are copied and counted instead.
func Run(ctx context.Context, cfg *config.Config, stdout io.Writer) error {
	log := slog.Default().With("run", uuid.NewString())

	info, err := os.Stat(cfg.InputDir)
	if err != nil {
		return fmt.Errorf("input dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input dir %s is not a directory", cfg.InputDir)
	}

	if err := watermark.PrepareLogo(cfg.LogoPath, cfg.TransparentLogoPath, cfg.Opacity, cfg.WhiteTolerance); err != nil {
		return fmt.Errorf("prepare logo: %w", err)
	}
	log.Info("transparent logo ready", "path", cfg.TransparentLogoPath, "opacity", cfg.Opacity)

	marker, err := watermark.New(watermark.Options{
		LogoPath:    cfg.TransparentLogoPath,
		FontPath:    cfg.FontPath,
		Text1:       cfg.Text1,
		Text2:       cfg.Text2,
		Color1:      cfg.Color1,
		Color2:      cfg.Color2,
		JPEGQuality: cfg.JPEGQuality,
	})
	if err != nil {
		return fmt.Errorf("init compositor: %w", err)
	}

	walker := &batch.Walker{
		Marker:    marker,
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Extension: cfg.Extension,
		Logger:    log,
	}

	log.Info("batch starting", "input", cfg.InputDir, "output", cfg.OutputDir, "extension", cfg.Extension)
	stats, err := walker.Run(ctx)
	log.Info("batch finished", "succeeded", stats.Succeeded, "failed", stats.Failed)
	fmt.Fprintln(stdout, stats.Summary())
	if err != nil {
		return fmt.Errorf("walk %s: %w", cfg.InputDir, err)
	}
	return nil
}
