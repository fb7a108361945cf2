package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/app"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/ocr"
)

func main() {
	v := common.NewViper()
	fs := pflag.NewFlagSet("runocr", pflag.ExitOnError)
	common.DefineFlags(fs, v)
	_ = fs.Parse(os.Args[1:])

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if fs.NArg() != 1 {
		logger.Error("usage", "cmd", "runocr [flags] <file.pdf>")
		os.Exit(2)
	}
	path := fs.Arg(0)
	if !constants.SupportedFormat(filepath.Ext(path)) {
		logger.Error("unsupported file type", "path", path, "supported", constants.FileTypes)
		os.Exit(2)
	}

	cfg, err := common.Load(v)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	extractor := ocr.NewExtractor(app.OCRConfig(cfg.OCR), logger)

	start := time.Now()
	res, err := extractor.Extract(ctx, path)
	dur := time.Since(start)

	if err != nil && !errors.Is(err, common.ErrTextUnavailable) {
		logger.Error("text extraction failed", "path", path, "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("text extraction done",
		"path", path,
		"method", res.Method,
		"pages", res.Pages,
		"bytes", len(res.Text),
		"warnings", res.Warnings,
		"duration_ms", dur.Milliseconds(),
	)
	fmt.Println(res.Text)
	if err != nil {
		os.Exit(1)
	}
}
