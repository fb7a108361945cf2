package extract

import (
	"context"
	"errors"
	"log/slog"

	"github.com/joseph-ayodele/cv-extract/internal/ocr"
)

// OCRAdapter exposes ocr.Extractor as a TextExtractor. Acquisition failures
// become empty text with the error kept as a warning; only context
// cancellation is returned.
type OCRAdapter struct {
	extractor *ocr.Extractor
	logger    *slog.Logger
}

func NewOCRAdapter(e *ocr.Extractor, l *slog.Logger) *OCRAdapter {
	if l == nil {
		l = slog.Default()
	}
	return &OCRAdapter{
		extractor: e,
		logger:    l,
	}
}

func (a *OCRAdapter) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.extractor.Extract(ctx, path)
	res := TextExtractionResult{
		Text:       r.Text,
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Language:   r.Language,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
	}
	if err == nil {
		return res, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return res, err
	}
	a.logger.Warn("extract.text.unavailable", "path", path, "error", err, "warnings", len(r.Warnings))
	res.Text = ""
	res.Warnings = append(res.Warnings, err.Error())
	return res, nil
}
