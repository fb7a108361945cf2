package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/extract"
)

// TextStage acquires plain text for one document.
type TextStage struct {
	TextExtractor extract.TextExtractor
	Logger        *slog.Logger
}

func NewTextStage(tx extract.TextExtractor, logger *slog.Logger) *TextStage {
	if logger == nil {
		logger = slog.Default()
	}
	return &TextStage{TextExtractor: tx, Logger: logger}
}

// Run returns the acquired text result and whether any usable text came back.
func (s *TextStage) Run(ctx context.Context, doc entity.Document) (extract.TextExtractionResult, bool, error) {
	res, err := s.TextExtractor.Extract(ctx, doc.Path)
	if err != nil {
		return res, false, fmt.Errorf("acquire text: %w", err)
	}
	for _, w := range res.Warnings {
		s.Logger.Debug("pipeline.text.warning", "path", doc.Path, "warning", w)
	}
	return res, strings.TrimSpace(res.Text) != "", nil
}
