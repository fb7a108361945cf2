package extract

import (
	"context"
	"time"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// TextExtractor is Stage 1: file -> text. An empty Text means no text could be acquired.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // "PDF" | "TXT"
	Method     string // "pdf-native" | "pdf-text" | "pdf-ocr" | "plain-text"
	Language   string
	Duration   time.Duration
	Warnings   []string
}

// FieldExtractor is Stage 2: text -> fields, plus the filename-derived name.
// Implementations must be safe for concurrent use.
type FieldExtractor interface {
	Extract(text string) entity.Fields
	Name(filename string) string
}

// TextExtractorFunc adapts a plain function to TextExtractor.
type TextExtractorFunc func(ctx context.Context, path string) (TextExtractionResult, error)

func (f TextExtractorFunc) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	return f(ctx, path)
}
