// Package app wires configuration into the document pipeline and result store.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joseph-ayodele/cv-extract/internal/batch"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/extract"
	"github.com/joseph-ayodele/cv-extract/internal/fields"
	"github.com/joseph-ayodele/cv-extract/internal/ingest"
	"github.com/joseph-ayodele/cv-extract/internal/ocr"
	"github.com/joseph-ayodele/cv-extract/internal/pipeline"
	repo "github.com/joseph-ayodele/cv-extract/internal/repository"
)

// Components are the long-lived pieces shared by the commands.
type Components struct {
	Fields    *fields.Extractor
	OCR       *ocr.Extractor
	Processor *pipeline.Processor
}

// NewLogger builds the JSON logger used by the batch commands.
func NewLogger(cfg common.LogConfig) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	return logger
}

// FieldConfig maps the extraction section onto the field extractor policy.
func FieldConfig(c common.ExtractionConfig) fields.ExtractionConfig {
	fc := fields.DefaultExtractionConfig()
	if c.MajorStrategy != "" {
		fc.MajorStrategy = fields.MajorStrategy(c.MajorStrategy)
	}
	fc.DefaultDegree = ""
	if c.AssumeDegree {
		fc.DefaultDegree = c.DefaultDegree
	}
	fc.TruncateNameAtDelimiter = c.TruncateName
	if c.MaxNameTokens > 0 {
		fc.MaxNameTokens = c.MaxNameTokens
	}
	return fc
}

// OCRConfig maps the ocr section onto the text acquisition config.
func OCRConfig(c common.OCRConfig) ocr.Config {
	return ocr.Config{
		Pdftotext:     c.Pdftotext,
		Pdftoppm:      c.Pdftoppm,
		Tesseract:     c.Tesseract,
		TesseractLang: c.Languages,
		DPI:           c.DPI,
		MaxPages:      c.MaxPages,
		TessdataDir:   c.TessdataDir,
		PSM:           6,
		EnableOCR:     c.Enabled,
	}
}

// Build assembles text acquisition, field extraction and the processor.
func Build(cfg *common.Config, logger *slog.Logger) (*Components, error) {
	fx, err := fields.New(FieldConfig(cfg.Extraction), logger)
	if err != nil {
		return nil, common.NewAppError(common.CodeConfig, "build field extractor", err)
	}
	ox := ocr.NewExtractor(OCRConfig(cfg.OCR), logger)

	var text extract.TextExtractor = extract.NewOCRAdapter(ox, logger)
	if cfg.OCR.Timeout > 0 {
		text = withTimeout(text, cfg.OCR.Timeout)
	}

	proc := pipeline.NewProcessor(logger,
		pipeline.NewTextStage(text, logger),
		pipeline.NewFieldStage(fx),
	)
	return &Components{Fields: fx, OCR: ox, Processor: proc}, nil
}

// BatchOptions derives enumeration and concurrency settings.
func BatchOptions(cfg *common.Config) batch.Options {
	return batch.Options{
		Ingest: ingest.Options{
			Extensions: cfg.Source.Extensions,
			Recursive:  cfg.Source.Recursive,
			SkipHidden: true,
		},
		Workers: cfg.Batch.Workers,
	}
}

// OpenStore opens the result store, or returns nil when no DSN is configured.
func OpenStore(ctx context.Context, cfg common.StoreConfig, logger *slog.Logger) (*repo.DB, error) {
	if cfg.DSN == "" {
		return nil, nil
	}
	db, err := repo.Open(ctx, repo.Config{
		DSN:             cfg.DSN,
		MaxConns:        cfg.MaxConns,
		MinConns:        1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: 5 * time.Minute,
		DialTimeout:     3 * time.Second,
	}, logger)
	if err != nil {
		return nil, common.NewAppError(common.CodeRepository, "open store", err)
	}
	if err := db.HealthCheck(ctx, 5*time.Second); err != nil {
		db.Close(logger)
		return nil, common.NewAppError(common.CodeRepository, "store health check", err)
	}
	return db, nil
}

func withTimeout(tx extract.TextExtractor, d time.Duration) extract.TextExtractor {
	return extract.TextExtractorFunc(func(ctx context.Context, path string) (extract.TextExtractionResult, error) {
		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()
		return tx.Extract(ctx, path)
	})
}
