package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/common"
)

// Extraction methods, in the order they are attempted for a PDF.
const (
	MethodNative = "pdf-native"
	MethodText   = "pdf-text"
	MethodOCR    = "pdf-ocr"
	MethodPlain  = "plain-text"
)

var ErrUnsupported = errors.New("unsupported extension")

type Config struct {
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	TesseractLang string // default "eng+ind"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
	MaxPages      int    // 0 = no limit
	TessdataDir   string
	PSM           int // e.g., 6 is good for uniform block of text

	// EnableOCR allows the rasterize-and-recognize fallback.
	EnableOCR bool
	// SkipNative skips the in-process text layer reader.
	SkipNative bool
}

type ExtractionResult struct {
	Text       string
	Pages      int
	SourceType string // constants.PDF | constants.TEXT
	Method     string
	Language   string
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	native func(path string) (string, int, error)
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng+ind"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: newExecRunner(logger), native: readNativeText, logger: logger}
}

// WithRunner replaces the command runner; used to stub binaries in tests.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	e.runner = r
	return e
}

// Extract picks a strategy based on file extension. It returns
// common.ErrTextUnavailable, alongside the partial result, when every
// strategy came back empty.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("ocr.extract.start", "path", path, "ext", ext)

	if _, err := os.Stat(path); err != nil {
		return ExtractionResult{}, fmt.Errorf("stat %s: %w", path, err)
	}

	var (
		res ExtractionResult
		err error
	)
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		res, err = e.extractPDF(ctx, path)
	case constants.TEXT:
		res, err = e.extractPlain(path)
	default:
		e.logger.Error("ocr.extract.unsupported", "extension", ext)
		return ExtractionResult{}, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
	res.Duration = time.Since(start)
	if err == nil && res.Text == "" {
		err = common.ErrTextUnavailable
	}
	return res, err
}

func (e *Extractor) extractPlain(path string) (ExtractionResult, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ExtractionResult{SourceType: constants.TEXT}, fmt.Errorf("read %s: %w", path, err)
	}
	return ExtractionResult{
		Text:       Normalize(string(b)),
		Pages:      1,
		SourceType: constants.TEXT,
		Method:     MethodPlain,
	}, nil
}

func (e *Extractor) extractPDF(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF}

	if n, err := pageCount(path); err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("page count: %v", err))
	} else {
		res.Pages = n
	}

	if !e.cfg.SkipNative {
		txt, n, err := e.native(path)
		if err != nil {
			res.Warnings = append(res.Warnings, fmt.Sprintf("native text: %v", err))
		} else if txt = Normalize(txt); txt != "" {
			res.Text, res.Method = txt, MethodNative
			if res.Pages == 0 {
				res.Pages = n
			}
			return res, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}
	txt, n, warns, err := e.pdfToText(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("pdftotext: %v", err))
	} else if txt = Normalize(txt); txt != "" {
		res.Text, res.Method = txt, MethodText
		if res.Pages == 0 {
			res.Pages = n
		}
		return res, nil
	}

	if !e.cfg.EnableOCR {
		e.logger.Info("ocr.pdf.no_text_layer", "path", path, "ocr_enabled", false)
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	e.logger.Info("ocr.pdf.fallback", "path", path, "lang", e.cfg.TesseractLang, "dpi", e.cfg.DPI)
	txt, n, warns, err = e.pdfToOCR(ctx, path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("ocr: %v", err))
		return res, nil
	}
	res.Text, res.Method, res.Language = Normalize(txt), MethodOCR, e.cfg.TesseractLang
	if res.Pages == 0 {
		res.Pages = n
	}
	return res, nil
}
