// Package export writes batch reports as XLSX, CSV or JSON.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// Service renders reports in the fixed column order.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// Render encodes report in format.
func (s *Service) Render(report *entity.Report, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case common.FormatXLSX:
		return s.XLSX(report)
	case common.FormatCSV:
		return s.CSV(report)
	case common.FormatJSON:
		return s.JSON(report)
	}
	return nil, fmt.Errorf("%w: unknown export format %q", common.ErrInvalidInput, format)
}

// WriteFile renders report and writes it to path, creating parent directories.
func (s *Service) WriteFile(ctx context.Context, report *entity.Report, path, format string) error {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return err
	}
	if format == "" {
		format = FormatFromPath(path)
	}

	b, err := s.Render(report, format)
	if err != nil {
		return common.NewAppError(common.CodeExport, "render report", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return common.NewAppError(common.CodeExport, "create output dir", err)
		}
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return common.NewAppError(common.CodeExport, "write report", err)
	}

	s.logger.Info("export."+format+".ok",
		"path", path,
		"rows", len(report.Records),
		"bytes", len(b),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// FormatFromPath infers the format from the file extension, defaulting to xlsx.
func FormatFromPath(path string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case common.FormatCSV:
		return common.FormatCSV
	case common.FormatJSON:
		return common.FormatJSON
	}
	return common.FormatXLSX
}
