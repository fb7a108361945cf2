package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// Enumerate walks root in lexical order and returns the eligible documents,
// indexed in that order. A missing root is common.ErrSourceNotFound; an
// existing root with nothing eligible is an empty slice.
func Enumerate(root string, opts Options, logger *slog.Logger) ([]entity.Document, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, common.SourceNotFound(root)
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, DirStats{}, common.SourceNotFound(root)
		}
		return nil, DirStats{}, fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, DirStats{}, common.NewAppError(common.CodeSource, root+" is not a directory", common.ErrSourceNotFound)
	}

	exts := ExtSet(opts.Extensions)
	var docs []entity.Document
	var stats DirStats

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			stats.Failed++
			logger.Warn("ingest.walk.error", "path", path, "error", walkErr)
			return nil // continue walking
		}
		if path == root {
			return nil
		}
		if opts.SkipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		stats.Scanned++
		if !Eligible(path, exts) {
			return nil
		}
		stats.Matched++
		docs = append(docs, entity.Document{Index: len(docs), Path: path, Name: d.Name()})
		return nil
	})
	if err != nil {
		return docs, stats, fmt.Errorf("walk: %w", err)
	}

	logger.Info("ingest.directory.done", "root", root, "scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	return docs, stats, nil
}
