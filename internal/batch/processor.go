// Package batch runs the document pipeline over a directory of CVs.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/ingest"
)

// DocumentProcessor turns one document into a terminal record.
type DocumentProcessor interface {
	Process(ctx context.Context, doc entity.Document) (entity.ExtractionRecord, error)
}

type Options struct {
	Ingest ingest.Options
	// Workers > 1 processes documents concurrently; report order is unchanged.
	Workers int
}

type Processor struct {
	pipeline DocumentProcessor
	namer    func(filename string) string
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
}

// New builds a batch Processor. namer derives the record name for documents
// whose pipeline run faulted.
func New(p DocumentProcessor, namer func(string) string, opts Options, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Processor{pipeline: p, namer: namer, opts: opts, logger: logger, now: time.Now}
}

// Run enumerates source and processes every eligible document. Only a
// missing source is returned as an error; per-document faults become
// Error records.
func (b *Processor) Run(ctx context.Context, source string) (*entity.Report, error) {
	report := &entity.Report{RunID: uuid.New(), Source: source, StartedAt: b.now()}
	ctx = common.WithRunID(ctx, report.RunID.String())
	log := common.LoggerFrom(ctx, b.logger)

	docs, _, err := ingest.Enumerate(source, b.opts.Ingest, b.logger)
	if err != nil {
		log.Error("batch.source.failed", "source", source, "error", err)
		return nil, err
	}
	if len(docs) == 0 {
		log.Warn("batch.source.empty", "source", source)
		report.Records = []entity.ExtractionRecord{}
		report.FinishedAt = b.now()
		return report, nil
	}
	log.Info("batch.start", "source", source, "documents", len(docs), "workers", b.opts.Workers)

	records := make([]entity.ExtractionRecord, len(docs))
	if b.opts.Workers == 1 {
		for i, doc := range docs {
			log.Info("batch.document.start", "n", i+1, "of", len(docs), "file", doc.Name)
			records[i] = b.processOne(ctx, doc)
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(b.opts.Workers)
		for i, doc := range docs {
			g.Go(func() error {
				log.Info("batch.document.start", "n", i+1, "of", len(docs), "file", doc.Name)
				records[i] = b.processOne(ctx, doc)
				return nil
			})
		}
		_ = g.Wait()
		sort.SliceStable(records, func(i, j int) bool { return records[i].Index < records[j].Index })
	}

	report.Records = records
	report.FinishedAt = b.now()
	s := report.Summary()
	log.Info("batch.done",
		"total", s.Total,
		"success", s.Success,
		"partial", s.Partial,
		"failed", s.Failed,
		"errors", s.Errors,
		"duration_ms", report.FinishedAt.Sub(report.StartedAt).Milliseconds(),
	)
	return report, nil
}

// processOne never fails: a pipeline error or panic becomes an Error record.
func (b *Processor) processOne(ctx context.Context, doc entity.Document) (rec entity.ExtractionRecord) {
	defer func() {
		if r := recover(); r != nil {
			rec = b.errorRecord(ctx, doc, fmt.Errorf("panic: %v", r))
		}
	}()

	rec, err := b.pipeline.Process(ctx, doc)
	if err != nil {
		return b.errorRecord(ctx, doc, err)
	}
	return rec
}

func (b *Processor) errorRecord(ctx context.Context, doc entity.Document, err error) entity.ExtractionRecord {
	common.LoggerFrom(ctx, b.logger).Error("batch.document.error", "file", doc.Name, "error", err)
	var name string
	if b.namer != nil {
		name = b.namer(doc.Name)
	}
	return entity.NewRecord(doc, name, entity.Fields{}, entity.Errored(common.ErrorDetail(err)), b.now())
}
