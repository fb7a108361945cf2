// Package pipeline carries one document from reference to classified record.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// Outcome is a terminal record together with the states the document went through.
type Outcome struct {
	Record entity.ExtractionRecord
	Path   []constants.DocumentState
}

// Processor coordinates text acquisition then field extraction.
type Processor struct {
	Logger *slog.Logger
	Text   *TextStage
	Fields *FieldStage
	Now    func() time.Time
}

func NewProcessor(logger *slog.Logger, text *TextStage, fields *FieldStage) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Logger: logger, Text: text, Fields: fields, Now: time.Now}
}

// Process runs the document state machine. A returned error means the
// pipeline itself faulted; the caller turns it into an Error record.
func (p *Processor) Process(ctx context.Context, doc entity.Document) (entity.ExtractionRecord, error) {
	out, err := p.Run(ctx, doc)
	return out.Record, err
}

func (p *Processor) Run(ctx context.Context, doc entity.Document) (Outcome, error) {
	log := common.LoggerFrom(common.WithDocument(ctx, doc.Path), p.Logger)
	out := Outcome{Path: []constants.DocumentState{constants.StateInit}}
	step := func(s constants.DocumentState) {
		out.Path = append(out.Path, s)
		log.Debug("pipeline.state", "state", s)
	}

	name := p.Fields.Name(doc.Name)

	res, ok, err := p.Text.Run(ctx, doc)
	if err != nil {
		log.Error("pipeline.text.failed", "error", err)
		return out, common.DocumentError(doc.Path, err)
	}

	if !ok {
		step(constants.StateTextUnavailable)
		log.Warn("pipeline.text.unavailable", "warnings", len(res.Warnings))
		rec := entity.NewRecord(doc, name, entity.Fields{}, entity.Failed(constants.ReasonNoText), p.Now())
		rec.TextMethod, rec.Pages = res.Method, res.Pages
		step(constants.StateClassified)
		out.Record = rec
		return out, nil
	}
	step(constants.StateTextAcquired)

	f := p.Fields.Run(res.Text)
	step(constants.StateFieldsExtracted)

	status := Classify(f)
	rec := entity.NewRecord(doc, name, f, status, p.Now())
	rec.TextMethod, rec.Pages = res.Method, res.Pages
	step(constants.StateClassified)

	log.Info("pipeline.document.ok",
		"status", status.String(),
		"method", res.Method,
		"pages", res.Pages,
		"skills", rec.SkillCount,
	)
	out.Record = rec
	return out, nil
}
