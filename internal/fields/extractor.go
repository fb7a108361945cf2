// Package fields extracts applicant fields from résumé plain text.
//
// Every field is an ordered cascade of independent matchers; the first
// candidate that parses and passes the field's plausibility check wins.
// Extractors are pure functions of their input text and share only
// read-only tables, so one Extractor may serve concurrent documents.
package fields

import (
	"log/slog"

	"github.com/joseph-ayodele/cv-extract/internal/entity"
)

// Extractor runs the GPA, major, semester and skills cascades.
type Extractor struct {
	cfg      ExtractionConfig
	gpa      Cascade[float64]
	semester Cascade[int]
	major    *majorExtractor
	skills   *skillMatcher
	logger   *slog.Logger
}

// New builds an Extractor. Zero-valued tables and windows in cfg fall back to
// DefaultExtractionConfig; policy flags are taken as given.
func New(cfg ExtractionConfig, logger *slog.Logger) (*Extractor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	e := &Extractor{cfg: cfg, logger: logger}
	anomaly := func(field string) func(string, error) {
		return func(raw string, err error) {
			e.logger.Debug("fields.parse.anomaly", "field", field, "raw", raw, "error", err)
		}
	}
	e.gpa = gpaCascade(anomaly("gpa"))
	e.semester = semesterCascade(anomaly("semester"))

	var err error
	if e.major, err = newMajorExtractor(cfg); err != nil {
		return nil, err
	}
	if e.skills, err = newSkillMatcher(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// Config returns the effective configuration.
func (e *Extractor) Config() ExtractionConfig { return e.cfg }

// Extract runs the four field cascades independently over text.
func (e *Extractor) Extract(text string) entity.Fields {
	return entity.Fields{
		GPA:      e.GPA(text),
		Major:    e.Major(text),
		Semester: e.Semester(text),
		Skills:   e.Skills(text),
	}
}
