package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/cv-extract/constants"
)

// Columns is the fixed report column order.
var Columns = []string{"name", "gpa", "major", "semester", "skills", "skill_count", "status", "timestamp"}

// Report is the aggregated output of one batch run, in enumeration order.
type Report struct {
	RunID      uuid.UUID          `json:"run_id"`
	Source     string             `json:"source"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
	Records    []ExtractionRecord `json:"records"`
}

// Summary tallies outcome categories.
type Summary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Partial int `json:"partial"`
	Failed  int `json:"failed"`
	Errors  int `json:"errors"`
}

func (r *Report) Summary() Summary {
	s := Summary{Total: len(r.Records)}
	for _, rec := range r.Records {
		switch rec.Status.Kind {
		case constants.StatusSuccess:
			s.Success++
		case constants.StatusPartial:
			s.Partial++
		case constants.StatusFailed:
			s.Failed++
		case constants.StatusError:
			s.Errors++
		}
	}
	return s
}

// Empty reports whether the run produced no records.
func (r *Report) Empty() bool { return len(r.Records) == 0 }
