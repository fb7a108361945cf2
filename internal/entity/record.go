package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is how ExtractedAt is rendered in reports.
const TimestampLayout = "2006-01-02 15:04:05"

// Fields is the output of the field extractors for one document text.
type Fields struct {
	GPA      *float64 `json:"gpa,omitempty"`
	Major    *string  `json:"major,omitempty"`
	Semester *int     `json:"semester,omitempty"`
	Skills   []string `json:"skills,omitempty"`
}

// ExtractionRecord is the terminal result for one source document.
type ExtractionRecord struct {
	ID         uuid.UUID `json:"id"`
	Index      int       `json:"index"`
	SourcePath string    `json:"source_path"`
	FileName   string    `json:"file_name"`

	Name        string    `json:"name"`
	GPA         *float64  `json:"gpa"`
	Major       *string   `json:"major"`
	Semester    *int      `json:"semester"`
	Skills      []string  `json:"skills"`
	SkillCount  int       `json:"skill_count"`
	Status      Status    `json:"status"`
	ExtractedAt time.Time `json:"extracted_at"`

	TextMethod string `json:"text_method,omitempty"`
	Pages      int    `json:"pages,omitempty"`
}

// NewRecord assembles a record; SkillCount is always derived from skills.
func NewRecord(doc Document, name string, f Fields, status Status, at time.Time) ExtractionRecord {
	skills := append([]string{}, f.Skills...)
	return ExtractionRecord{
		ID:          uuid.New(),
		Index:       doc.Index,
		SourcePath:  doc.Path,
		FileName:    doc.Name,
		Name:        name,
		GPA:         f.GPA,
		Major:       f.Major,
		Semester:    f.Semester,
		Skills:      skills,
		SkillCount:  len(skills),
		Status:      status,
		ExtractedAt: at,
	}
}

// SkillsString is the comma-joined skill list used in tabular output.
func (r ExtractionRecord) SkillsString() string {
	return strings.Join(r.Skills, ", ")
}

// Timestamp renders ExtractedAt for tabular output.
func (r ExtractionRecord) Timestamp() string {
	if r.ExtractedAt.IsZero() {
		return ""
	}
	return r.ExtractedAt.Format(TimestampLayout)
}
