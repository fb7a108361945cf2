package pipeline

import (
	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/extract"
)

// FieldStage runs the field extractors over acquired text.
type FieldStage struct {
	Extractor extract.FieldExtractor
}

func NewFieldStage(fe extract.FieldExtractor) *FieldStage {
	return &FieldStage{Extractor: fe}
}

func (s *FieldStage) Run(text string) entity.Fields {
	return s.Extractor.Extract(text)
}

// Name derives the record name from the filename alone.
func (s *FieldStage) Name(filename string) string {
	return s.Extractor.Name(filename)
}

// Classify rates completeness: Success needs both GPA and major.
// Semester and skills never affect the outcome.
func Classify(f entity.Fields) entity.Status {
	var missing []string
	if f.GPA == nil {
		missing = append(missing, constants.FieldGPA)
	}
	if f.Major == nil {
		missing = append(missing, constants.FieldMajor)
	}
	if len(missing) == 0 {
		return entity.Success()
	}
	return entity.Partial(missing...)
}
