package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/extract"
	"github.com/joseph-ayodele/cv-extract/internal/fields"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func newProcessor(t *testing.T, tx extract.TextExtractorFunc) *Processor {
	t.Helper()
	fe, err := fields.New(fields.DefaultExtractionConfig(), nil)
	require.NoError(t, err)
	p := NewProcessor(nil, NewTextStage(tx, nil), NewFieldStage(fe))
	p.Now = func() time.Time { return fixedNow }
	return p
}

func textOf(s string) extract.TextExtractorFunc {
	return func(context.Context, string) (extract.TextExtractionResult, error) {
		return extract.TextExtractionResult{Text: s, Method: "pdf-native", Pages: 1}, nil
	}
}

func TestProcess_Success(t *testing.T) {
	p := newProcessor(t, textOf("S1 Teknik Informatika\nIPK: 3.80\nSemester 6\nSkills: Go, Docker"))
	doc := entity.Document{Index: 2, Path: "/cv/3. John_Doe - CV.pdf", Name: "3. John_Doe - CV.pdf"}

	out, err := p.Run(context.Background(), doc)
	require.NoError(t, err)

	rec := out.Record
	assert.Equal(t, "John Doe", rec.Name)
	assert.Equal(t, constants.StatusSuccess, rec.Status.Kind)
	require.NotNil(t, rec.GPA)
	assert.InDelta(t, 3.8, *rec.GPA, 1e-9)
	require.NotNil(t, rec.Major)
	assert.Equal(t, "S1 Teknik Informatika", *rec.Major)
	require.NotNil(t, rec.Semester)
	assert.Equal(t, 6, *rec.Semester)
	assert.Equal(t, []string{"Docker", "Go"}, rec.Skills)
	assert.Equal(t, len(rec.Skills), rec.SkillCount)
	assert.Equal(t, 2, rec.Index)
	assert.Equal(t, fixedNow, rec.ExtractedAt)
	assert.Equal(t, "pdf-native", rec.TextMethod)

	assert.Equal(t, []constants.DocumentState{
		constants.StateInit,
		constants.StateTextAcquired,
		constants.StateFieldsExtracted,
		constants.StateClassified,
	}, out.Path)
}

func TestProcess_PartialListsMissingInOrder(t *testing.T) {
	p := newProcessor(t, textOf("Semester 3\nSkills: Figma"))
	rec, err := p.Process(context.Background(), entity.Document{Path: "/cv/a.pdf", Name: "Andi.pdf"})
	require.NoError(t, err)

	assert.Equal(t, constants.StatusPartial, rec.Status.Kind)
	assert.Equal(t, []string{"GPA", "Jurusan"}, rec.Status.Missing)
	assert.Equal(t, "Partial - Missing: GPA, Jurusan", rec.Status.String())
	assert.NotNil(t, rec.Semester)
}

func TestProcess_NoText(t *testing.T) {
	p := newProcessor(t, textOf("   \n "))
	out, err := p.Run(context.Background(), entity.Document{Path: "/cv/x.pdf", Name: "CV_Budi_Santoso.pdf"})
	require.NoError(t, err)

	rec := out.Record
	assert.Equal(t, "Failed - No text extracted", rec.Status.String())
	assert.Equal(t, "Budi Santoso", rec.Name)
	assert.Nil(t, rec.GPA)
	assert.Nil(t, rec.Major)
	assert.Nil(t, rec.Semester)
	assert.Empty(t, rec.Skills)
	assert.Zero(t, rec.SkillCount)
	assert.Equal(t, []constants.DocumentState{
		constants.StateInit,
		constants.StateTextUnavailable,
		constants.StateClassified,
	}, out.Path)
}

func TestProcess_CollaboratorError(t *testing.T) {
	boom := errors.New("boom")
	p := newProcessor(t, func(context.Context, string) (extract.TextExtractionResult, error) {
		return extract.TextExtractionResult{}, boom
	})
	_, err := p.Process(context.Background(), entity.Document{Path: "/cv/x.pdf", Name: "x.pdf"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, common.ErrDocumentProcessing)
}

func TestClassify(t *testing.T) {
	gpa, major := 3.5, "S1 Akuntansi"

	assert.Equal(t, entity.Success(), Classify(entity.Fields{GPA: &gpa, Major: &major}))
	assert.Equal(t, []string{"Jurusan"}, Classify(entity.Fields{GPA: &gpa}).Missing)
	assert.Equal(t, []string{"GPA"}, Classify(entity.Fields{Major: &major}).Missing)
	assert.Equal(t, constants.StatusPartial, Classify(entity.Fields{Skills: []string{"Go"}}).Kind)
}
