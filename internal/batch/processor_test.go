package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/constants"
	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/extract"
	"github.com/joseph-ayodele/cv-extract/internal/fields"
	"github.com/joseph-ayodele/cv-extract/internal/ingest"
	"github.com/joseph-ayodele/cv-extract/internal/ocr"
	"github.com/joseph-ayodele/cv-extract/internal/pipeline"
)

type fakePipeline struct {
	calls atomic.Int32
	fn    func(doc entity.Document) (entity.ExtractionRecord, error)
}

func (f *fakePipeline) Process(_ context.Context, doc entity.Document) (entity.ExtractionRecord, error) {
	f.calls.Add(1)
	return f.fn(doc)
}

func writeDocs(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(body), 0o644))
	}
	return root
}

func namer(filename string) string { return fields.ExtractName(filename, 6, true) }

func faultyPipeline() *fakePipeline {
	return &fakePipeline{fn: func(doc entity.Document) (entity.ExtractionRecord, error) {
		switch doc.Name {
		case "b.pdf":
			panic("corrupt xref table")
		case "c.pdf":
			return entity.ExtractionRecord{}, errors.New("collaborator crashed")
		}
		return entity.NewRecord(doc, "ok", entity.Fields{}, entity.Success(), fixedNow()), nil
	}}
}

func TestRun_IsolatesFaults(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run("workers", func(t *testing.T) {
			root := writeDocs(t, map[string]string{"a.pdf": "", "b.pdf": "", "c.pdf": "", "d.pdf": ""})
			p := faultyPipeline()

			report, err := New(p, namer, Options{Workers: workers}, nil).Run(context.Background(), root)
			require.NoError(t, err)
			require.Len(t, report.Records, 4)
			assert.EqualValues(t, 4, p.calls.Load())

			var names []string
			for i, r := range report.Records {
				assert.Equal(t, i, r.Index)
				names = append(names, r.FileName)
			}
			assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, names)

			assert.Equal(t, "Error: panic: corrupt xref table", report.Records[1].Status.String())
			assert.Equal(t, "B", report.Records[1].Name)
			assert.Equal(t, "Error: collaborator crashed", report.Records[2].Status.String())
			assert.Equal(t, constants.StatusSuccess, report.Records[3].Status.Kind)

			s := report.Summary()
			assert.Equal(t, entity.Summary{Total: 4, Success: 2, Errors: 2}, s)
		})
	}
}

func TestRun_MissingSource(t *testing.T) {
	p := faultyPipeline()
	report, err := New(p, namer, Options{}, nil).Run(context.Background(), filepath.Join(t.TempDir(), "cv"))
	assert.Nil(t, report)
	assert.ErrorIs(t, err, common.ErrSourceNotFound)
	assert.Zero(t, p.calls.Load())
}

func TestRun_NoEligibleDocuments(t *testing.T) {
	root := writeDocs(t, map[string]string{"readme.md": "x"})
	report, err := New(faultyPipeline(), namer, Options{}, nil).Run(context.Background(), root)
	require.NoError(t, err)
	assert.True(t, report.Empty())
	assert.NotNil(t, report.Records)
	assert.NotEqual(t, report.RunID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestRun_EndToEndPlainText(t *testing.T) {
	root := writeDocs(t, map[string]string{
		"01. Rina Wati - CV.txt": "Pendidikan: S1 Sistem Informasi\nIPK: 3,72\nSemester 8\nSkills: Laravel, MySQL, Figma",
		"02_Andi_Pratama.txt":    "Technical Skills: Python, Docker\nSemester 5",
		"03 kosong.txt":          "   ",
	})

	fe, err := fields.New(fields.DefaultExtractionConfig(), nil)
	require.NoError(t, err)
	tx := extract.NewOCRAdapter(ocr.NewExtractor(ocr.Config{}, nil), nil)
	pl := pipeline.NewProcessor(nil, pipeline.NewTextStage(tx, nil), pipeline.NewFieldStage(fe))

	b := New(pl, fe.Name, Options{Ingest: ingest.Options{Extensions: []string{"txt"}}, Workers: 2}, nil)
	report, err := b.Run(context.Background(), root)
	require.NoError(t, err)
	require.Len(t, report.Records, 3)

	rina := report.Records[0]
	assert.Equal(t, "Rina Wati", rina.Name)
	assert.Equal(t, "Success", rina.Status.String())
	assert.Equal(t, "S1 Sistem Informasi", *rina.Major)
	assert.InDelta(t, 3.72, *rina.GPA, 1e-9)
	assert.Equal(t, 3, rina.SkillCount)

	andi := report.Records[1]
	assert.Equal(t, "Andi Pratama", andi.Name)
	assert.Equal(t, "Partial - Missing: GPA, Jurusan", andi.Status.String())
	assert.Equal(t, []string{"Docker", "Python"}, andi.Skills)

	empty := report.Records[2]
	assert.Equal(t, "Kosong", empty.Name)
	assert.Equal(t, "Failed - No text extracted", empty.Status.String())

	assert.Equal(t, entity.Summary{Total: 3, Success: 1, Partial: 1, Failed: 1}, report.Summary())
}
