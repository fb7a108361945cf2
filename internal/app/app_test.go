package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/internal/common"
	"github.com/joseph-ayodele/cv-extract/internal/entity"
	"github.com/joseph-ayodele/cv-extract/internal/fields"
)

func defaultConfig(t *testing.T) *common.Config {
	t.Helper()
	cfg, err := common.Load(common.NewViper())
	require.NoError(t, err)
	return cfg
}

func TestFieldConfig(t *testing.T) {
	fc := FieldConfig(common.ExtractionConfig{
		MajorStrategy: "label",
		AssumeDegree:  false,
		DefaultDegree: "S1",
		TruncateName:  false,
		MaxNameTokens: 3,
	})
	assert.Equal(t, fields.MajorLabelAnchored, fc.MajorStrategy)
	assert.Empty(t, fc.DefaultDegree)
	assert.False(t, fc.TruncateNameAtDelimiter)
	assert.Equal(t, 3, fc.MaxNameTokens)

	fc = FieldConfig(common.ExtractionConfig{AssumeDegree: true, DefaultDegree: "D3"})
	assert.Equal(t, "D3", fc.DefaultDegree)
	assert.Equal(t, fields.MajorDegreeAnchored, fc.MajorStrategy)
}

func TestOCRConfig(t *testing.T) {
	oc := OCRConfig(common.OCRConfig{Enabled: true, Languages: "ind", DPI: 200})
	assert.True(t, oc.EnableOCR)
	assert.Equal(t, "ind", oc.TesseractLang)
	assert.Equal(t, 200, oc.DPI)
}

func TestBuild_ProcessesPlainText(t *testing.T) {
	cfg := defaultConfig(t)
	comps, err := Build(cfg, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Rina Wati.txt")
	require.NoError(t, os.WriteFile(path, []byte("IPK: 3.60\nSemester 5\nSkills: Python, SQL"), 0o600))

	rec, err := comps.Processor.Process(context.Background(), entity.Document{Path: path, Name: "Rina Wati.txt"})
	require.NoError(t, err)
	assert.Equal(t, "Rina Wati", rec.Name)
	require.NotNil(t, rec.GPA)
	assert.InDelta(t, 3.60, *rec.GPA, 1e-9)
}

func TestBatchOptions(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Batch.Workers = 4
	opts := BatchOptions(cfg)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, []string{"pdf"}, opts.Ingest.Extensions)
	assert.True(t, opts.Ingest.Recursive)
}

func TestOpenStore(t *testing.T) {
	db, err := OpenStore(context.Background(), common.StoreConfig{}, nil)
	require.NoError(t, err)
	assert.Nil(t, db)

	db, err = OpenStore(context.Background(), common.StoreConfig{DSN: filepath.Join(t.TempDir(), "s.db")}, nil)
	require.NoError(t, err)
	require.NotNil(t, db)
	db.Close(nil)
}
