package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/internal/ocr"
)

func TestOCRAdapter_PlainText(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(p, []byte("IPK 3.50"), 0o644))

	a := NewOCRAdapter(ocr.NewExtractor(ocr.Config{}, nil), nil)
	res, err := a.Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "IPK 3.50", res.Text)
	assert.Equal(t, ocr.MethodPlain, res.Method)
}

func TestOCRAdapter_FailureBecomesEmptyText(t *testing.T) {
	a := NewOCRAdapter(ocr.NewExtractor(ocr.Config{}, nil), nil)

	res, err := a.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.NotEmpty(t, res.Warnings)
}

func TestOCRAdapter_EmptyTextFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "blank.txt")
	require.NoError(t, os.WriteFile(p, []byte("  \n\n "), 0o644))

	res, err := NewOCRAdapter(ocr.NewExtractor(ocr.Config{}, nil), nil).Extract(context.Background(), p)
	require.NoError(t, err)
	assert.Empty(t, res.Text)
}
