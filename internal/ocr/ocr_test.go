package ocr

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/internal/common"
)

type call struct {
	name string
	args []string
}

type stubRunner struct {
	calls    []call
	handlers map[string]func(args []string) ([]byte, []byte, error)
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	s.calls = append(s.calls, call{name: name, args: args})
	if h, ok := s.handlers[name]; ok {
		return h(args)
	}
	return nil, []byte("not stubbed"), errors.New("exec: not found")
}

func (s *stubRunner) called(name string) bool {
	for _, c := range s.calls {
		if c.name == name {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newStubbed(cfg Config, r *stubRunner, native func(string) (string, int, error)) *Extractor {
	e := NewExtractor(cfg, nil).WithRunner(r)
	e.native = native
	return e
}

func noNative(string) (string, int, error) { return "", 0, errors.New("no text layer") }

func TestExtract_NativeText(t *testing.T) {
	path := writeFile(t, "cv.pdf", "not a pdf")
	r := &stubRunner{}
	e := newStubbed(Config{EnableOCR: true}, r, func(string) (string, int, error) {
		return "IPK:  3.50\r\nSkills: Go", 2, nil
	})

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodNative, res.Method)
	assert.Equal(t, "IPK: 3.50\nSkills: Go", res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.Empty(t, r.calls)
}

func TestExtract_FallsBackToPdftotext(t *testing.T) {
	path := writeFile(t, "cv.pdf", "not a pdf")
	r := &stubRunner{handlers: map[string]func([]string) ([]byte, []byte, error){
		"pdftotext": func(args []string) ([]byte, []byte, error) {
			assert.Contains(t, args, "-layout")
			return []byte("IPK 3.5\fSemester 4\f"), nil, nil
		},
	}}
	e := newStubbed(Config{EnableOCR: true}, r, noNative)

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodText, res.Method)
	assert.Equal(t, "IPK 3.5 Semester 4", res.Text)
	assert.Equal(t, 2, res.Pages)
	assert.False(t, r.called("tesseract"))
}

func TestExtract_OCRFallback(t *testing.T) {
	path := writeFile(t, "scan.pdf", "not a pdf")
	r := &stubRunner{handlers: map[string]func([]string) ([]byte, []byte, error){
		"pdftotext": func([]string) ([]byte, []byte, error) { return []byte("  \f "), nil, nil },
		"pdftoppm": func(args []string) ([]byte, []byte, error) {
			prefix := args[len(args)-1]
			for _, p := range []string{"-1.png", "-2.png"} {
				if err := os.WriteFile(prefix+p, []byte("png"), 0o644); err != nil {
					return nil, nil, err
				}
			}
			return nil, nil, nil
		},
		"tesseract": func(args []string) ([]byte, []byte, error) {
			return []byte("Jurusan: Sistem Informasi\n-----\n"), nil, nil
		},
	}}
	e := newStubbed(Config{EnableOCR: true}, r, noNative)

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodOCR, res.Method)
	assert.Equal(t, "eng+ind", res.Language)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "Jurusan: Sistem Informasi\n\nJurusan: Sistem Informasi", res.Text)

	for _, c := range r.calls {
		if c.name == "tesseract" {
			assert.Contains(t, c.args, "eng+ind")
		}
	}
}

func TestExtract_OCRDisabled(t *testing.T) {
	path := writeFile(t, "scan.pdf", "not a pdf")
	r := &stubRunner{handlers: map[string]func([]string) ([]byte, []byte, error){
		"pdftotext": func([]string) ([]byte, []byte, error) { return nil, nil, nil },
	}}
	e := newStubbed(Config{EnableOCR: false}, r, noNative)

	res, err := e.Extract(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrTextUnavailable)
	assert.Empty(t, res.Text)
	assert.False(t, r.called("pdftoppm"))
	assert.NotEmpty(t, res.Warnings)
}

func TestExtract_PlainText(t *testing.T) {
	path := writeFile(t, "cv.txt", "GPA 3.9\t\tSemester 2\n\n\n\nSkills: Docker")
	e := NewExtractor(Config{}, nil).WithRunner(&stubRunner{})

	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, MethodPlain, res.Method)
	assert.Equal(t, "GPA 3.9 Semester 2\n\nSkills: Docker", res.Text)
}

func TestExtract_Unsupported(t *testing.T) {
	path := writeFile(t, "cv.docx", "x")
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), path)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestExtract_MissingFile(t *testing.T) {
	_, err := NewExtractor(Config{}, nil).Extract(context.Background(), filepath.Join(t.TempDir(), "gone.pdf"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, common.ErrTextUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "IPK 3.05", Normalize("  IPK   3.05  "))
	assert.Equal(t, "a\n\nb", Normalize("a\r\n\r\n\r\n\r\nb"))
	assert.Equal(t, "a\n\nb", Normalize("a\n_____\nb"))
}
