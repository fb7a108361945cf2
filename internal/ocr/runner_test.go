package ocr

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cv-extract/internal/common"
)

func TestExecRunner_MissingToolResolvedOnce(t *testing.T) {
	lookups := 0
	r := execRunner{
		logger:   slog.Default(),
		resolved: &sync.Map{},
		lookPath: func(string) (string, error) {
			lookups++
			return "", errors.New("executable file not found in $PATH")
		},
	}

	for i := 0; i < 3; i++ {
		_, _, err := r.Run(context.Background(), "pdftoppm", "-png")
		require.ErrorIs(t, err, ErrToolMissing)
		assert.Contains(t, err.Error(), "pdftoppm")
	}
	assert.Equal(t, 1, lookups)
}

func TestExecRunner_RunsResolvedTool(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	r := newExecRunner(slog.Default())
	out, _, err := r.Run(context.Background(), "/bin/sh", "-c", "printf 'IPK 3.5'")
	require.NoError(t, err)
	assert.Equal(t, "IPK 3.5", string(out))
}

func TestStderrSummary(t *testing.T) {
	assert.Equal(t, "Syntax Error: bad xref", stderrSummary([]byte("  Syntax Error: bad xref\n")))
	assert.Empty(t, stderrSummary(nil))

	long := strings.Repeat("é", maxStderr) // two bytes per rune
	got := stderrSummary([]byte(long))
	assert.True(t, strings.HasSuffix(got, "...(truncated)"))
	body := strings.TrimSuffix(got, "...(truncated)")
	assert.LessOrEqual(t, len(body), maxStderr)
	assert.True(t, strings.HasPrefix(long, body))
	assert.Equal(t, 0, len(body)%2)
}

func TestExtract_MissingTesseractStopsPageLoop(t *testing.T) {
	path := writeFile(t, "scan.pdf", "not a pdf")
	tesseractCalls := 0
	r := &stubRunner{handlers: map[string]func([]string) ([]byte, []byte, error){
		"pdftotext": func([]string) ([]byte, []byte, error) { return nil, nil, nil },
		"pdftoppm": func(args []string) ([]byte, []byte, error) {
			prefix := args[len(args)-1]
			for _, p := range []string{"-1.png", "-2.png", "-3.png"} {
				if err := os.WriteFile(prefix+p, []byte("png"), 0o644); err != nil {
					return nil, nil, err
				}
			}
			return nil, nil, nil
		},
		"tesseract": func([]string) ([]byte, []byte, error) {
			tesseractCalls++
			return nil, nil, ErrToolMissing
		},
	}}
	e := newStubbed(Config{EnableOCR: true}, r, noNative)

	res, err := e.Extract(context.Background(), path)
	assert.ErrorIs(t, err, common.ErrTextUnavailable)
	assert.Empty(t, res.Text)
	assert.Equal(t, 1, tesseractCalls)

	joined := strings.Join(res.Warnings, "\n")
	assert.Contains(t, joined, ErrToolMissing.Error())
}

func TestRunnerFunc(t *testing.T) {
	var got []string
	r := RunnerFunc(func(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
		got = append([]string{name}, args...)
		return []byte("ok"), nil, nil
	})
	out, _, err := r.Run(context.Background(), "tesseract", "a.png", "stdout")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, []string{"tesseract", "a.png", "stdout"}, got)
}
