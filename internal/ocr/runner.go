package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// ErrToolMissing means a pdftotext/pdftoppm/tesseract binary is not installed.
var ErrToolMissing = errors.New("tool not installed")

// maxStderr caps the stderr kept in warnings and logs.
const maxStderr = 2 << 10

// Runner executes the external text tools; tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// RunnerFunc adapts a function to Runner.
type RunnerFunc func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

func (f RunnerFunc) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return f(ctx, name, args...)
}

// execRunner resolves each tool once and reports a missing one as ErrToolMissing
// instead of an opaque exec error per page.
type execRunner struct {
	logger   *slog.Logger
	lookPath func(string) (string, error)
	resolved *sync.Map // tool name -> path or error
}

func newExecRunner(logger *slog.Logger) execRunner {
	return execRunner{logger: logger, lookPath: exec.LookPath, resolved: &sync.Map{}}
}

func (r execRunner) resolve(name string) (string, error) {
	if v, ok := r.resolved.Load(name); ok {
		if err, isErr := v.(error); isErr {
			return "", err
		}
		return v.(string), nil
	}
	p, err := r.lookPath(name)
	if err != nil {
		err = fmt.Errorf("%w: %s", ErrToolMissing, name)
		r.resolved.Store(name, err)
		r.logger.Warn("ocr.tool.missing", "tool", name)
		return "", err
	}
	r.resolved.Store(name, p)
	return p, nil
}

func (r execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	bin, err := r.resolve(name)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	cmd := exec.CommandContext(ctx, bin, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err = cmd.Run()
	attrs := []any{
		"tool", name,
		"args", strings.Join(args, " "),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		r.logger.Warn("ocr.exec.failed", append(attrs, "error", err, "stderr", stderrSummary(errb.Bytes()))...)
	} else {
		r.logger.Debug("ocr.exec.ok", append(attrs, "stdout_bytes", out.Len())...)
	}
	return out.Bytes(), errb.Bytes(), err
}

// stderrSummary trims tool stderr to maxStderr bytes without splitting a rune.
func stderrSummary(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= maxStderr {
		return s
	}
	cut := maxStderr
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "...(truncated)"
}
