package pdftext

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// stderrCap bounds how much of a failing command's stderr is logged and
// attached to the returned error.
const stderrCap = 8 << 10

// Runner executes an external converter. Tests substitute a fake.
type Runner interface {
	Run(ctx context.Context, name string, logger *slog.Logger, args ...string) (stdout, stderr []byte, err error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, logger *slog.Logger, args ...string) ([]byte, []byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		logger.Warn("pdftext.exec.not_found", "cmd", name, "error", err)
		return nil, nil, fmt.Errorf("%s not available: %w", name, err)
	}

	started := time.Now()
	logger.Debug("pdftext.exec.start", "cmd_line", strings.Join(append([]string{name}, args...), " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	elapsed := time.Since(started).Milliseconds()
	if runErr == nil {
		logger.Debug("pdftext.exec.ok", "cmd", name, "elapsed_ms", elapsed, "stdout_bytes", stdout.Len())
		return stdout.Bytes(), stderr.Bytes(), nil
	}

	tail := clip(strings.TrimSpace(stderr.String()), stderrCap)
	logger.Error("pdftext.exec.failed", "cmd", name, "elapsed_ms", elapsed, "error", runErr, "stderr", tail)
	if ctx.Err() != nil {
		runErr = fmt.Errorf("%w (%v)", ctx.Err(), runErr)
	}
	if tail != "" {
		runErr = fmt.Errorf("%w: %s", runErr, tail)
	}
	return stdout.Bytes(), stderr.Bytes(), runErr
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
