package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/autolink/pkg/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestProcess_Success(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	var out bytes.Buffer
	p := NewProcess("sh", &out, nil)

	if err := p.Run(context.Background(), dir, "-c", "pwd"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	want, _ := filepath.EvalSymlinks(dir)
	if got != want {
		t.Errorf("command ran in %q, want %q", got, want)
	}
}

func TestProcess_NonZeroExit(t *testing.T) {
	requireShell(t)
	var errOut bytes.Buffer
	p := NewProcess("sh", nil, &errOut)

	err := p.Run(context.Background(), t.TempDir(), "-c", "echo boom >&2; exit 3")
	if !errors.Is(err, errors.ErrCodeExternalCommandFailed) {
		t.Fatalf("Run() error = %v, want EXTERNAL_COMMAND_FAILED", err)
	}
	if errors.IsFatalForSchedule(err) {
		t.Error("non-zero exit must not be fatal for every schedule")
	}

	var ee *ExitError
	if !stderrors.As(err, &ee) {
		t.Fatalf("error %v does not hold *ExitError", err)
	}
	if ee.Code != 3 {
		t.Errorf("Code = %d, want 3", ee.Code)
	}
	if ee.Stderr != "boom" {
		t.Errorf("Stderr = %q, want boom", ee.Stderr)
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Errorf("stderr not forwarded: %q", errOut.String())
	}
}

func TestProcess_ToolMissing(t *testing.T) {
	p := NewProcess("autolink-no-such-tool", nil, nil)

	err := p.Run(context.Background(), t.TempDir(), "install")
	if !errors.Is(err, errors.ErrCodeExternalToolMissing) {
		t.Fatalf("Run() error = %v, want EXTERNAL_TOOL_MISSING", err)
	}
	if !errors.IsFatalForSchedule(err) {
		t.Error("missing tool must be fatal")
	}
}

func TestProcess_MissingDir(t *testing.T) {
	requireShell(t)
	p := NewProcess("sh", nil, nil)

	err := p.Run(context.Background(), filepath.Join(t.TempDir(), "gone"), "-c", "true")
	if !errors.Is(err, errors.ErrCodeExternalToolMissing) {
		t.Errorf("Run() error = %v, want EXTERNAL_TOOL_MISSING", err)
	}
}

func TestProcess_CanceledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcess("autolink-no-such-tool", nil, nil)
	if err := p.Run(ctx, t.TempDir()); !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestTail(t *testing.T) {
	if got := tail("abcdef", 3); got != "def" {
		t.Errorf("tail() = %q, want def", got)
	}
	if got := tail("ab", 3); got != "ab" {
		t.Errorf("tail() = %q, want ab", got)
	}
}
