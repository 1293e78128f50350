package runner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/ethanolivertroy/cargo-local-pkgs/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCargo writes a script that records its arguments, one invocation per
// line, and exits with 7 when asked to act on failPkg.
func fakeCargo(t *testing.T, failPkg string) (bin, record string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a shell script")
	}

	dir := t.TempDir()
	record = filepath.Join(dir, "calls")
	bin = filepath.Join(dir, "cargo")
	script := "#!/bin/sh\n" +
		"echo \"$@\" >> '" + record + "'\n" +
		"echo \"ran $3\"\n" +
		"if [ \"$3\" = '" + failPkg + "' ]; then exit 7; fi\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0755)) //nolint:gosec // test binary
	return bin, record
}

func calls(t *testing.T, record string) []string {
	t.Helper()
	data, err := os.ReadFile(record)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func newTestRunner(bin string) (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, logs bytes.Buffer
	r := New(bin, ".", log.New(&logs))
	r.Stdout = &stdout
	r.Stderr = &stdout
	return r, &stdout, &logs
}

func TestRun(t *testing.T) {
	bin, record := fakeCargo(t, "")
	r, stdout, logs := newTestRunner(bin)

	err := r.Run(context.Background(), "test", []string{"app", "core"}, []string{"--release", "--", "--nocapture"})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"test -p app --release -- --nocapture",
		"test -p core --release -- --nocapture",
	}, calls(t, record))
	assert.Equal(t, "ran app\nran core\n", stdout.String())
	assert.Contains(t, logs.String(), bin+" test -p core --release -- --nocapture")
}

func TestRun_stopsAtFirstFailure(t *testing.T) {
	bin, record := fakeCargo(t, "core")
	r, _, _ := newTestRunner(bin)

	err := r.Run(context.Background(), "build", []string{"app", "core", "utils"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrActionFailed)
	assert.Contains(t, err.Error(), "build -p core")
	assert.Contains(t, err.Error(), "exit status 7")

	assert.Equal(t, []string{"build -p app", "build -p core"}, calls(t, record))
}

func TestRun_noPackages(t *testing.T) {
	bin, record := fakeCargo(t, "")
	r, _, _ := newTestRunner(bin)

	require.NoError(t, r.Run(context.Background(), "test", nil, nil))
	assert.Empty(t, calls(t, record))
}

func TestRun_missingBinary(t *testing.T) {
	r, _, _ := newTestRunner(filepath.Join(t.TempDir(), "no-such-cargo"))

	err := r.Run(context.Background(), "test", []string{"app"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrActionFailed)
}

func TestRun_runsInDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a shell script")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "cargo")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\npwd\n"), 0755)) //nolint:gosec // test binary

	ws := t.TempDir()
	r, stdout, _ := newTestRunner(bin)
	r.Dir = ws

	require.NoError(t, r.Run(context.Background(), "check", []string{"app"}, nil))
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(ws)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRun_cancelledContext(t *testing.T) {
	bin, _ := fakeCargo(t, "")
	r, _, _ := newTestRunner(bin)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, "test", []string{"app"}, nil)
	assert.ErrorIs(t, err, models.ErrActionFailed)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_interruptedWhileRunning(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("fake cargo is a shell script")
	}
	bin := filepath.Join(t.TempDir(), "cargo")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\nexec sleep 5\n"), 0755)) //nolint:gosec // test binary
	r, _, _ := newTestRunner(bin)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(200*time.Millisecond, cancel)

	start := time.Now()
	err := r.Run(ctx, "test", []string{"app", "core"}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, models.ErrActionFailed)
	assert.Contains(t, err.Error(), "test -p app")
	assert.Less(t, time.Since(start), 4*time.Second)
}
