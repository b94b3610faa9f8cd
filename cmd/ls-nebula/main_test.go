package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/litescript/ls-nebula/internal/config"
	"github.com/litescript/ls-nebula/internal/version"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type result struct {
	app    *app
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("LS_NEBULA_FPS", "")
	t.Setenv("LS_NEBULA_LOG_LEVEL", "")
	t.Setenv("LS_NEBULA_SEED", "")

	var out, errb bytes.Buffer
	a := newApp(&out, &errb)
	a.isTerminal = func() bool { return false }

	root := a.rootCmd()
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yaml")))
	err := root.ExecuteContext(context.Background())
	return result{app: a, stdout: out.String(), stderr: errb.String(), err: err}
}

func TestVersion(t *testing.T) {
	r := run(t, "version")
	require.NoError(t, r.err)
	assert.Equal(t, "ls-nebula v"+version.Version+"\n", r.stdout)
}

func TestTUIRefusesNonTerminal(t *testing.T) {
	for _, args := range [][]string{{}, {"tui"}} {
		r := run(t, args...)
		assert.ErrorIs(t, r.err, errNotTerminal, "args %v", args)
	}
}

func TestFlagOverrides(t *testing.T) {
	r := run(t, "version", "--fps", "1000")
	require.NoError(t, r.err)
	assert.Equal(t, config.MaxFPS, r.app.cfg.FPS)

	r = run(t, "version", "--log-level", "loud")
	assert.ErrorIs(t, r.err, config.ErrInvalid)
}

func TestLogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nebula.log")
	r := run(t, "snapshot", "--out", "-", "--width", "40", "--height", "30", "--frames", "2",
		"--log-level", "debug", "--log-file", path)
	require.NoError(t, r.err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "snapshot: 2 frames at 40x30")
	assert.Empty(t, r.stderr)
}

func TestSnapshot_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.png")
	r := run(t, "snapshot", "--out", path, "--width", "200", "--height", "150", "--frames", "5")
	require.NoError(t, r.err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestSnapshot_Deterministic(t *testing.T) {
	args := []string{"snapshot", "--out", "-", "--width", "160", "--height", "120", "--frames", "30"}

	a := run(t, append(args, "--seed", "5")...)
	b := run(t, append(args, "--seed", "5")...)
	c := run(t, append(args, "--seed", "6")...)
	require.NoError(t, a.err)
	require.NoError(t, b.err)
	require.NoError(t, c.err)

	assert.NotEmpty(t, a.stdout)
	assert.Equal(t, a.stdout, b.stdout, "same seed, same image")
	assert.NotEqual(t, a.stdout, c.stdout, "different seed, different image")
}

func TestSnapshot_ANSI(t *testing.T) {
	r := run(t, "snapshot", "--ansi", "--width", "160", "--height", "150", "--frames", "3")
	require.NoError(t, r.err)

	// 150 engine px at 8 px per device px is 19 device rows, so 10 text rows.
	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, 20, strings.Count(lines[0], "▀"))
}

func TestSnapshot_RejectsBadFrames(t *testing.T) {
	r := run(t, "snapshot", "--out", "-", "--frames", "0")
	assert.Error(t, r.err)
}

func TestSnapshot_RejectsEmptySize(t *testing.T) {
	for _, args := range [][]string{
		{"--width", "0"},
		{"--height", "0"},
		{"--width", "-3", "--height", "10"},
	} {
		path := filepath.Join(t.TempDir(), "sky.png")
		r := run(t, append([]string{"snapshot", "--out", path}, args...)...)
		require.Error(t, r.err, "args %v", args)
		assert.Contains(t, r.err.Error(), "must be positive")
		assert.NoFileExists(t, path)
	}
}
