package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LS_NEBULA_FPS", "")
	t.Setenv("LS_NEBULA_LOG_LEVEL", "")
	t.Setenv("LS_NEBULA_SEED", "")
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFPS, cfg.FPS)
}

func TestLoad_ParsesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
fps: 30
log_level: debug
seed: 42
window:
  width: 640
  height: 480
  scale: 0.5
terminal:
  pixel_size: 10
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 0.5, cfg.Window.Scale)
	assert.Equal(t, "ls-nebula", cfg.Window.Title, "unset fields keep defaults")
	assert.Equal(t, 10, cfg.Terminal.PixelSize)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: [nope"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LS_NEBULA_FPS", "24")
	t.Setenv("LS_NEBULA_LOG_LEVEL", "warn")
	t.Setenv("LS_NEBULA_SEED", "1234")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(1234), cfg.Seed)
}

func TestLoad_EnvIgnoresGarbage(t *testing.T) {
	clearEnv(t)
	t.Setenv("LS_NEBULA_FPS", "fast")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFPS, cfg.FPS)
}

func TestClamp(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{0, MinFPS},
		{-5, MinFPS},
		{60, 60},
		{1000, MaxFPS},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.FPS = tt.fps
		cfg.Clamp()
		if cfg.FPS != tt.want {
			t.Errorf("Clamp(fps=%d) = %d, want %d", tt.fps, cfg.FPS, tt.want)
		}
	}

	cfg := DefaultConfig()
	cfg.Terminal.PixelSize = 0
	cfg.Window.Scale = -1
	cfg.Clamp()
	assert.Equal(t, 8, cfg.Terminal.PixelSize)
	assert.Equal(t, 1.0, cfg.Window.Scale)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Snapshot.Frames = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = DefaultConfig()
	cfg.Window.Width = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	for _, size := range [][2]int{{0, 600}, {800, 0}, {-1, 600}} {
		cfg = DefaultConfig()
		cfg.Snapshot.Width, cfg.Snapshot.Height = size[0], size[1]
		assert.ErrorIs(t, cfg.Validate(), ErrInvalid, "snapshot size %v", size)
	}
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := DefaultConfig()
	want.FPS = 90
	want.Seed = 7
	want.Window.Title = "sky"
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FPS = 50
	assert.Equal(t, 20*time.Millisecond, cfg.FrameInterval())

	cfg.FPS = 0
	assert.Equal(t, time.Second, cfg.FrameInterval())
}

func TestDefaultPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "ls-nebula", "config.yaml"), DefaultPath())
}
