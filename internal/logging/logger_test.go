package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/img2mp4/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()

	var out, errOut bytes.Buffer
	l.SetOutput(&out, &errOut)
	l.Info("test message")
	l.Error("broken")

	assert.Contains(t, out.String(), "[INFO] test message")
	assert.NotContains(t, out.String(), "broken")
	assert.Contains(t, errOut.String(), "[ERROR] broken")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorAlways
	cfg.LogFile = filepath.Join(dir, "logs", "img2mp4.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	l.SetOutput(&bytes.Buffer{}, &bytes.Buffer{})

	l.Info("to file")
	l.Success("done")
	require.NoError(t, l.Close())

	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[INFO] to file")
	assert.Contains(t, string(b), "[SUCCESS] done")
	assert.NotContains(t, string(b), "\033[", "file sink is never colored")
}

func TestDebug_RespectsVerbose(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	l, err := NewLogger(&cfg)
	require.NoError(t, err)
	defer l.Close()

	var out bytes.Buffer
	l.SetOutput(&out, &out)
	l.Debug(false, "hidden")
	l.Debug(true, "shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "[DEBUG] shown")
}

func TestDetail_FileOnly(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(t.TempDir(), "run.log")
	l, err := NewLogger(&cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	l.SetOutput(&out, &out)
	l.Detail("full %s", "diagnostic")
	require.NoError(t, l.Close())

	assert.Empty(t, out.String())
	b, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[ERROR] full diagnostic")
}
