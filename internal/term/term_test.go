package term

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/img2mp4/internal/config"
)

func TestConfigure(t *testing.T) {
	Configure(config.ColorAlways)
	assert.True(t, Enabled())
	assert.NotEqual(t, "x", Red.Sprint("x"), "colored output wraps text in escapes")

	Configure(config.ColorNever)
	assert.False(t, Enabled())
	assert.Equal(t, "x", Red.Sprint("x"))
}

func TestIsTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTerminal(f))
	assert.False(t, IsTerminal(nil))
}
