package logging

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreStdLogger(t *testing.T) {
	flags, prefix := log.Flags(), log.Prefix()
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
		log.SetPrefix(prefix)
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Path)
	assert.Equal(t, 168, cfg.MaxAgeHours)
	assert.Equal(t, 24, cfg.RotationHours)
}

func TestSetupStderr(t *testing.T) {
	restoreStdLogger(t)
	w, err := Setup(DefaultConfig())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

func TestSetupRotatingFile(t *testing.T) {
	restoreStdLogger(t)
	path := filepath.Join(t.TempDir(), "afisd.log")
	cfg := DefaultConfig()
	cfg.Path = path
	cfg.Prefix = "afisd "

	w, err := Setup(cfg)
	require.NoError(t, err)
	log.Print("hello rotation")
	require.NoError(t, w.Close())

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "afisd ")
	assert.Contains(t, string(data), "hello rotation")
}
