package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeThenLoad(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, Initialize(base))

	c, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, "disk", c.Storage)
	assert.Equal(t, filepath.Join(base, "archive"), c.DiskStoreDir)
}

func TestInitializeRefusesToOverwrite(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, Initialize(base))
	assert.Error(t, Initialize(base))
}

func TestLoadRejectsWorldReadableConfig(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "config"), []byte("storage disk\n"), 0644))
	_, err := Load(base)
	assert.Error(t, err)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "config"), []byte("bogus-key value\n"), 0600))
	_, err := Load(base)
	assert.Error(t, err)
}

func TestLoadResolvesRelativeDiskStoreDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(base, "config"), []byte("storage disk\ndisk-store-dir blobs\n"), 0600))
	c, err := Load(base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "blobs"), c.DiskStoreDir)
}
