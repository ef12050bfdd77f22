package container

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/easayliu/pdf-store/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(root string) *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			RootDir:     root,
			MaxUploadMB: 1,
			TempMaxAge:  time.Hour,
			SweepCron:   "@every 1h",
		},
	}
}

func TestNewServiceContainer_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "pdfs")

	c, err := NewServiceContainer(testConfig(root))
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, root, c.GetStorageRoot())
	assert.NotNil(t, c.GetStorageService())
	assert.NotNil(t, c.GetRegistry())
	assert.False(t, c.GetRateLimiter().Enabled())

	require.NoError(t, c.Start())
	require.NoError(t, c.Close())
}

func TestNewServiceContainer_StartSweepsLeftovers(t *testing.T) {
	root := t.TempDir()
	leftover := filepath.Join(root, ".upload-crashed.tmp")
	require.NoError(t, os.WriteFile(leftover, []byte("partial"), 0o644))
	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(leftover, old, old))

	c, err := NewServiceContainer(testConfig(root))
	require.NoError(t, err)
	require.NoError(t, c.Start())
	defer c.Close()

	_, err = os.Stat(leftover)
	assert.True(t, os.IsNotExist(err))
}

func TestNewServiceContainer_RootIsFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	_, err := NewServiceContainer(testConfig(root))
	assert.Error(t, err)
}

func TestNewServiceContainer_InvalidCron(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Storage.SweepCron = "not a schedule"

	_, err := NewServiceContainer(cfg)
	assert.Error(t, err)
}
