package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/fwojciec/lintview/fs"
	"github.com/stretchr/testify/assert"
)

func TestDefaultDirs(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/config")

	assert.Equal(t, filepath.Join("/tmp/cache", "lintview"), fs.DefaultCacheDir())
	assert.Equal(t, filepath.Join("/tmp/data", "lintview"), fs.DefaultDataDir())
	assert.Equal(t, filepath.Join("/tmp/config", "lintview", "config.yaml"), fs.DefaultConfigPath())
}
