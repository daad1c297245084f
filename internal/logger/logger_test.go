package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api.log")

	log := New("production", path)
	log.Info("settlement committed")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"settlement committed"`)
}

func TestNewWithoutFile(t *testing.T) {
	log := New("development", "")
	assert.NotNil(t, log)
}
