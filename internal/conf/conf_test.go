package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")

	bc, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "file", bc.Storage.Driver)
	assert.Equal(t, filepath.Join("/data", AppName), bc.Storage.Path)
	assert.Equal(t, "todos", bc.Storage.Key)
	assert.Equal(t, "warn", bc.Logging.Level)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
logging:
  level: debug
storage:
  driver: nutsdb
  path: /tmp/dayplan-db
  codec: cbor
ui:
  theme: neon
  group: true
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	bc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", bc.Logging.Level)
	assert.Equal(t, "nutsdb", bc.Storage.Driver)
	assert.Equal(t, "/tmp/dayplan-db", bc.Storage.Path)
	assert.Equal(t, "cbor", bc.Storage.Codec)
	assert.Equal(t, "todos", bc.Storage.Key, "unset keys keep their default")
	assert.Equal(t, "neon", bc.UI.Theme)
	assert.True(t, bc.UI.Group)
}

func TestLoad_ExampleConfig(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")

	bc, err := Load(filepath.Join("..", "..", "configs", "config.example.yaml"))
	require.NoError(t, err)
	assert.Equal(t, *Default(), *bc)
}
