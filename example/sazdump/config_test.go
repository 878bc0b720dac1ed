package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deepch/ebml/format/saz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sazdump.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
kind = " audio "
index = 2
json = true
`)

	cfg, err := loadConfig(path, defaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "audio", cfg.Kind)
	assert.Equal(t, 2, cfg.Index)
	assert.True(t, cfg.JSON)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, saz.IndexPage, cfg.IndexPage)

	kind, err := cfg.validate()
	require.NoError(t, err)
	assert.Equal(t, saz.KindAudio, kind)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(writeConfig(t, `kind = `), defaultConfig())
	assert.Error(t, err)

	_, err = loadConfig(writeConfig(t, `colour = "blue"`), defaultConfig())
	assert.ErrorContains(t, err, "colour")

	_, err = loadConfig(filepath.Join(t.TempDir(), "missing.toml"), defaultConfig())
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := defaultConfig()
	kind, err := cfg.validate()
	require.NoError(t, err)
	assert.Equal(t, saz.KindVideo, kind)

	cfg.Index = -1
	_, err = cfg.validate()
	assert.Error(t, err)

	cfg = defaultConfig()
	cfg.Kind = "subtitles"
	_, err = cfg.validate()
	assert.ErrorIs(t, err, saz.ErrUnknownKind)

	cfg = defaultConfig()
	cfg.IndexPage = ""
	_, err = cfg.validate()
	assert.Error(t, err)
}
