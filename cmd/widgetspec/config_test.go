package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: "1"
catalog_path: widgets.yaml
log_level: debug
log_format: json
log_file: calls.jsonl
http_addr: ":9000"
base_url: https://tools.example.com
`), 0o644))

	cfg, err := loadProjectConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ProjectConfig{
		Version:     "1",
		CatalogPath: "widgets.yaml",
		LogLevel:    "debug",
		LogFormat:   "json",
		LogFile:     "calls.jsonl",
		HTTPAddr:    ":9000",
		BaseURL:     "https://tools.example.com",
	}, cfg)
}

func TestLoadProjectConfig_Missing(t *testing.T) {
	cfg, err := loadProjectConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ProjectConfig{}, cfg)
}

func TestLoadProjectConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog_path: [unclosed"), 0o644))

	_, err := loadProjectConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestPick(t *testing.T) {
	assert.Equal(t, "flag", pick("flag", "file", "default"))
	assert.Equal(t, "file", pick("", "file", "default"))
	assert.Equal(t, "default", pick("", "", "default"))
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "none.yaml"), "version"})

	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "widgetspec "+version)
	assert.Contains(t, buf.String(), "commit: "+commit)
}
