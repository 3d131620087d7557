package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
output_dir = "gen"

spec "opendirect" {
  path = "specs/opendirect.md"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.OutputDir)
	assert.Equal(t, ":8080", cfg.Listen)
	require.Len(t, cfg.Specs, 1)
	sp := cfg.Specs[0]
	assert.Equal(t, "opendirect", sp.Name)
	assert.Equal(t, "specs/opendirect.md", sp.Path)
	assert.Equal(t, "opendirect", sp.Package, "package defaults to the spec label")
	assert.Equal(t, "/v1/opendirect", sp.RoutePrefix)
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	path := writeConfig(t, `
output_dir = "out"
listen     = ":9090"

spec "adcom" {
  path         = "specs/adcom.md"
  package      = "adcommodels"
  route_prefix = "/api/adcom"
}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, "adcommodels", cfg.Specs[0].Package)
	assert.Equal(t, "/api/adcom", cfg.Specs[0].RoutePrefix)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)

	path := writeConfig(t, `output_dir = "gen"`)
	_, err = Load(path)
	require.Error(t, err, "a config without spec blocks is rejected")

	path = writeConfig(t, `
output_dir = "gen"

spec "opendirect" {
  path = ""
}
`)
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no path")
}
