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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
api:
  url: https://api.example.com/disbursements
`))
	require.NoError(t, err)

	assert.Equal(t, 22, cfg.Workbook.HeaderRow)
	assert.Equal(t, 23, cfg.Workbook.DataStartRow)
	assert.Equal(t, "./payloads", cfg.OutputDir)
	assert.Equal(t, "./payloads/.delivered.json", cfg.RegistryFile)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "x-user-name", cfg.API.UserHeader)

	// Default variants mirror the upstream workbook template.
	require.Len(t, cfg.Variants, 2)
	assert.Equal(t, "API_Doc_Agent_Broker", cfg.Variants[0].Sheet)
	assert.Equal(t, "agent_broker", cfg.Variants[0].Kind)
	assert.Equal(t, "API_Doc_Company", cfg.Variants[1].Sheet)
	assert.Equal(t, []string{"A", "B", "C", "D"}, cfg.Variants[0].FileNameColumns)
}

func TestLoadExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
workbook:
  header_row: 10
  data_start_row: 12
output_dir: ./out
api:
  url: https://api.example.com/disbursements
  timeout_seconds: 5
variants:
  - sheet: Generic
    kind: generic
    required: true
    file_name_columns: [A, B, E, F]
`))
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Workbook.DataStartRow)
	assert.Equal(t, "./out/.delivered.json", cfg.RegistryFile)
	require.Len(t, cfg.Variants, 1)
	assert.True(t, cfg.Variants[0].Required)
	assert.Equal(t, []string{"A", "B", "E", "F"}, cfg.Variants[0].FileNameColumns)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
}

func TestLoadRejectsBadVariantKind(t *testing.T) {
	_, err := Load(writeConfig(t, `
variants:
  - sheet: Sheet1
    kind: broker
`))
	assert.Error(t, err)
}

func TestLoadRejectsBadNamingColumn(t *testing.T) {
	_, err := Load(writeConfig(t, `
variants:
  - sheet: Sheet1
    kind: generic
    file_name_columns: ["A1"]
`))
	assert.Error(t, err)
}

func TestLoadRejectsDuplicateSheets(t *testing.T) {
	_, err := Load(writeConfig(t, `
variants:
  - sheet: Sheet1
    kind: generic
  - sheet: Sheet1
    kind: company
`))
	assert.Error(t, err)
}

func TestLoadRejectsDataRowAboveHeader(t *testing.T) {
	_, err := Load(writeConfig(t, `
workbook:
  header_row: 22
  data_start_row: 21
`))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
