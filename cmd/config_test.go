package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipescan/defectjoin/join"
	"github.com/pipescan/defectjoin/join/table"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_EmptyPath_ReturnsDefaults(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Tolerance)
	assert.Equal(t, []string{"Tag", "Size", "Index", "CRC", "Time"}, cfg.ExcludedColumns)
	assert.Equal(t, string(join.DecimalComma), cfg.Decimal)
	assert.Equal(t, ";", cfg.Defects.Delimiter)
	assert.Equal(t, join.DefaultDefectColumns(), cfg.DefectColumns())
	assert.Equal(t, ",", cfg.Values.Delimiter)
	assert.Equal(t, "Dist", cfg.Values.DistanceColumn)
	assert.Equal(t, 100_000.0, cfg.Values.DistanceDivisor)
	assert.Equal(t, string(table.FormatCSV), cfg.Output.Format)
	assert.True(t, cfg.Output.CRLF)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_OverlaysFileOnDefaults(t *testing.T) {
	// GIVEN a file that only sets a few fields
	path := writeFile(t, t.TempDir(), "defectjoin.yaml", `
tolerance: 0.1
decimal: period
values:
  distance_column: Distance
output:
  format: arrow
`)

	// WHEN loaded
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	// THEN the named fields change and everything else keeps its default
	assert.Equal(t, 0.1, cfg.Tolerance)
	assert.Equal(t, join.DecimalPeriod, cfg.Settings().Decimal)
	assert.Equal(t, "Distance", cfg.Settings().DistanceColumn)
	assert.Equal(t, 100_000.0, cfg.Settings().DistanceDivisor, "unset nested field keeps its default")
	assert.Equal(t, "arrow", cfg.Output.Format)
	assert.Equal(t, ";", cfg.Defects.Delimiter)
}

func TestLoadConfig_UnknownField_Rejected(t *testing.T) {
	// GIVEN a config with a typo in a field name
	path := writeFile(t, t.TempDir(), "defectjoin.yaml", "tolerence: 0.1\n")

	// WHEN loaded
	_, err := loadConfig(path)

	// THEN strict parsing reports it
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tolerence")
}

func TestLoadConfig_MissingFile_ReturnsError(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, "tolerance"},
		{"unknown decimal", func(c *Config) { c.Decimal = "dot" }, "decimal"},
		{"two-character delimiter", func(c *Config) { c.Values.Delimiter = ",," }, "values.delimiter"},
		{"empty delimiter", func(c *Config) { c.Output.Delimiter = "" }, "output.delimiter"},
		{"unknown charset", func(c *Config) { c.Defects.Charset = "klingon" }, "defects.charset"},
		{"unknown format", func(c *Config) { c.Output.Format = "xlsx" }, "output.format"},
		{"negative batch size", func(c *Config) { c.Output.BatchSize = -5 }, "batch_size"},
		{"negative defect column", func(c *Config) { c.Defects.DepthColumn = -1 }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_Validate_AcceptsLegacyCharset(t *testing.T) {
	cfg := defaultConfig()
	cfg.Defects.Charset = "windows-1251"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_ReaderOptions_UseConfiguredDelimiters(t *testing.T) {
	cfg := defaultConfig()
	cfg.Values.Delimiter = "\t"

	assert.Equal(t, ';', cfg.defectsReaderOptions("d.csv").Delimiter)
	assert.Equal(t, '\t', cfg.valuesReaderOptions("v.csv").Delimiter)
	assert.Equal(t, "v.csv", cfg.valuesReaderOptions("v.csv").Source)
	assert.Equal(t, ',', cfg.writerOptions().Delimiter)
}
