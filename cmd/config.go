package cmd

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/pipescan/defectjoin/join"
	"github.com/pipescan/defectjoin/join/source"
	"github.com/pipescan/defectjoin/join/table"
)

// Config represents the full defectjoin.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Tolerance       float64       `yaml:"tolerance"`
	ExcludedColumns []string      `yaml:"excluded_columns"`
	Decimal         string        `yaml:"decimal"`
	ProgressEvery   int           `yaml:"progress_every"`
	Defects         DefectsConfig `yaml:"defects"`
	Values          ValuesConfig  `yaml:"values"`
	Output          OutputConfig  `yaml:"output"`
	S3              S3Config      `yaml:"s3"`
}

// DefectsConfig describes the defect table layout.
type DefectsConfig struct {
	Delimiter      string `yaml:"delimiter"`
	Charset        string `yaml:"charset"`
	DistanceColumn int    `yaml:"distance_column"` // zero-based field positions
	LabelColumn    int    `yaml:"label_column"`
	DepthColumn    int    `yaml:"depth_column"`
}

// ValuesConfig describes the value table layout.
type ValuesConfig struct {
	Delimiter       string  `yaml:"delimiter"`
	Charset         string  `yaml:"charset"`
	DistanceColumn  string  `yaml:"distance_column"`
	DistanceDivisor float64 `yaml:"distance_divisor"`
}

// OutputConfig describes the output table.
type OutputConfig struct {
	Delimiter string `yaml:"delimiter"`
	Format    string `yaml:"format"`
	CRLF      bool   `yaml:"crlf"`
	BatchSize int    `yaml:"batch_size"` // arrow only
}

// S3Config holds credentials for s3:// sources; empty values use the AWS default chain.
type S3Config struct {
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
}

// defaultConfig mirrors the layout the inspection software exports.
func defaultConfig() Config {
	s := join.DefaultSettings()
	cols := join.DefaultDefectColumns()
	return Config{
		Tolerance:       s.Tolerance,
		ExcludedColumns: s.ExcludedColumns,
		Decimal:         string(s.Decimal),
		ProgressEvery:   s.ProgressEvery,
		Defects: DefectsConfig{
			Delimiter:      ";",
			DistanceColumn: cols.Distance,
			LabelColumn:    cols.Label,
			DepthColumn:    cols.Depth,
		},
		Values: ValuesConfig{
			Delimiter:       ",",
			DistanceColumn:  s.DistanceColumn,
			DistanceDivisor: s.DistanceDivisor,
		},
		Output: OutputConfig{
			Delimiter: ",",
			Format:    string(table.FormatCSV),
			CRLF:      true,
			BatchSize: table.DefaultBatchSize,
		},
	}
}

// loadConfig overlays the YAML file at path on the defaults.
// Uses strict field checking: typos must cause errors.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parts of the config that join.Settings does not cover.
func (c Config) Validate() error {
	if err := c.Settings().Validate(); err != nil {
		return err
	}
	if err := c.DefectColumns().Validate(); err != nil {
		return err
	}
	for name, d := range map[string]string{
		"defects.delimiter": c.Defects.Delimiter,
		"values.delimiter":  c.Values.Delimiter,
		"output.delimiter":  c.Output.Delimiter,
	} {
		if utf8.RuneCountInString(d) != 1 {
			return fmt.Errorf("%s must be a single character, got %q", name, d)
		}
	}
	if !table.IsValidCharset(c.Defects.Charset) {
		return fmt.Errorf("unknown defects.charset %q", c.Defects.Charset)
	}
	if !table.IsValidCharset(c.Values.Charset) {
		return fmt.Errorf("unknown values.charset %q", c.Values.Charset)
	}
	if !table.IsValidFormat(c.Output.Format) {
		return fmt.Errorf("unknown output.format %q; valid: csv, arrow", c.Output.Format)
	}
	if c.Output.BatchSize < 0 {
		return fmt.Errorf("output.batch_size must be non-negative, got %d", c.Output.BatchSize)
	}
	return nil
}

// Settings returns the join settings described by the config.
func (c Config) Settings() join.Settings {
	return join.Settings{
		Tolerance:       c.Tolerance,
		ExcludedColumns: c.ExcludedColumns,
		Decimal:         join.DecimalConvention(c.Decimal),
		DistanceColumn:  c.Values.DistanceColumn,
		DistanceDivisor: c.Values.DistanceDivisor,
		ProgressEvery:   c.ProgressEvery,
	}
}

// DefectColumns returns the defect table field positions.
func (c Config) DefectColumns() join.DefectColumns {
	return join.DefectColumns{
		Distance: c.Defects.DistanceColumn,
		Label:    c.Defects.LabelColumn,
		Depth:    c.Defects.DepthColumn,
	}
}

func (c Config) defectsReaderOptions(path string) table.ReaderOptions {
	return table.ReaderOptions{Delimiter: firstRune(c.Defects.Delimiter), Charset: c.Defects.Charset, Source: path}
}

func (c Config) valuesReaderOptions(path string) table.ReaderOptions {
	return table.ReaderOptions{Delimiter: firstRune(c.Values.Delimiter), Charset: c.Values.Charset, Source: path}
}

func (c Config) writerOptions() table.WriterOptions {
	return table.WriterOptions{Delimiter: firstRune(c.Output.Delimiter), CRLF: c.Output.CRLF, BatchSize: c.Output.BatchSize}
}

func (c Config) s3Config() source.S3Config {
	return source.S3Config{
		Region:          c.S3.Region,
		Endpoint:        c.S3.Endpoint,
		AccessKeyID:     c.S3.AccessKeyID,
		SecretAccessKey: c.S3.SecretAccessKey,
	}
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}
