package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pipescan/defectjoin/join"
	"github.com/pipescan/defectjoin/join/metrics"
	"github.com/pipescan/defectjoin/join/source"
	"github.com/pipescan/defectjoin/join/table"
	"github.com/pipescan/defectjoin/join/trace"
)

var (
	defectsPath  string   // Defect table (local path or s3://bucket/key)
	valuesPath   string   // Value table (local path or s3://bucket/key)
	outputPath   string   // Output table (local path)
	metricsPath  string   // Prometheus textfile written after the run
	traceSummary bool     // Log match statistics and unmatched defects
	tolerance    float64  // Max distance delta for a match, meters
	excluded     []string // Columns dropped from the output
	decimal      string   // Decimal convention of numeric source fields
	outputFormat string   // csv or arrow
)

// joinRun carries everything one join needs besides the config.
type joinRun struct {
	DefectsPath  string
	ValuesPath   string
	OutputPath   string
	MetricsPath  string
	TraceSummary bool
}

// joinCmd joins the defect table onto the value table
var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Annotate every value row with the defect inside the distance tolerance",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		applyJoinFlags(cmd, &cfg)

		run := joinRun{
			DefectsPath:  defectsPath,
			ValuesPath:   valuesPath,
			OutputPath:   outputPath,
			MetricsPath:  metricsPath,
			TraceSummary: traceSummary,
		}
		if _, err := runJoin(cmd.Context(), cfg, run); err != nil {
			logrus.Fatalf("Join failed: %v", err)
		}
	},
}

// applyJoinFlags overrides config values with flags set on the command line.
func applyJoinFlags(cmd *cobra.Command, cfg *Config) {
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("exclude") {
		cfg.ExcludedColumns = excluded
	}
	if cmd.Flags().Changed("decimal") {
		cfg.Decimal = decimal
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = outputFormat
	}
}

// runJoin loads the defects, streams the values through the joiner and writes
// the output. Errors are returned, never fatal, so tests can drive it directly.
func runJoin(ctx context.Context, cfg Config, run joinRun) (*join.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	runID := uuid.NewString()
	log := logrus.WithField("run", runID)
	opener := &source.Opener{S3: cfg.s3Config()}

	defects, err := loadDefectsFile(ctx, opener, cfg, run.DefectsPath)
	if err != nil {
		return nil, err
	}
	log.Infof("Loaded %d defects from %s", len(defects), run.DefectsPath)

	var observers []join.RowObserver
	var jt *trace.JoinTrace
	if run.TraceSummary {
		jt = trace.NewJoinTrace()
		observers = append(observers, jt)
	}
	var reg *prometheus.Registry
	if run.MetricsPath != "" {
		reg = prometheus.NewRegistry()
		collector := metrics.NewCollector(reg)
		collector.SetRun(runID)
		observers = append(observers, collector)
	}

	joiner, err := join.NewJoiner(cfg.Settings(), defects, observers...)
	if err != nil {
		return nil, err
	}

	in, err := opener.Open(ctx, run.ValuesPath)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck // read-only source
	values, err := table.NewReader(in, cfg.valuesReaderOptions(run.ValuesPath))
	if err != nil {
		return nil, err
	}

	out, err := opener.Create(run.OutputPath)
	if err != nil {
		return nil, err
	}
	defer out.Close() //nolint:errcheck // closed explicitly on success
	sink, err := table.NewWriter(table.Format(cfg.Output.Format), out, cfg.writerOptions())
	if err != nil {
		return nil, err
	}

	result, err := joiner.Run(values, sink)
	if err != nil {
		_ = sink.Close()
		return result, err
	}
	if err := sink.Close(); err != nil {
		return result, &join.IOError{Op: "write", Path: run.OutputPath, Err: err}
	}
	if err := out.Close(); err != nil {
		return result, &join.IOError{Op: "write", Path: run.OutputPath, Err: err}
	}
	log.Infof("Joined %d rows: %d matched, %d unmatched, %d unknown labels",
		result.Rows, result.Matched, result.Unmatched, result.UnknownLabels)

	if jt != nil {
		logSummary(log, joiner, trace.Summarize(jt, joiner.Defects()))
	}
	if reg != nil {
		if err := metrics.WriteTextfile(run.MetricsPath, reg); err != nil {
			return result, err
		}
	}

	log.Infof("Result: %s", fileURL(run.OutputPath))
	return result, nil
}

func loadDefectsFile(ctx context.Context, opener *source.Opener, cfg Config, path string) ([]join.DefectEntry, error) {
	in, err := opener.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer in.Close() //nolint:errcheck // read-only source
	rows, err := table.NewReader(in, cfg.defectsReaderOptions(path))
	if err != nil {
		return nil, err
	}
	return join.LoadDefects(rows, cfg.DefectColumns(), join.DecimalConvention(cfg.Decimal))
}

// logSummary reports match statistics and warns about defects no value row reached.
func logSummary(log *logrus.Entry, joiner *join.Joiner, s *trace.JoinSummary) {
	log.Infof("Match summary: mean delta %.4f m, max delta %.4f m, %d of %d defects matched",
		s.MeanDelta, s.MaxDelta, joiner.Defects()-len(s.UnmatchedDefects), joiner.Defects())
	for _, i := range s.UnmatchedDefects {
		d := joiner.Defect(i)
		log.Warnf("Defect at %.3f m (%s, depth %s, source row %d) matched no value rows",
			d.Distance, d.Label, join.FormatDepth(d.Depth), d.Row)
	}
}

func fileURL(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return "file:///" + strings.TrimPrefix(filepath.ToSlash(abs), "/")
}

// init sets up join flags
func init() {
	joinCmd.Flags().StringVar(&defectsPath, "defects", "", "Defect table (';'-delimited by default; local path or s3://bucket/key)")
	joinCmd.Flags().StringVar(&valuesPath, "values", "", "Value table (','-delimited by default; local path or s3://bucket/key)")
	joinCmd.Flags().StringVar(&outputPath, "output", "", "Output table path")
	joinCmd.Flags().StringVar(&metricsPath, "metrics-file", "", "Write Prometheus textfile metrics here after the run")
	joinCmd.Flags().BoolVar(&traceSummary, "trace-summary", false, "Log match statistics and defects no value row matched")
	joinCmd.Flags().Float64Var(&tolerance, "tolerance", 0.05, "Max distance delta for a match, in meters")
	joinCmd.Flags().StringSliceVar(&excluded, "exclude", nil, "Comma-separated columns to drop from the output")
	joinCmd.Flags().StringVar(&decimal, "decimal", "comma", "Decimal separator of numeric source fields (comma, period)")
	joinCmd.Flags().StringVar(&outputFormat, "format", "csv", "Output format (csv, arrow)")
	_ = joinCmd.MarkFlagRequired("defects")
	_ = joinCmd.MarkFlagRequired("values")
	_ = joinCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(joinCmd)
}
