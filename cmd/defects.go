package cmd

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pipescan/defectjoin/join/source"
)

// defectsCmd parses a defect table and prints it sorted by distance, so the
// column layout can be checked before a long join.
var defectsCmd = &cobra.Command{
	Use:   "defects",
	Short: "Parse a defect table and print the entries as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}
		if cmd.Flags().Changed("decimal") {
			cfg.Decimal = decimal
		}
		if err := printDefects(cmd.Context(), os.Stdout, cfg, defectsPath); err != nil {
			logrus.Fatalf("Reading defects failed: %v", err)
		}
	},
}

func printDefects(ctx context.Context, w io.Writer, cfg Config, path string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	defects, err := loadDefectsFile(ctx, &source.Opener{S3: cfg.s3Config()}, cfg, path)
	if err != nil {
		return err
	}
	logrus.Infof("Parsed %d defects from %s", len(defects), path)
	return writeYAML(w, defects)
}

func init() {
	defectsCmd.Flags().StringVar(&defectsPath, "defects", "", "Defect table (local path or s3://bucket/key)")
	defectsCmd.Flags().StringVar(&decimal, "decimal", "comma", "Decimal separator of numeric source fields (comma, period)")
	_ = defectsCmd.MarkFlagRequired("defects")

	rootCmd.AddCommand(defectsCmd)
}
