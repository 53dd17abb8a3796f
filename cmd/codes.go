package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pipescan/defectjoin/join"
)

// codesCmd prints the label-to-code table used for Defect_name
var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Print the defect label code table as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		if err := writeYAML(os.Stdout, join.Codes()); err != nil {
			logrus.Fatalf("YAML marshal failed: %v", err)
		}
	},
}

// writeYAML marshals v to YAML and writes it to w.
func writeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}

func init() {
	rootCmd.AddCommand(codesCmd)
}
