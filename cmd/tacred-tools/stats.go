// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/stats"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

var statsCmd = &cobra.Command{
	Use:   "stats [files...]",
	Short: "Report label and length statistics for annotation files",
	Long: `Stats reads annotation files and reports example counts, relation
label distribution, entity type distributions, negative share, and mean
sentence length. With --partition the counts are checked against the
documented partition sizes.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().String("partition", "", "compare counts against a documented partition: train, dev, or test")
	statsCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more annotation files")
	}

	partFlag, _ := cmd.Flags().GetString("partition")
	part := types.Partition(partFlag)
	if part != "" && !types.ValidPartition(part) {
		return fmt.Errorf("unknown partition %q (want train, dev, or test)", part)
	}

	report, err := stats.Collect(args, part)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	report.WriteText(os.Stdout)
	return nil
}
