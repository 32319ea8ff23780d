// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/convert"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert annotation files between CoNLL and JSON formats",
	Long: `Convert transforms annotation files between the tab-separated
CoNLL-style format and the companion JSON format. The target format is
chosen with --to; each input produces one output file with the matching
extension. Existing outputs are skipped.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("to", "json", "target format: json or conll")
	convertCmd.Flags().String("output-dir", "", "directory for converted files (default: next to each input)")
	convertCmd.Flags().Bool("indent", false, "indent JSON output")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more annotation files to convert")
	}

	toFlag, _ := cmd.Flags().GetString("to")
	var to convert.Format
	switch toFlag {
	case "json":
		to = convert.FormatJSON
	case "conll":
		to = convert.FormatCoNLL
	default:
		return fmt.Errorf("unsupported target format %q: use json or conll", toFlag)
	}

	outputDir, _ := cmd.Flags().GetString("output-dir")
	indent, _ := cmd.Flags().GetBool("indent")

	cfg := types.ConvertConfig{
		OutputDir: outputDir,
		Indent:    indent,
	}

	result := convert.ConvertBatch(args, to, cfg, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}
