// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Check annotation files for format and label problems",
	Long: `Validate checks annotation files (CoNLL or JSON, detected by
extension) and reports every problem it finds: malformed headers, wrong
field counts, broken token numbering, inconsistent entity spans, head
indices out of range, and unknown relation or entity type labels.

Unlike convert, validate keeps going after an error so a single run
reports every issue in a file. With --json the report is emitted as a
single JSON object instead of per-file status lines.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("json", false, "output the report as JSON")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more annotation files to validate")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	out := cmd.OutOrStdout()

	statusOut := out
	if jsonOutput {
		statusOut = io.Discard
	}
	report := validate.CheckFiles(args, statusOut)

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	}

	if !report.Ok() {
		return fmt.Errorf("%d issue(s) found", len(report.Issues))
	}
	return nil
}
