// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/score"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score <gold-file> <prediction-file>",
	Short: "Score predicted relations against gold labels",
	Long: `Score computes micro-averaged precision, recall, and F1 for a
prediction run against gold labels. no_relation predictions and gold
labels are excluded from the counts, matching the official evaluation.

Both files may be annotation files (CoNLL or JSON) or plain label files
with one relation per line. When both sides carry example IDs the pairing
is by ID; otherwise it is positional and the files must align.`,
	Args: cobra.ExactArgs(2),
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().Bool("verbose", false, "include per-relation breakdown and confusion pairs")
	scoreCmd.Flags().Int("confusion-limit", 0, "maximum confusion pairs to report (default 10)")
	scoreCmd.Flags().Bool("json", false, "output the full result as JSON")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, args []string) error {
	goldLabels, err := score.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("loading gold labels: %w", err)
	}
	guessLabels, err := score.LoadFile(args[1])
	if err != nil {
		return fmt.Errorf("loading predictions: %w", err)
	}

	gold, guess, err := score.Pair(goldLabels, guessLabels)
	if err != nil {
		return err
	}

	result, err := score.Score(gold, guess)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	confusionLimit, _ := cmd.Flags().GetInt("confusion-limit")
	result.WriteText(os.Stdout, types.ScoreConfig{
		Verbose:        verbose,
		ConfusionLimit: confusionLimit,
	})
	return nil
}
