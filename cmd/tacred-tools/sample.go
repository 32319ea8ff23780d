// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/conll"
	"github.com/pdiddy/tacred-tools/internal/convert"
	"github.com/pdiddy/tacred-tools/internal/sample"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <file>",
	Short: "Draw a random sample of examples from an annotation file",
	Long: `Sample reads an annotation file (CoNLL or JSON) and draws a random
subset, written to stdout in CoNLL format (or JSON with --format json).
Use --stratify to allocate the sample across relation labels in
proportion to their frequency, and --seed for a reproducible draw.
--relation restricts the pool to one label before drawing.`,
	Args: cobra.ExactArgs(1),
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().Int("n", 10, "number of examples to draw")
	sampleCmd.Flags().Int64("seed", 0, "random seed (0 = seed from current time)")
	sampleCmd.Flags().Bool("stratify", false, "allocate the sample proportionally per relation label")
	sampleCmd.Flags().String("relation", "", "restrict the pool to one relation label")
	sampleCmd.Flags().String("format", "conll", "output format: conll or json")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if format != "conll" && format != "json" {
		return fmt.Errorf("unsupported output format %q: use conll or json", format)
	}

	examples, err := convert.ReadExamples(args[0])
	if err != nil {
		return err
	}

	reln, _ := cmd.Flags().GetString("relation")
	if reln != "" {
		if !types.ValidRelation(types.Relation(reln)) {
			return fmt.Errorf("unknown relation label %q", reln)
		}
		examples = sample.Filter(examples, types.Relation(reln))
		if len(examples) == 0 {
			return fmt.Errorf("no examples with relation %q in %s", reln, args[0])
		}
	}

	n, _ := cmd.Flags().GetInt("n")
	seed, _ := cmd.Flags().GetInt64("seed")
	stratify, _ := cmd.Flags().GetBool("stratify")

	drawn, err := sample.Draw(examples, n, types.SampleConfig{
		Seed:     seed,
		Stratify: stratify,
	})
	if err != nil {
		return err
	}

	if format == "json" {
		return convert.WriteJSON(cmd.OutOrStdout(), drawn, true)
	}
	return conll.WriteAll(cmd.OutOrStdout(), drawn)
}
