// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"fmt"
	"io"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

const defaultConfusionLimit = 10

// WriteText renders the result as a human-readable report. Verbose adds the
// per-relation table and the most frequent confusion pairs.
func (r Result) WriteText(w io.Writer, cfg types.ScoreConfig) {
	if cfg.Verbose {
		fmt.Fprintf(w, "%-38s  %9s  %9s  %9s  %7s\n", "Relation", "Precision", "Recall", "F1", "Gold")
		for _, rs := range r.PerRelation {
			fmt.Fprintf(w, "%-38s  %8.1f%%  %8.1f%%  %8.1f%%  %7d\n",
				rs.Relation, 100*rs.Precision, 100*rs.Recall, 100*rs.F1, rs.Gold)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Examples scored:     %d\n", r.Total)
	fmt.Fprintf(w, "Precision (micro):   %.3f%%  (%d/%d)\n", 100*r.Precision, r.Correct, r.Guessed)
	fmt.Fprintf(w, "Recall (micro):      %.3f%%  (%d/%d)\n", 100*r.Recall, r.Correct, r.Gold)
	fmt.Fprintf(w, "F1 (micro):          %.3f%%\n", 100*r.F1)

	if cfg.Verbose && len(r.Confusions) > 0 {
		limit := cfg.ConfusionLimit
		if limit <= 0 {
			limit = defaultConfusionLimit
		}
		if limit > len(r.Confusions) {
			limit = len(r.Confusions)
		}
		fmt.Fprintf(w, "\nMost frequent errors (gold -> predicted):\n")
		for _, c := range r.Confusions[:limit] {
			fmt.Fprintf(w, "  %5d  %s -> %s\n", c.Count, c.Gold, c.Guess)
		}
	}
}
