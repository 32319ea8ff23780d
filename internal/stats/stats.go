// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes descriptive statistics over annotation files:
// example and token counts, label and entity-type distributions, and a
// comparison against the documented partition sizes.
package stats

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/tacred-tools/internal/convert"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

// LabelCount is one entry of a distribution, with its share of the total.
type LabelCount struct {
	Label string  `json:"label" yaml:"label"`
	Count int     `json:"count" yaml:"count"`
	Share float64 `json:"share" yaml:"share"`
}

// FileStats holds per-file counts.
type FileStats struct {
	File     string `json:"file" yaml:"file"`
	Examples int    `json:"examples" yaml:"examples"`
	Tokens   int    `json:"tokens" yaml:"tokens"`
}

// Report aggregates statistics over one or more annotation files.
type Report struct {
	Files    []FileStats `json:"files" yaml:"files"`
	Examples int         `json:"examples" yaml:"examples"`
	Tokens   int         `json:"tokens" yaml:"tokens"`

	// Negatives counts no_relation examples; NegativeShare is their
	// fraction of the total.
	Negatives     int     `json:"negatives" yaml:"negatives"`
	NegativeShare float64 `json:"negative_share" yaml:"negative_share"`

	// MeanLength is the mean sentence length in tokens.
	MeanLength float64 `json:"mean_length" yaml:"mean_length"`

	// Relations is the label distribution, most frequent first,
	// negatives included.
	Relations []LabelCount `json:"relations" yaml:"relations"`

	// SubjTypes and ObjTypes are the entity-type distributions.
	SubjTypes []LabelCount `json:"subj_types" yaml:"subj_types"`
	ObjTypes  []LabelCount `json:"obj_types" yaml:"obj_types"`

	// Partition and PartitionNote compare the observed example count
	// against the documented size of a named split, when one was given.
	Partition     types.Partition `json:"partition,omitempty" yaml:"partition,omitempty"`
	PartitionNote string          `json:"partition_note,omitempty" yaml:"partition_note,omitempty"`
}

// Collect reads the given annotation files (tabular or JSON) and computes
// aggregate statistics. A non-empty partition adds a size comparison
// against the documented split composition.
func Collect(paths []string, part types.Partition) (Report, error) {
	var report Report
	relCounts := map[string]int{}
	subjCounts := map[string]int{}
	objCounts := map[string]int{}

	for _, path := range paths {
		examples, err := convert.ReadExamples(path)
		if err != nil {
			return Report{}, err
		}

		fs := FileStats{File: path, Examples: len(examples)}
		for _, e := range examples {
			fs.Tokens += len(e.Tokens)
			relCounts[string(e.Relation)]++
			subjCounts[string(e.SubjType)]++
			objCounts[string(e.ObjType)]++
			if e.Relation.IsNegative() {
				report.Negatives++
			}
		}
		report.Files = append(report.Files, fs)
		report.Examples += fs.Examples
		report.Tokens += fs.Tokens
	}

	if report.Examples > 0 {
		report.NegativeShare = float64(report.Negatives) / float64(report.Examples)
		report.MeanLength = float64(report.Tokens) / float64(report.Examples)
	}

	report.Relations = distribution(relCounts, report.Examples)
	report.SubjTypes = distribution(subjCounts, report.Examples)
	report.ObjTypes = distribution(objCounts, report.Examples)

	if part != "" {
		report.Partition = part
		report.PartitionNote = partitionNote(part, report.Examples)
	}

	return report, nil
}

// distribution sorts counts into LabelCount entries, most frequent first,
// ties broken by label.
func distribution(counts map[string]int, total int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		lc := LabelCount{Label: label, Count: n}
		if total > 0 {
			lc.Share = float64(n) / float64(total)
		}
		out = append(out, lc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func partitionNote(part types.Partition, observed int) string {
	info, ok := types.Partitions[part]
	if !ok {
		return fmt.Sprintf("unknown partition %q", part)
	}
	if observed == info.Examples {
		return fmt.Sprintf("%s partition complete (%d examples, years %d-%d)",
			part, info.Examples, info.YearFirst, info.YearLast)
	}
	return fmt.Sprintf("%s partition has %d of %d documented examples",
		part, observed, info.Examples)
}

// WriteText renders the report as a human-readable summary.
func (r Report) WriteText(w io.Writer) {
	for _, fs := range r.Files {
		fmt.Fprintf(w, "%s: %d examples, %d tokens\n", fs.File, fs.Examples, fs.Tokens)
	}

	fmt.Fprintf(w, "\nExamples:          %d\n", r.Examples)
	fmt.Fprintf(w, "Tokens:            %d\n", r.Tokens)
	fmt.Fprintf(w, "Negative examples: %d (%.1f%%)\n", r.Negatives, 100*r.NegativeShare)
	fmt.Fprintf(w, "Mean length:       %.1f tokens\n", r.MeanLength)
	if r.PartitionNote != "" {
		fmt.Fprintf(w, "Partition:         %s\n", r.PartitionNote)
	}

	fmt.Fprintf(w, "\nRelation distribution:\n")
	for _, lc := range r.Relations {
		fmt.Fprintf(w, "  %7d  %5.1f%%  %s\n", lc.Count, 100*lc.Share, lc.Label)
	}

	fmt.Fprintf(w, "\nSubject types:\n")
	for _, lc := range r.SubjTypes {
		fmt.Fprintf(w, "  %7d  %5.1f%%  %s\n", lc.Count, 100*lc.Share, lc.Label)
	}
	fmt.Fprintf(w, "\nObject types:\n")
	for _, lc := range r.ObjTypes {
		fmt.Fprintf(w, "  %7d  %5.1f%%  %s\n", lc.Count, 100*lc.Share, lc.Label)
	}
}
