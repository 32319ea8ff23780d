// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/tacred-tools/internal/corpus"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

var corpusCmd = &cobra.Command{
	Use:   "corpus",
	Short: "Manage the corpus index (store, retrieve, export)",
	Long: `Corpus manages a local SQLite index over annotation files. Use
subcommands to ingest files, query examples, or export.`,
}

// --- store subcommand ---

var corpusStoreCmd = &cobra.Command{
	Use:   "store [files...]",
	Short: "Ingest annotation files into the corpus index",
	Long: `Store reads annotation files (CoNLL or JSON), ingests their examples
into a SQLite database with FTS5 indexing over sentence text. Unchanged
files are skipped on subsequent runs; changed files are re-ingested.`,
	RunE: runCorpusStore,
}

func runCorpusStore(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more annotation files to ingest")
	}

	partFlag, _ := cmd.Flags().GetString("partition")
	part := types.Partition(partFlag)
	if part != "" && !types.ValidPartition(part) {
		return fmt.Errorf("unknown partition %q (want train, dev, or test)", part)
	}

	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(cmd.Context(), args, part, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d file(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var corpusRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Query the corpus index with full-text search and filters",
	Long: `Retrieve searches indexed examples using FTS5 full-text search over
sentence text, structured filters (relation, entity types, partition,
document), or a combination of both.

Use --trace with an example ID to print the example in CoNLL format.`,
	RunE: runCorpusRetrieve,
}

func runCorpusRetrieve(cmd *cobra.Command, args []string) error {
	traceID, _ := cmd.Flags().GetString("trace")

	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	// Trace mode: print one example in its source format.
	if traceID != "" {
		text, err := store.Trace(cmd.Context(), traceID)
		if err != nil {
			return err
		}
		fmt.Println(text)
		return nil
	}

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --relation, --subj-type, --obj-type, --partition, or --doc")
	}

	results, err := store.Retrieve(cmd.Context(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []corpus.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-24s  %-22s  %-50s  %-18s  %s\n",
		"Rank", "ID", "Relation", "Sentence", "Subject", "Object")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 130))

	for i, r := range results {
		fmt.Fprintf(os.Stdout, "%-4d  %-24s  %-22s  %-50s  %-18s  %s\n",
			i+1, truncate(r.ID, 24), truncate(string(r.Relation), 22),
			truncate(r.Sentence, 50), truncate(r.SubjText, 18), r.ObjText)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// truncate shortens s to n display runes, never splitting a multibyte
// character.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var corpusExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the corpus index to YAML or JSON",
	Long: `Export writes the indexed examples (or a filtered subset) to
<corpus-dir>/index/export.yaml or export.json. Supports the same filter
flags as retrieve for partial exports.`,
	RunE: runCorpusExport,
}

func runCorpusExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	corpusDir, _ := cmd.Flags().GetString("corpus-dir")

	store, err := corpus.NewStore(corpusConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.yaml\n", corpusDir)
	case "json":
		if err := store.ExportJSON(cmd.Context(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/index/export.json\n", corpusDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func corpusConfig(cmd *cobra.Command) types.CorpusConfig {
	corpusDir, _ := cmd.Flags().GetString("corpus-dir")
	if corpusDir == "" {
		corpusDir = "corpus"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	return types.CorpusConfig{
		CorpusDir:  corpusDir,
		MaxResults: maxResults,
	}
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) corpus.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	reln, _ := cmd.Flags().GetString("relation")
	subjType, _ := cmd.Flags().GetString("subj-type")
	objType, _ := cmd.Flags().GetString("obj-type")
	part, _ := cmd.Flags().GetString("partition")
	docID, _ := cmd.Flags().GetString("doc")
	limit, _ := cmd.Flags().GetInt("limit")

	return corpus.QueryOptions{
		Query:      queryText,
		Relation:   types.Relation(reln),
		SubjType:   types.EntityType(subjType),
		ObjType:    types.EntityType(objType),
		Partition:  types.Partition(part),
		DocID:      docID,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	corpusCmd.PersistentFlags().String("corpus-dir", "corpus", "base directory for corpus data (contains raw/, index/)")
	corpusCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")
	corpusCmd.PersistentFlags().String("partition", "", "partition filter or label: train, dev, or test")

	// Retrieve flags.
	corpusRetrieveCmd.Flags().String("query", "", "full-text search query over sentence text")
	corpusRetrieveCmd.Flags().String("relation", "", "filter by relation label")
	corpusRetrieveCmd.Flags().String("subj-type", "", "filter by subject entity type")
	corpusRetrieveCmd.Flags().String("obj-type", "", "filter by object entity type")
	corpusRetrieveCmd.Flags().String("doc", "", "filter by source document ID")
	corpusRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	corpusRetrieveCmd.Flags().String("trace", "", "print the example with this ID in CoNLL format")
	corpusRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	corpusExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	corpusExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	corpusExportCmd.Flags().String("relation", "", "filter by relation label for partial export")
	corpusExportCmd.Flags().String("subj-type", "", "filter by subject entity type for partial export")
	corpusExportCmd.Flags().String("obj-type", "", "filter by object entity type for partial export")
	corpusExportCmd.Flags().String("doc", "", "filter by source document ID for partial export")
	corpusExportCmd.Flags().Int("limit", 0, "maximum examples to export (0 = all)")

	// Wire subcommands.
	corpusCmd.AddCommand(corpusStoreCmd)
	corpusCmd.AddCommand(corpusRetrieveCmd)
	corpusCmd.AddCommand(corpusExportCmd)

	rootCmd.AddCommand(corpusCmd)
}
