// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/tacred-tools/internal/conll"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

// --- test helpers ---

// rawDir mirrors the raw-partition directory layout used by internal/fetch.
const rawDir = "raw"

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, rawDir), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.CorpusConfig{
		CorpusDir:  tmpDir,
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func sampleExamples() []*types.Example {
	return []*types.Example{
		{
			ID:       "098f6bcd4621d373cade",
			DocID:    "APW_ENG_20101103.0539",
			Relation: "per:title",
			Tokens: []types.Token{
				{Text: "Douglas", POS: "NNP", NER: "PERSON", DepRel: "compound", Head: 2},
				{Text: "Flint", POS: "NNP", NER: "PERSON", DepRel: "nsubj", Head: 4},
				{Text: "will", POS: "MD", NER: "O", DepRel: "aux", Head: 4},
				{Text: "become", POS: "VB", NER: "O", DepRel: "root", Head: 0},
				{Text: "chairman", POS: "NN", NER: "O", DepRel: "xcomp", Head: 4},
			},
			Subj: types.Span{Start: 0, End: 1}, SubjType: "PERSON",
			Obj: types.Span{Start: 4, End: 4}, ObjType: "TITLE",
		},
		{
			ID:       "ad0677f25ed108c6b9b1",
			DocID:    "NYT_ENG_20130426.0143",
			Relation: types.NoRelation,
			Tokens: []types.Token{
				{Text: "HSBC", POS: "NNP", NER: "ORGANIZATION", DepRel: "nsubj", Head: 2},
				{Text: "said", POS: "VBD", NER: "O", DepRel: "root", Head: 0},
				{Text: "Thursday", POS: "NNP", NER: "DATE", DepRel: "tmod", Head: 2},
			},
			Subj: types.Span{Start: 0, End: 0}, SubjType: "ORGANIZATION",
			Obj: types.Span{Start: 2, End: 2}, ObjType: "DATE",
		},
	}
}

// writeAnnotations writes examples to corpusDir/raw/name and returns the path.
func writeAnnotations(t *testing.T, tmpDir, name string, examples []*types.Example) string {
	t.Helper()
	path := filepath.Join(tmpDir, rawDir, name)
	if err := conll.WriteFile(path, examples); err != nil {
		t.Fatal(err)
	}
	return path
}

func ingestHelper(t *testing.T, store *Store, paths []string, part types.Partition) IngestSummary {
	t.Helper()
	var log bytes.Buffer
	summary, err := store.Ingest(context.Background(), paths, part, &log)
	if err != nil {
		t.Fatalf("Ingest: %v (log: %s)", err, log.String())
	}
	return summary
}

// --- tests ---

func TestIngestAndRetrieve(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())

	summary := ingestHelper(t, store, []string{path}, types.PartitionDev)
	if summary.Indexed != 1 || summary.Examples != 2 {
		t.Fatalf("summary = %+v, want 1 file / 2 examples indexed", summary)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Relation: "per:title"})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ID != "098f6bcd4621d373cade" {
		t.Errorf("id = %q", r.ID)
	}
	if r.Sentence != "Douglas Flint will become chairman" {
		t.Errorf("sentence = %q", r.Sentence)
	}
	if r.SubjText != "Douglas Flint" || r.ObjText != "chairman" {
		t.Errorf("spans = %q / %q", r.SubjText, r.ObjText)
	}
	if r.Partition != types.PartitionDev {
		t.Errorf("partition = %q, want dev", r.Partition)
	}
	if r.TokenCount != 5 {
		t.Errorf("token count = %d, want 5", r.TokenCount)
	}
}

func TestRetrieveFullText(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())
	ingestHelper(t, store, []string{path}, types.PartitionDev)

	results, err := store.Retrieve(context.Background(), QueryOptions{Query: "chairman"})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Relation != "per:title" {
		t.Errorf("relation = %q", results[0].Relation)
	}
}

func TestRetrieveFilters(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())
	ingestHelper(t, store, []string{path}, types.PartitionDev)

	tests := []struct {
		name string
		opts QueryOptions
		want int
	}{
		{"by subject type", QueryOptions{SubjType: "ORGANIZATION"}, 1},
		{"by object type", QueryOptions{ObjType: "DATE"}, 1},
		{"by docid", QueryOptions{DocID: "APW_ENG_20101103.0539"}, 1},
		{"by partition", QueryOptions{Partition: types.PartitionDev}, 2},
		{"combined, no match", QueryOptions{Relation: "per:title", SubjType: "ORGANIZATION"}, 0},
		{"fts and filter", QueryOptions{Query: "said", Relation: types.NoRelation}, 1},
		{"wrong partition", QueryOptions{Partition: types.PartitionTest}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Retrieve: %v", err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestRetrieveLimit(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())
	ingestHelper(t, store, []string{path}, "")

	results, err := store.Retrieve(context.Background(), QueryOptions{MaxResults: 1})
	if err != nil {
		t.Fatalf("Retrieve: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestIngestIncremental(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())

	first := ingestHelper(t, store, []string{path}, types.PartitionDev)
	if first.Indexed != 1 {
		t.Fatalf("first ingest: %+v", first)
	}

	// Unchanged file is skipped.
	second := ingestHelper(t, store, []string{path}, types.PartitionDev)
	if second.Skipped != 1 || second.Indexed != 0 {
		t.Errorf("second ingest: %+v, want skipped", second)
	}

	// Touching the file triggers an update that replaces its examples.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	third := ingestHelper(t, store, []string{path}, types.PartitionDev)
	if third.Updated != 1 {
		t.Errorf("third ingest: %+v, want updated", third)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Partition: types.PartitionDev})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("got %d results after update, want 2 (no duplicates)", len(results))
	}
}

func TestIngestFailureAccounting(t *testing.T) {
	store, tmpDir := testStore(t)
	good := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())

	bad := filepath.Join(tmpDir, rawDir, "bad.conll")
	if err := os.WriteFile(bad, []byte("not a header\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(tmpDir, rawDir, "missing.conll")

	var log bytes.Buffer
	summary, err := store.Ingest(context.Background(), []string{good, bad, missing}, "", &log)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if summary.Indexed != 1 || summary.Failed != 2 {
		t.Errorf("summary = %+v, want 1 indexed / 2 failed", summary)
	}
	if !strings.Contains(log.String(), "failed  bad.conll") {
		t.Errorf("log missing failure line: %s", log.String())
	}
}

func TestGetAndTrace(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())
	ingestHelper(t, store, []string{path}, types.PartitionDev)

	e, err := store.Get(context.Background(), "098f6bcd4621d373cade")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(e.Tokens) != 5 || e.Tokens[4].DepRel != "xcomp" {
		t.Errorf("token annotations did not survive storage: %+v", e.Tokens)
	}
	if e.Partition != types.PartitionDev {
		t.Errorf("partition = %q", e.Partition)
	}

	text, err := store.Trace(context.Background(), "098f6bcd4621d373cade")
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if !strings.HasPrefix(text, "# id=098f6bcd4621d373cade docid=APW_ENG_20101103.0539 reln=per:title") {
		t.Errorf("trace header wrong: %q", text)
	}
	if !strings.Contains(text, "chairman\t-\t-\tOBJECT\tTITLE") {
		t.Errorf("trace body missing object row: %q", text)
	}

	if _, err := store.Trace(context.Background(), "nope"); err == nil {
		t.Error("Trace of unknown id should fail")
	}
}

func TestExport(t *testing.T) {
	store, tmpDir := testStore(t)
	path := writeAnnotations(t, tmpDir, "dev.conll", sampleExamples())
	ingestHelper(t, store, []string{path}, types.PartitionDev)

	if err := store.ExportYAML(context.Background(), QueryOptions{}); err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	yamlData, err := os.ReadFile(filepath.Join(tmpDir, indexDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(yamlData), "per:title") {
		t.Error("YAML export missing relation label")
	}

	if err := store.ExportJSON(context.Background(), QueryOptions{Relation: types.NoRelation}); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	jsonData, err := os.ReadFile(filepath.Join(tmpDir, indexDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(jsonData), "per:title") {
		t.Error("filtered JSON export should not contain per:title")
	}
	if !strings.Contains(string(jsonData), "no_relation") {
		t.Error("filtered JSON export missing no_relation example")
	}
}
