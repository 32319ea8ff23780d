// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/tacred-tools/internal/conll"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

func example(id string, reln types.Relation, words int) *types.Example {
	e := &types.Example{
		ID:       id,
		DocID:    "DOC_" + id,
		Relation: reln,
		Subj:     types.Span{Start: 0, End: 0},
		SubjType: "PERSON",
		Obj:      types.Span{Start: 1, End: 1},
		ObjType:  "TITLE",
	}
	for i := 0; i < words; i++ {
		e.Tokens = append(e.Tokens, types.Token{Text: "w", POS: "NN", NER: "O", DepRel: "dep", Head: 0})
	}
	return e
}

func TestCollect(t *testing.T) {
	tmpDir := t.TempDir()

	fileA := filepath.Join(tmpDir, "a.conll")
	require.NoError(t, conll.WriteFile(fileA, []*types.Example{
		example("a1", "per:title", 4),
		example("a2", types.NoRelation, 6),
	}))

	fileB := filepath.Join(tmpDir, "b.conll")
	require.NoError(t, conll.WriteFile(fileB, []*types.Example{
		example("b1", "per:title", 5),
		example("b2", "org:founded", 5),
	}))

	report, err := Collect([]string{fileA, fileB}, "")
	require.NoError(t, err)

	assert.Equal(t, 4, report.Examples)
	assert.Equal(t, 20, report.Tokens)
	assert.Equal(t, 1, report.Negatives)
	assert.InDelta(t, 0.25, report.NegativeShare, 1e-9)
	assert.InDelta(t, 5.0, report.MeanLength, 1e-9)

	require.Len(t, report.Files, 2)
	assert.Equal(t, FileStats{File: fileA, Examples: 2, Tokens: 10}, report.Files[0])

	// Most frequent label first; ties broken alphabetically.
	require.NotEmpty(t, report.Relations)
	assert.Equal(t, "per:title", report.Relations[0].Label)
	assert.Equal(t, 2, report.Relations[0].Count)
	assert.InDelta(t, 0.5, report.Relations[0].Share, 1e-9)
	assert.Equal(t, "no_relation", report.Relations[1].Label)
	assert.Equal(t, "org:founded", report.Relations[2].Label)

	require.NotEmpty(t, report.SubjTypes)
	assert.Equal(t, "PERSON", report.SubjTypes[0].Label)
	assert.Equal(t, 4, report.SubjTypes[0].Count)
}

func TestCollectPartitionNote(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "dev.conll")
	require.NoError(t, conll.WriteFile(file, []*types.Example{
		example("d1", "per:title", 3),
	}))

	report, err := Collect([]string{file}, types.PartitionDev)
	require.NoError(t, err)
	assert.Equal(t, types.PartitionDev, report.Partition)
	assert.Contains(t, report.PartitionNote, "1 of 25764")
}

func TestCollectPropagatesReadErrors(t *testing.T) {
	_, err := Collect([]string{"/does/not/exist.conll"}, "")
	require.Error(t, err)
}

func TestWriteText(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "a.conll")
	require.NoError(t, conll.WriteFile(file, []*types.Example{
		example("a1", "per:title", 4),
		example("a2", types.NoRelation, 4),
	}))

	report, err := Collect([]string{file}, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	report.WriteText(&buf)
	out := buf.String()

	assert.Contains(t, out, "Examples:          2")
	assert.Contains(t, out, "Negative examples: 1 (50.0%)")
	assert.Contains(t, out, "Relation distribution:")
	assert.Contains(t, out, "per:title")
	assert.Contains(t, out, "Subject types:")
}
