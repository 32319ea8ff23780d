// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(fields ...string) string {
	return strings.Join(fields, "\t")
}

func validExample() []string {
	return []string{
		"# id=098f6bcd4621d373cade docid=APW_ENG_20101103.0539 reln=per:title",
		row("1", "Douglas", "SUBJECT", "PERSON", "-", "-", "NNP", "PERSON", "compound", "2"),
		row("2", "Flint", "SUBJECT", "PERSON", "-", "-", "NNP", "PERSON", "nsubj", "4"),
		row("3", "will", "-", "-", "-", "-", "MD", "O", "aux", "4"),
		row("4", "become", "-", "-", "-", "-", "VB", "O", "root", "0"),
		row("5", "chairman", "-", "-", "OBJECT", "TITLE", "NN", "O", "xcomp", "4"),
		"",
	}
}

func TestCheckTabularCleanInput(t *testing.T) {
	input := strings.Join(validExample(), "\n")
	n, issues, err := CheckTabular(strings.NewReader(input), "ok.conll")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Empty(t, issues)
}

func TestCheckTabularIssues(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string // substrings, one per expected issue
	}{
		{
			name: "unknown relation",
			input: []string{
				"# id=a docid=D reln=per:pet_name",
				row("1", "He", "SUBJECT", "PERSON", "OBJECT", "DATE", "PRP", "O", "nsubj", "0"),
				"",
			},
			want: []string{`unknown relation label "per:pet_name"`},
		},
		{
			name: "wrong field count keeps scanning",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "He", "-", "-", "-", "-", "PRP", "O", "nsubj"),
				row("2", "ok", "SUBJECT", "PERSON", "OBJECT", "NUMBER", "NN", "O", "dep", "1"),
				"",
			},
			want: []string{"9 tab-separated fields"},
		},
		{
			name: "split object span",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "a", "SUBJECT", "PERSON", "OBJECT", "NUMBER", "NN", "O", "dep", "2"),
				row("2", "b", "-", "-", "-", "-", "NN", "O", "root", "0"),
				row("3", "c", "-", "-", "OBJECT", "NUMBER", "NN", "O", "dep", "2"),
				"",
			},
			want: []string{"object span is split into 2 runs"},
		},
		{
			name: "bad subject type",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "He", "SUBJECT", "DATE", "OBJECT", "NUMBER", "PRP", "O", "nsubj", "0"),
				"",
			},
			want: []string{`subject type "DATE" is not PERSON or ORGANIZATION`},
		},
		{
			name: "marker and type disagree",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "He", "-", "PERSON", "OBJECT", "NUMBER", "PRP", "O", "nsubj", "0"),
				"",
			},
			want: []string{`subject type "PERSON" on an unmarked token`, "no subject span"},
		},
		{
			name: "self head and out of range head",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "a", "SUBJECT", "PERSON", "-", "-", "NN", "O", "dep", "1"),
				row("2", "b", "-", "-", "OBJECT", "NUMBER", "NN", "O", "dep", "9"),
				"",
			},
			want: []string{"token 1 is its own dependency head", "head 9 out of range [0,2]"},
		},
		{
			name: "missing blank line between examples",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "a", "SUBJECT", "PERSON", "OBJECT", "NUMBER", "NN", "O", "dep", "0"),
				"# id=b docid=D reln=per:age",
				row("1", "a", "SUBJECT", "PERSON", "OBJECT", "NUMBER", "NN", "O", "dep", "0"),
				"",
			},
			want: []string{"missing blank line before next header"},
		},
		{
			name: "token line before any header",
			input: []string{
				row("1", "a", "SUBJECT", "PERSON", "OBJECT", "NUMBER", "NN", "O", "dep", "0"),
				"",
			},
			want: []string{"token line outside any example"},
		},
		{
			name: "bad marker literal",
			input: []string{
				"# id=a docid=D reln=per:age",
				row("1", "a", "SUBJ", "PERSON", "OBJECT", "NUMBER", "NN", "O", "dep", "0"),
				"",
			},
			want: []string{`subject marker is "SUBJ"`, "no subject span"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.Join(tt.input, "\n")
			_, issues, err := CheckTabular(strings.NewReader(input), "bad.conll")
			require.NoError(t, err)
			require.Len(t, issues, len(tt.want), "issues: %v", issues)
			for i, want := range tt.want {
				assert.Contains(t, issues[i].String(), want)
			}
		})
	}
}

func TestCheckTabularCountsExamplesDespiteIssues(t *testing.T) {
	lines := validExample()
	lines = append(lines,
		"# id=second docid=D reln=bogus:label",
		row("1", "x", "SUBJECT", "PERSON", "OBJECT", "DATE", "NN", "O", "root", "0"),
		"",
	)
	n, issues, err := CheckTabular(strings.NewReader(strings.Join(lines, "\n")), "mixed.conll")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, issues, 1)
	assert.Equal(t, "second", issues[0].ExampleID)
}

func TestCheckFiles(t *testing.T) {
	tmpDir := t.TempDir()

	goodPath := filepath.Join(tmpDir, "good.conll")
	require.NoError(t, os.WriteFile(goodPath, []byte(strings.Join(validExample(), "\n")), 0o644))

	badPath := filepath.Join(tmpDir, "bad.conll")
	badLines := []string{
		"# id=a docid=D reln=per:age",
		row("1", "He", "SUBJECT", "PERSON", "-", "-", "PRP", "O", "nsubj", "0"),
		"",
	}
	require.NoError(t, os.WriteFile(badPath, []byte(strings.Join(badLines, "\n")), 0o644))

	var log bytes.Buffer
	report := CheckFiles([]string{goodPath, badPath}, &log)

	assert.Equal(t, 2, report.Files)
	assert.Equal(t, 2, report.Examples)
	assert.False(t, report.Ok())
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Msg, "no object span")

	out := log.String()
	assert.Contains(t, out, "ok:     "+goodPath)
	assert.Contains(t, out, "issues: "+badPath)
	assert.Contains(t, out, "2 file(s), 2 example(s), 1 issue(s)")
}

func TestCheckFilesJSON(t *testing.T) {
	tmpDir := t.TempDir()
	jsonPath := filepath.Join(tmpDir, "dev.json")
	payload := `[{"id": "x1", "docid": "d", "relation": "per:made_up",
		"token": ["a", "b"], "subj_start": 0, "subj_end": 0,
		"obj_start": 1, "obj_end": 1, "subj_type": "PERSON", "obj_type": "NUMBER",
		"stanford_pos": ["NN", "NN"], "stanford_ner": ["O", "O"],
		"stanford_head": [0, 1], "stanford_deprel": ["root", "dep"]}]`
	require.NoError(t, os.WriteFile(jsonPath, []byte(payload), 0o644))

	var log bytes.Buffer
	report := CheckFiles([]string{jsonPath}, &log)

	assert.Equal(t, 1, report.Examples)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "x1", report.Issues[0].ExampleID)
	assert.Contains(t, report.Issues[0].Msg, "unknown relation label")
}
