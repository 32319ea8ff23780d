// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert translates annotation files between the tabular format
// and the companion JSON format, which replaces the SUBJECT/OBJECT marker
// columns with zero-based inclusive subj_start/subj_end and
// obj_start/obj_end span boundaries.
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

// jsonExample is the on-disk JSON representation of one example. Token
// annotations are stored as parallel arrays under their tabular column
// names.
type jsonExample struct {
	ID        string   `json:"id"`
	DocID     string   `json:"docid"`
	Relation  string   `json:"relation"`
	Token     []string `json:"token"`
	SubjStart int      `json:"subj_start"`
	SubjEnd   int      `json:"subj_end"`
	ObjStart  int      `json:"obj_start"`
	ObjEnd    int      `json:"obj_end"`
	SubjType  string   `json:"subj_type"`
	ObjType   string   `json:"obj_type"`
	POS       []string `json:"stanford_pos"`
	NER       []string `json:"stanford_ner"`
	Head      []int    `json:"stanford_head"`
	DepRel    []string `json:"stanford_deprel"`
}

func toJSONExample(e *types.Example) jsonExample {
	je := jsonExample{
		ID:        e.ID,
		DocID:     e.DocID,
		Relation:  string(e.Relation),
		Token:     make([]string, len(e.Tokens)),
		SubjStart: e.Subj.Start,
		SubjEnd:   e.Subj.End,
		ObjStart:  e.Obj.Start,
		ObjEnd:    e.Obj.End,
		SubjType:  string(e.SubjType),
		ObjType:   string(e.ObjType),
		POS:       make([]string, len(e.Tokens)),
		NER:       make([]string, len(e.Tokens)),
		Head:      make([]int, len(e.Tokens)),
		DepRel:    make([]string, len(e.Tokens)),
	}
	for i, t := range e.Tokens {
		je.Token[i] = t.Text
		je.POS[i] = t.POS
		je.NER[i] = t.NER
		je.Head[i] = t.Head
		je.DepRel[i] = t.DepRel
	}
	return je
}

func fromJSONExample(je jsonExample) (*types.Example, error) {
	n := len(je.Token)
	if n == 0 {
		return nil, fmt.Errorf("example %s has no tokens", je.ID)
	}
	for name, l := range map[string]int{
		"stanford_pos":    len(je.POS),
		"stanford_ner":    len(je.NER),
		"stanford_head":   len(je.Head),
		"stanford_deprel": len(je.DepRel),
	} {
		if l != n {
			return nil, fmt.Errorf("example %s: %s has %d entries, want %d", je.ID, name, l, n)
		}
	}
	for _, span := range []struct {
		role       string
		start, end int
	}{
		{"subject", je.SubjStart, je.SubjEnd},
		{"object", je.ObjStart, je.ObjEnd},
	} {
		if span.start < 0 || span.end >= n || span.start > span.end {
			return nil, fmt.Errorf("example %s: %s span [%d,%d] invalid for %d tokens",
				je.ID, span.role, span.start, span.end, n)
		}
	}

	e := &types.Example{
		ID:       je.ID,
		DocID:    je.DocID,
		Relation: types.Relation(je.Relation),
		Tokens:   make([]types.Token, n),
		Subj:     types.Span{Start: je.SubjStart, End: je.SubjEnd},
		SubjType: types.EntityType(je.SubjType),
		Obj:      types.Span{Start: je.ObjStart, End: je.ObjEnd},
		ObjType:  types.EntityType(je.ObjType),
	}
	for i := range je.Token {
		e.Tokens[i] = types.Token{
			Text:   je.Token[i],
			POS:    je.POS[i],
			NER:    je.NER[i],
			Head:   je.Head[i],
			DepRel: je.DepRel[i],
		}
	}
	return e, nil
}

// ReadJSON decodes a JSON example array.
func ReadJSON(r io.Reader, name string) ([]*types.Example, error) {
	var raw []jsonExample
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	examples := make([]*types.Example, len(raw))
	for i, je := range raw {
		e, err := fromJSONExample(je)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		examples[i] = e
	}
	return examples, nil
}

// ReadJSONFile decodes the JSON example array in the file at path.
func ReadJSONFile(path string) ([]*types.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, path)
}

// WriteJSON encodes examples as a JSON array. Indent selects pretty output.
func WriteJSON(w io.Writer, examples []*types.Example, indent bool) error {
	raw := make([]jsonExample, len(examples))
	for i, e := range examples {
		raw[i] = toJSONExample(e)
	}

	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	return enc.Encode(raw)
}

// WriteJSONFile writes examples as a JSON array to the file at path.
func WriteJSONFile(path string, examples []*types.Example, indent bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteJSON(f, examples, indent); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
