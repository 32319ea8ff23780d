// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package conll reads and writes the tabular annotation format of the
// corpus: one header line per example ("# id=... docid=... reln=..."),
// followed by one tab-separated line per token with ten fields
// (index, token, subj, subj_type, obj, obj_type, stanford_pos,
// stanford_ner, stanford_deprel, stanford_head), examples separated by
// blank lines.
package conll

import (
	"fmt"
	"strings"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

// Column markers for the subj/obj and subj_type/obj_type fields.
const (
	MarkerSubject = "SUBJECT"
	MarkerObject  = "OBJECT"
	MarkerNone    = "-"
)

// fieldCount is the number of tab-separated fields on a token line.
const fieldCount = 10

// ParseError reports a malformed line with its position in the input.
type ParseError struct {
	// File is the input name passed to the reader.
	File string

	// Line is the 1-based line number of the offending line.
	Line int

	// ExampleID is the ID from the nearest preceding header, if any.
	ExampleID string

	// Msg describes the problem.
	Msg string
}

func (e *ParseError) Error() string {
	if e.ExampleID != "" {
		return fmt.Sprintf("%s:%d: example %s: %s", e.File, e.Line, e.ExampleID, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// Header holds the parsed fields of an example header line.
type Header struct {
	ID    string
	DocID string
	Reln  string
}

// ParseHeader parses a "# id=ID docid=DOCID reln=RELATION" line. The three
// keys must appear in order; values run to the next space.
func ParseHeader(line string) (Header, error) {
	var h Header
	rest, ok := strings.CutPrefix(line, "# ")
	if !ok {
		return h, fmt.Errorf("header must start with %q", "# ")
	}

	fields := strings.Fields(rest)
	if len(fields) != 3 {
		return h, fmt.Errorf("header has %d fields, want 3 (id=, docid=, reln=)", len(fields))
	}

	keys := []string{"id", "docid", "reln"}
	vals := make([]string, 3)
	for i, f := range fields {
		k, v, found := strings.Cut(f, "=")
		if !found || k != keys[i] {
			return h, fmt.Errorf("header field %d is %q, want %s=...", i+1, f, keys[i])
		}
		if v == "" {
			return h, fmt.Errorf("header field %s= is empty", keys[i])
		}
		vals[i] = v
	}

	h.ID, h.DocID, h.Reln = vals[0], vals[1], vals[2]
	return h, nil
}

// formatHeader renders an example header line without the trailing newline.
func formatHeader(e *types.Example) string {
	return fmt.Sprintf("# id=%s docid=%s reln=%s", e.ID, e.DocID, e.Relation)
}

// markerFor returns the subj or obj column pair for the zero-based token
// index i: the marker and the entity type, or "-" outside the span.
func markerFor(span types.Span, typ types.EntityType, marker string, i int) (string, string) {
	if span.Contains(i) {
		return marker, string(typ)
	}
	return MarkerNone, MarkerNone
}
