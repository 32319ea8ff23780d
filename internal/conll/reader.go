// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package conll

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

// Reader parses examples from a tabular annotation stream. It reads one
// example at a time, so corpus-sized files never need to fit in memory.
type Reader struct {
	scanner *bufio.Scanner
	file    string
	line    int
	err     error
	eof     bool
}

// NewReader returns a Reader over r. The name is used in error positions
// (typically the file path, or "<stdin>").
func NewReader(r io.Reader, name string) *Reader {
	sc := bufio.NewScanner(r)
	// Token lines in the corpus stay well under this, but be generous.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Reader{scanner: sc, file: name}
}

// Next returns the next example from the stream, or io.EOF when the input
// is exhausted. Malformed input returns a *ParseError.
func (r *Reader) Next() (*types.Example, error) {
	if r.err != nil {
		return nil, r.err
	}

	// Skip blank separator lines between examples.
	var line string
	for {
		if !r.scan() {
			return nil, r.finish()
		}
		line = r.scanner.Text()
		if strings.TrimSpace(line) != "" {
			break
		}
	}

	h, err := ParseHeader(line)
	if err != nil {
		return nil, r.fail("", err.Error())
	}
	if !types.ValidRelation(types.Relation(h.Reln)) {
		return nil, r.fail(h.ID, fmt.Sprintf("unknown relation label %q", h.Reln))
	}

	ex := &types.Example{
		ID:       h.ID,
		DocID:    h.DocID,
		Relation: types.Relation(h.Reln),
	}

	var sb, ob spanBuilder
	for r.scan() {
		line = r.scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}

		tok, subj, subjType, obj, objType, err := parseTokenLine(line, len(ex.Tokens)+1)
		if err != nil {
			return nil, r.fail(ex.ID, err.Error())
		}
		i := len(ex.Tokens)
		ex.Tokens = append(ex.Tokens, tok)

		if err := sb.observe(i, subj == MarkerSubject, subjType, "subject"); err != nil {
			return nil, r.fail(ex.ID, err.Error())
		}
		if err := ob.observe(i, obj == MarkerObject, objType, "object"); err != nil {
			return nil, r.fail(ex.ID, err.Error())
		}
	}

	if len(ex.Tokens) == 0 {
		return nil, r.fail(ex.ID, "example has no token lines")
	}

	span, typ, err := sb.result("subject")
	if err != nil {
		return nil, r.fail(ex.ID, err.Error())
	}
	ex.Subj, ex.SubjType = span, typ

	span, typ, err = ob.result("object")
	if err != nil {
		return nil, r.fail(ex.ID, err.Error())
	}
	ex.Obj, ex.ObjType = span, typ

	for i, t := range ex.Tokens {
		if t.Head < 0 || t.Head > len(ex.Tokens) {
			return nil, r.fail(ex.ID, fmt.Sprintf("token %d: head %d out of range [0,%d]", i+1, t.Head, len(ex.Tokens)))
		}
	}

	return ex, nil
}

func (r *Reader) scan() bool {
	ok := r.scanner.Scan()
	if ok {
		r.line++
	}
	return ok
}

func (r *Reader) finish() error {
	if err := r.scanner.Err(); err != nil {
		r.err = fmt.Errorf("reading %s: %w", r.file, err)
		return r.err
	}
	r.err = io.EOF
	return io.EOF
}

func (r *Reader) fail(exampleID, msg string) error {
	r.err = &ParseError{File: r.file, Line: r.line, ExampleID: exampleID, Msg: msg}
	return r.err
}

// parseTokenLine splits one token line into a Token plus the four marker
// columns. wantIndex is the expected 1-based token index.
func parseTokenLine(line string, wantIndex int) (tok types.Token, subj, subjType, obj, objType string, err error) {
	fields := strings.Split(line, "\t")
	if len(fields) != fieldCount {
		return tok, "", "", "", "", fmt.Errorf("line has %d tab-separated fields, want %d", len(fields), fieldCount)
	}

	idx, err := strconv.Atoi(fields[0])
	if err != nil {
		return tok, "", "", "", "", fmt.Errorf("index %q is not a number", fields[0])
	}
	if idx != wantIndex {
		return tok, "", "", "", "", fmt.Errorf("index %d out of sequence, want %d", idx, wantIndex)
	}

	head, err := strconv.Atoi(fields[9])
	if err != nil {
		return tok, "", "", "", "", fmt.Errorf("head %q is not a number", fields[9])
	}

	tok = types.Token{
		Text:   fields[1],
		POS:    fields[6],
		NER:    fields[7],
		DepRel: fields[8],
		Head:   head,
	}
	return tok, fields[2], fields[3], fields[4], fields[5], nil
}

// spanBuilder accumulates a marker column into a contiguous span and a
// single entity type.
type spanBuilder struct {
	start  int
	end    int
	typ    types.EntityType
	active bool
	closed bool
}

func (b *spanBuilder) observe(i int, marked bool, typ string, role string) error {
	if !marked {
		if typ != MarkerNone {
			return fmt.Errorf("token %d: %s type %q on an unmarked token", i+1, role, typ)
		}
		if b.active {
			b.active = false
			b.closed = true
		}
		return nil
	}

	if typ == MarkerNone || typ == "" {
		return fmt.Errorf("token %d: %s span member missing entity type", i+1, role)
	}
	if b.closed {
		return fmt.Errorf("token %d: second %s span (span must be contiguous)", i+1, role)
	}
	if !b.active {
		b.start, b.typ, b.active = i, types.EntityType(typ), true
	} else if types.EntityType(typ) != b.typ {
		return fmt.Errorf("token %d: %s type changes from %s to %s within span", i+1, role, b.typ, typ)
	}
	b.end = i
	return nil
}

func (b *spanBuilder) result(role string) (types.Span, types.EntityType, error) {
	if !b.active && !b.closed {
		return types.Span{}, "", fmt.Errorf("example has no %s span", role)
	}
	return types.Span{Start: b.start, End: b.end}, b.typ, nil
}

// ReadAll reads every example from r until EOF.
func ReadAll(r io.Reader, name string) ([]*types.Example, error) {
	cr := NewReader(r, name)
	var examples []*types.Example
	for {
		ex, err := cr.Next()
		if err == io.EOF {
			return examples, nil
		}
		if err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
}

// ReadFile reads every example from the file at path.
func ReadFile(path string) ([]*types.Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadAll(f, path)
}
