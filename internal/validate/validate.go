// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate checks annotation files for conformance with the
// documented corpus format. Unlike the strict conll reader it keeps going
// after the first problem and reports every issue it finds with its
// position.
package validate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pdiddy/tacred-tools/internal/conll"
	"github.com/pdiddy/tacred-tools/internal/convert"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

// Issue is one conformance problem, positioned by file and line.
type Issue struct {
	File      string `json:"file" yaml:"file"`
	Line      int    `json:"line" yaml:"line"`
	ExampleID string `json:"example_id,omitempty" yaml:"example_id,omitempty"`
	Msg       string `json:"msg" yaml:"msg"`
}

func (i Issue) String() string {
	if i.ExampleID != "" {
		return fmt.Sprintf("%s:%d: example %s: %s", i.File, i.Line, i.ExampleID, i.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", i.File, i.Line, i.Msg)
}

// Report summarizes a validation run.
type Report struct {
	Files    int     `json:"files" yaml:"files"`
	Examples int     `json:"examples" yaml:"examples"`
	Issues   []Issue `json:"issues" yaml:"issues"`
}

// Ok reports whether the run found no issues.
func (r Report) Ok() bool {
	return len(r.Issues) == 0
}

// CheckFiles validates each file (tabular or JSON, detected by extension),
// writing per-file status lines and every issue to w.
func CheckFiles(paths []string, w io.Writer) Report {
	var report Report
	for _, path := range paths {
		n, issues, err := checkFile(path)
		report.Files++
		report.Examples += n
		if err != nil {
			issues = append(issues, Issue{File: path, Msg: err.Error()})
		}
		report.Issues = append(report.Issues, issues...)

		if len(issues) == 0 {
			fmt.Fprintf(w, "ok:     %s (%d examples)\n", path, n)
		} else {
			fmt.Fprintf(w, "issues: %s (%d examples, %d issues)\n", path, n, len(issues))
			for _, is := range issues {
				fmt.Fprintf(w, "  %s\n", is)
			}
		}
	}

	fmt.Fprintf(w, "\n%d file(s), %d example(s), %d issue(s)\n",
		report.Files, report.Examples, len(report.Issues))
	return report
}

func checkFile(path string) (int, []Issue, error) {
	if convert.DetectFormat(path) == convert.FormatJSON {
		return checkJSONFile(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return CheckTabular(f, path)
}

// checkJSONFile validates a JSON annotation file. Structural decoding is
// strict (a malformed file yields a single issue); decoded examples get
// the same semantic checks as tabular ones.
func checkJSONFile(path string) (int, []Issue, error) {
	examples, err := convert.ReadJSONFile(path)
	if err != nil {
		return 0, []Issue{{File: path, Msg: err.Error()}}, nil
	}

	var issues []Issue
	for _, e := range examples {
		for _, msg := range checkSemantics(e.Relation, e.SubjType, e.ObjType) {
			issues = append(issues, Issue{File: path, ExampleID: e.ID, Msg: msg})
		}
	}
	return len(examples), issues, nil
}

// checkSemantics applies the label checks shared by both formats.
func checkSemantics(reln types.Relation, subjType, objType types.EntityType) []string {
	var msgs []string
	if !types.ValidRelation(reln) {
		msgs = append(msgs, fmt.Sprintf("unknown relation label %q", reln))
	}
	if subjType != "" && !types.ValidSubjectType(subjType) {
		msgs = append(msgs, fmt.Sprintf("subject type %q is not PERSON or ORGANIZATION", subjType))
	}
	if objType != "" && !types.ValidObjectType(objType) {
		msgs = append(msgs, fmt.Sprintf("unknown object type %q", objType))
	}
	return msgs
}

// CheckTabular scans a tabular annotation stream leniently, collecting
// every issue instead of stopping at the first.
func CheckTabular(r io.Reader, name string) (int, []Issue, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	c := &checker{file: name}
	for sc.Scan() {
		c.line++
		c.observe(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return c.examples, c.issues, fmt.Errorf("reading %s: %w", name, err)
	}
	c.finishExample()
	return c.examples, c.issues, nil
}

// checker is the line-level state machine for one tabular stream.
type checker struct {
	file     string
	line     int
	examples int
	issues   []Issue

	inExample bool
	id        string
	tokens    int
	subj      runTracker
	obj       runTracker
	heads     []headRef
}

// headRef defers the head range check until the token count is known.
type headRef struct {
	line  int
	index int
	head  int
}

// runTracker counts contiguous marker runs and checks type agreement.
type runTracker struct {
	role   string
	runs   int
	active bool
	typ    string
}

func (c *checker) add(id, msg string) {
	c.issues = append(c.issues, Issue{File: c.file, Line: c.line, ExampleID: id, Msg: msg})
}

func (c *checker) observe(raw string) {
	line := strings.TrimRight(raw, "\r")

	if strings.TrimSpace(line) == "" {
		c.finishExample()
		return
	}

	if strings.HasPrefix(line, "#") {
		if c.inExample {
			c.add(c.id, "missing blank line before next header")
			c.finishExample()
		}
		c.startExample(line)
		return
	}

	if !c.inExample {
		c.add("", "token line outside any example (missing header)")
		return
	}
	c.observeToken(line)
}

func (c *checker) startExample(line string) {
	c.inExample = true
	c.id = ""
	c.tokens = 0
	c.subj = runTracker{role: "subject"}
	c.obj = runTracker{role: "object"}
	c.heads = c.heads[:0]

	h, err := conll.ParseHeader(line)
	if err != nil {
		c.add("", err.Error())
		return
	}
	c.id = h.ID
	for _, msg := range checkSemantics(types.Relation(h.Reln), "", "") {
		c.add(c.id, msg)
	}
}

func (c *checker) observeToken(line string) {
	fields := strings.Split(line, "\t")
	if len(fields) != 10 {
		c.add(c.id, fmt.Sprintf("line has %d tab-separated fields, want 10", len(fields)))
		c.tokens++
		return
	}
	c.tokens++

	if idx, err := strconv.Atoi(fields[0]); err != nil {
		c.add(c.id, fmt.Sprintf("index %q is not a number", fields[0]))
	} else if idx != c.tokens {
		c.add(c.id, fmt.Sprintf("index %d out of sequence, want %d", idx, c.tokens))
	}

	c.observeMarker(&c.subj, fields[2], fields[3], conll.MarkerSubject)
	c.observeMarker(&c.obj, fields[4], fields[5], conll.MarkerObject)

	if fields[3] != conll.MarkerNone && !types.ValidSubjectType(types.EntityType(fields[3])) {
		c.add(c.id, fmt.Sprintf("subject type %q is not PERSON or ORGANIZATION", fields[3]))
	}
	if fields[5] != conll.MarkerNone && !types.ValidObjectType(types.EntityType(fields[5])) {
		c.add(c.id, fmt.Sprintf("unknown object type %q", fields[5]))
	}

	if head, err := strconv.Atoi(fields[9]); err != nil {
		c.add(c.id, fmt.Sprintf("head %q is not a number", fields[9]))
	} else {
		c.heads = append(c.heads, headRef{line: c.line, index: c.tokens, head: head})
	}
}

func (c *checker) observeMarker(rt *runTracker, marker, typ, want string) {
	switch marker {
	case want:
		if !rt.active {
			rt.active = true
			rt.runs++
			rt.typ = typ
		} else if typ != rt.typ {
			c.add(c.id, fmt.Sprintf("%s type changes from %q to %q within span", rt.role, rt.typ, typ))
		}
		if typ == conll.MarkerNone {
			c.add(c.id, fmt.Sprintf("%s span member missing entity type", rt.role))
		}
	case conll.MarkerNone:
		rt.active = false
		if typ != conll.MarkerNone {
			c.add(c.id, fmt.Sprintf("%s type %q on an unmarked token", rt.role, typ))
		}
	default:
		c.add(c.id, fmt.Sprintf("%s marker is %q, want %q or %q", rt.role, marker, want, conll.MarkerNone))
	}
}

func (c *checker) finishExample() {
	if !c.inExample {
		return
	}
	c.inExample = false
	c.examples++

	if c.tokens == 0 {
		c.add(c.id, "example has no token lines")
		return
	}
	for _, rt := range []runTracker{c.subj, c.obj} {
		switch rt.runs {
		case 1:
		case 0:
			c.add(c.id, fmt.Sprintf("example has no %s span", rt.role))
		default:
			c.add(c.id, fmt.Sprintf("%s span is split into %d runs (must be contiguous)", rt.role, rt.runs))
		}
	}
	for _, h := range c.heads {
		if h.head < 0 || h.head > c.tokens {
			c.add(c.id, fmt.Sprintf("token %d: head %d out of range [0,%d]", h.index, h.head, c.tokens))
		} else if h.head == h.index {
			c.add(c.id, fmt.Sprintf("token %d is its own dependency head", h.index))
		}
	}
}
