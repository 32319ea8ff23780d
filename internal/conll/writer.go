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

// Write renders one example in the tabular format, including the trailing
// blank separator line. The output round-trips through the Reader.
func Write(w io.Writer, e *types.Example) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, formatHeader(e))

	for i, t := range e.Tokens {
		subj, subjType := markerFor(e.Subj, e.SubjType, MarkerSubject, i)
		obj, objType := markerFor(e.Obj, e.ObjType, MarkerObject, i)

		fields := []string{
			strconv.Itoa(i + 1),
			t.Text,
			subj, subjType,
			obj, objType,
			t.POS, t.NER, t.DepRel,
			strconv.Itoa(t.Head),
		}
		fmt.Fprintln(bw, strings.Join(fields, "\t"))
	}

	fmt.Fprintln(bw)
	return bw.Flush()
}

// WriteAll renders a sequence of examples.
func WriteAll(w io.Writer, examples []*types.Example) error {
	for _, e := range examples {
		if err := Write(w, e); err != nil {
			return fmt.Errorf("writing example %s: %w", e.ID, err)
		}
	}
	return nil
}

// WriteFile writes a sequence of examples to the file at path.
func WriteFile(path string, examples []*types.Example) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteAll(f, examples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
