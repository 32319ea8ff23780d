// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/tacred-tools/internal/convert"
	"github.com/pdiddy/tacred-tools/pkg/types"
)

// Labeled pairs a relation label with the example it belongs to. ID is
// empty when the label came from a bare one-label-per-line file.
type Labeled struct {
	ID       string
	Relation types.Relation
}

// LoadFile reads labels from path. Annotation files (.conll, .gold, .json)
// contribute ID-tagged labels; any other file is read as one label per
// line, aligned by position.
func LoadFile(path string) ([]Labeled, error) {
	switch filepath.Ext(path) {
	case ".conll", ".gold", ".json":
		examples, err := convert.ReadExamples(path)
		if err != nil {
			return nil, err
		}
		labels := make([]Labeled, len(examples))
		for i, e := range examples {
			labels[i] = Labeled{ID: e.ID, Relation: e.Relation}
		}
		return labels, nil
	}
	return loadLines(path)
}

func loadLines(path string) ([]Labeled, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var labels []Labeled
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		r := types.Relation(text)
		if !types.ValidRelation(r) {
			return nil, fmt.Errorf("%s:%d: unknown relation label %q", path, line, text)
		}
		labels = append(labels, Labeled{Relation: r})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return labels, nil
}

// Pair aligns gold and predicted labels for scoring. When both sides carry
// example IDs the pairing is by ID and every gold example must be covered;
// otherwise the pairing is positional and the lengths must match.
func Pair(gold, guess []Labeled) ([]types.Relation, []types.Relation, error) {
	if hasIDs(gold) && hasIDs(guess) {
		return pairByID(gold, guess)
	}

	if len(gold) != len(guess) {
		return nil, nil, fmt.Errorf("gold has %d labels but predictions have %d", len(gold), len(guess))
	}
	g := make([]types.Relation, len(gold))
	p := make([]types.Relation, len(guess))
	for i := range gold {
		g[i] = gold[i].Relation
		p[i] = guess[i].Relation
	}
	return g, p, nil
}

func hasIDs(labels []Labeled) bool {
	for _, l := range labels {
		if l.ID == "" {
			return false
		}
	}
	return len(labels) > 0
}

func pairByID(gold, guess []Labeled) ([]types.Relation, []types.Relation, error) {
	byID := make(map[string]types.Relation, len(guess))
	for _, l := range guess {
		if _, dup := byID[l.ID]; dup {
			return nil, nil, fmt.Errorf("predictions contain example %s twice", l.ID)
		}
		byID[l.ID] = l.Relation
	}

	g := make([]types.Relation, len(gold))
	p := make([]types.Relation, len(gold))
	for i, l := range gold {
		pred, ok := byID[l.ID]
		if !ok {
			return nil, nil, fmt.Errorf("predictions are missing example %s", l.ID)
		}
		g[i] = l.Relation
		p[i] = pred
	}
	return g, p, nil
}
