// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes the corpus evaluation metric: micro-averaged
// precision, recall, and F1 over a gold and a predicted label sequence,
// with negative (no_relation) labels excluded from the guessed and gold
// counts. A prediction scores as correct only when it exactly matches a
// positive gold label.
package score

import (
	"fmt"
	"sort"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

// RelationScore is the per-label breakdown of the metric.
type RelationScore struct {
	Relation  types.Relation `json:"relation" yaml:"relation"`
	Correct   int            `json:"correct" yaml:"correct"`
	Guessed   int            `json:"guessed" yaml:"guessed"`
	Gold      int            `json:"gold" yaml:"gold"`
	Precision float64        `json:"precision" yaml:"precision"`
	Recall    float64        `json:"recall" yaml:"recall"`
	F1        float64        `json:"f1" yaml:"f1"`
}

// Confusion is one gold/guess error pair with its frequency.
type Confusion struct {
	Gold  types.Relation `json:"gold" yaml:"gold"`
	Guess types.Relation `json:"guess" yaml:"guess"`
	Count int            `json:"count" yaml:"count"`
}

// Result holds the outcome of scoring a prediction run.
type Result struct {
	// Total is the number of scored examples, negatives included.
	Total int `json:"total" yaml:"total"`

	// Correct counts predictions matching a positive gold label.
	Correct int `json:"correct" yaml:"correct"`

	// Guessed counts positive predictions.
	Guessed int `json:"guessed" yaml:"guessed"`

	// Gold counts positive gold labels.
	Gold int `json:"gold" yaml:"gold"`

	Precision float64 `json:"precision" yaml:"precision"`
	Recall    float64 `json:"recall" yaml:"recall"`
	F1        float64 `json:"f1" yaml:"f1"`

	// PerRelation is the per-label breakdown, sorted by label.
	PerRelation []RelationScore `json:"per_relation" yaml:"per_relation"`

	// Confusions lists gold/guess mismatch pairs, most frequent first.
	Confusions []Confusion `json:"confusions,omitempty" yaml:"confusions,omitempty"`
}

// prf computes precision, recall, and F1 from raw counts. Zero denominators
// yield zero, matching the reference scorer.
func prf(correct, guessed, gold int) (p, r, f1 float64) {
	if guessed > 0 {
		p = float64(correct) / float64(guessed)
	}
	if gold > 0 {
		r = float64(correct) / float64(gold)
	}
	if p+r > 0 {
		f1 = 2 * p * r / (p + r)
	}
	return p, r, f1
}

// Score evaluates predicted labels against gold labels. The sequences must
// be aligned and of equal length.
func Score(gold, guess []types.Relation) (Result, error) {
	if len(gold) != len(guess) {
		return Result{}, fmt.Errorf("gold has %d labels but predictions have %d", len(gold), len(guess))
	}

	res := Result{Total: len(gold)}
	type counts struct{ correct, guessed, gold int }
	perRel := make(map[types.Relation]*counts)
	confusion := make(map[Confusion]int)

	rel := func(r types.Relation) *counts {
		c, ok := perRel[r]
		if !ok {
			c = &counts{}
			perRel[r] = c
		}
		return c
	}

	for i := range gold {
		g, p := gold[i], guess[i]

		if !g.IsNegative() {
			res.Gold++
			rel(g).gold++
		}
		if !p.IsNegative() {
			res.Guessed++
			rel(p).guessed++
		}
		if g == p {
			if !g.IsNegative() {
				res.Correct++
				rel(g).correct++
			}
			continue
		}
		confusion[Confusion{Gold: g, Guess: p}]++
	}

	res.Precision, res.Recall, res.F1 = prf(res.Correct, res.Guessed, res.Gold)

	for r, c := range perRel {
		rs := RelationScore{
			Relation: r,
			Correct:  c.correct,
			Guessed:  c.guessed,
			Gold:     c.gold,
		}
		rs.Precision, rs.Recall, rs.F1 = prf(c.correct, c.guessed, c.gold)
		res.PerRelation = append(res.PerRelation, rs)
	}
	sort.Slice(res.PerRelation, func(i, j int) bool {
		return res.PerRelation[i].Relation < res.PerRelation[j].Relation
	})

	for pair, n := range confusion {
		pair.Count = n
		res.Confusions = append(res.Confusions, pair)
	}
	sort.Slice(res.Confusions, func(i, j int) bool {
		a, b := res.Confusions[i], res.Confusions[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		if a.Gold != b.Gold {
			return a.Gold < b.Gold
		}
		return a.Guess < b.Guess
	})

	return res, nil
}
