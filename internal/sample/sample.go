// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sample draws random subsets of examples for annotation
// spot-checks and error analysis.
package sample

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/pdiddy/tacred-tools/pkg/types"
)

// Filter returns the examples carrying the given relation label.
func Filter(examples []*types.Example, reln types.Relation) []*types.Example {
	var out []*types.Example
	for _, e := range examples {
		if e.Relation == reln {
			out = append(out, e)
		}
	}
	return out
}

// Draw selects n examples at random. With cfg.Stratify the sample is
// allocated across relation labels in proportion to their frequency
// (largest-remainder rounding); otherwise it is uniform. A fixed cfg.Seed
// makes the draw reproducible. Sampled examples keep their input order.
func Draw(examples []*types.Example, n int, cfg types.SampleConfig) ([]*types.Example, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample size must be positive, got %d", n)
	}
	if n >= len(examples) {
		return examples, nil
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var picked []int
	if cfg.Stratify {
		picked = drawStratified(examples, n, rng)
	} else {
		picked = drawUniform(len(examples), n, rng)
	}

	sort.Ints(picked)
	out := make([]*types.Example, len(picked))
	for i, idx := range picked {
		out[i] = examples[idx]
	}
	return out, nil
}

// drawUniform picks n distinct indices from [0,total).
func drawUniform(total, n int, rng *rand.Rand) []int {
	perm := rng.Perm(total)
	return perm[:n]
}

// drawStratified allocates the sample across relation labels by their
// share of the input, distributing rounding remainders to the largest
// fractional parts, then draws uniformly within each label.
func drawStratified(examples []*types.Example, n int, rng *rand.Rand) []int {
	byLabel := map[types.Relation][]int{}
	for i, e := range examples {
		byLabel[e.Relation] = append(byLabel[e.Relation], i)
	}

	labels := make([]types.Relation, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

	type alloc struct {
		label types.Relation
		count int
		frac  float64
	}
	allocs := make([]alloc, len(labels))
	assigned := 0
	for i, l := range labels {
		exact := float64(n) * float64(len(byLabel[l])) / float64(len(examples))
		count := int(exact)
		allocs[i] = alloc{label: l, count: count, frac: exact - float64(count)}
		assigned += count
	}

	// Hand out the remainder to the largest fractional parts.
	sort.SliceStable(allocs, func(i, j int) bool { return allocs[i].frac > allocs[j].frac })
	for i := 0; assigned < n; i = (i + 1) % len(allocs) {
		if allocs[i].count < len(byLabel[allocs[i].label]) {
			allocs[i].count++
			assigned++
		}
	}

	var picked []int
	for _, a := range allocs {
		indices := byLabel[a.label]
		perm := rng.Perm(len(indices))
		for _, p := range perm[:a.count] {
			picked = append(picked, indices[p])
		}
	}
	return picked
}
