// geotrace: spatio-temporal trajectory pattern mining
// Adapted from PTRA: Patient Trajectory Analysis Library
// Copyright (c) 2022 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/ptra/blob/master/LICENSE.txt>.

// Package pattern runs a PrefixSpan-style projected-database search over
// TinC sequences, constrained to transitions the continuity graph allows,
// counting support by distinct origin trajectory.
package pattern

import (
	"context"
	"sort"

	"github.com/exascience/pargo/parallel"

	"geotrace/rewrite"
)

// Pattern is a non-empty ordered sequence of cluster ids.
type Pattern []int

// projection tracks, for one trajectory, how far the current prefix's
// match has advanced: offset o is the smallest index at or after which
// the next candidate extension must be found.
type projection struct {
	j, o int
}

// Mine returns every pattern whose continuity-respecting support (by
// distinct origin trajectory) is at least minSup. tinc is indexed by
// trajectory index; t2ot maps that same index to its origin index.
// scMap maps a cluster id to its allowed successor ids; allClusterIDs is
// the full candidate universe considered for single-cluster patterns.
// ctx is checked between candidate expansions; a cancelled ctx yields no
// partial patterns, only the cancellation error.
func Mine(ctx context.Context, tinc []rewrite.TinC, t2ot []int, scMap map[int][]int, allClusterIDs []int, minSup int) ([]Pattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	projections := make([]projection, len(tinc))
	for j := range tinc {
		projections[j] = projection{j: j, o: 0}
	}
	sortedIDs := append([]int(nil), allClusterIDs...)
	sort.Ints(sortedIDs)
	return mineRecurse(ctx, nil, projections, tinc, t2ot, scMap, sortedIDs, minSup)
}

// recurseResult carries either a batch of patterns or a cancellation
// error through parallel.RangeReduce's interface{}-typed reduction.
type recurseResult struct {
	patterns []Pattern
	err      error
}

func mineRecurse(ctx context.Context, prefix []int, projections []projection, tinc []rewrite.TinC, t2ot []int, scMap map[int][]int, allClusterIDs []int, minSup int) ([]Pattern, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if distinctOrigins(projections, t2ot) < minSup {
		return nil, nil
	}
	var candidates []int
	if len(prefix) == 0 {
		candidates = allClusterIDs
	} else {
		candidates = scMap[prefix[len(prefix)-1]]
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	result := parallel.RangeReduce(0, len(candidates), 0, func(low, high int) interface{} {
		var local []Pattern
		for i := low; i < high; i++ {
			if err := ctx.Err(); err != nil {
				return recurseResult{err: err}
			}
			c := candidates[i]
			matchedOrigins := map[int]bool{}
			var forwarded []projection
			for _, p := range projections {
				seq := tinc[p.j]
				idx := -1
				for k := p.o; k < len(seq); k++ {
					if seq[k] == c {
						idx = k
						break
					}
				}
				if idx < 0 {
					continue
				}
				matchedOrigins[t2ot[p.j]] = true
				if idx < len(seq)-1 {
					forwarded = append(forwarded, projection{j: p.j, o: idx + 1})
				}
			}
			if len(matchedOrigins) < minSup {
				continue
			}
			newPrefix := make([]int, len(prefix)+1)
			copy(newPrefix, prefix)
			newPrefix[len(prefix)] = c
			local = append(local, Pattern(newPrefix))
			sub, err := mineRecurse(ctx, newPrefix, forwarded, tinc, t2ot, scMap, allClusterIDs, minSup)
			if err != nil {
				return recurseResult{err: err}
			}
			local = append(local, sub...)
		}
		return recurseResult{patterns: local}
	}, func(r1, r2 interface{}) interface{} {
		a, b := r1.(recurseResult), r2.(recurseResult)
		if a.err != nil {
			return a
		}
		if b.err != nil {
			return b
		}
		return recurseResult{patterns: append(a.patterns, b.patterns...)}
	})
	rr := result.(recurseResult)
	if rr.err != nil {
		return nil, rr.err
	}
	return rr.patterns, nil
}

func distinctOrigins(projections []projection, t2ot []int) int {
	seen := map[int]bool{}
	for _, p := range projections {
		seen[t2ot[p.j]] = true
	}
	return len(seen)
}
