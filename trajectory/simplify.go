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

package trajectory

import (
	"fmt"

	"geotrace/errs"
	"geotrace/geom"
)

// DefaultTemporalWeight is applied to the time axis of the 3-D
// perpendicular distance when UseTemporal is set and the caller does not
// override it. The source mixes time into the distance without a scale
// factor; this repository documents the assumption instead of silently
// reproducing it.
const DefaultTemporalWeight = 1.0

// SimplifyOptions configures DOTS simplification.
type SimplifyOptions struct {
	Threshold      float64
	UseTemporal    bool
	TemporalWeight float64 // 0 means DefaultTemporalWeight
}

func (o SimplifyOptions) weight() float64 {
	if o.TemporalWeight == 0 {
		return DefaultTemporalWeight
	}
	return o.TemporalWeight
}

// Simplify reduces a trajectory to the minimum-edge path, in a directed
// acyclic graph over point indices, whose edges approximate all
// intermediate points within the configured threshold. Ties among
// minimum-edge paths are broken by preferring the lexicographically
// earliest sequence of indices.
func Simplify(t *Trajectory, opts SimplifyOptions) (Simplification, error) {
	n := len(t.Points)
	if n < 2 {
		return Simplification{}, fmt.Errorf("%w: trajectory has %d points, need at least 2", errs.ErrMalformedInput, n)
	}
	feasible := buildFeasibilityMatrix(t.Points, opts)

	// d[k]: minimum edges from k to n-1, or -1 if unreachable.
	d := make([]int, n)
	for i := range d {
		d[i] = -1
	}
	d[n-1] = 0
	for k := n - 2; k >= 0; k-- {
		best := -1
		for j := k + 1; j < n; j++ {
			if !feasible[k][j] || d[j] < 0 {
				continue
			}
			if best < 0 || d[j]+1 < best {
				best = d[j] + 1
			}
		}
		d[k] = best
	}
	if d[0] < 0 {
		return Simplification{}, fmt.Errorf("%w: no feasible simplification path", errs.ErrSimplificationFailure)
	}

	indices := []int{0}
	cur := 0
	for cur != n-1 {
		next := -1
		for j := cur + 1; j < n; j++ {
			if feasible[cur][j] && d[j] >= 0 && d[cur] == d[j]+1 {
				next = j
				break
			}
		}
		indices = append(indices, next)
		cur = next
	}

	return Simplification{Indices: indices, Origin: t.Origin, Threshold: opts.Threshold}, nil
}

// buildFeasibilityMatrix reports, for every pair i<j, whether the segment
// from point i to point j approximates all intermediate points within the
// configured threshold.
func buildFeasibilityMatrix(pts []geom.Point, opts SimplifyOptions) [][]bool {
	n := len(pts)
	feasible := make([][]bool, n)
	for i := range feasible {
		feasible[i] = make([]bool, n)
	}
	w := opts.weight()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			ok := true
			for k := i + 1; k < j; k++ {
				var dist float64
				if opts.UseTemporal {
					dist = geom.PointToSegmentDistance3D(
						pts[k].X, pts[k].Y, pts[k].T,
						pts[i].X, pts[i].Y, pts[i].T,
						pts[j].X, pts[j].Y, pts[j].T,
						w,
					)
				} else {
					dist = geom.PointToSegmentDistance(
						pts[k].X, pts[k].Y,
						pts[i].X, pts[i].Y,
						pts[j].X, pts[j].Y,
					)
				}
				if dist > opts.Threshold {
					ok = false
					break
				}
			}
			feasible[i][j] = ok
		}
	}
	return feasible
}

// SimplifyFamily produces the SEST family: simplifications at thresholds
// tau0, tau0+delta, tau0+2*delta, ... Stops when a simplification's
// segment count drops to <= 1 edge (<= 2 points) or when the resulting
// point-index set duplicates one already produced. All members share the
// trajectory's Origin.
func SimplifyFamily(t *Trajectory, tau0, delta float64, useTemporal bool, temporalWeight float64) []Simplification {
	var family []Simplification
	seen := map[string]bool{}
	tau := tau0
	for {
		s, err := Simplify(t, SimplifyOptions{Threshold: tau, UseTemporal: useTemporal, TemporalWeight: temporalWeight})
		if err != nil {
			break
		}
		key := indexSetKey(s.Indices)
		if seen[key] {
			break
		}
		seen[key] = true
		family = append(family, s)
		if len(s.Indices) <= 2 {
			break
		}
		tau += delta
	}
	return family
}

func indexSetKey(indices []int) string {
	b := make([]byte, 0, len(indices)*4)
	for _, idx := range indices {
		b = append(b, byte(idx), byte(idx>>8), byte(idx>>16), byte(idx>>24))
	}
	return string(b)
}
