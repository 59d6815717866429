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

// Package rewrite replaces each trajectory's segment sequence with the
// corresponding sequence of cluster ids, run-length collapsed, producing
// one TinC string per trajectory plus the trajectory->origin map needed
// for distinct-origin support counting.
package rewrite

// TinC is a run-length-collapsed sequence of cluster ids for one
// trajectory: no two consecutive ids are equal.
type TinC []int

// BuildTinC maps a trajectory's ordered segment ids through s2c and
// collapses consecutive duplicate cluster ids.
//
// The collapse predicate is `clusterIds.isEmpty() || clusterId !=
// clusterIds.last()`: append whenever the accumulator is empty or the
// new id differs from the last one appended. The source tests
// `clusterId != clusterIds.last() || clusterIds.isEmpty()` instead, which
// calls .last() on a possibly empty list before the emptiness check is
// reached; that ordering is not reproduced here.
func BuildTinC(segmentIDs []uint32, s2c map[uint32]uint32) TinC {
	var ids TinC
	for _, sid := range segmentIDs {
		c := int(s2c[sid])
		if len(ids) == 0 || c != ids[len(ids)-1] {
			ids = append(ids, c)
		}
	}
	return ids
}

// T2OT maps a trajectory index (one per simplification variant) to the
// raw-file origin index it was derived from. Multiple SEST variants of
// the same file share one origin index.
type T2OT map[int]int
