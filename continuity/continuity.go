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

// Package continuity builds the spatial continuity graph: a directed
// relation over cluster ids stating which cluster may plausibly follow
// which other, used to constrain pattern mining to geometrically
// sensible transitions.
package continuity

import (
	"sort"
	"strconv"

	"github.com/katalvlaran/lvlath/graph"

	"geotrace/cluster"
	"geotrace/geom"
)

// Graph wraps a directed lvlath graph keyed by cluster id, exposing a
// deterministic (ascending id) successor order since the underlying
// library's own Neighbors() makes no iteration-order promise.
type Graph struct {
	g *graph.Graph
	n int
}

// Build adds an edge a->b for every ordered pair of distinct clusters
// where the Euclidean distance from a's end point to b's start point is
// below radius r. O(|catalog|^2); acceptable per the design, spatial
// indexing being a permitted but non-required optimization.
func Build(catalog cluster.Catalog, radius float64) *Graph {
	g := graph.NewGraph(true, false)
	out := &Graph{g: g, n: len(catalog)}
	for i := range catalog {
		g.AddVertex(&graph.Vertex{ID: strconv.Itoa(i), Metadata: map[string]interface{}{}})
	}
	for i, a := range catalog {
		aEndX, aEndY := a.End()
		for j, b := range catalog {
			if i == j {
				continue
			}
			bStartX, bStartY := b.Start()
			if geom.Distance2D(aEndX, aEndY, bStartX, bStartY) < radius {
				g.AddEdge(strconv.Itoa(i), strconv.Itoa(j), 1)
			}
		}
	}
	return out
}

// Successors returns cluster id's allowed next regions, ascending by id.
func (g *Graph) Successors(id int) []int {
	vs := g.g.Neighbors(strconv.Itoa(id))
	out := make([]int, 0, len(vs))
	for _, v := range vs {
		n, err := strconv.Atoi(v.ID)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// AllClusterIDs returns every cluster id present in the graph, ascending.
func (g *Graph) AllClusterIDs() []int {
	out := make([]int, g.n)
	for i := range out {
		out[i] = i
	}
	return out
}

// Map materializes the scMap form used by the PrefixSpan miner:
// cluster_id -> ordered list of successor cluster_ids.
func (g *Graph) Map() map[int][]int {
	m := make(map[int][]int, g.n)
	for _, id := range g.AllClusterIDs() {
		m[id] = g.Successors(id)
	}
	return m
}
