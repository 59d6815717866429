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

// Package pipeline wires components A through I together in the order the
// system overview lays out: simplify, extract segments, encode features,
// cluster, rewrite to cluster-id sequences, build the continuity graph,
// mine patterns, and canonicalize the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/exascience/pargo/parallel"

	"geotrace/cluster"
	"geotrace/config"
	"geotrace/continuity"
	"geotrace/errs"
	"geotrace/feature"
	"geotrace/geom"
	"geotrace/pattern"
	"geotrace/rewrite"
	"geotrace/trajectory"
)

// Result bundles everything a run produces, covering six of the on-disk
// artifact kinds; the extracted segment list (.seg) is not kept.
type Result struct {
	Tins     [][]uint32        // per trajectory variant, its segment ids (.tins)
	T2OT     rewrite.T2OT       // trajectory variant index -> raw file origin index (.t2ot)
	Catalog  cluster.Catalog    // cluster centroids (.cluster)
	S2C      map[uint32]uint32  // segment id -> cluster id (.s2c)
	TinC     [][]int            // per trajectory variant, collapsed cluster-id sequence (.tinc)
	Patterns []pattern.Pattern  // canonicalized mined patterns, resolvable against Catalog for .stp
	Tree     *cluster.Tree
}

// variant pairs one simplification with the trajectory it was produced
// from, since ExtractSegments needs the trajectory's points and
// Simplification itself only carries point indices.
type variant struct {
	owner trajectory.Trajectory
	simp  trajectory.Simplification
}

// Run executes the full pipeline over a set of ingested trajectories.
// Trajectories are first expanded into simplification variants (either one
// per trajectory, or a SEST family sharing its origin), then simplified,
// segmented, clustered, rewritten, and mined, checking ctx between
// trajectories, between CF-tree inserts, and before the mining stage so a
// cancelled run stops promptly.
func Run(ctx context.Context, cfg config.Config, trajectories []trajectory.Trajectory) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	variants, t2ot, err := expandVariants(ctx, cfg, trajectories)
	if err != nil {
		return Result{}, err
	}
	fmt.Printf("simplification: %d trajectory variants from %d input traces\n", len(variants), len(trajectories))

	allSegments, tins, err := extractAllSegments(ctx, cfg, variants)
	if err != nil {
		return Result{}, err
	}
	fmt.Printf("segmentation: %d segments extracted\n", len(allSegments))

	weights := cfg.FeatureWeights()
	tree := cluster.New(cfg.Thresh, cfg.MemoryLim, cfg.ClusterOptions())
	for _, s := range allSegments {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		tree.Insert(feature.Encode(s, weights))
	}
	tree.Rebuild(true)
	entries := tree.Cluster()
	if len(entries) == 0 {
		return Result{}, fmt.Errorf("%w: clustering produced no clusters", errs.ErrClusteringFailure)
	}
	catalog := cluster.BuildCatalog(entries, weights)
	fmt.Printf("clustering: %d clusters formed (%d inserts, %d merges)\n", len(catalog), tree.Inserts(), tree.Merges())

	vectors := make([]feature.Vector, len(allSegments))
	for i, s := range allSegments {
		vectors[i] = feature.Encode(s, weights)
	}
	assignment := cluster.Redistribute(vectors, entries)
	s2c := make(map[uint32]uint32, len(allSegments))
	for i, s := range allSegments {
		s2c[s.ID] = uint32(assignment[i])
	}

	tinc := make([][]int, len(tins))
	for i, ids := range tins {
		tinc[i] = rewrite.BuildTinC(ids, s2c)
	}

	graph := continuity.Build(catalog, cfg.ContinuityRadius)
	fmt.Printf("continuity graph: %d clusters\n", len(graph.AllClusterIDs()))

	t2otSlice := make([]int, len(variants))
	for i := range variants {
		t2otSlice[i] = t2ot[i]
	}
	raw, err := pattern.Mine(ctx, toTinC(tinc), t2otSlice, graph.Map(), graph.AllClusterIDs(), cfg.MinSup)
	if err != nil {
		return Result{}, err
	}
	canon := pattern.Canonicalize(raw)
	canon = pattern.FilterByLength(canon, cfg.MinLen)
	fmt.Printf("mining: %d patterns after canonicalization and length filtering\n", len(canon))

	return Result{
		Tins:     tins,
		T2OT:     t2ot,
		Catalog:  catalog,
		S2C:      s2c,
		TinC:     tinc,
		Patterns: canon,
		Tree:     tree,
	}, nil
}

// ResolvePattern maps a mined pattern's cluster ids to their catalog
// segments, for writing the .stp artifact.
func ResolvePattern(p pattern.Pattern, catalog cluster.Catalog) ([]geom.Segment, error) {
	out := make([]geom.Segment, len(p))
	for i, clusterID := range p {
		if clusterID < 0 || clusterID >= len(catalog) {
			return nil, fmt.Errorf("%w: cluster id %d out of catalog range", errs.ErrMalformedInput, clusterID)
		}
		out[i] = catalog[clusterID]
	}
	return out, nil
}

func toTinC(tinc [][]int) []rewrite.TinC {
	out := make([]rewrite.TinC, len(tinc))
	for i, ids := range tinc {
		out[i] = rewrite.TinC(ids)
	}
	return out
}

// expandVariants builds the simplification variant list: either one
// simplification per input trajectory, or (when UseSEST) a SEST family per
// trajectory, all variants of one trajectory sharing its t2ot origin.
// Simplification of different trajectories is embarrassingly parallel, so
// independent trajectories are simplified concurrently with
// parallel.Range; variants are then flattened back into a single
// deterministic order by trajectory index.
func expandVariants(ctx context.Context, cfg config.Config, trajectories []trajectory.Trajectory) ([]variant, rewrite.T2OT, error) {
	perTrajectory := make([][]trajectory.Simplification, len(trajectories))
	var mu sync.Mutex
	var firstErr error
	parallel.Range(0, len(trajectories), 0, func(low, high int) {
		for i := low; i < high; i++ {
			if ctx.Err() != nil {
				return
			}
			t := trajectories[i]
			if cfg.UseSEST {
				perTrajectory[i] = trajectory.SimplifyFamily(&t, cfg.DotsTh, cfg.SegStep, cfg.UseTemporal, 0)
				continue
			}
			s, err := trajectory.Simplify(&t, trajectory.SimplifyOptions{Threshold: cfg.DotsTh, UseTemporal: cfg.UseTemporal})
			if err != nil {
				if errors.Is(err, errs.ErrSimplificationFailure) {
					fmt.Printf("skipping trajectory %d: %v\n", t.Origin, err)
					continue
				}
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("simplifying trajectory %d: %w", t.Origin, err)
				}
				mu.Unlock()
				return
			}
			perTrajectory[i] = []trajectory.Simplification{s}
		}
	})
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}

	var variants []variant
	t2ot := rewrite.T2OT{}
	for i, vs := range perTrajectory {
		for _, v := range vs {
			t2ot[len(variants)] = trajectories[i].Origin
			variants = append(variants, variant{owner: trajectories[i], simp: v})
		}
	}
	return variants, t2ot, nil
}

// extractAllSegments turns each simplification variant into its segment
// batch, renumbering ids in a single-threaded pass over the variants in
// order so ids stay deterministic regardless of how simplification was
// parallelized.
func extractAllSegments(ctx context.Context, cfg config.Config, variants []variant) ([]geom.Segment, [][]uint32, error) {
	var all []geom.Segment
	tins := make([][]uint32, len(variants))
	var nextID uint32
	for i, v := range variants {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		owner := v.owner
		segs, next := trajectory.ExtractSegments(&owner, v.simp, nextID, cfg.MinLength)
		nextID = next
		ids := make([]uint32, len(segs))
		for j, s := range segs {
			ids[j] = s.ID
		}
		tins[i] = ids
		all = append(all, segs...)
	}
	return all, tins, nil
}
