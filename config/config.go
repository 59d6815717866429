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

// Package config collects the tunable parameters of a pipeline run into a
// single flat struct, mirroring the flag set the CLI builds around it.
package config

import (
	"fmt"

	"geotrace/cluster"
	"geotrace/errs"
	"geotrace/feature"
)

// Config holds every tunable named in the external interface: simplification,
// feature weighting, CF-tree, continuity, and mining parameters.
type Config struct {
	// Simplification (component B).
	DotsTh      float64 // primary / starting simplification threshold
	UseTemporal bool    // whether simplification distance uses the time axis
	UseSEST     bool    // single-threshold vs threshold-sweep
	SegStep     float64 // additive threshold step in SEST
	MinLength   float64 // minimum segment length filter

	// Feature encoding and CF-tree (components C, D).
	Weights   [feature.Dims]float64 // per-dimension weights for the CF-tree
	Thresh    float64               // CF-tree leaf radius threshold T
	MemoryLim int64                 // byte ceiling triggering rebuild
	BLeaf     int                   // leaf branching factor
	BNonLeaf  int                   // internal-node branching factor
	Gamma     float64               // threshold growth factor on rebuild

	// Continuity graph (component G).
	ContinuityRadius float64 // r in the continuity graph

	// Mining (component H) and display (component I).
	MinSup int // pattern support, counted by distinct origin
	MinLen int // filter for final pattern length, display only
}

// Default returns a Config with the teacher's conventional CF-tree branching
// factors and an identity feature weighting, leaving the dataset-dependent
// thresholds at zero so callers are forced to set them explicitly.
func Default() Config {
	opts := cluster.DefaultOptions()
	return Config{
		UseTemporal: true,
		SegStep:     0,
		MinLength:   0,
		Weights:     [feature.Dims]float64{1, 1, 1, 1, 1, 1},
		MemoryLim:   0,
		BLeaf:       opts.BLeaf,
		BNonLeaf:    opts.BNonLeaf,
		Gamma:       opts.Gamma,
		MinSup:      1,
		MinLen:      1,
	}
}

// Validate checks the configuration before any stage runs, per the
// fail-fast-before-work requirement: a malformed weight vector or a
// nonsensical threshold should never surface midway through a run.
func (c Config) Validate() error {
	if _, err := feature.ValidateWeights(c.Weights[:]); err != nil {
		return err
	}
	if c.DotsTh <= 0 {
		return fmt.Errorf("%w: dotsTh must be > 0, got %v", errs.ErrMalformedInput, c.DotsTh)
	}
	if c.UseSEST && c.SegStep <= 0 {
		return fmt.Errorf("%w: segStep must be > 0 when useSEST is set, got %v", errs.ErrMalformedInput, c.SegStep)
	}
	if c.MinLength < 0 {
		return fmt.Errorf("%w: minLength must be >= 0, got %v", errs.ErrMalformedInput, c.MinLength)
	}
	if c.Thresh <= 0 {
		return fmt.Errorf("%w: thresh must be > 0, got %v", errs.ErrMalformedInput, c.Thresh)
	}
	if c.MemoryLim < 0 {
		return fmt.Errorf("%w: memoryLim must be >= 0 (0 disables the memory-bound rebuild), got %v", errs.ErrMalformedInput, c.MemoryLim)
	}
	if c.BLeaf <= 0 || c.BNonLeaf <= 0 {
		return fmt.Errorf("%w: branching factors must be > 0, got BLeaf=%d BNonLeaf=%d", errs.ErrMalformedInput, c.BLeaf, c.BNonLeaf)
	}
	if c.Gamma <= 1 {
		return fmt.Errorf("%w: gamma must be > 1, got %v", errs.ErrMalformedInput, c.Gamma)
	}
	if c.ContinuityRadius <= 0 {
		return fmt.Errorf("%w: continuityRadius must be > 0, got %v", errs.ErrMalformedInput, c.ContinuityRadius)
	}
	if c.MinSup < 1 {
		return fmt.Errorf("%w: minSup must be >= 1, got %d", errs.ErrMalformedInput, c.MinSup)
	}
	if c.MinLen < 1 {
		return fmt.Errorf("%w: minLen must be >= 1, got %d", errs.ErrMalformedInput, c.MinLen)
	}
	return nil
}

// ClusterOptions projects the branching-factor and growth-factor fields into
// a cluster.Options value ready to hand to cluster.New.
func (c Config) ClusterOptions() cluster.Options {
	return cluster.Options{BLeaf: c.BLeaf, BNonLeaf: c.BNonLeaf, Gamma: c.Gamma}
}

// FeatureWeights projects the weight fields into a feature.Weights value.
func (c Config) FeatureWeights() feature.Weights {
	return feature.Weights(c.Weights)
}
