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

// Package gendata synthesizes noisy trajectory variants from a single base
// trajectory by resampling it at a different interval and jittering each
// interpolated fix, the way the original tool built test datasets from a
// handful of real traces.
package gendata

import (
	"fmt"

	"github.com/valyala/fastrand"

	"geotrace/errs"
	"geotrace/geom"
	"geotrace/trajectory"
)

// Spec describes one noisy variant to generate from a base trajectory:
// intervalScale multiplies the base trajectory's average sampling interval,
// noiseLevel multiplies its average per-axis step size to get the spatial
// jitter bound.
type Spec struct {
	IntervalScale float64
	NoiseLevel    float64
}

// Generate produces len(specs) noisy variants of base, one per Spec, each
// becoming its own Trajectory with a distinct Origin starting at
// originBase. NoiseLevel 0 and IntervalScale-derived temporal jitter 0
// together produce an exact resampling with no call into the noise source,
// so seed-free deterministic fixtures are available by passing a Spec with
// NoiseLevel 0.
func Generate(base trajectory.Trajectory, specs []Spec, originBase int) ([]trajectory.Trajectory, error) {
	if len(base.Points) <= 2 {
		return nil, fmt.Errorf("%w: base trajectory must have more than 2 points", errs.ErrMalformedInput)
	}
	avgInterval, avgStep := averageSpacing(base.Points)

	out := make([]trajectory.Trajectory, 0, len(specs))
	for i, spec := range specs {
		interval := avgInterval * spec.IntervalScale
		tErr := interval * 0.3
		if spec.NoiseLevel == 0 {
			tErr = 0
		}
		sErr := avgStep * spec.NoiseLevel
		pts := resample(base.Points, interval, tErr, sErr)
		t := trajectory.Trajectory{Points: pts, Origin: originBase + i}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("generating variant %d: %w", i, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// averageSpacing returns the average time interval and average per-axis
// spatial step between consecutive points of a trajectory.
func averageSpacing(pts []geom.Point) (avgInterval, avgStep float64) {
	n := len(pts)
	for i := 1; i < n; i++ {
		avgInterval += pts[i].T - pts[i-1].T
		avgStep += absF(pts[i].X-pts[i-1].X) + absF(pts[i].Y-pts[i-1].Y)
	}
	avgInterval /= float64(n - 1)
	avgStep /= float64(n-1) * 2
	return avgInterval, avgStep
}

// jitter returns a value in [-bound, bound). It avoids drawing from the
// noise source entirely when bound is zero, so zero-noise calls are exactly
// reproducible without seeding.
func jitter(bound float64) float64 {
	if bound == 0 {
		return 0
	}
	const resolution = 1 << 16
	r := float64(fastrand.Uint32n(resolution)) / float64(resolution)
	return bound * (2*r - 1)
}

// resample walks base at a new sampling interval, linearly interpolating
// position between the bracketing original fixes and adding bounded jitter
// to both the spatial coordinates and the sampling interval itself.
func resample(base []geom.Point, interval, tErr, sErr float64) []geom.Point {
	var out []geom.Point
	idx := 0
	t := base[0].T
	last := base[len(base)-1].T
	for t < last {
		for idx+1 < len(base)-1 && t > base[idx+1].T {
			idx++
		}
		rate := (t - base[idx].T) / (base[idx+1].T - base[idx].T)
		if rate < 0 {
			rate = 0
		}
		if rate > 1 {
			rate = 1
		}
		x := (1-rate)*base[idx].X + rate*base[idx+1].X + jitter(sErr)
		y := (1-rate)*base[idx].Y + rate*base[idx+1].Y + jitter(sErr)
		out = append(out, geom.Point{X: x, Y: y, T: t})
		step := interval + jitter(tErr)
		if step < 0 {
			step = 0
		}
		t += step
		if step == 0 {
			// guaranteed progress so a zero interval can never loop forever.
			t += 1e-9
		}
	}
	return out
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
