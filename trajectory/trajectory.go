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

// Package trajectory reduces raw GPS traces to small, geometrically
// faithful sequences of directed segments (DOTS-style simplification),
// optionally scanning a family of distance thresholds (SEST).
package trajectory

import (
	"fmt"

	"geotrace/errs"
	"geotrace/geom"
)

// Trajectory is a non-empty ordered sample sequence for one moving
// entity, identified by the index of the raw file it was read from
// (Origin). Timestamps must be strictly increasing.
type Trajectory struct {
	Points []geom.Point
	Origin int
}

// Validate checks the minimal well-formedness every trajectory must have
// before simplification: at least 2 points and strictly increasing
// timestamps.
func (t *Trajectory) Validate() error {
	if len(t.Points) < 2 {
		return fmt.Errorf("%w: trajectory has %d points, need at least 2", errs.ErrMalformedInput, len(t.Points))
	}
	for i := 1; i < len(t.Points); i++ {
		if t.Points[i].T <= t.Points[i-1].T {
			return fmt.Errorf("%w: non-monotonic timestamp at index %d", errs.ErrMalformedInput, i)
		}
	}
	return nil
}

// Simplification is a polyline approximation of a Trajectory: an ordered
// subset of the original point indices, always including the first and
// last index.
type Simplification struct {
	Indices []int
	Origin  int
	// Threshold is the distance threshold this variant was produced at;
	// useful for SEST families sharing one Origin.
	Threshold float64
}
