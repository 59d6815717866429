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

// Package feature maps a segment to the 6-dimensional vector the CF-tree
// clusters on, applying a per-dimension weight before insertion.
package feature

import (
	"fmt"

	"geotrace/errs"
	"geotrace/geom"
)

// Dims is the fixed feature dimensionality: [x, y, rx, ry, startT, endT].
const Dims = 6

// Vector is a weighted 6-D feature vector ready for CF-tree insertion.
type Vector [Dims]float64

// Weights is a per-dimension weight vector of length Dims.
type Weights [Dims]float64

// ValidateWeights checks that a weight slice has exactly Dims entries,
// returning errs.ErrWeightMismatch otherwise. Callers that build Weights
// from a fixed-size array never need this; it exists for CLI/config code
// parsing weights from a flag string of unknown length.
func ValidateWeights(w []float64) (Weights, error) {
	if len(w) != Dims {
		return Weights{}, fmt.Errorf("%w: got %d weights, want %d", errs.ErrWeightMismatch, len(w), Dims)
	}
	var out Weights
	copy(out[:], w)
	return out, nil
}

// Raw returns a segment's unweighted feature vector.
func Raw(s geom.Segment) Vector {
	return Vector{s.X, s.Y, s.RX, s.RY, s.StartT, s.EndT}
}

// Encode returns a segment's weighted feature vector: f[i] * w[i].
func Encode(s geom.Segment, w Weights) Vector {
	v := Raw(s)
	for i := range v {
		v[i] *= w[i]
	}
	return v
}

// Unweight divides a weighted vector back down by w, recovering the raw
// feature values. Dimensions whose weight is 0 come back as 0. Used when
// materializing the cluster catalog from CF centroids, which are stored in
// weighted space.
func Unweight(v Vector, w Weights) Vector {
	var out Vector
	for i := range v {
		if w[i] == 0 {
			out[i] = 0
			continue
		}
		out[i] = v[i] / w[i]
	}
	return out
}

// ToSegment rebuilds a Segment from an unweighted feature vector, assigning
// the given id.
func ToSegment(id uint32, v Vector) geom.Segment {
	return geom.Segment{
		ID: id, X: v[0], Y: v[1], RX: v[2], RY: v[3], StartT: v[4], EndT: v[5],
	}
}
