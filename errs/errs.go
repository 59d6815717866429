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

// Package errs holds the sentinel error kinds shared by every pipeline
// stage, so callers can classify a failure with errors.Is instead of
// string matching.
package errs

import "errors"

var (
	// ErrMalformedInput: trajectory with < 2 points, non-monotonic
	// timestamps, or an unreadable input line.
	ErrMalformedInput = errors.New("malformed input")

	// ErrSimplificationFailure: no feasible simplification path exists.
	// Recoverable: the caller skips the trajectory and continues.
	ErrSimplificationFailure = errors.New("simplification failure")

	// ErrClusteringFailure: CF-tree allocation or split failure. Fatal.
	ErrClusteringFailure = errors.New("clustering failure")

	// ErrWeightMismatch: the feature weight vector's length is not K.
	// Fatal before any stage runs.
	ErrWeightMismatch = errors.New("weight vector length mismatch")

	// ErrMalformedArtifact: on-disk artifacts disagree with each other or
	// with their own declared record counts. Fatal to the current stage.
	ErrMalformedArtifact = errors.New("malformed artifact")
)
