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

import "geotrace/geom"

// ExtractSegments emits one segment per consecutive pair of simplified
// point indices, assigning consecutive serial ids starting at nextID, and
// returns the updated next-id counter for the caller's next trajectory.
// Segments whose Euclidean length is <= minLength are dropped.
func ExtractSegments(t *Trajectory, s Simplification, nextID uint32, minLength float64) ([]geom.Segment, uint32) {
	segments := make([]geom.Segment, 0, len(s.Indices)-1)
	for i := 0; i+1 < len(s.Indices); i++ {
		a := t.Points[s.Indices[i]]
		b := t.Points[s.Indices[i+1]]
		seg := geom.Segment{
			X: a.X, Y: a.Y,
			RX: b.X - a.X, RY: b.Y - a.Y,
			StartT: a.T, EndT: b.T,
		}
		if seg.Length() <= minLength {
			continue
		}
		seg.ID = nextID
		nextID++
		segments = append(segments, seg)
	}
	return segments, nextID
}
