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

// Package geom holds the planar geometry primitives shared by the
// simplification and clustering stages: points, directed segments, and
// the distance functions between them.
package geom

import "math"

// Point is a sample in the projected plane: x,y in meters after Mercator
// projection and zero-centering, t in seconds since epoch.
type Point struct {
	X, Y, T float64
}

// Segment runs from (X,Y) to (X+RX,Y+RY) between StartT and EndT. ID is a
// serial number assigned in creation order across the stream of all
// segments produced from all trajectories.
type Segment struct {
	ID           uint32
	X, Y         float64
	RX, RY       float64
	StartT, EndT float64
}

// End returns the segment's terminal point.
func (s Segment) End() (x, y float64) {
	return s.X + s.RX, s.Y + s.RY
}

// Start returns the segment's initial point.
func (s Segment) Start() (x, y float64) {
	return s.X, s.Y
}

// Length returns the Euclidean length of the segment in the (x,y) plane.
func (s Segment) Length() float64 {
	return math.Hypot(s.RX, s.RY)
}

// Distance2D returns the Euclidean distance between two planar points.
func Distance2D(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// PointToSegmentDistance returns the perpendicular distance from (px,py) to
// the segment (x1,y1)-(x2,y2), clamping the projection to the segment's
// extent so that points beyond either endpoint measure to that endpoint.
//
// Uses the standard formula distance = sqrt((x-px)^2 + (y-py)^2), where
// (x,y) is the clamped projection of (px,py) onto the segment line.
func PointToSegmentDistance(px, py, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return Distance2D(px, py, x1, y1)
	}
	t := ((px-x1)*dx + (py-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	x := x1 + t*dx
	y := y1 + t*dy
	return math.Sqrt((x-px)*(x-px) + (y-py)*(y-py))
}

// PointToSegmentDistance3D is the temporal variant: the segment is extended
// into (x,y,t) space and the perpendicular distance is computed there. Used
// by the simplifier when useTemporal is set; temporalWeight scales the
// time axis before folding it into the distance, expressed in the same
// units as x,y (meters) per the documented default of 1.0.
func PointToSegmentDistance3D(px, py, pt, x1, y1, t1, x2, y2, t2, temporalWeight float64) float64 {
	pz := pt * temporalWeight
	z1 := t1 * temporalWeight
	z2 := t2 * temporalWeight
	dx := x2 - x1
	dy := y2 - y1
	dz := z2 - z1
	lenSq := dx*dx + dy*dy + dz*dz
	if lenSq == 0 {
		return math.Sqrt((px-x1)*(px-x1) + (py-y1)*(py-y1) + (pz-z1)*(pz-z1))
	}
	tt := ((px-x1)*dx + (py-y1)*dy + (pz-z1)*dz) / lenSq
	if tt < 0 {
		tt = 0
	} else if tt > 1 {
		tt = 1
	}
	x := x1 + tt*dx
	y := y1 + tt*dy
	z := z1 + tt*dz
	return math.Sqrt((x-px)*(x-px) + (y-py)*(y-py) + (z-pz)*(z-pz))
}
