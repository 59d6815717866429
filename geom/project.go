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

package geom

import "math"

const earthRadiusMeters = 6378137.0

// Mercator projects a (latitude, longitude) pair in degrees to planar
// (x, y) meters using the spherical Web Mercator formula. Latitude is
// clamped to the standard +-85.05113 degree bound, beyond which the
// projection diverges to infinity.
func Mercator(latDeg, lonDeg float64) (x, y float64) {
	const maxLat = 85.05112878
	if latDeg > maxLat {
		latDeg = maxLat
	} else if latDeg < -maxLat {
		latDeg = -maxLat
	}
	lat := latDeg * math.Pi / 180
	lon := lonDeg * math.Pi / 180
	x = earthRadiusMeters * lon
	y = earthRadiusMeters * math.Log(math.Tan(math.Pi/4+lat/2))
	return x, y
}

// Normalize zero-centers a slice of projected points in place by
// subtracting the mean x and mean y, leaving t untouched. An empty slice
// is a no-op.
func Normalize(points []Point) {
	if len(points) == 0 {
		return
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	meanX := sumX / float64(len(points))
	meanY := sumY / float64(len(points))
	for i := range points {
		points[i].X -= meanX
		points[i].Y -= meanY
	}
}
