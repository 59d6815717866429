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

package cluster

import (
	"geotrace/feature"
	"geotrace/geom"
)

// Catalog is the stable ordered list of cluster representatives: cluster
// i's fields are the unweighted centroid of the i-th leaf-chain CF entry.
type Catalog []geom.Segment

// BuildCatalog materializes cluster() into the catalog, assigning ids by
// enumeration order and un-weighting each centroid before storing it.
func BuildCatalog(entries []CF, w feature.Weights) Catalog {
	catalog := make(Catalog, len(entries))
	for i, e := range entries {
		v := feature.Unweight(e.Centroid(), w)
		catalog[i] = feature.ToSegment(uint32(i), v)
	}
	return catalog
}
