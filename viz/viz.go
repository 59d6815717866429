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

// Package viz renders a static view of a mining run: the cluster catalog
// as a scatter of centroids, with mined patterns overlaid as connected
// paths between successive cluster centroids. Output format (PNG, SVG, or
// PDF) is selected by the destination file's extension.
package viz

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"geotrace/cluster"
	"geotrace/errs"
	"geotrace/geom"
	"geotrace/pattern"
)

// Plot builds a figure from a cluster catalog and its mined patterns and
// saves it to dest; width and height are in points. Patterns are resolved
// against the catalog by cluster id.
func Plot(catalog cluster.Catalog, patterns []pattern.Pattern, dest string, width, height vg.Length) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: empty catalog has nothing to plot", errs.ErrMalformedInput)
	}

	paths := make([][]geom.Segment, 0, len(patterns))
	for _, pat := range patterns {
		if len(pat) < 2 {
			continue
		}
		segs := make([]geom.Segment, len(pat))
		for i, clusterID := range pat {
			if clusterID < 0 || clusterID >= len(catalog) {
				return fmt.Errorf("%w: pattern references cluster id %d outside catalog range", errs.ErrMalformedInput, clusterID)
			}
			segs[i] = catalog[clusterID]
		}
		paths = append(paths, segs)
	}
	return render([]geom.Segment(catalog), paths, dest, width, height)
}

// PlotPaths builds the same figure as Plot, but from patterns already
// resolved to segment coordinates, the form a mined run's on-disk pattern
// artifact stores. Used to render a plot from a prior run's artifacts,
// where the mined cluster ids have already been thrown away.
func PlotPaths(catalog []geom.Segment, paths [][]geom.Segment, dest string, width, height vg.Length) error {
	if len(catalog) == 0 {
		return fmt.Errorf("%w: empty catalog has nothing to plot", errs.ErrMalformedInput)
	}
	return render(catalog, paths, dest, width, height)
}

func render(catalog []geom.Segment, paths [][]geom.Segment, dest string, width, height vg.Length) error {
	p := plot.New()
	p.Title.Text = "cluster catalog and mined patterns"
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	centroids := make(plotter.XYs, len(catalog))
	for i, seg := range catalog {
		centroids[i].X = seg.X
		centroids[i].Y = seg.Y
	}
	scatter, err := plotter.NewScatter(centroids)
	if err != nil {
		return fmt.Errorf("building cluster scatter: %w", err)
	}
	p.Add(scatter)

	for _, segs := range paths {
		if len(segs) < 2 {
			continue
		}
		xys := make(plotter.XYs, len(segs))
		for i, seg := range segs {
			xys[i] = plotter.XY{X: seg.X, Y: seg.Y}
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("building pattern path: %w", err)
		}
		p.Add(line)
	}

	if err := p.Save(width, height, dest); err != nil {
		return fmt.Errorf("saving plot to %s: %w", dest, err)
	}
	return nil
}
