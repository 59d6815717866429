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

// Package ingest parses raw GPS trace files into trajectories. One line
// holds one fix: "latitude longitude YYYY-MM-DD HH:MM:SS", whitespace
// delimited. A blank line separates one trajectory from the next; origin
// ids are assigned in file order.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"geotrace/errs"
	"geotrace/geom"
	"geotrace/trajectory"
)

const timeLayout = "2006-01-02 15:04:05"

// LoadFile opens path and parses it into a set of trajectories.
func LoadFile(path string) ([]trajectory.Trajectory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Printf("warning: closing %s: %v\n", path, cerr)
		}
	}()
	return Parse(f)
}

// Parse reads whitespace-delimited fix lines from r and groups them into
// trajectories, projecting latitude/longitude to planar meters with
// geom.Mercator. A blank line ends the current trajectory.
func Parse(r io.Reader) ([]trajectory.Trajectory, error) {
	scanner := bufio.NewScanner(r)
	var out []trajectory.Trajectory
	var pts []geom.Point
	origin := 0
	lineNo := 0

	flush := func() error {
		if len(pts) == 0 {
			return nil
		}
		t := trajectory.Trajectory{Points: pts, Origin: origin}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("trajectory %d (ending line %d): %w", origin, lineNo, err)
		}
		out = append(out, t)
		pts = nil
		origin++
		return nil
	}

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		p, err := parseFix(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		pts = append(pts, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading trace file: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseFix(line string) (geom.Point, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return geom.Point{}, fmt.Errorf("%w: expected 4 fields (lat lon date time), got %d", errs.ErrMalformedInput, len(fields))
	}
	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: latitude: %v", errs.ErrMalformedInput, err)
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: longitude: %v", errs.ErrMalformedInput, err)
	}
	ts, err := time.Parse(timeLayout, fields[2]+" "+fields[3])
	if err != nil {
		return geom.Point{}, fmt.Errorf("%w: timestamp: %v", errs.ErrMalformedInput, err)
	}
	x, y := geom.Mercator(lat, lon)
	return geom.Point{X: x, Y: y, T: float64(ts.Unix())}, nil
}
