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

// Package artifact encodes and decodes the on-disk artifact set: .seg,
// .tins, .t2ot, .cluster, .s2c, .tinc, .stp. Layout is little-endian with
// IEEE-754 doubles throughout, matching the reference layout documented
// rather than relying on host-native order.
package artifact

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"geotrace/errs"
	"geotrace/geom"
)

// SegmentLocationSize is the wire size of one SegmentLocation record:
// u32 id, 6 x f64.
const SegmentLocationSize = 4 + 6*8

var order = binary.LittleEndian

// WriteSegmentLocation appends one 56-byte SegmentLocation record.
func WriteSegmentLocation(w io.Writer, s geom.Segment) error {
	var buf [SegmentLocationSize]byte
	order.PutUint32(buf[0:4], s.ID)
	order.PutUint64(buf[4:12], math.Float64bits(s.X))
	order.PutUint64(buf[12:20], math.Float64bits(s.Y))
	order.PutUint64(buf[20:28], math.Float64bits(s.RX))
	order.PutUint64(buf[28:36], math.Float64bits(s.RY))
	order.PutUint64(buf[36:44], math.Float64bits(s.StartT))
	order.PutUint64(buf[44:52], math.Float64bits(s.EndT))
	_, err := w.Write(buf[:])
	return err
}

// ReadSegmentLocation reads one 56-byte SegmentLocation record.
func ReadSegmentLocation(r io.Reader) (geom.Segment, error) {
	var buf [SegmentLocationSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return geom.Segment{}, err
	}
	return geom.Segment{
		ID:     order.Uint32(buf[0:4]),
		X:      math.Float64frombits(order.Uint64(buf[4:12])),
		Y:      math.Float64frombits(order.Uint64(buf[12:20])),
		RX:     math.Float64frombits(order.Uint64(buf[20:28])),
		RY:     math.Float64frombits(order.Uint64(buf[28:36])),
		StartT: math.Float64frombits(order.Uint64(buf[36:44])),
		EndT:   math.Float64frombits(order.Uint64(buf[44:52])),
	}, nil
}

// WriteSeg writes the .seg artifact: a concatenation of SegmentLocation
// records.
func WriteSeg(w io.Writer, segments []geom.Segment) error {
	bw := bufio.NewWriter(w)
	for _, s := range segments {
		if err := WriteSegmentLocation(bw, s); err != nil {
			return fmt.Errorf("writing .seg: %w", err)
		}
	}
	return bw.Flush()
}

// ReadSeg reads a .seg artifact in full.
func ReadSeg(r io.Reader) ([]geom.Segment, error) {
	var out []geom.Segment
	for {
		s, err := ReadSegmentLocation(r)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading .seg: %w", err)
		}
		out = append(out, s)
	}
}

// WriteTins writes the .tins artifact: per trajectory, u32 segment_count
// then segment_count x u32 segment_ids.
func WriteTins(w io.Writer, perTrajectory [][]uint32) error {
	bw := bufio.NewWriter(w)
	var u32 [4]byte
	for _, ids := range perTrajectory {
		order.PutUint32(u32[:], uint32(len(ids)))
		if _, err := bw.Write(u32[:]); err != nil {
			return err
		}
		for _, id := range ids {
			order.PutUint32(u32[:], id)
			if _, err := bw.Write(u32[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadTins reads a .tins artifact in full.
func ReadTins(r io.Reader) ([][]uint32, error) {
	var out [][]uint32
	var u32 [4]byte
	for {
		if _, err := io.ReadFull(r, u32[:]); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("reading .tins: %w", err)
		}
		count := order.Uint32(u32[:])
		ids := make([]uint32, count)
		for i := range ids {
			if _, err := io.ReadFull(r, u32[:]); err != nil {
				return nil, fmt.Errorf("%w: truncated .tins record", errs.ErrMalformedArtifact)
			}
			ids[i] = order.Uint32(u32[:])
		}
		out = append(out, ids)
	}
}

// WriteT2OT writes the .t2ot artifact: repeated pairs of u32
// trajectory_index, u32 origin_index.
func WriteT2OT(w io.Writer, t2ot map[int]int) error {
	bw := bufio.NewWriter(w)
	var pair [8]byte
	for traj, origin := range t2ot {
		order.PutUint32(pair[0:4], uint32(traj))
		order.PutUint32(pair[4:8], uint32(origin))
		if _, err := bw.Write(pair[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadT2OT reads a .t2ot artifact in full.
func ReadT2OT(r io.Reader) (map[int]int, error) {
	out := map[int]int{}
	var pair [8]byte
	for {
		if _, err := io.ReadFull(r, pair[:]); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("reading .t2ot: %w", err)
		}
		traj := int(order.Uint32(pair[0:4]))
		origin := int(order.Uint32(pair[4:8]))
		out[traj] = origin
	}
}

// WriteCluster writes the .cluster artifact: a concatenation of
// SegmentLocation records (id = cluster id, fields = centroid).
func WriteCluster(w io.Writer, catalog []geom.Segment) error {
	return WriteSeg(w, catalog)
}

// ReadCluster reads a .cluster artifact in full.
func ReadCluster(r io.Reader) ([]geom.Segment, error) {
	return ReadSeg(r)
}

// WriteS2C writes the .s2c artifact: repeated pairs of u32 segment_id,
// u32 cluster_id.
func WriteS2C(w io.Writer, s2c map[uint32]uint32) error {
	bw := bufio.NewWriter(w)
	var pair [8]byte
	for seg, cl := range s2c {
		order.PutUint32(pair[0:4], seg)
		order.PutUint32(pair[4:8], cl)
		if _, err := bw.Write(pair[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadS2C reads a .s2c artifact in full.
func ReadS2C(r io.Reader) (map[uint32]uint32, error) {
	out := map[uint32]uint32{}
	var pair [8]byte
	for {
		if _, err := io.ReadFull(r, pair[:]); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("reading .s2c: %w", err)
		}
		out[order.Uint32(pair[0:4])] = order.Uint32(pair[4:8])
	}
}

// WriteTinC writes the .tinc artifact: per trajectory, u32 count then
// count x u32 cluster_ids.
func WriteTinC(w io.Writer, tincs [][]int) error {
	bw := bufio.NewWriter(w)
	var u32 [4]byte
	for _, ids := range tincs {
		order.PutUint32(u32[:], uint32(len(ids)))
		if _, err := bw.Write(u32[:]); err != nil {
			return err
		}
		for _, id := range ids {
			order.PutUint32(u32[:], uint32(id))
			if _, err := bw.Write(u32[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadTinC reads a .tinc artifact in full.
func ReadTinC(r io.Reader) ([][]int, error) {
	var out [][]int
	var u32 [4]byte
	for {
		if _, err := io.ReadFull(r, u32[:]); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("reading .tinc: %w", err)
		}
		count := order.Uint32(u32[:])
		ids := make([]int, count)
		for i := range ids {
			if _, err := io.ReadFull(r, u32[:]); err != nil {
				return nil, fmt.Errorf("%w: truncated .tinc record", errs.ErrMalformedArtifact)
			}
			ids[i] = int(order.Uint32(u32[:]))
		}
		out = append(out, ids)
	}
}

// WriteStp writes the .stp artifact: repeated records of u32 count then
// count x SegmentLocation, one record per surviving pattern (each
// cluster id in the pattern resolved to its catalog segment).
func WriteStp(w io.Writer, patterns [][]geom.Segment) error {
	bw := bufio.NewWriter(w)
	var u32 [4]byte
	for _, segs := range patterns {
		order.PutUint32(u32[:], uint32(len(segs)))
		if _, err := bw.Write(u32[:]); err != nil {
			return err
		}
		for _, s := range segs {
			if err := WriteSegmentLocation(bw, s); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// ReadStp reads a .stp artifact in full.
func ReadStp(r io.Reader) ([][]geom.Segment, error) {
	var out [][]geom.Segment
	var u32 [4]byte
	for {
		if _, err := io.ReadFull(r, u32[:]); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("reading .stp: %w", err)
		}
		count := order.Uint32(u32[:])
		segs := make([]geom.Segment, count)
		for i := range segs {
			s, err := ReadSegmentLocation(r)
			if err != nil {
				return nil, fmt.Errorf("%w: truncated .stp record", errs.ErrMalformedArtifact)
			}
			segs[i] = s
		}
		out = append(out, segs)
	}
}
