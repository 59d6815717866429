package artifact

import (
	"bytes"
	"reflect"
	"testing"

	"geotrace/geom"
)

// Round-trip (testable property 10): serialize-then-parse of
// SegmentLocation is the identity.
func TestSegmentLocationRoundTrip(t *testing.T) {
	s := geom.Segment{ID: 42, X: 1.5, Y: -2.25, RX: 3.125, RY: 4, StartT: 100, EndT: 200.5}
	var buf bytes.Buffer
	if err := WriteSegmentLocation(&buf, s); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != SegmentLocationSize {
		t.Fatalf("expected %d bytes, got %d", SegmentLocationSize, buf.Len())
	}
	got, err := ReadSegmentLocation(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != s {
		t.Fatalf("got %+v, want %+v", got, s)
	}
}

func TestSegRoundTrip(t *testing.T) {
	segs := []geom.Segment{
		{ID: 0, X: 0, Y: 0, RX: 1, RY: 1, StartT: 0, EndT: 1},
		{ID: 1, X: 1, Y: 1, RX: 2, RY: 2, StartT: 1, EndT: 2},
	}
	var buf bytes.Buffer
	if err := WriteSeg(&buf, segs); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSeg(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, segs) {
		t.Fatalf("got %+v, want %+v", got, segs)
	}
}

func TestTinsRoundTrip(t *testing.T) {
	in := [][]uint32{{0, 1, 2}, {}, {5}}
	var buf bytes.Buffer
	if err := WriteTins(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadTins(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %v, want %v", got, in)
	}
	for i := range in {
		if len(got[i]) != len(in[i]) {
			t.Fatalf("record %d: got %v, want %v", i, got[i], in[i])
		}
	}
}

func TestT2OTRoundTrip(t *testing.T) {
	in := map[int]int{0: 0, 1: 0, 2: 1}
	var buf bytes.Buffer
	if err := WriteT2OT(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadT2OT(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %v, want %v", got, in)
	}
}

func TestTinCRoundTrip(t *testing.T) {
	in := [][]int{{1, 2, 1}, {4, 5}}
	var buf bytes.Buffer
	if err := WriteTinC(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadTinC(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %v, want %v", got, in)
	}
}

func TestStpRoundTrip(t *testing.T) {
	in := [][]geom.Segment{
		{{ID: 0, X: 1, Y: 1}, {ID: 1, X: 2, Y: 2}},
		{{ID: 2, X: 3, Y: 3}},
	}
	var buf bytes.Buffer
	if err := WriteStp(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadStp(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %+v, want %+v", got, in)
	}
}
