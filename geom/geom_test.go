package geom

import (
	"math"
	"testing"
)

func TestPointToSegmentDistanceOnLine(t *testing.T) {
	// midpoint of a horizontal segment sits on the line: distance 0
	d := PointToSegmentDistance(5, 0, 0, 0, 10, 0)
	if d != 0 {
		t.Fatalf("expected 0, got %v", d)
	}
}

func TestPointToSegmentDistancePerpendicular(t *testing.T) {
	// point 3 above the midpoint of a horizontal segment
	d := PointToSegmentDistance(5, 3, 0, 0, 10, 0)
	if math.Abs(d-3) > 1e-9 {
		t.Fatalf("expected 3, got %v", d)
	}
}

func TestPointToSegmentDistanceClampsToEndpoint(t *testing.T) {
	// point beyond the segment's end clamps to the endpoint distance
	d := PointToSegmentDistance(15, 0, 0, 0, 10, 0)
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", d)
	}
}

func TestPointToSegmentDistanceDegenerate(t *testing.T) {
	// zero-length segment behaves as point-to-point distance
	d := PointToSegmentDistance(3, 4, 0, 0, 0, 0)
	if math.Abs(d-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", d)
	}
}

func TestSegmentLength(t *testing.T) {
	s := Segment{X: 0, Y: 0, RX: 3, RY: 4}
	if math.Abs(s.Length()-5) > 1e-9 {
		t.Fatalf("expected 5, got %v", s.Length())
	}
}

func TestNormalizeZeroCenters(t *testing.T) {
	pts := []Point{{X: 0, Y: 0, T: 1}, {X: 10, Y: 20, T: 2}}
	Normalize(pts)
	var sumX, sumY float64
	for _, p := range pts {
		sumX += p.X
		sumY += p.Y
	}
	if math.Abs(sumX) > 1e-9 || math.Abs(sumY) > 1e-9 {
		t.Fatalf("expected zero-centered sums, got %v %v", sumX, sumY)
	}
	if pts[1].T != 2 {
		t.Fatalf("expected t untouched, got %v", pts[1].T)
	}
}

func TestMercatorEquatorOrigin(t *testing.T) {
	x, y := Mercator(0, 0)
	if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
		t.Fatalf("expected origin at (0,0), got (%v,%v)", x, y)
	}
}
