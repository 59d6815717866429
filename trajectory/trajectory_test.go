package trajectory

import (
	"errors"
	"testing"

	"geotrace/errs"
	"geotrace/geom"
)

func pt(x, y, t float64) geom.Point { return geom.Point{X: x, Y: y, T: t} }

// Scenario 1 (trivial): one trajectory with 3 collinear points under a
// threshold large enough to collapse to one segment.
func TestSimplifyCollinearCollapses(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{pt(0, 0, 0), pt(1, 0, 1), pt(2, 0, 2)}, Origin: 0}
	s, err := Simplify(tr, SimplifyOptions{Threshold: 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Indices) != 2 || s.Indices[0] != 0 || s.Indices[1] != 2 {
		t.Fatalf("expected [0 2], got %v", s.Indices)
	}
}

func TestSimplifyContainsFirstAndLast(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{
		pt(0, 0, 0), pt(1, 5, 1), pt(2, 0, 2), pt(3, 5, 3), pt(4, 0, 4),
	}, Origin: 0}
	s, err := Simplify(tr, SimplifyOptions{Threshold: 0.1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Indices[0] != 0 || s.Indices[len(s.Indices)-1] != len(tr.Points)-1 {
		t.Fatalf("simplification must contain first and last index, got %v", s.Indices)
	}
}

func TestSimplifyFeasibility(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{
		pt(0, 0, 0), pt(1, 0.2, 1), pt(2, 0, 2), pt(3, 0.2, 3), pt(4, 0, 4),
	}, Origin: 0}
	tau := 0.25
	s, err := Simplify(tr, SimplifyOptions{Threshold: tau})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i+1 < len(s.Indices); i++ {
		a, b := s.Indices[i], s.Indices[i+1]
		for k := a + 1; k < b; k++ {
			d := geom.PointToSegmentDistance(tr.Points[k].X, tr.Points[k].Y,
				tr.Points[a].X, tr.Points[a].Y, tr.Points[b].X, tr.Points[b].Y)
			if d > tau {
				t.Fatalf("point %d at distance %v exceeds threshold %v for edge %d->%d", k, d, tau, a, b)
			}
		}
	}
}

func TestSimplifyTooFewPoints(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{pt(0, 0, 0)}, Origin: 0}
	_, err := Simplify(tr, SimplifyOptions{Threshold: 1})
	if !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestValidateNonMonotonicTimestamps(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{pt(0, 0, 1), pt(1, 0, 0)}, Origin: 0}
	if err := tr.Validate(); !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestSimplifyFamilyStopsAtTwoPoints(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{pt(0, 0, 0), pt(1, 0, 1), pt(2, 0, 2)}, Origin: 3}
	family := SimplifyFamily(tr, 0.01, 1.0, false, 0)
	if len(family) == 0 {
		t.Fatal("expected at least one simplification")
	}
	last := family[len(family)-1]
	if len(last.Indices) > 2 {
		t.Fatalf("expected family to terminate once <=2 points, got %v", last.Indices)
	}
	for _, s := range family {
		if s.Origin != 3 {
			t.Fatalf("expected shared origin 3, got %d", s.Origin)
		}
	}
}

func TestExtractSegmentsAssignsIDsAndFiltersShort(t *testing.T) {
	tr := &Trajectory{Points: []geom.Point{pt(0, 0, 0), pt(0, 0.0001, 1), pt(10, 0, 2)}, Origin: 0}
	s := Simplification{Indices: []int{0, 1, 2}, Origin: 0}
	segs, next := ExtractSegments(tr, s, 5, 0.01)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment after filtering short one, got %d", len(segs))
	}
	if segs[0].ID != 5 {
		t.Fatalf("expected id 5, got %d", segs[0].ID)
	}
	if next != 6 {
		t.Fatalf("expected next id 6, got %d", next)
	}
}
