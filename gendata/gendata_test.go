package gendata

import (
	"math"
	"testing"

	"geotrace/geom"
	"geotrace/trajectory"
)

func straightLine() trajectory.Trajectory {
	return trajectory.Trajectory{
		Origin: 0,
		Points: []geom.Point{
			{X: 0, Y: 0, T: 0},
			{X: 10, Y: 0, T: 10},
			{X: 20, Y: 0, T: 20},
			{X: 30, Y: 0, T: 30},
		},
	}
}

func TestGenerateZeroNoiseIsDeterministic(t *testing.T) {
	base := straightLine()
	specs := []Spec{{IntervalScale: 1, NoiseLevel: 0}}
	a, err := Generate(base, specs, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Generate(base, specs, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a[0].Points) != len(b[0].Points) {
		t.Fatalf("expected deterministic point counts, got %d vs %d", len(a[0].Points), len(b[0].Points))
	}
	for i := range a[0].Points {
		if a[0].Points[i] != b[0].Points[i] {
			t.Fatalf("expected identical points at %d, got %+v vs %+v", i, a[0].Points[i], b[0].Points[i])
		}
	}
}

func TestGenerateStaysOnLineWithoutNoise(t *testing.T) {
	base := straightLine()
	specs := []Spec{{IntervalScale: 1, NoiseLevel: 0}}
	out, err := Generate(base, specs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range out[0].Points {
		if math.Abs(p.Y) > 1e-9 {
			t.Fatalf("expected y=0 on a straight horizontal line, got %v", p.Y)
		}
	}
}

func TestGenerateAssignsSequentialOrigins(t *testing.T) {
	base := straightLine()
	specs := []Spec{{IntervalScale: 1, NoiseLevel: 0}, {IntervalScale: 2, NoiseLevel: 0}}
	out, err := Generate(base, specs, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].Origin != 5 || out[1].Origin != 6 {
		t.Fatalf("expected origins 5,6, got %d,%d", out[0].Origin, out[1].Origin)
	}
}

func TestGenerateRejectsShortBase(t *testing.T) {
	base := trajectory.Trajectory{Origin: 0, Points: []geom.Point{{X: 0, Y: 0, T: 0}, {X: 1, Y: 1, T: 1}}}
	_, err := Generate(base, []Spec{{IntervalScale: 1, NoiseLevel: 0}}, 0)
	if err == nil {
		t.Fatalf("expected an error for a base trajectory with <= 2 points")
	}
}

func TestGenerateWithNoiseStaysBounded(t *testing.T) {
	base := straightLine()
	specs := []Spec{{IntervalScale: 1, NoiseLevel: 1}}
	out, err := Generate(base, specs, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, avgStep := averageSpacing(base.Points)
	for _, p := range out[0].Points {
		if math.Abs(p.Y) > avgStep+1e-9 {
			t.Fatalf("expected jittered y within the noise bound %v, got %v", avgStep, p.Y)
		}
	}
}
