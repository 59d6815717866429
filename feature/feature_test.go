package feature

import (
	"errors"
	"testing"

	"geotrace/errs"
	"geotrace/geom"
)

func TestEncodeAppliesWeights(t *testing.T) {
	s := geom.Segment{X: 1, Y: 2, RX: 3, RY: 4, StartT: 5, EndT: 6}
	w := Weights{1, 1, 1, 1, 0, 0}
	v := Encode(s, w)
	want := Vector{1, 2, 3, 4, 0, 0}
	if v != want {
		t.Fatalf("got %v, want %v", v, want)
	}
}

func TestUnweightRoundTrip(t *testing.T) {
	s := geom.Segment{X: 1, Y: 2, RX: 3, RY: 4, StartT: 5, EndT: 6}
	w := Weights{2, 2, 2, 2, 2, 2}
	v := Encode(s, w)
	u := Unweight(v, w)
	raw := Raw(s)
	if u != raw {
		t.Fatalf("got %v, want %v", u, raw)
	}
}

func TestValidateWeightsMismatch(t *testing.T) {
	_, err := ValidateWeights([]float64{1, 2, 3})
	if !errors.Is(err, errs.ErrWeightMismatch) {
		t.Fatalf("expected ErrWeightMismatch, got %v", err)
	}
}

func TestValidateWeightsOK(t *testing.T) {
	w, err := ValidateWeights([]float64{1, 1, 1, 1, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != (Weights{1, 1, 1, 1, 1, 1}) {
		t.Fatalf("got %v", w)
	}
}
