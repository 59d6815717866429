package ingest

import (
	"errors"
	"strings"
	"testing"

	"geotrace/errs"
)

func TestParseSingleTrajectory(t *testing.T) {
	in := "40.0 -75.0 2024-01-01 08:00:00\n" +
		"40.001 -75.001 2024-01-01 08:01:00\n" +
		"40.002 -75.002 2024-01-01 08:02:00\n"
	trajs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trajs) != 1 {
		t.Fatalf("expected 1 trajectory, got %d", len(trajs))
	}
	if len(trajs[0].Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(trajs[0].Points))
	}
	if trajs[0].Origin != 0 {
		t.Fatalf("expected origin 0, got %d", trajs[0].Origin)
	}
}

func TestParseMultipleTrajectoriesBlankSeparated(t *testing.T) {
	in := "40.0 -75.0 2024-01-01 08:00:00\n" +
		"40.001 -75.001 2024-01-01 08:01:00\n" +
		"\n" +
		"41.0 -76.0 2024-02-01 09:00:00\n" +
		"41.001 -76.001 2024-02-01 09:01:00\n"
	trajs, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trajs) != 2 {
		t.Fatalf("expected 2 trajectories, got %d", len(trajs))
	}
	if trajs[0].Origin != 0 || trajs[1].Origin != 1 {
		t.Fatalf("expected origins 0,1, got %d,%d", trajs[0].Origin, trajs[1].Origin)
	}
}

func TestParseRejectsMalformedLine(t *testing.T) {
	in := "not-a-number -75.0 2024-01-01 08:00:00\n" +
		"40.001 -75.001 2024-01-01 08:01:00\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseRejectsTooFewFields(t *testing.T) {
	in := "40.0 -75.0 2024-01-01\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestParseRejectsSinglePointTrajectory(t *testing.T) {
	in := "40.0 -75.0 2024-01-01 08:00:00\n"
	_, err := Parse(strings.NewReader(in))
	if !errors.Is(err, errs.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput for a single-point trajectory, got %v", err)
	}
}
