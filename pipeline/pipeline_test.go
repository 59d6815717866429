package pipeline

import (
	"context"
	"testing"

	"geotrace/config"
	"geotrace/geom"
	"geotrace/trajectory"
)

func pt(x, y, t float64) geom.Point { return geom.Point{X: x, Y: y, T: t} }

// Scenario 1 (trivial): one trajectory with 3 collinear points under a
// threshold large enough to collapse to one segment; expect one segment,
// one trivial cluster, and no patterns (support 1 < minSup 2).
func TestPipelineScenario1Trivial(t *testing.T) {
	traj := trajectory.Trajectory{
		Origin: 0,
		Points: []geom.Point{pt(0, 0, 0), pt(1, 0, 1), pt(2, 0, 2)},
	}
	cfg := config.Default()
	cfg.DotsTh = 10
	cfg.UseTemporal = false
	cfg.Thresh = 1.0
	cfg.MemoryLim = 1 << 20
	cfg.ContinuityRadius = 0.5
	cfg.MinSup = 2
	cfg.MinLen = 1

	result, err := Run(context.Background(), cfg, []trajectory.Trajectory{traj})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tins) != 1 || len(result.Tins[0]) != 1 {
		t.Fatalf("expected exactly 1 segment, got %v", result.Tins)
	}
	if len(result.Catalog) != 1 {
		t.Fatalf("expected exactly 1 cluster, got %d", len(result.Catalog))
	}
	if len(result.TinC) != 1 || len(result.TinC[0]) != 1 {
		t.Fatalf("expected TinC = [[0]], got %v", result.TinC)
	}
	if len(result.Patterns) != 0 {
		t.Fatalf("expected no patterns (support 1 < minSup 2), got %v", result.Patterns)
	}
}

// Scenario 2 (two identical traces): two copies of a 5-point zig-zag,
// threshold chosen so each simplifies to 4 segments; spatial-only weights
// and a tight cluster threshold merge same-position segments pairwise
// across copies, producing exactly 4 clusters and one length-4 pattern.
func TestPipelineScenario2TwoIdenticalZigzags(t *testing.T) {
	zigzag := func(origin int) trajectory.Trajectory {
		return trajectory.Trajectory{
			Origin: origin,
			Points: []geom.Point{pt(0, 0, 0), pt(1, 1, 1), pt(2, 0, 2), pt(3, 1, 3), pt(4, 0, 4)},
		}
	}
	cfg := config.Default()
	cfg.DotsTh = 0.01
	cfg.UseTemporal = false
	cfg.Weights = [6]float64{1, 1, 1, 1, 0, 0}
	cfg.Thresh = 0.5
	cfg.MemoryLim = 1 << 20
	cfg.ContinuityRadius = 0.5
	cfg.MinSup = 2
	cfg.MinLen = 1

	result, err := Run(context.Background(), cfg, []trajectory.Trajectory{zigzag(0), zigzag(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, ids := range result.Tins {
		if len(ids) != 4 {
			t.Fatalf("expected 4 segments for variant %d, got %d", i, len(ids))
		}
	}
	if len(result.Catalog) != 4 {
		t.Fatalf("expected exactly 4 clusters, got %d", len(result.Catalog))
	}
	var longPatterns int
	for _, p := range result.Patterns {
		if len(p) == 4 {
			longPatterns++
		}
	}
	if longPatterns != 1 {
		t.Fatalf("expected exactly one length-4 pattern, got %v", result.Patterns)
	}
}

func TestPipelineRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	traj := trajectory.Trajectory{Origin: 0, Points: []geom.Point{pt(0, 0, 0), pt(1, 0, 1)}}
	_, err := Run(context.Background(), cfg, []trajectory.Trajectory{traj})
	if err == nil {
		t.Fatalf("expected an error from an unvalidated default config (zero thresholds)")
	}
}

func TestPipelineRespectsCancellation(t *testing.T) {
	cfg := config.Default()
	cfg.DotsTh = 1
	cfg.Thresh = 1
	cfg.MemoryLim = 1 << 20
	cfg.ContinuityRadius = 1
	cfg.MinSup = 1

	traj := trajectory.Trajectory{Origin: 0, Points: []geom.Point{pt(0, 0, 0), pt(1, 0, 1), pt(2, 0, 2)}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, cfg, []trajectory.Trajectory{traj})
	if err == nil {
		t.Fatalf("expected a cancellation error")
	}
}
