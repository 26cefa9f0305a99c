package orchestrator

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/jpjj/cvrp-hgs/pkg/config"
	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// gridProblem builds a small CVRP instance with a depot and customers
// scattered on a grid, loose enough capacity that plenty of feasible
// solutions exist.
func gridProblem(n int) *model.Problem {
	nodes := []model.Node{model.NewNode(0, 0, 0, 0, true)}
	for i := 1; i <= n; i++ {
		x := float64((i % 5) * 10)
		y := float64((i / 5) * 10)
		nodes = append(nodes, model.NewNode(i, x, y, 1, false))
	}
	return model.NewProblem("grid", nodes, 0, 4, 0)
}

func smallConfig() *config.Config {
	c := config.Default()
	c.MinPopSize = 6
	c.GenerationSize = 8
	c.NClosest = 2
	c.NElite = 1
	c.Granularity = 5
	c.MaxIterationsWithoutImprovement = 40
	return c
}

func TestRunReturnsFeasibleBest(t *testing.T) {
	problem := gridProblem(12)
	orch := New(problem, smallConfig(), 42)

	result := orch.Run(context.Background())

	if result.Best == nil {
		t.Fatal("expected a feasible best solution, got nil")
	}
	if !result.Best.IsFeasible {
		t.Error("best solution should be feasible")
	}
	if result.Stats.Generations == 0 {
		t.Error("expected at least one generation to run")
	}

	seen := make(map[int]bool, problem.CustomerCount())
	for _, r := range result.Best.Routes {
		for _, c := range r.Customers {
			if seen[c] {
				t.Fatalf("customer %d appears in more than one route", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != problem.CustomerCount() {
		t.Errorf("best solution covers %d customers, want %d", len(seen), problem.CustomerCount())
	}
	if result.Stats.BestSolutionDistance != result.Best.Distance {
		t.Errorf("Stats.BestSolutionDistance = %v, want %v", result.Stats.BestSolutionDistance, result.Best.Distance)
	}
	if result.Stats.AveragePopulationSize == 0 {
		t.Error("expected a non-zero average population size")
	}
	if !strings.Contains(result.Stats.String(), "Search Statistics:") {
		t.Errorf("Stats.String() missing expected header, got:\n%s", result.Stats.String())
	}
}

func TestBestCostHistoryIsMonotonicNonIncreasing(t *testing.T) {
	problem := gridProblem(10)
	orch := New(problem, smallConfig(), 7)

	result := orch.Run(context.Background())

	prev := math.Inf(1)
	for i, cost := range result.Stats.BestCostHistory {
		if cost < 0 {
			continue // no feasible individual yet at this generation
		}
		if cost > prev+1e-9 {
			t.Fatalf("best cost increased at generation %d: %v -> %v", i, prev, cost)
		}
		prev = cost
	}
}

func TestRunStopsOnIterationsWithoutImprovement(t *testing.T) {
	problem := gridProblem(8)
	cfg := smallConfig()
	cfg.MaxIterationsWithoutImprovement = 5
	orch := New(problem, cfg, 1)

	result := orch.Run(context.Background())

	if result.Stats.StopReason != "iterations_without_improvement" && result.Stats.StopReason != "time_limit" {
		t.Errorf("unexpected stop reason: %s", result.Stats.StopReason)
	}
}

func TestRunHonorsContextCancellation(t *testing.T) {
	problem := gridProblem(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	orch := New(problem, smallConfig(), 3)
	result := orch.Run(ctx)

	if result.Stats.StopReason != "cancelled" {
		t.Errorf("StopReason = %s, want cancelled", result.Stats.StopReason)
	}
}
