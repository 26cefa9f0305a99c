package split

import (
	"math"
	"testing"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

func colinearProblem(capacity float64, n int) *model.Problem {
	nodes := []model.Node{model.NewNode(0, 0, 0, 0, true)}
	for i := 1; i <= n; i++ {
		nodes = append(nodes, model.NewNode(i, float64(i)*10, 0, 1, false))
	}
	return model.NewProblem("colinear", nodes, 0, capacity, 0)
}

func TestSplitEmptyTour(t *testing.T) {
	p := colinearProblem(5, 0)
	s := model.NewSolutionFromGiantTour(nil)

	Split(s, p, 10)

	if len(s.Routes) != 0 {
		t.Fatalf("Routes = %v, want empty", s.Routes)
	}
}

func TestSplitSingleCustomer(t *testing.T) {
	p := colinearProblem(5, 1)
	s := model.NewSolutionFromGiantTour([]int{1})

	Split(s, p, 10)

	if len(s.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(s.Routes))
	}
	r := s.Routes[0]
	if len(r.Customers) != 1 || r.Customers[0] != 1 {
		t.Fatalf("route customers = %v, want [1]", r.Customers)
	}
	if math.Abs(r.Distance-20.0) > 1e-6 {
		t.Errorf("Distance = %v, want 20.0", r.Distance)
	}
	if math.Abs(r.Load-1.0) > 1e-9 {
		t.Errorf("Load = %v, want 1.0", r.Load)
	}
	if !s.IsFeasible {
		t.Error("expected feasible solution")
	}
}

func TestSplitForcedPartition(t *testing.T) {
	p := colinearProblem(3, 6)
	s := model.NewSolutionFromGiantTour([]int{1, 2, 3, 4, 5, 6})

	Split(s, p, 10)

	if len(s.Routes) != 2 {
		t.Fatalf("got %d routes, want 2: %v", len(s.Routes), s.Routes)
	}
	want := [][]int{{1, 2, 3}, {4, 5, 6}}
	for i, r := range s.Routes {
		if len(r.Customers) != len(want[i]) {
			t.Fatalf("route %d = %v, want %v", i, r.Customers, want[i])
		}
		for k := range want[i] {
			if r.Customers[k] != want[i][k] {
				t.Fatalf("route %d = %v, want %v", i, r.Customers, want[i])
			}
		}
		if math.Abs(r.Load-3.0) > 1e-9 {
			t.Errorf("route %d load = %v, want 3.0", i, r.Load)
		}
	}
	if !s.IsFeasible {
		t.Error("expected feasible solution")
	}
}

func TestSplitOverCapacityCustomerStillPlaced(t *testing.T) {
	p := colinearProblem(1, 1)
	nodes := p.Nodes
	nodes[1] = model.NewNode(1, 10, 0, 5, false) // demand 5 > capacity 1
	p = model.NewProblem("overcap", nodes, 0, 1, 0)
	s := model.NewSolutionFromGiantTour([]int{1})

	Split(s, p, 10)

	if len(s.Routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(s.Routes))
	}
	if s.IsFeasible {
		t.Error("expected infeasible solution (excess load)")
	}
	if s.ExcessCapacity <= 0 {
		t.Errorf("ExcessCapacity = %v, want > 0", s.ExcessCapacity)
	}
}

func TestSplitPreservesMultiset(t *testing.T) {
	p := colinearProblem(3, 6)
	tour := []int{3, 1, 4, 2, 6, 5}
	s := model.NewSolutionFromGiantTour(append([]int(nil), tour...))

	Split(s, p, 10)

	seen := make(map[int]int)
	for _, r := range s.Routes {
		for _, c := range r.Customers {
			seen[c]++
		}
	}
	for _, c := range tour {
		if seen[c] != 1 {
			t.Errorf("customer %d appears %d times, want exactly 1", c, seen[c])
		}
	}
}

// bruteForceSplit exhaustively tries every contiguous partition of the tour
// and returns the minimum feasible total distance, for cross-checking Split
// against small instances (invariant: Split is optimal).
func bruteForceSplit(tour []int, p *model.Problem) float64 {
	n := len(tour)
	best := make([]float64, n+1)
	for i := range best {
		best[i] = math.Inf(1)
	}
	best[0] = 0
	for j := 1; j <= n; j++ {
		for i := 0; i < j; i++ {
			if math.IsInf(best[i], 1) {
				continue
			}
			load := 0.0
			for k := i; k < j; k++ {
				load += p.Nodes[tour[k]].Demand
			}
			if load > p.VehicleCapacity {
				continue
			}
			dist := p.GetDistance(p.DepotIndex, tour[i])
			for k := i; k < j-1; k++ {
				dist += p.GetDistance(tour[k], tour[k+1])
			}
			dist += p.GetDistance(tour[j-1], p.DepotIndex)
			if best[i]+dist < best[j] {
				best[j] = best[i] + dist
			}
		}
	}
	return best[n]
}

func TestSplitIsOptimalAgainstBruteForce(t *testing.T) {
	p := colinearProblem(3, 6)
	tour := []int{1, 2, 3, 4, 5, 6}
	s := model.NewSolutionFromGiantTour(append([]int(nil), tour...))

	Split(s, p, 10)

	want := bruteForceSplit(tour, p)
	if math.Abs(s.Distance-want) > 1e-6 {
		t.Errorf("Split distance = %v, want brute-force optimum %v", s.Distance, want)
	}
}
