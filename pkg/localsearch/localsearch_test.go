package localsearch

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

func crossedProblem() *model.Problem {
	nodes := []model.Node{
		model.NewNode(0, 0, 0, 0, true),
		model.NewNode(1, 10, 0, 1, false),
		model.NewNode(2, 0, 10, 1, false),
		model.NewNode(3, 10, 10, 1, false),
		model.NewNode(4, 20, 0, 1, false),
	}
	return model.NewProblem("crossed", nodes, 0, 10, 0)
}

func TestTwoOptUncrosses(t *testing.T) {
	p := crossedProblem()
	r := model.NewRoute()
	r.Customers = []int{1, 3, 2, 4} // crossed order
	s := model.NewSolution()
	s.Routes = []*model.Route{r}
	s.Evaluate(p, 10)
	before := s.Cost

	ls := New(5, rand.New(rand.NewSource(1)))
	ls.initializeTracking(s)
	improved := ls.twoOptNeighborhood(s, p, 10)

	if !improved {
		t.Fatal("expected 2-opt to find an improving move")
	}
	if s.Cost >= before {
		t.Errorf("cost did not strictly decrease: before=%v after=%v", before, s.Cost)
	}
}

func TestEducateNeverIncreasesCost(t *testing.T) {
	p := crossedProblem()
	r := model.NewRoute()
	r.Customers = []int{1, 3, 2, 4}
	s := model.NewSolution()
	s.Routes = []*model.Route{r}
	s.Evaluate(p, 10)
	before := s.Cost

	ls := New(5, rand.New(rand.NewSource(42)))
	ls.Educate(s, p, 10)

	if s.Cost > before+1e-9 {
		t.Errorf("educate increased cost: before=%v after=%v", before, s.Cost)
	}
}

func TestEducatePreservesCustomerMultiset(t *testing.T) {
	p := crossedProblem()
	r1 := model.NewRoute()
	r1.Customers = []int{1, 2}
	r2 := model.NewRoute()
	r2.Customers = []int{3, 4}
	s := model.NewSolution()
	s.Routes = []*model.Route{r1, r2}
	s.Evaluate(p, 10)

	ls := New(5, rand.New(rand.NewSource(7)))
	ls.Educate(s, p, 10)

	seen := make(map[int]int)
	for _, r := range s.Routes {
		for _, c := range r.Customers {
			seen[c]++
		}
	}
	for _, c := range []int{1, 2, 3, 4} {
		if seen[c] != 1 {
			t.Errorf("customer %d appears %d times, want exactly 1", c, seen[c])
		}
	}
}

func TestMoveMemoizationSkipsRetest(t *testing.T) {
	ls := New(5, rand.New(rand.NewSource(1)))
	ls.routeTimestamps = []int{0, 0}

	if !ls.isMoveValid(1, moveSwap, 0) {
		t.Fatal("first test of a move should be valid")
	}
	if ls.isMoveValid(1, moveSwap, 0) {
		t.Fatal("retesting without a route modification should be invalid")
	}

	ls.updateRouteTimestamp(0)
	if !ls.isMoveValid(1, moveSwap, 0) {
		t.Fatal("after the route is modified, the move should be retestable")
	}
}
