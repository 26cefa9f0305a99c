package localsearch

import (
	"golang.org/x/exp/rand"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// twoOptNeighborhood tries reversing a segment within a single route (the
// classic intra-route 2-opt move that un-crosses edges).
func (ls *LocalSearch) twoOptNeighborhood(solution *model.Solution, problem *model.Problem, capacityPenalty float64) bool {
	improvement := false
	routeIndices := shuffledIndices(len(solution.Routes), ls.Rng)

outer:
	for _, rIdx := range routeIndices {
		route := solution.Routes[rIdx]
		n := len(route.Customers)
		if n < 4 {
			continue
		}

		positionsI := shuffledIndices(n-1, ls.Rng)
		for _, i := range positionsI {
			positionsJ := shuffledRange(i+2, n, ls.Rng)
			for _, j := range positionsJ {
				if !ls.isMoveValid(route.Customers[i], moveTwoOpt, rIdx) {
					continue
				}

				delta := ls.evaluateTwoOpt(solution, problem, rIdx, i, j)
				if delta < epsilon {
					ls.applyTwoOpt(solution, rIdx, i, j)
					ls.updateRouteTimestamp(rIdx)
					solution.Evaluate(problem, capacityPenalty)
					improvement = true
					continue outer
				}
			}
		}
	}

	return improvement
}

// evaluateTwoOpt returns the cost delta of reversing route.Customers[i+1..j]
// (inclusive), replacing edges (i,i+1) and (j,j+1) with (i,j) and (i+1,j+1).
func (ls *LocalSearch) evaluateTwoOpt(solution *model.Solution, problem *model.Problem, rIdx, i, j int) float64 {
	route := solution.Routes[rIdx]
	customers := route.Customers

	iNode := customers[i]
	iNext := customers[i+1]
	jNode := customers[j]
	jNext := problem.DepotIndex
	if j+1 < len(customers) {
		jNext = customers[j+1]
	}

	oldCost := problem.GetDistance(iNode, iNext) + problem.GetDistance(jNode, jNext)
	newCost := problem.GetDistance(iNode, jNode) + problem.GetDistance(iNext, jNext)
	return newCost - oldCost
}

func (ls *LocalSearch) applyTwoOpt(solution *model.Solution, rIdx, i, j int) {
	route := solution.Routes[rIdx]
	segment := route.Customers[i+1 : j+1]
	for l, r := 0, len(segment)-1; l < r; l, r = l+1, r-1 {
		segment[l], segment[r] = segment[r], segment[l]
	}
	route.Modified = true
}

// shuffledRange returns a shuffled permutation of [lo, hi).
func shuffledRange(lo, hi int, rng *rand.Rand) []int {
	n := hi - lo
	if n <= 0 {
		return nil
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = lo + i
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}
