package localsearch

import (
	"math"
	"sort"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// routeSector is a route's angular span around the depot, used by SWAP* to
// skip route pairs that can't possibly contain a profitable swap.
type routeSector struct {
	routeIndex int
	polarMin   float64
	polarMax   float64
}

// getNeighbors returns the `granularity` customers closest to customer (the
// depot and customer itself excluded), sorted by increasing distance.
func getNeighbors(customer int, problem *model.Problem, granularity int) []int {
	type pair struct {
		id   int
		dist float64
	}
	candidates := make([]pair, 0, len(problem.Nodes)-1)
	for i := range problem.Nodes {
		if i == customer || i == problem.DepotIndex {
			continue
		}
		candidates = append(candidates, pair{i, problem.GetDistance(customer, i)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })

	count := granularity
	if count > len(candidates) {
		count = len(candidates)
	}
	neighbors := make([]int, count)
	for i := 0; i < count; i++ {
		neighbors[i] = candidates[i].id
	}
	return neighbors
}

// findRouteForCustomer returns the index of the route containing customer,
// or -1 if none does.
func findRouteForCustomer(solution *model.Solution, customer int) int {
	for idx, r := range solution.Routes {
		for _, c := range r.Customers {
			if c == customer {
				return idx
			}
		}
	}
	return -1
}

// calculateInsertionCost returns route's new total distance if customer
// were inserted at position pos (0..=len(route.Customers)).
func calculateInsertionCost(route *model.Route, customer, pos int, problem *model.Problem) float64 {
	n := len(route.Customers)
	if n == 0 {
		return problem.GetDistance(problem.DepotIndex, customer) * 2.0
	}

	prevIdx := problem.DepotIndex
	if pos > 0 {
		prevIdx = route.Customers[pos-1]
	}
	nextIdx := problem.DepotIndex
	if pos < n {
		nextIdx = route.Customers[pos]
	}

	oldDistance := problem.GetDistance(prevIdx, nextIdx)
	newDistance := problem.GetDistance(prevIdx, customer) + problem.GetDistance(customer, nextIdx)
	return route.Distance - oldDistance + newDistance
}

// calculateRemovalCost returns the change in route distance from removing
// the customer at position pos.
func calculateRemovalCost(route *model.Route, pos int, problem *model.Problem) float64 {
	n := len(route.Customers)
	if n <= 1 {
		return -route.Distance
	}

	prevIdx := problem.DepotIndex
	if pos > 0 {
		prevIdx = route.Customers[pos-1]
	}
	currIdx := route.Customers[pos]
	nextIdx := problem.DepotIndex
	if pos < n-1 {
		nextIdx = route.Customers[pos+1]
	}

	oldDistance := problem.GetDistance(prevIdx, currIdx) + problem.GetDistance(currIdx, nextIdx)
	newDistance := problem.GetDistance(prevIdx, nextIdx)
	return newDistance - oldDistance
}

// createTempRoute returns a route with the customer at removePos removed
// and insertCustomer inserted at insertPos (an index into the resulting,
// already-shortened sequence), with Distance recomputed directly — used by
// SWAP* to price a tentative swap without mutating the real solution.
func createTempRoute(route *model.Route, removePos, insertCustomer, insertPos int, problem *model.Problem) *model.Route {
	temp := model.NewRoute()
	temp.Customers = make([]int, 0, len(route.Customers))
	for i, c := range route.Customers {
		if i != removePos {
			temp.Customers = append(temp.Customers, c)
		}
	}
	temp.Customers = append(temp.Customers, 0)
	copy(temp.Customers[insertPos+1:], temp.Customers[insertPos:])
	temp.Customers[insertPos] = insertCustomer

	temp.Modified = true
	temp.CalculateDistance(problem)
	return temp
}

func excess(load, capacity float64) float64 {
	return math.Max(0, load-capacity)
}
