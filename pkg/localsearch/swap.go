package localsearch

import "github.com/jpjj/cvrp-hgs/pkg/model"

// swapNeighborhood tries exchanging a customer in one route with a
// neighbouring customer in another route.
func (ls *LocalSearch) swapNeighborhood(solution *model.Solution, problem *model.Problem, capacityPenalty float64) bool {
	improvement := false
	routeIndices := shuffledIndices(len(solution.Routes), ls.Rng)

outer:
	for _, r1Idx := range routeIndices {
		r1 := solution.Routes[r1Idx]
		if r1.IsEmpty() {
			continue
		}

		customerPositions := shuffledIndices(len(r1.Customers), ls.Rng)
		for _, c1Pos := range customerPositions {
			customer1 := r1.Customers[c1Pos]

			for _, neighbor := range ls.neighborsOf(customer1, problem) {
				r2Idx := findRouteForCustomer(solution, neighbor)
				if r2Idx < 0 || r2Idx == r1Idx {
					continue
				}
				r2 := solution.Routes[r2Idx]
				c2Pos := indexOf(r2.Customers, neighbor)
				if c2Pos < 0 {
					continue
				}
				if !ls.isMoveValid(customer1, moveSwap, r2Idx) {
					continue
				}

				delta := ls.evaluateSwap(solution, problem, r1Idx, r2Idx, c1Pos, c2Pos, capacityPenalty)
				if delta < epsilon {
					ls.applySwap(solution, r1Idx, r2Idx, c1Pos, c2Pos)
					ls.updateRouteTimestamp(r1Idx)
					ls.updateRouteTimestamp(r2Idx)
					solution.Evaluate(problem, capacityPenalty)
					improvement = true
					continue outer
				}
			}
		}
	}

	return improvement
}

func indexOf(xs []int, v int) int {
	for i, x := range xs {
		if x == v {
			return i
		}
	}
	return -1
}

func (ls *LocalSearch) evaluateSwap(solution *model.Solution, problem *model.Problem, r1Idx, r2Idx, c1Pos, c2Pos int, capacityPenalty float64) float64 {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]
	customer1 := r1.Customers[c1Pos]
	customer2 := r2.Customers[c2Pos]

	r1Delta := swapCostForRoute(r1, c1Pos, customer2, problem)
	r2Delta := swapCostForRoute(r2, c2Pos, customer1, problem)

	demand1 := problem.Nodes[customer1].Demand
	demand2 := problem.Nodes[customer2].Demand

	r1NewLoad := r1.Load - demand1 + demand2
	r2NewLoad := r2.Load - demand2 + demand1

	r1PenaltyDelta := capacityPenalty * (excess(r1NewLoad, problem.VehicleCapacity) - excess(r1.Load, problem.VehicleCapacity))
	r2PenaltyDelta := capacityPenalty * (excess(r2NewLoad, problem.VehicleCapacity) - excess(r2.Load, problem.VehicleCapacity))

	return r1Delta + r2Delta + r1PenaltyDelta + r2PenaltyDelta
}

// swapCostForRoute returns the distance delta of replacing the customer at
// pos with newCustomer, in place.
func swapCostForRoute(route *model.Route, pos, newCustomer int, problem *model.Problem) float64 {
	n := len(route.Customers)
	if n == 0 {
		return 0
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
	newDistance := problem.GetDistance(prevIdx, newCustomer) + problem.GetDistance(newCustomer, nextIdx)
	return newDistance - oldDistance
}

func (ls *LocalSearch) applySwap(solution *model.Solution, r1Idx, r2Idx, c1Pos, c2Pos int) {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]
	r1.Customers[c1Pos], r2.Customers[c2Pos] = r2.Customers[c2Pos], r1.Customers[c1Pos]
	r1.Modified = true
	r2.Modified = true
}
