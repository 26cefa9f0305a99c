package localsearch

import "github.com/jpjj/cvrp-hgs/pkg/model"

// relocateNeighborhood tries moving a single customer out of its route and
// into the best position of a neighbouring route. Accepts the first
// improving move found for the current route (first-improvement, not
// best-improvement), then breaks out to the next route in the shuffled
// order; it does not return after the first accepted move, so one call can
// apply several moves. Educate repeats the whole sweep while any
// neighbourhood reports an improvement.
func (ls *LocalSearch) relocateNeighborhood(solution *model.Solution, problem *model.Problem, capacityPenalty float64) bool {
	improvement := false
	routeIndices := shuffledIndices(len(solution.Routes), ls.Rng)

outer:
	for _, r1Idx := range routeIndices {
		r1 := solution.Routes[r1Idx]
		if r1.IsEmpty() {
			continue
		}

		customerPositions := shuffledIndices(len(r1.Customers), ls.Rng)
		for _, cPos := range customerPositions {
			customer := r1.Customers[cPos]

			for _, neighbor := range ls.neighborsOf(customer, problem) {
				r2Idx := findRouteForCustomer(solution, neighbor)
				if r2Idx < 0 || r2Idx == r1Idx {
					continue
				}
				if !ls.isMoveValid(customer, moveRelocate, r2Idx) {
					continue
				}

				delta, insertPos := ls.evaluateRelocate(solution, problem, r1Idx, r2Idx, cPos, capacityPenalty)
				if delta < epsilon {
					ls.applyRelocate(solution, r1Idx, r2Idx, cPos, insertPos)
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

// evaluateRelocate returns the total cost delta of moving r1.Customers[cPos]
// into its best position within r2, and that position.
func (ls *LocalSearch) evaluateRelocate(solution *model.Solution, problem *model.Problem, r1Idx, r2Idx, cPos int, capacityPenalty float64) (float64, int) {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]
	customer := r1.Customers[cPos]
	demand := problem.Nodes[customer].Demand

	var r1Delta, r1PenaltyDelta float64
	if len(r1.Customers) == 1 {
		r1Delta = -r1.Distance
	} else {
		r1Delta = calculateRemovalCost(r1, cPos, problem)
		r1NewLoad := r1.Load - demand
		r1PenaltyDelta = capacityPenalty * (excess(r1NewLoad, problem.VehicleCapacity) - excess(r1.Load, problem.VehicleCapacity))
	}

	bestDelta := posInf
	bestPos := 0
	for i := 0; i <= len(r2.Customers); i++ {
		r2Delta := calculateInsertionCost(r2, customer, i, problem) - r2.Distance
		r2NewLoad := r2.Load + demand
		r2PenaltyDelta := capacityPenalty * (excess(r2NewLoad, problem.VehicleCapacity) - excess(r2.Load, problem.VehicleCapacity))

		total := r1Delta + r1PenaltyDelta + r2Delta + r2PenaltyDelta
		if total < bestDelta {
			bestDelta = total
			bestPos = i
		}
	}
	return bestDelta, bestPos
}

func (ls *LocalSearch) applyRelocate(solution *model.Solution, r1Idx, r2Idx, cPos, insertPos int) {
	r1 := solution.Routes[r1Idx]
	customer := r1.Customers[cPos]
	r1.Customers = append(r1.Customers[:cPos], r1.Customers[cPos+1:]...)

	r2 := solution.Routes[r2Idx]
	r2.Customers = append(r2.Customers, 0)
	copy(r2.Customers[insertPos+1:], r2.Customers[insertPos:])
	r2.Customers[insertPos] = customer

	r1.Modified = true
	r2.Modified = true
}
