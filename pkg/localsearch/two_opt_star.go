package localsearch

import "github.com/jpjj/cvrp-hgs/pkg/model"

// twoOptStarNeighborhood tries exchanging the tails of two routes at a pair
// of cut points, one of which is a granular neighbour of the other.
func (ls *LocalSearch) twoOptStarNeighborhood(solution *model.Solution, problem *model.Problem, capacityPenalty float64) bool {
	improvement := false
	routeIndices := shuffledIndices(len(solution.Routes), ls.Rng)

outer:
	for r1Pos := 0; r1Pos < len(routeIndices); r1Pos++ {
		r1Idx := routeIndices[r1Pos]
		r1 := solution.Routes[r1Idx]
		if r1.IsEmpty() {
			continue
		}

		for r2Pos := r1Pos + 1; r2Pos < len(routeIndices); r2Pos++ {
			r2Idx := routeIndices[r2Pos]
			r2 := solution.Routes[r2Idx]
			if r2.IsEmpty() {
				continue
			}

			for i := 0; i < len(r1.Customers); i++ {
				customer1 := r1.Customers[i]

				for _, neighbor := range ls.neighborsOf(customer1, problem) {
					j := indexOf(r2.Customers, neighbor)
					if j < 0 {
						continue
					}
					if !ls.isMoveValid(customer1, moveTwoOptStar, r2Idx) {
						continue
					}

					delta := ls.evaluateTwoOptStar(solution, problem, r1Idx, r2Idx, i, j, capacityPenalty)
					if delta < epsilon {
						ls.applyTwoOptStar(solution, r1Idx, r2Idx, i, j)
						ls.updateRouteTimestamp(r1Idx)
						ls.updateRouteTimestamp(r2Idx)
						solution.Evaluate(problem, capacityPenalty)
						improvement = true
						continue outer
					}
				}
			}
		}
	}

	return improvement
}

func (ls *LocalSearch) evaluateTwoOptStar(solution *model.Solution, problem *model.Problem, r1Idx, r2Idx, i, j int, capacityPenalty float64) float64 {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]

	customer1 := r1.Customers[i]
	customer2 := r2.Customers[j]

	r1TailLoad := tailDemand(r1.Customers, i+1, problem)
	r2TailLoad := tailDemand(r2.Customers, j+1, problem)

	r1NewLoad := r1.Load - r1TailLoad + r2TailLoad
	r2NewLoad := r2.Load - r2TailLoad + r1TailLoad

	next1 := problem.DepotIndex
	if i+1 < len(r1.Customers) {
		next1 = r1.Customers[i+1]
	}
	next2 := problem.DepotIndex
	if j+1 < len(r2.Customers) {
		next2 = r2.Customers[j+1]
	}

	oldDist := problem.GetDistance(customer1, next1) + problem.GetDistance(customer2, next2)
	newDist := problem.GetDistance(customer1, next2) + problem.GetDistance(customer2, next1)
	distanceDelta := newDist - oldDist

	r1PenaltyDelta := capacityPenalty * (excess(r1NewLoad, problem.VehicleCapacity) - excess(r1.Load, problem.VehicleCapacity))
	r2PenaltyDelta := capacityPenalty * (excess(r2NewLoad, problem.VehicleCapacity) - excess(r2.Load, problem.VehicleCapacity))

	return distanceDelta + r1PenaltyDelta + r2PenaltyDelta
}

func tailDemand(customers []int, from int, problem *model.Problem) float64 {
	var total float64
	for _, c := range customers[from:] {
		total += problem.Nodes[c].Demand
	}
	return total
}

func (ls *LocalSearch) applyTwoOptStar(solution *model.Solution, r1Idx, r2Idx, i, j int) {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]

	r1Tail := append([]int(nil), r1.Customers[i+1:]...)
	r2Tail := append([]int(nil), r2.Customers[j+1:]...)

	r1.Customers = append(r1.Customers[:i+1], r2Tail...)
	r2.Customers = append(r2.Customers[:j+1], r1Tail...)

	r1.Modified = true
	r2.Modified = true
}
