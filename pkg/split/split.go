// Package split implements the Split algorithm: an order-preserving,
// capacity-respecting partition of a giant tour into routes, computed as a
// shortest path on an auxiliary DAG (Prins 2004 / Vidal 2016).
package split

import (
	"math"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// Split populates solution.Routes from solution.GiantTour: the minimum-
// distance partition into capacity-respecting routes that preserves tour
// order, then evaluates the full solution under capacityPenalty.
//
// A single customer whose own demand exceeds vehicle capacity is still
// placed in a route of its own; that route's excess load surfaces during
// evaluation rather than aborting the split.
func Split(solution *model.Solution, problem *model.Problem, capacityPenalty float64) {
	tour := solution.GiantTour
	n := len(tour)

	if n == 0 {
		solution.Routes = nil
		solution.Evaluate(problem, capacityPenalty)
		return
	}

	potential := make([]float64, n+1)
	pred := make([]int, n+1)
	for i := 1; i <= n; i++ {
		potential[i] = math.Inf(1)
	}

	depot := problem.DepotIndex

	for i := 0; i < n; i++ {
		if math.IsInf(potential[i], 1) {
			continue
		}
		load := 0.0
		distance := problem.GetDistance(depot, tour[i])
		for j := i; j < n; j++ {
			load += problem.Nodes[tour[j]].Demand
			if j > i {
				distance += problem.GetDistance(tour[j-1], tour[j])
			}
			if load > problem.VehicleCapacity && j > i {
				// A lone customer over capacity is still placed (see doc
				// comment); only break once the route already has at
				// least one customer and adding another would exceed it.
				break
			}
			routeDistance := distance + problem.GetDistance(tour[j], depot)
			candidate := potential[i] + routeDistance
			if candidate < potential[j+1] {
				potential[j+1] = candidate
				pred[j+1] = i
			}
			if load > problem.VehicleCapacity {
				break
			}
		}
	}

	routes := make([]*model.Route, 0)
	for j := n; j > 0; {
		i := pred[j]
		r := model.NewRoute()
		r.Customers = append(r.Customers, tour[i:j]...)
		routes = append(routes, r)
		j = i
	}
	for l, r := 0, len(routes)-1; l < r; l, r = l+1, r-1 {
		routes[l], routes[r] = routes[r], routes[l]
	}

	solution.Routes = routes
	solution.Evaluate(problem, capacityPenalty)
}
