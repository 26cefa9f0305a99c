package model

import (
	"fmt"
	"math"
	"strings"
)

// Solution is a complete CVRP solution: a set of routes plus the aggregate
// metrics evaluate derives from them, and the giant-tour representation
// Split and the genetic crossover operate on.
type Solution struct {
	Routes         []*Route
	Cost           float64
	Distance       float64
	ExcessCapacity float64
	IsFeasible     bool
	GiantTour      []int
}

// NewSolution returns an empty solution.
func NewSolution() *Solution {
	return &Solution{IsFeasible: true}
}

// NewSolutionFromGiantTour returns a solution holding only a giant tour;
// Routes are populated separately by pkg/split.
func NewSolutionFromGiantTour(giantTour []int) *Solution {
	s := NewSolution()
	s.GiantTour = giantTour
	return s
}

// Evaluate recomputes every route's caches, then the solution's aggregate
// distance, excess capacity, feasibility (excess <= 1e-10) and cost
// (distance + penalty*excess). Cheap to call repeatedly: per-route caches
// short-circuit once Recalculate has cleared Modified.
func (s *Solution) Evaluate(p *Problem, capacityPenalty float64) {
	var totalDistance, totalExcess float64
	for _, r := range s.Routes {
		r.Recalculate(p)
		totalDistance += r.Distance
		totalExcess += r.ExcessLoad(p.VehicleCapacity)
	}
	s.Distance = totalDistance
	s.ExcessCapacity = totalExcess
	s.IsFeasible = totalExcess <= 1e-10
	s.Cost = totalDistance + capacityPenalty*totalExcess
}

// UpdateGiantTour rebuilds GiantTour by concatenating every route's
// Customers in route order. Needed after local search mutates Routes
// directly, since it doesn't keep GiantTour in sync as it goes.
func (s *Solution) UpdateGiantTour() {
	tour := make([]int, 0, len(s.GiantTour))
	for _, r := range s.Routes {
		tour = append(tour, r.Customers...)
	}
	s.GiantTour = tour
}

// FeasibleCost returns Distance if the solution is feasible, or +Inf
// otherwise — a cost suitable for comparing only among feasible solutions.
func (s *Solution) FeasibleCost() float64 {
	if s.IsFeasible {
		return s.Distance
	}
	return math.Inf(1)
}

// RouteCount returns the number of routes in the solution.
func (s *Solution) RouteCount() int {
	return len(s.Routes)
}

// Clone returns a deep copy of the solution.
func (s *Solution) Clone() *Solution {
	routes := make([]*Route, len(s.Routes))
	for i, r := range s.Routes {
		routes[i] = r.Clone()
	}
	tour := make([]int, len(s.GiantTour))
	copy(tour, s.GiantTour)
	return &Solution{
		Routes:         routes,
		Cost:           s.Cost,
		Distance:       s.Distance,
		ExcessCapacity: s.ExcessCapacity,
		IsFeasible:     s.IsFeasible,
		GiantTour:      tour,
	}
}

// String renders a short human-readable summary of the solution and its
// routes.
func (s *Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solution: cost=%.2f distance=%.2f excess=%.2f feasible=%t routes=%d\n",
		s.Cost, s.Distance, s.ExcessCapacity, s.IsFeasible, len(s.Routes))
	for i, r := range s.Routes {
		fmt.Fprintf(&b, "  route %d: %v (load=%.2f, distance=%.2f)\n", i, r.Customers, r.Load, r.Distance)
	}
	return b.String()
}
