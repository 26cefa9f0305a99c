package localsearch

import (
	"math"
	"sort"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// swapStarNeighborhood tries exchanging two customers between routes whose
// polar sectors (as seen from the depot) intersect — pairs that can't
// possibly overlap are skipped without evaluating a single move. Unlike
// plain Swap, the two customers don't have to swap into each other's exact
// position: each is reinserted at its best position in the other route.
func (ls *LocalSearch) swapStarNeighborhood(solution *model.Solution, problem *model.Problem, capacityPenalty float64) bool {
	improvement := false
	ls.calculateRouteSectors(solution, problem)

outer:
	for r1Idx, r1 := range solution.Routes {
		if r1.IsEmpty() {
			continue
		}
		r1Info := ls.routeSectors[r1Idx]

		for r2Idx, r2 := range solution.Routes {
			if r1Idx == r2Idx || r2.IsEmpty() {
				continue
			}
			r2Info := ls.routeSectors[r2Idx]
			if !sectorsIntersect(r1Info, r2Info) {
				continue
			}

			for pos1, customer1 := range r1.Customers {
				if !ls.isMoveValid(customer1, moveSwapStar, r2Idx) {
					continue
				}
				topInR2 := findTopInsertionPositions(customer1, r2, problem)

				for pos2, customer2 := range r2.Customers {
					topInR1 := findTopInsertionPositions(customer2, r1, problem)

					delta, bestPos1, bestPos2 := ls.evaluateSwapStar(
						solution, problem, r1Idx, r2Idx, pos1, pos2, topInR1, topInR2, capacityPenalty)

					if delta < epsilon {
						ls.applySwapStar(solution, r1Idx, r2Idx, pos1, pos2, bestPos1, bestPos2)
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

func (ls *LocalSearch) calculateRouteSectors(solution *model.Solution, problem *model.Problem) {
	ls.routeSectors = make([]routeSector, len(solution.Routes))
	depot := problem.Nodes[problem.DepotIndex]

	for rIdx, route := range solution.Routes {
		if route.IsEmpty() {
			ls.routeSectors[rIdx] = routeSector{routeIndex: rIdx}
			continue
		}

		minAngle := 2 * math.Pi
		maxAngle := 0.0
		for _, c := range route.Customers {
			node := problem.Nodes[c]
			angle := math.Atan2(node.Y-depot.Y, node.X-depot.X)
			if angle < 0 {
				angle += 2 * math.Pi
			}
			minAngle = math.Min(minAngle, angle)
			maxAngle = math.Max(maxAngle, angle)
		}

		if maxAngle-minAngle > math.Pi {
			minAngle, maxAngle = maxAngle, minAngle+2*math.Pi
		}

		ls.routeSectors[rIdx] = routeSector{routeIndex: rIdx, polarMin: minAngle, polarMax: maxAngle}
	}
}

func sectorsIntersect(s1, s2 routeSector) bool {
	if s1.polarMin == s1.polarMax || s2.polarMin == s2.polarMax {
		return false
	}
	return !(s1.polarMax < s2.polarMin || s2.polarMax < s1.polarMin)
}

type insertionCandidate struct {
	pos  int
	cost float64
}

// findTopInsertionPositions returns the 3 cheapest positions (by resulting
// route distance) to insert customer into route.
func findTopInsertionPositions(customer int, route *model.Route, problem *model.Problem) []insertionCandidate {
	candidates := make([]insertionCandidate, 0, len(route.Customers)+1)
	for i := 0; i <= len(route.Customers); i++ {
		candidates = append(candidates, insertionCandidate{i, calculateInsertionCost(route, customer, i, problem)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].cost < candidates[j].cost })
	if len(candidates) > 3 {
		candidates = candidates[:3]
	}
	return candidates
}

func (ls *LocalSearch) evaluateSwapStar(
	solution *model.Solution, problem *model.Problem,
	r1Idx, r2Idx, pos1, pos2 int,
	topInR1, topInR2 []insertionCandidate,
	capacityPenalty float64,
) (float64, int, int) {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]
	customer1 := r1.Customers[pos1]
	customer2 := r2.Customers[pos2]
	demand1 := problem.Nodes[customer1].Demand
	demand2 := problem.Nodes[customer2].Demand

	positionsInR2 := candidatePositions(topInR2, pos2)
	positionsInR1 := candidatePositions(topInR1, pos1)

	r1NewLoad := r1.Load - demand1 + demand2
	r2NewLoad := r2.Load - demand2 + demand1
	r1PenaltyDelta := capacityPenalty * (excess(r1NewLoad, problem.VehicleCapacity) - excess(r1.Load, problem.VehicleCapacity))
	r2PenaltyDelta := capacityPenalty * (excess(r2NewLoad, problem.VehicleCapacity) - excess(r2.Load, problem.VehicleCapacity))

	bestDelta := posInf
	bestPos1, bestPos2 := 0, 0

	for _, insertPos2 := range positionsInR2 {
		for _, insertPos1 := range positionsInR1 {
			r1InsertPos := insertPos1
			if insertPos1 > pos1 {
				r1InsertPos--
			}
			r1Temp := createTempRoute(r1, pos1, customer2, r1InsertPos, problem)
			r1Delta := r1Temp.Distance - r1.Distance

			r2InsertPos := insertPos2
			if insertPos2 > pos2 {
				r2InsertPos--
			}
			r2Temp := createTempRoute(r2, pos2, customer1, r2InsertPos, problem)
			r2Delta := r2Temp.Distance - r2.Distance

			total := r1Delta + r2Delta + r1PenaltyDelta + r2PenaltyDelta
			if total < bestDelta {
				bestDelta = total
				bestPos1 = insertPos1
				bestPos2 = insertPos2
			}
		}
	}

	return bestDelta, bestPos1, bestPos2
}

// candidatePositions returns the insertion positions to try: the
// precomputed top-3 cheapest, plus the customer's original position if it
// wasn't already among them (mirroring the original's "also check the
// direct replacement" fallback).
func candidatePositions(top []insertionCandidate, originalPos int) []int {
	positions := make([]int, 0, len(top)+1)
	hasOriginal := false
	for _, c := range top {
		positions = append(positions, c.pos)
		if c.pos == originalPos {
			hasOriginal = true
		}
	}
	if !hasOriginal {
		positions = append(positions, originalPos)
	}
	return positions
}

func (ls *LocalSearch) applySwapStar(solution *model.Solution, r1Idx, r2Idx, pos1, pos2, insertPos1, insertPos2 int) {
	r1 := solution.Routes[r1Idx]
	r2 := solution.Routes[r2Idx]

	customer1 := r1.Customers[pos1]
	customer2 := r2.Customers[pos2]
	r1.Customers = append(r1.Customers[:pos1], r1.Customers[pos1+1:]...)
	r2.Customers = append(r2.Customers[:pos2], r2.Customers[pos2+1:]...)

	adjustedPos1 := insertPos1
	if insertPos1 > pos1 {
		adjustedPos1--
	}
	adjustedPos2 := insertPos2
	if insertPos2 > pos2 {
		adjustedPos2--
	}

	r1.Customers = append(r1.Customers, 0)
	copy(r1.Customers[adjustedPos1+1:], r1.Customers[adjustedPos1:])
	r1.Customers[adjustedPos1] = customer2

	r2.Customers = append(r2.Customers, 0)
	copy(r2.Customers[adjustedPos2+1:], r2.Customers[adjustedPos2:])
	r2.Customers[adjustedPos2] = customer1

	r1.Modified = true
	r2.Modified = true
}
