// Package localsearch implements the "educate" phase of the hybrid genetic
// search: five neighbourhoods (Relocate, Swap, 2-Opt, 2-Opt*, SWAP*) applied
// under a granular candidate list, with move-level memoization so a move
// that was already tested isn't retested until the route it targets
// changes again (a change to the customer's own route does not reset it).
package localsearch

import (
	"log"
	"math"

	"golang.org/x/exp/rand"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

var posInf = math.Inf(1)

// move type tags used as the middle element of a moveKey; arbitrary but
// distinct per neighbourhood, matching the numbering the memoization table
// is keyed on.
const (
	moveRelocate = iota
	moveSwap
	moveTwoOpt
	moveTwoOptStar
	moveSwapStar
)

type moveKey struct {
	customer  int
	moveType  int
	routeIdx  int
}

// LocalSearch holds the state shared across a single educate() call:
// preprocessed neighbour lists (reused across calls since they depend only
// on the problem, not the current solution), move memoization, and SWAP*'s
// polar-sector cache.
type LocalSearch struct {
	Granularity int
	Rng         *rand.Rand

	routeTimestamps   []int
	moveTimestamps    map[moveKey]int
	moveCount         int
	routeSectors      []routeSector
	customerNeighbors map[int][]int
}

// New returns a LocalSearch with the given granularity (candidate-list size
// per customer) and RNG.
func New(granularity int, rng *rand.Rand) *LocalSearch {
	return &LocalSearch{
		Granularity:       granularity,
		Rng:               rng,
		moveTimestamps:    make(map[moveKey]int),
		customerNeighbors: make(map[int][]int),
	}
}

// Educate mutates solution toward a local optimum under cost = distance +
// capacityPenalty*excess. It terminates when one full sweep over all five
// neighbourhoods yields no improving move.
func (ls *LocalSearch) Educate(solution *model.Solution, problem *model.Problem, capacityPenalty float64) {
	ls.initializeTracking(solution)
	if len(ls.customerNeighbors) == 0 {
		ls.preprocessNeighbors(problem)
	}

	solution.Evaluate(problem, capacityPenalty)

	for improvement := true; improvement; {
		improvement = false
		improvement = ls.relocateNeighborhood(solution, problem, capacityPenalty) || improvement
		improvement = ls.swapNeighborhood(solution, problem, capacityPenalty) || improvement
		improvement = ls.twoOptNeighborhood(solution, problem, capacityPenalty) || improvement
		improvement = ls.twoOptStarNeighborhood(solution, problem, capacityPenalty) || improvement
		improvement = ls.swapStarNeighborhood(solution, problem, capacityPenalty) || improvement
	}
}

// Repair runs Educate under a steeply inflated capacity penalty, to drive an
// infeasible solution back toward feasibility before it re-enters the
// population under its normal penalty.
func (ls *LocalSearch) Repair(solution *model.Solution, problem *model.Problem) {
	highPenalty := 1000.0
	if solution.ExcessCapacity > 0 {
		highPenalty = 10.0 * solution.Cost / solution.ExcessCapacity
	}
	ls.Educate(solution, problem, highPenalty)
}

func (ls *LocalSearch) preprocessNeighbors(problem *model.Problem) {
	for i := range problem.Nodes {
		if i == problem.DepotIndex {
			continue
		}
		ls.customerNeighbors[i] = getNeighbors(i, problem, ls.Granularity)
	}
}

func (ls *LocalSearch) initializeTracking(solution *model.Solution) {
	ls.routeTimestamps = make([]int, len(solution.Routes))
	ls.moveCount = 0
	ls.moveTimestamps = make(map[moveKey]int)
	ls.routeSectors = nil
}

// updateRouteTimestamp records that routeIdx changed just now, invalidating
// any previously memoized move that touches it.
func (ls *LocalSearch) updateRouteTimestamp(routeIdx int) {
	ls.moveCount++
	ls.routeTimestamps[routeIdx] = ls.moveCount
}

// isMoveValid reports whether (customer, moveType, routeIdx) is worth
// (re)testing: false if it was already tested since routeIdx's last
// modification. As a side effect, it stamps the move as tested-now.
func (ls *LocalSearch) isMoveValid(customer, moveType, routeIdx int) bool {
	if routeIdx < 0 || routeIdx >= len(ls.routeTimestamps) {
		log.Panicf("localsearch: route index %d out of range (routes=%d)", routeIdx, len(ls.routeTimestamps))
	}
	key := moveKey{customer, moveType, routeIdx}
	routeTS := ls.routeTimestamps[routeIdx]
	if moveTS, ok := ls.moveTimestamps[key]; ok && moveTS > routeTS {
		return false
	}
	ls.moveCount++
	ls.moveTimestamps[key] = ls.moveCount
	return true
}

func (ls *LocalSearch) neighborsOf(customer int, problem *model.Problem) []int {
	n, ok := ls.customerNeighbors[customer]
	if !ok {
		n = getNeighbors(customer, problem, ls.Granularity)
		ls.customerNeighbors[customer] = n
	}
	return n
}

func shuffledIndices(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx
}

const epsilon = -1e-6
