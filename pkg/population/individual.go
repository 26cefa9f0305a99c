// Package population manages the feasible/infeasible subpopulations: rank
// assignment, biased-fitness-driven tournament selection, clone-aware
// survivor selection, and the adaptive capacity penalty.
package population

import (
	"sort"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// Individual wraps a Solution with the ranking state the population needs
// to compute biased fitness: its rank among feasible (or infeasible) peers
// by cost, its rank by diversity contribution, and the resulting fitness.
type Individual struct {
	Solution        *model.Solution
	RankFeasibility int
	RankDiversity   int
	BiasedFitness   float64
	commonPairs     []int
}

// NewIndividual wraps solution in a fresh Individual with zeroed ranks.
func NewIndividual(solution *model.Solution) *Individual {
	return &Individual{Solution: solution}
}

// IsFeasible reports the wrapped solution's feasibility.
func (ind *Individual) IsFeasible() bool {
	return ind.Solution.IsFeasible
}

// Cost returns the wrapped solution's cost.
func (ind *Individual) Cost() float64 {
	return ind.Solution.Cost
}

// CalculateBiasedFitness sets BiasedFitness from the two ranks: cost rank
// plus (1-eliteProportion) times diversity rank. The same factor applies to
// every individual; a larger elite proportion shrinks the weight of the
// diversity rank relative to the cost rank.
func (ind *Individual) CalculateBiasedFitness(eliteProportion float64) {
	penalizingFactor := 1 - eliteProportion
	ind.BiasedFitness = float64(ind.RankFeasibility) + penalizingFactor*float64(ind.RankDiversity)
}

// CalculateCommonPairs counts how many consecutive-customer pairs (edges of
// the giant tour) ind shares with other — the raw similarity measure
// diversity ranking is built from.
func (ind *Individual) CalculateCommonPairs(other *Individual) int {
	tour := ind.Solution.GiantTour
	otherTour := other.Solution.GiantTour
	if len(tour) == 0 || len(otherTour) == 0 {
		return 0
	}

	otherPairs := make(map[[2]int]bool, len(otherTour)-1)
	for i := 0; i+1 < len(otherTour); i++ {
		otherPairs[[2]int{otherTour[i], otherTour[i+1]}] = true
	}

	common := 0
	for i := 0; i+1 < len(tour); i++ {
		if otherPairs[[2]int{tour[i], tour[i+1]}] {
			common++
		}
	}
	return common
}

// DiversityContribution averages the closestCount largest entries of
// commonPairs: a solution surrounded by near-identical neighbours (many
// shared edges) contributes little diversity and is ranked accordingly.
func (ind *Individual) DiversityContribution(closestCount int) float64 {
	if len(ind.commonPairs) == 0 || closestCount == 0 {
		return 0
	}
	sorted := append([]int(nil), ind.commonPairs...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	count := closestCount
	if count > len(sorted) {
		count = len(sorted)
	}
	sum := 0
	for _, v := range sorted[:count] {
		sum += v
	}
	return float64(sum) / float64(count)
}

// IsCloneOf reports whether ind and other have identical giant tours.
func (ind *Individual) IsCloneOf(other *Individual) bool {
	a, b := ind.Solution.GiantTour, other.Solution.GiantTour
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
