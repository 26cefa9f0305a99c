// Package genetic implements the crossover operator the orchestrator uses
// to build an offspring giant tour from two parent solutions.
package genetic

import "golang.org/x/exp/rand"

// OrderCrossover performs ordered crossover (OX) between two parent giant
// tours of equal length: a random segment of mom is copied verbatim into
// the offspring, and the remaining positions are filled by walking dad
// starting just past the segment, skipping any customer already placed.
// Returns a new slice; mom and dad are left untouched.
func OrderCrossover(mom, dad []int, rng *rand.Rand) []int {
	n := len(mom)
	if n == 0 || len(dad) == 0 {
		return nil
	}

	cut1 := rng.Intn(n)
	cut2 := rng.Intn(n)
	start, end := cut1, cut2
	if start > end {
		start, end = end, start
	}

	child := make([]int, n)
	used := make(map[int]bool, n)
	for i := start; i <= end; i++ {
		child[i] = mom[i]
		used[mom[i]] = true
	}

	j := (end + 1) % n
	dadIdx := (end + 1) % len(dad)
	for len(used) < n {
		candidate := dad[dadIdx]
		if !used[candidate] {
			child[j] = candidate
			used[candidate] = true
			j = (j + 1) % n
		}
		dadIdx = (dadIdx + 1) % len(dad)
	}

	return child
}
