package genetic

import (
	"sort"
	"testing"

	"golang.org/x/exp/rand"
)

func TestOrderCrossoverPreservesPermutation(t *testing.T) {
	mom := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	dad := []int{9, 8, 7, 6, 5, 4, 3, 2, 1}

	for seed := uint64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		child := OrderCrossover(mom, dad, rng)

		if len(child) != len(mom) {
			t.Fatalf("seed %d: len(child) = %d, want %d", seed, len(child), len(mom))
		}
		sorted := append([]int(nil), child...)
		sort.Ints(sorted)
		for i, v := range sorted {
			if v != i+1 {
				t.Fatalf("seed %d: child = %v is not a permutation of 1..9", seed, child)
			}
		}
	}
}

func TestOrderCrossoverDiffersFromParentsForSomeSeed(t *testing.T) {
	mom := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	dad := []int{9, 8, 7, 6, 5, 4, 3, 2, 1}

	differs := false
	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		child := OrderCrossover(mom, dad, rng)
		if !equalInts(child, mom) && !equalInts(child, dad) {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatal("expected at least one seed to produce an offspring distinct from both parents")
	}
}

func equalInts(a, b []int) bool {
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

func TestOrderCrossoverEmptyParent(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := OrderCrossover(nil, []int{1, 2}, rng); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}
