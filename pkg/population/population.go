package population

import (
	"sort"

	"golang.org/x/exp/rand"

	"github.com/jpjj/cvrp-hgs/pkg/model"
)

// Population holds the feasible and infeasible subpopulations and the
// parameters governing ranking, survivor selection and the adaptive
// capacity penalty.
type Population struct {
	Feasible   []*Individual
	Infeasible []*Individual

	CapacityPenalty     float64
	MinPopSize          int
	MaxPopSize          int
	NClosest            int
	TargetFeasibleRatio float64
	NElite              int

	Rng *rand.Rand
}

// Config bundles the population-sizing and penalty parameters New needs,
// mirroring the fields pkg/config.Config exposes.
type Config struct {
	MinPopSize             int
	GenerationSize         int
	InitialCapacityPenalty float64
	NClosest               int
	TargetFeasibleRatio    float64
	NElite                 int
}

// New returns an empty population sized per cfg.
func New(cfg Config, rng *rand.Rand) *Population {
	capacity := cfg.MinPopSize + cfg.GenerationSize
	return &Population{
		Feasible:            make([]*Individual, 0, capacity),
		Infeasible:          make([]*Individual, 0, capacity),
		CapacityPenalty:     cfg.InitialCapacityPenalty,
		MinPopSize:          cfg.MinPopSize,
		MaxPopSize:          capacity,
		NClosest:            cfg.NClosest,
		TargetFeasibleRatio: cfg.TargetFeasibleRatio,
		NElite:              cfg.NElite,
		Rng:                 rng,
	}
}

// Size returns the total number of individuals across both subpopulations.
func (p *Population) Size() int {
	return len(p.Feasible) + len(p.Infeasible)
}

// Insert files ind into the feasible or infeasible subpopulation per its
// solution's feasibility.
func (p *Population) Insert(ind *Individual) {
	if ind.IsFeasible() {
		p.Feasible = append(p.Feasible, ind)
	} else {
		p.Infeasible = append(p.Infeasible, ind)
	}
}

// UpdateRanks recomputes cost rank, diversity rank and biased fitness for
// every individual in both subpopulations. Insert and SelectSurvivors do
// not call it; the orchestrator calls it once, after seeding the initial
// population.
func (p *Population) UpdateRanks() {
	p.updateFeasibilityRanks()
	p.updateDiversityMeasures()
	p.updateBiasedFitness()
}

func (p *Population) updateFeasibilityRanks() {
	rankByCost(p.Feasible)
	rankByCost(p.Infeasible)
}

func rankByCost(individuals []*Individual) {
	sort.Slice(individuals, func(i, j int) bool { return individuals[i].Cost() < individuals[j].Cost() })
	for i, ind := range individuals {
		ind.RankFeasibility = i
	}
}

func (p *Population) updateDiversityMeasures() {
	p.calculateCommonPairs(p.Feasible)
	p.calculateCommonPairs(p.Infeasible)
	p.assignDiversityRanks(p.Feasible)
	p.assignDiversityRanks(p.Infeasible)
}

func (p *Population) calculateCommonPairs(individuals []*Individual) {
	n := len(individuals)
	for i := range individuals {
		individuals[i].commonPairs = make([]int, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			individuals[i].commonPairs[j] = individuals[i].CalculateCommonPairs(individuals[j])
		}
	}
}

func (p *Population) assignDiversityRanks(individuals []*Individual) {
	if len(individuals) == 0 {
		return
	}
	order := make([]int, len(individuals))
	for i := range order {
		order[i] = i
	}
	contribution := make([]float64, len(individuals))
	for i, ind := range individuals {
		contribution[i] = ind.DiversityContribution(p.NClosest)
	}
	sort.Slice(order, func(a, b int) bool { return contribution[order[a]] < contribution[order[b]] })
	for rank, idx := range order {
		individuals[idx].RankDiversity = rank
	}
}

func (p *Population) updateBiasedFitness() {
	eliteProportion := float64(p.NElite) / float64(p.Size())
	for _, ind := range p.Feasible {
		ind.CalculateBiasedFitness(eliteProportion)
	}
	for _, ind := range p.Infeasible {
		ind.CalculateBiasedFitness(eliteProportion)
	}
}

// SelectParents returns two distinct individuals chosen by repeated binary
// tournament selection.
func (p *Population) SelectParents() (*Individual, *Individual) {
	parent1 := p.binaryTournament()
	parent2 := p.binaryTournament()
	for parent2 == parent1 {
		parent2 = p.binaryTournament()
	}
	return parent1, parent2
}

// binaryTournament picks a subpopulation (feasible or infeasible, whichever
// exist, otherwise a coin flip) and returns whichever of two random members
// has the lower (better) biased fitness.
func (p *Population) binaryTournament() *Individual {
	var useFeasible bool
	switch {
	case len(p.Feasible) == 0:
		useFeasible = false
	case len(p.Infeasible) == 0:
		useFeasible = true
	default:
		useFeasible = p.Rng.Float64() < 0.5
	}

	subpop := p.Infeasible
	if useFeasible {
		subpop = p.Feasible
	}
	if len(subpop) == 0 {
		panic("population: cannot select from an empty population")
	}

	idx1 := p.Rng.Intn(len(subpop))
	idx2 := p.Rng.Intn(len(subpop))
	for idx1 == idx2 && len(subpop) > 1 {
		idx2 = p.Rng.Intn(len(subpop))
	}

	if subpop[idx1].BiasedFitness <= subpop[idx2].BiasedFitness {
		return subpop[idx1]
	}
	return subpop[idx2]
}

// ShouldManageSize reports whether either subpopulation has grown past
// MaxPopSize and needs survivor selection.
func (p *Population) ShouldManageSize() bool {
	return len(p.Feasible) > p.MaxPopSize || len(p.Infeasible) > p.MaxPopSize
}

// SelectSurvivors trims both subpopulations back down to MinPopSize,
// removing clones first and then the worst-by-biased-fitness individuals.
func (p *Population) SelectSurvivors() {
	p.Feasible = selectSurvivorsFor(p.Feasible, p.MinPopSize)
	p.Infeasible = selectSurvivorsFor(p.Infeasible, p.MinPopSize)
}

func selectSurvivorsFor(individuals []*Individual, minPopSize int) []*Individual {
	if len(individuals) <= minPopSize {
		return individuals
	}

	sort.Slice(individuals, func(i, j int) bool { return individuals[i].BiasedFitness < individuals[j].BiasedFitness })

	toRemove := make(map[int]bool)
	remaining := len(individuals)
	for i := 0; i < len(individuals) && remaining > minPopSize; i++ {
		if toRemove[i] {
			continue
		}
		for j := i + 1; j < len(individuals) && remaining > minPopSize; j++ {
			if toRemove[j] {
				continue
			}
			if individuals[i].IsCloneOf(individuals[j]) {
				toRemove[j] = true
				remaining--
			}
		}
	}

	for i := len(individuals) - 1; i >= 0 && remaining > minPopSize; i-- {
		if !toRemove[i] {
			toRemove[i] = true
			remaining--
		}
	}

	survivors := make([]*Individual, 0, remaining)
	for i, ind := range individuals {
		if !toRemove[i] {
			survivors = append(survivors, ind)
		}
	}
	return survivors
}

// AdjustPenalty raises CapacityPenalty by 20% if the feasible ratio is
// below TargetFeasibleRatio, or lowers it by the same factor otherwise,
// floored at 0.1 so it never collapses to a no-op penalty.
func (p *Population) AdjustPenalty() {
	total := p.Size()
	if total == 0 {
		return
	}

	ratio := float64(len(p.Feasible)) / float64(total)
	if ratio < p.TargetFeasibleRatio {
		p.CapacityPenalty *= 1.2
	} else {
		p.CapacityPenalty /= 1.2
	}
	if p.CapacityPenalty < 0.1 {
		p.CapacityPenalty = 0.1
	}
}

// BestFeasible returns the lowest-cost feasible solution, or nil if none
// exists.
func (p *Population) BestFeasible() *model.Solution {
	if len(p.Feasible) == 0 {
		return nil
	}
	best := p.Feasible[0]
	for _, ind := range p.Feasible[1:] {
		if ind.Cost() < best.Cost() {
			best = ind
		}
	}
	return best.Solution
}
