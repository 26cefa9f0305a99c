// Package orchestrator drives the hybrid genetic search: it owns the
// population, wires Split and local search together, and runs the
// generational loop until one of the configured termination conditions
// fires.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/rand"
	"k8s.io/klog/v2"

	"github.com/jpjj/cvrp-hgs/pkg/config"
	"github.com/jpjj/cvrp-hgs/pkg/genetic"
	"github.com/jpjj/cvrp-hgs/pkg/ioformat"
	"github.com/jpjj/cvrp-hgs/pkg/localsearch"
	"github.com/jpjj/cvrp-hgs/pkg/model"
	"github.com/jpjj/cvrp-hgs/pkg/population"
	"github.com/jpjj/cvrp-hgs/pkg/split"
)

// Stats summarizes one completed run, mirroring the reference
// implementation's SearchStatistics: iteration count, runtime, the best
// solution's headline numbers, the average population size observed
// across generations, and the penalty the adaptive mechanism settled on.
type Stats struct {
	Generations            int
	Elapsed                time.Duration
	StopReason             string
	BestCostHistory        []float64
	BestSolutionCost       float64
	BestSolutionDistance   float64
	BestSolutionIsFeasible bool
	BestSolutionRoutes     int
	AveragePopulationSize  int
	FinalCapacityPenalty   float64
}

// String renders the statistics in the reference implementation's
// multi-line report format.
func (s Stats) String() string {
	return fmt.Sprintf(
		"Search Statistics:\n"+
			"- Iterations: %d\n"+
			"- Runtime: %s\n"+
			"- Best Solution Cost: %.2f\n"+
			"- Best Solution Distance: %.2f\n"+
			"- Best Solution Feasible: %t\n"+
			"- Best Solution Routes: %d\n"+
			"- Average Population Size: %d\n"+
			"- Final Capacity Penalty: %.2f",
		s.Generations,
		ioformat.FormatDuration(s.Elapsed),
		s.BestSolutionCost,
		s.BestSolutionDistance,
		s.BestSolutionIsFeasible,
		s.BestSolutionRoutes,
		s.AveragePopulationSize,
		s.FinalCapacityPenalty,
	)
}

// Result bundles the outcome of a run together with its statistics.
type Result struct {
	Best  *model.Solution
	Stats Stats
}

// Orchestrator owns every moving part of one solve: the problem, the
// population, local search state and the RNG they all share.
type Orchestrator struct {
	Problem *model.Problem
	Config  *config.Config

	pop *population.Population
	ls  *localsearch.LocalSearch
	rng *rand.Rand

	metrics *metricsRecorder
	tracer  tracer
}

// New builds an Orchestrator for problem under cfg. seed seeds the single
// process-wide RNG the spec allows (reproducibility isn't required, but a
// seedable generator makes the run testable).
func New(problem *model.Problem, cfg *config.Config, seed uint64) *Orchestrator {
	rng := rand.New(rand.NewSource(seed))

	popCfg := population.Config{
		MinPopSize:             cfg.MinPopSize,
		GenerationSize:         cfg.GenerationSize,
		InitialCapacityPenalty: cfg.InitialCapacityPenalty,
		NClosest:               cfg.NClosest,
		TargetFeasibleRatio:    cfg.TargetFeasibleRatio,
		NElite:                 cfg.NElite,
	}

	return &Orchestrator{
		Problem: problem,
		Config:  cfg,
		pop:     population.New(popCfg, rng),
		ls:      localsearch.New(cfg.Granularity, rng),
		rng:     rng,
		metrics: newMetricsRecorder(),
		tracer:  newTracer(),
	}
}

// randomGiantTour returns a uniformly shuffled permutation of every
// customer in the problem.
func (o *Orchestrator) randomGiantTour() []int {
	customers := o.Problem.Customers()
	tour := make([]int, len(customers))
	copy(tour, customers)
	o.rng.Shuffle(len(tour), func(i, j int) { tour[i], tour[j] = tour[j], tour[i] })
	return tour
}

// initialize seeds the population with 4*mu random individuals, each
// Split and evaluated under the starting penalty, then ranks the
// population once.
func (o *Orchestrator) initialize(ctx context.Context) {
	n := 4 * o.Config.MinPopSize
	for i := 0; i < n; i++ {
		sol := model.NewSolutionFromGiantTour(o.randomGiantTour())
		split.Split(sol, o.Problem, o.pop.CapacityPenalty)
		o.pop.Insert(population.NewIndividual(sol))
	}
	o.pop.UpdateRanks()
}

// Run executes the generational loop until termination, returning the best
// feasible solution ever observed (nil if none was found) plus run
// statistics. ctx cancellation is honored at the top of each generation.
func (o *Orchestrator) Run(ctx context.Context) Result {
	start := time.Now()
	logger := klog.FromContext(ctx).WithValues("component", "orchestrator")

	o.initialize(ctx)

	var best *model.Solution
	if b := o.pop.BestFeasible(); b != nil {
		best = b.Clone()
	}

	logger.Info("starting search",
		"minPopSize", o.Config.MinPopSize,
		"generationSize", o.Config.GenerationSize,
		"granularity", o.Config.Granularity,
	)

	history := make([]float64, 0, 1024)
	iterationsWithoutImprovement := 0
	generation := 0
	populationSizeSum := 0
	stopReason := "iterations_without_improvement"

	for {
		if o.Config.TimeLimit > 0 && time.Since(start) >= o.Config.TimeLimit {
			stopReason = "time_limit"
			break
		}
		if iterationsWithoutImprovement >= o.Config.MaxIterationsWithoutImprovement {
			stopReason = "iterations_without_improvement"
			break
		}
		select {
		case <-ctx.Done():
			stopReason = "cancelled"
			o.metrics.recordStop(stopReason)
			return o.finish(best, generation, populationSizeSum, start, stopReason, history)
		default:
		}

		spanCtx, span := o.tracer.startGeneration(ctx, generation)

		previousBest := best
		o.runGeneration(spanCtx)

		improved := false
		if newBest := o.pop.BestFeasible(); newBest != nil {
			if previousBest == nil || newBest.Distance < previousBest.Distance-1e-9 {
				best = newBest.Clone()
				improved = true
			}
		}
		if improved {
			iterationsWithoutImprovement = 0
		} else {
			iterationsWithoutImprovement++
		}

		if o.pop.ShouldManageSize() {
			o.pop.SelectSurvivors()
		}
		o.pop.AdjustPenalty()

		history = append(history, bestDistanceOrNegative(best))
		populationSizeSum += o.pop.Size()

		o.metrics.recordGeneration(o.pop, best)
		span.End()

		if generation%100 == 0 {
			logger.V(1).Info("generation progress",
				"generation", generation,
				"bestDistance", bestDistanceOrNegative(best),
				"capacityPenalty", o.pop.CapacityPenalty,
				"feasibleCount", len(o.pop.Feasible),
				"infeasibleCount", len(o.pop.Infeasible),
				"iterationsWithoutImprovement", iterationsWithoutImprovement,
			)
		}

		generation++
	}

	o.metrics.recordStop(stopReason)
	return o.finish(best, generation, populationSizeSum, start, stopReason, history)
}

// runGeneration performs exactly one iteration of the main loop: select
// parents, crossover, split, educate, insert. update_ranks is deliberately
// NOT called here — only at initialize — matching the reference algorithm's
// loop shape: biased fitness keeps the values computed in initialize for the
// rest of the run, offspring inserted later keep the zero BiasedFitness
// NewIndividual gives them, and survivor selection/binary tournament use
// those values.
func (o *Orchestrator) runGeneration(ctx context.Context) {
	parent1, parent2 := o.pop.SelectParents()

	offspringTour := genetic.OrderCrossover(parent1.Solution.GiantTour, parent2.Solution.GiantTour, o.rng)

	offspring := model.NewSolutionFromGiantTour(offspringTour)
	split.Split(offspring, o.Problem, o.pop.CapacityPenalty)
	o.ls.Educate(offspring, o.Problem, o.pop.CapacityPenalty)
	offspring.UpdateGiantTour()
	offspring.Evaluate(o.Problem, o.pop.CapacityPenalty)

	o.pop.Insert(population.NewIndividual(offspring))
}

func (o *Orchestrator) finish(best *model.Solution, generations, populationSizeSum int, start time.Time, stopReason string, history []float64) Result {
	stats := Stats{
		Generations:          generations,
		Elapsed:              time.Since(start),
		StopReason:           stopReason,
		BestCostHistory:      history,
		FinalCapacityPenalty: o.pop.CapacityPenalty,
	}
	if generations > 0 {
		stats.AveragePopulationSize = populationSizeSum / generations
	}
	if best != nil {
		stats.BestSolutionCost = best.Cost
		stats.BestSolutionDistance = best.Distance
		stats.BestSolutionIsFeasible = best.IsFeasible
		stats.BestSolutionRoutes = best.RouteCount()
	}
	return Result{Best: best, Stats: stats}
}

func bestDistanceOrNegative(s *model.Solution) float64 {
	if s == nil {
		return -1
	}
	return s.Distance
}
