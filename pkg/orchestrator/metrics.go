package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jpjj/cvrp-hgs/pkg/model"
	"github.com/jpjj/cvrp-hgs/pkg/population"
)

// metricsRecorder wraps the prometheus collectors the orchestrator exports.
// Registration happens once per process via promauto's default registry;
// every Orchestrator in the process reuses the same recorder, so their
// updates go to the same collectors.
type metricsRecorder struct {
	generations     prometheus.Counter
	bestDistance    prometheus.Gauge
	capacityPenalty prometheus.Gauge
	feasibleRatio   prometheus.Gauge
	stopsTotal      *prometheus.CounterVec
}

var defaultMetrics *metricsRecorder

func newMetricsRecorder() *metricsRecorder {
	if defaultMetrics != nil {
		return defaultMetrics
	}

	defaultMetrics = &metricsRecorder{
		generations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "hgs",
			Name:      "generations_total",
			Help:      "Number of generations completed by the orchestrator.",
		}),
		bestDistance: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hgs",
			Name:      "best_distance",
			Help:      "Distance of the best feasible solution found so far.",
		}),
		capacityPenalty: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hgs",
			Name:      "capacity_penalty",
			Help:      "Current adaptive capacity violation penalty.",
		}),
		feasibleRatio: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "hgs",
			Name:      "feasible_ratio",
			Help:      "Fraction of the population currently feasible.",
		}),
		stopsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hgs",
			Name:      "run_stops_total",
			Help:      "Count of solver runs that stopped, by reason.",
		}, []string{"reason"}),
	}
	return defaultMetrics
}

func (m *metricsRecorder) recordGeneration(pop *population.Population, best *model.Solution) {
	m.generations.Inc()
	m.capacityPenalty.Set(pop.CapacityPenalty)
	if total := pop.Size(); total > 0 {
		m.feasibleRatio.Set(float64(len(pop.Feasible)) / float64(total))
	}
	if best != nil {
		m.bestDistance.Set(best.Distance)
	}
}

func (m *metricsRecorder) recordStop(reason string) {
	m.stopsTotal.WithLabelValues(reason).Inc()
}
