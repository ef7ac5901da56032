package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mintai",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Model load decisions by outcome",
		},
		[]string{"outcome"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mintai",
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Time holding the model per generation",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
		[]string{"result"},
	)

	generationTokens = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mintai",
			Subsystem: "generation",
			Name:      "tokens_total",
			Help:      "Token fragments consumed from the model",
		},
	)

	gateWaiting = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mintai",
			Subsystem: "gate",
			Name:      "waiting",
			Help:      "Requests queued for the model",
		},
	)

	gateInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "mintai",
			Subsystem: "gate",
			Name:      "inflight",
			Help:      "Requests holding the model",
		},
	)
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, generationDuration, generationTokens, gateWaiting, gateInflight)
}
