package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterExecutionsStarted  *prometheus.CounterVec
	CounterExecutionsDone     *prometheus.CounterVec
	CounterPhaseTransitions   *prometheus.CounterVec
	CounterRejectedProgress   *prometheus.CounterVec
	CounterValidationWarnings *prometheus.CounterVec
	CounterConfigPreviews     *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistogramRequestDuration *prometheus.HistogramVec
	HistogramSuggestedRest   *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("blueprint", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("blueprint", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterExecutionsStarted := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "executions_started",
		Help:      "The total number of initialized set executions",
	}, []string{"scheme"})
	counterExecutionsDone := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "executions_completed",
		Help:      "The total number of set executions that reached their last phase",
	}, []string{"scheme"})
	counterPhaseTransitions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "phase_transitions",
		Help:      "The total number of accepted phase transitions",
	}, []string{"scheme"})
	counterRejectedProgress := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rejected_transitions",
		Help:      "The total number of rejected phase transitions",
	}, []string{"scheme", "reason"})
	counterValidationWarnings := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "validation_warnings",
		Help:      "The total number of advisory warnings raised while validating performed sets",
	}, []string{"scheme"})
	counterConfigPreviews := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "configuration_previews",
		Help:      "The total number of previewed set configurations",
	}, []string{"type"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramSuggestedRest := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "suggested_rest_seconds",
		Help:      "Histogram of suggested rest periods between phases",
		Buckets:   []float64{10, 15, 20, 30, 45, 60, 90, 120, 180},
	}, []string{"scheme"})

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterExecutionsStarted:  counterExecutionsStarted,
		CounterExecutionsDone:     counterExecutionsDone,
		CounterPhaseTransitions:   counterPhaseTransitions,
		CounterRejectedProgress:   counterRejectedProgress,
		CounterValidationWarnings: counterValidationWarnings,
		CounterConfigPreviews:     counterConfigPreviews,
		GaugeRequests:             gaugeRequests,
		GaugeLifeSignal:           gaugeLifeSignal,
		HistogramRequestDuration:  histogramRequestDuration,
		HistogramSuggestedRest:    histogramSuggestedRest,
	}
}
