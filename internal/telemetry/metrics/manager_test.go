package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Counters(t *testing.T) {
	m, reg := NewTestManagerAndRegistry()

	m.CounterExecutionsStarted.WithLabelValues("pyramidal").Inc()
	m.CounterExecutionsStarted.WithLabelValues("pyramidal").Inc()
	m.CounterExecutionsStarted.WithLabelValues("drop").Inc()
	m.CounterRejectedProgress.WithLabelValues("drop", "already_completed").Inc()
	m.HistogramSuggestedRest.WithLabelValues("myoReps").Observe(20)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CounterExecutionsStarted.WithLabelValues("pyramidal")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterExecutionsStarted.WithLabelValues("drop")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterRejectedProgress.WithLabelValues("drop", "already_completed")))

	count, err := testutil.GatherAndCount(reg, "blueprint_test_server_suggested_rest_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewManager_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewManager("blueprint", "main", reg)
	assert.Panics(t, func() {
		NewManager("blueprint", "main", reg)
	})
}

func TestSetupPrometheus(t *testing.T) {
	extra := prometheus.NewCounter(prometheus.CounterOpts{Name: "extra_total", Help: "extra"})
	reg := SetupPrometheus(extra)
	extra.Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := familyNames(families)
	assert.True(t, names["extra_total"])
	assert.True(t, names["go_goroutines"])
}

func familyNames(families []*dto.MetricFamily) map[string]bool {
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	return names
}
