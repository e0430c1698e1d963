package metrics_test

import (
	"testing"

	"github.com/jeffleon2/draftea-payment-orchestrator/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMetrics(t *testing.T) {
	require.NotPanics(t, metrics.RegisterMetrics)

	metrics.PaymentTransitionsTotal.WithLabelValues("capture", "success").Inc()
	metrics.RiskScore.Observe(0.465)

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["payment_transitions_total"])
	assert.True(t, names["risk_score"])
}

func TestProviderAttemptsAreLabelled(t *testing.T) {
	before := testutil.ToFloat64(metrics.ProviderAttemptsTotal.WithLabelValues("stripe", "capture", "failure"))

	metrics.ProviderAttemptsTotal.WithLabelValues("stripe", "capture", "failure").Inc()
	metrics.ProviderAttemptsTotal.WithLabelValues("stripe", "capture", "success").Inc()

	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ProviderAttemptsTotal.WithLabelValues("stripe", "capture", "failure")))
}
