package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PaymentTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_transitions_total",
			Help: "Número total de transiciones de fase por resultado",
		},
		[]string{"phase", "outcome"},
	)

	PaymentAmounts = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_amounts",
			Help:    "Distribución de montos autorizados en unidades mínimas",
			Buckets: prometheus.ExponentialBuckets(100, 4, 10),
		},
		[]string{"currency"},
	)

	RiskDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "risk_decisions_total",
			Help: "Número total de evaluaciones de riesgo por recomendación",
		},
		[]string{"recommendation"},
	)

	RiskScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "risk_score",
			Help:    "Distribución del puntaje de riesgo",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)

	ProviderAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_attempts_total",
			Help: "Número total de llamadas al proveedor",
		},
		[]string{"provider", "operation", "outcome"},
	)

	AuditPublishFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "audit_publish_failures_total",
			Help: "Eventos de auditoría que no se pudieron publicar",
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		PaymentTransitionsTotal,
		PaymentAmounts,
		RiskDecisionsTotal,
		RiskScore,
		ProviderAttemptsTotal,
		AuditPublishFailuresTotal,
	)
}
