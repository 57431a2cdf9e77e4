package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PricingMetrics records per-request pipeline metadata.
type PricingMetrics struct {
	predictDuration *prometheus.HistogramVec
	advice          *prometheus.CounterVec
	fallback        *prometheus.CounterVec
}

// NewPricingMetrics registers the pricing metrics on the provided registerer.
func NewPricingMetrics(reg prometheus.Registerer) *PricingMetrics {
	if reg == nil {
		return &PricingMetrics{}
	}
	predictDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricing_predict_duration_seconds",
		Help:    "Duration of price prediction runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})
	advice := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_advice_total",
		Help: "Price advice decisions by label.",
	}, []string{"label"})
	fallback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricing_fallback_total",
		Help: "Degraded pricing paths taken, by reason.",
	}, []string{"reason"})
	reg.MustRegister(predictDuration, advice, fallback)
	return &PricingMetrics{
		predictDuration: predictDuration,
		advice:          advice,
		fallback:        fallback,
	}
}

// ObservePredictDuration records the prediction duration for the named path.
func (p *PricingMetrics) ObservePredictDuration(path string, duration time.Duration) {
	if p == nil || p.predictDuration == nil {
		return
	}
	p.predictDuration.WithLabelValues(normalizeLabel(path)).Observe(duration.Seconds())
}

// IncAdvice increments the advice counter for the given label.
func (p *PricingMetrics) IncAdvice(label string) {
	if p == nil || p.advice == nil {
		return
	}
	p.advice.WithLabelValues(normalizeLabel(label)).Inc()
}

// IncFallback increments the fallback counter for the given reason.
func (p *PricingMetrics) IncFallback(reason string) {
	if p == nil || p.fallback == nil {
		return
	}
	p.fallback.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
