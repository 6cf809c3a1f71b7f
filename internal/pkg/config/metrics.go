package config

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics exposes how a component's configuration was loaded:
//
//	<component>_config_load_timestamp
//	<component>_config_fallbacks_total{field}
//	<component>_config_fallback_active
type ConfigMetrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewConfigMetrics registers the metrics of component on reg.
func NewConfigMetrics(component string, reg prometheus.Registerer) *ConfigMetrics {
	f := promauto.With(reg)
	return &ConfigMetrics{
		LoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_load_timestamp",
			Help: "Unix timestamp of the last " + component + " configuration load",
		}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: component + "_config_fallbacks_total",
			Help: "Configuration values of " + component + " replaced by their default",
		}, []string{"field"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: component + "_config_fallback_active",
			Help: "1 if any " + component + " configuration value fell back to its default",
		}),
	}
}

// RecordLoadTimestamp marks a completed load.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordFallback counts one defaulted field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive sets the fallback gauge.
func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}
