package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRejects = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blex",
		Subsystem: "prefilter",
		Name:      "rejects_total",
		Help:      "Total number of inputs rejected before derivative matching",
	})
	metricPasses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blex",
		Subsystem: "prefilter",
		Name:      "passes_total",
		Help:      "Total number of inputs passed on to derivative matching",
	})
	metricCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blex",
		Subsystem: "prefilter",
		Name:      "cache_lookups_total",
		Help:      "Total number of prefilter cache lookups, per result (hit/miss)",
	}, []string{"result"})
)

func init() {
	metricCacheLookups.WithLabelValues("hit")
	metricCacheLookups.WithLabelValues("miss")
}
