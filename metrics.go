package blex

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "blex",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Total number of result cache lookups, per result (hit/miss)",
}, []string{"result"})

func init() {
	metricCacheLookups.WithLabelValues("hit")
	metricCacheLookups.WithLabelValues("miss")
}
