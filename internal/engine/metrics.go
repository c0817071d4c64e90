package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opLex      = "lex"
	opTokenize = "tokenize"
	opMatch    = "match"

	resultOK      = "ok"
	resultNoMatch = "nomatch"
	resultError   = "error"
)

var (
	metricRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blex",
		Subsystem: "engine",
		Name:      "runs_total",
		Help:      "Total number of driver runs, per operation and result",
	}, []string{"op", "result"})
	metricSteps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "blex",
		Subsystem: "engine",
		Name:      "steps_total",
		Help:      "Total number of derivative steps taken",
	})
	metricResidualSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "blex",
		Subsystem: "engine",
		Name:      "residual_size",
		Help:      "Node count of the final annotated regex after each fold",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
	})
)

func init() {
	for _, op := range []string{opLex, opTokenize, opMatch} {
		for _, res := range []string{resultOK, resultNoMatch, resultError} {
			metricRuns.WithLabelValues(op, res)
		}
	}
}
