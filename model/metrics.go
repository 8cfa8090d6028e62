package model

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gow2v_sessions_total",
			Help: "training sessions created",
		},
	)
	documentCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gow2v_documents_total",
			Help: "documents trained to completion",
		},
	)
	pairCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gow2v_pairs_total",
			Help: "training pairs applied, by label",
		},
		[]string{"label"},
	)
	errorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gow2v_errors_total",
			Help: "documents rejected or aborted, by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(sessionCounter, documentCounter, pairCounter, errorCounter)
}

func recordPairs(positive, negative int) {
	if positive > 0 {
		pairCounter.WithLabelValues("positive").Add(float64(positive))
	}
	if negative > 0 {
		pairCounter.WithLabelValues("negative").Add(float64(negative))
	}
}
